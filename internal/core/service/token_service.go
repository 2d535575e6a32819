package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/trailmate/trailmate-api/internal/core/domain"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = 5000 * time.Second

type userClaim struct {
	ID string `json:"id"`
}

// tokenClaims is the signed payload: {"user": {"id": ...}, "iat", "exp"}.
type tokenClaims struct {
	User userClaim `json:"user"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 bearer tokens. It keeps no state
// besides the secret, so tokens cannot be revoked before they expire.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a token embedding userID that expires after the configured TTL.
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.now()
	claims := tokenClaims{
		User: userClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of token and returns the user id it
// carries.
func (s *TokenService) Verify(token string) (string, error) {
	if token == "" {
		return "", domain.ErrTokenMissing
	}

	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
	}
	if !parsed.Valid || claims.User.ID == "" {
		return "", domain.ErrTokenMalformed
	}
	return claims.User.ID, nil
}
