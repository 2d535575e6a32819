package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// User models a registered account.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	Date         time.Time `json:"date"`
}

// Author is the slice of a User that gets copied onto posts and comments.
type Author struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Author returns the denormalised view of u.
func (u *User) Author() Author {
	return Author{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}

// GravatarURL returns the avatar for email: 200px, pg rated, mystery-man fallback.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("//www.gravatar.com/avatar/%s?s=200&r=pg&d=mm", hex.EncodeToString(sum[:]))
}
