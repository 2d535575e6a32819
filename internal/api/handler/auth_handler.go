package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trailmate/trailmate-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (loginRequest) messages() map[string]string {
	return map[string]string{
		"email":    "Please include a valid email",
		"password": "Password is required",
	}
}

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Msg string `json:"msg"`
}

// Login exchanges credentials for a token.
//
// @Summary      Authenticate user and get token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  ValidationError
// @Failure      500   {string}  string
// @Router       /api/auth [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Me returns the authenticated user without the password hash.
//
// @Summary      Get the authenticated user
// @Tags         auth
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/auth [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}
