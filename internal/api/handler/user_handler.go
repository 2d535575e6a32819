package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trailmate/trailmate-api/internal/core/ports"
)

type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

type registerRequest struct {
	Name      string `json:"name"      validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"min=6"`
	Password2 string `json:"password2" validate:"eqfield=Password"`
}

func (registerRequest) messages() map[string]string {
	return map[string]string{
		"name":      "Name is required",
		"email":     "Please include a valid email",
		"password":  "Please enter a password with 6 or more characters",
		"password2": "Confirmation password must match the password field",
	}
}

// Register creates an account and signs the user in.
//
// @Summary      Register user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  ValidationError
// @Failure      500   {string}  string
// @Router       /api/users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}
