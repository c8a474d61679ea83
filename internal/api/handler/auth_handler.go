package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/secondbrain/bookmarks/internal/core/domain"
	"github.com/secondbrain/bookmarks/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup creates a new account and returns a token valid for the signup TTL.
// A taken email is answered with 200 and a message, not an error status.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      SignupRequest  true  "Account details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  validationResponse
// @Failure      500   {object}  messageResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	res, err := h.authService.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return c.JSON(http.StatusOK, messageResponse{Message: "Email is already registered"})
		}
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Message:    "Signup successful",
		Token:      res.Token,
		UserDetail: userDetail{Name: res.User.Name, Email: res.User.Email},
	})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  validationResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, messageResponse{Message: "User is not registered"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, messageResponse{Message: "Invalid credentials"})
		}
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Message:    "Login successful",
		Token:      res.Token,
		UserDetail: userDetail{Name: res.User.Name, Email: res.User.Email},
	})
}

func invalidPayload() error {
	return &domain.ValidationError{Fields: []string{"request body must be a JSON object"}}
}
