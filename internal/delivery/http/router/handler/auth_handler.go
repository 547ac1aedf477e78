// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"fieldops/internal/delivery/http/middleware"
	"fieldops/internal/delivery/http/response"
	"fieldops/internal/domain/entity"
	"fieldops/internal/usecase"
)

// AuthHandler holds dependencies for session-related handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

type signupRequest struct {
	Credential string `json:"credential" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Role       string `json:"role" validate:"required"`
	Phone      string `json:"phone"`
	State      string `json:"state"`
	District   string `json:"district"`
}

type loginRequest struct {
	Credential string `json:"credential" validate:"required"`
	Role       string `json:"role"`
}

type authResponse struct {
	User        *entity.User `json:"user"`
	AccessToken string       `json:"accessToken"`
	LandingPath string       `json:"landingPath"`
}

// Signup handles the registration request.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Signup(c.Request().Context(), usecase.SignupInput{
		Credential: req.Credential,
		Name:       req.Name,
		Role:       entity.Role(req.Role),
		Phone:      req.Phone,
		State:      req.State,
		District:   req.District,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, authResponse{
		User:        output.User,
		AccessToken: output.AccessToken,
		LandingPath: output.LandingPath,
	}, "Signed up successfully")
}

// Login handles the login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Credential: req.Credential,
		Role:       entity.Role(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, authResponse{
		User:        output.User,
		AccessToken: output.AccessToken,
		LandingPath: output.LandingPath,
	}, "Login successful")
}

// Logout revokes the caller's provider sessions.
func (h *AuthHandler) Logout(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	if err := h.uc.Logout(c.Request().Context(), user.ID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

// Me returns the caller's resolved user.
func (h *AuthHandler) Me(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	return response.Success(c, http.StatusOK, user, "")
}

// Profile returns the caller's stored profile.
func (h *AuthHandler) Profile(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	profile, err := h.uc.Profile(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, profile, "")
}
