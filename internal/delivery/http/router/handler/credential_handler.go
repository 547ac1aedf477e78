// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"fieldops/internal/delivery/http/response"
	"fieldops/internal/domain/service"
)

// CredentialHandler exposes account registration and credential issuance
// for identity providers that mint their own credentials. With an external
// provider such as Firebase these routes are not registered; clients obtain
// credentials from the provider directly.
type CredentialHandler struct {
	issuer service.CredentialIssuer
	logger *slog.Logger
}

// NewCredentialHandler is the constructor for CredentialHandler, injected
// by Fx. The issuer stays nil when the active identity provider issues
// credentials out of band.
func NewCredentialHandler(provider service.IdentityProvider, logger *slog.Logger) *CredentialHandler {
	issuer, _ := provider.(service.CredentialIssuer)

	return &CredentialHandler{
		issuer: issuer,
		logger: logger,
	}
}

// Enabled reports whether the active identity provider supports in-process
// credential issuance.
func (h *CredentialHandler) Enabled() bool {
	return h.issuer != nil
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"`
}

type issueCredentialRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type credentialResponse struct {
	Credential string `json:"credential"`
}

// Register creates a provider account and issues a first credential. The
// credential feeds the regular signup and login endpoints.
func (h *CredentialHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.issuer.SignUp(req.Email, req.Name, req.Password, req.Role); err != nil {
		return response.Conflict(c, "ACCOUNT_EXISTS", "An account with this email already exists")
	}

	credential, err := h.issuer.SignIn(req.Email, req.Password)
	if err != nil {
		return response.Unauthorized(c, "INVALID_CREDENTIALS", "Invalid email or password")
	}

	h.logger.Info("Local account registered", slog.String("email", req.Email))

	return response.Success(c, http.StatusCreated, credentialResponse{Credential: credential}, "Account registered")
}

// IssueCredential checks the password and returns a fresh credential for
// the regular login endpoint.
func (h *CredentialHandler) IssueCredential(c echo.Context) error {
	var req issueCredentialRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid credential input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	credential, err := h.issuer.SignIn(req.Email, req.Password)
	if err != nil {
		return response.Unauthorized(c, "INVALID_CREDENTIALS", "Invalid email or password")
	}

	return response.Success(c, http.StatusOK, credentialResponse{Credential: credential}, "")
}
