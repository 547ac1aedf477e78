// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"fieldops/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new field user.
// Credential is the identity provider token; Role is the role chosen at
// signup and becomes the stored role.
type SignupInput struct {
	Credential string
	Name       string
	Role       entity.Role
	Phone      string
	State      string
	District   string
}

// LoginInput defines the data required to log in. Role is the role the
// client signed in under; when it does not match the stored role the login
// is rejected and the identity's sessions are revoked.
type LoginInput struct {
	Credential string
	Role       entity.Role
}

// --- Output DTOs ---

// AuthOutput returns the resolved user and a fresh access token.
type AuthOutput struct {
	User        *entity.User
	AccessToken string
	// LandingPath is the role-appropriate entry route for the client.
	LandingPath string
}

// AuthUsecase defines the interface for session and profile operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Signup registers a new user with the identity provider credential
	// and stores the chosen role and profile.
	Signup(ctx context.Context, input SignupInput) (*AuthOutput, error)

	// Login verifies the credential, resolves the stored role, and mints
	// an access token. A role mismatch revokes the identity's sessions.
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)

	// Resolve builds the full user for an already-authenticated subject.
	// Used by the authentication middleware on each request.
	Resolve(ctx context.Context, userID string, role entity.Role) (*entity.User, error)

	// Profile returns the caller's stored profile merged with identity data.
	Profile(ctx context.Context, userID string) (*entity.User, error)

	// Logout revokes the identity's sessions.
	Logout(ctx context.Context, userID string) error
}
