package service

import (
	"github.com/golang-jwt/jwt/v5"

	"fieldops/internal/domain/entity"
)

// Claims defines the custom claims carried by the access token. Role is the
// server-resolved role; clients never supply it.
type Claims struct {
	UserID string
	Role   entity.Role
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateAccessToken creates a new access token for a given user.
	GenerateAccessToken(userID string, role entity.Role) (string, error)

	// ValidateToken checks the validity of a token string.
	ValidateToken(tokenString string) (*Claims, error)
}
