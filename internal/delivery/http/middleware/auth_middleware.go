package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"fieldops/internal/domain/authz"
	"fieldops/internal/domain/entity"
	"fieldops/internal/domain/service"
	"fieldops/internal/usecase"
)

// ContextKeyUser is the echo.Context key holding the resolved user.
const ContextKeyUser = "user"

// AuthMiddleware provides middleware for JWT authentication and role authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	auth     usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, auth usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, auth: auth}
}

// Authenticate validates the JWT access token and resolves the full user
// behind it. The role always comes from the server-minted token, never from
// anything the client supplies alongside it.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}
		if claims.UserID == "" || !claims.Role.IsValid() {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Malformed token claims"})
		}

		user, err := m.auth.Resolve(c.Request().Context(), claims.UserID, claims.Role)
		if err != nil {
			return errors.WithStack(err)
		}

		c.Set(ContextKeyUser, user)

		return next(c)
	}
}

// RequireRoles is a middleware factory that restricts a route group to the
// given roles. A signed-in user with the wrong role receives the landing
// path for their own role so the client can redirect.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRoles(allowed ...entity.Role) echo.MiddlewareFunc {
	roles := entity.Roles(allowed)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			decision := authz.Authorize(user, roles)
			if decision.Allowed {
				return next(c)
			}

			if user == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
			}

			return c.JSON(http.StatusForbidden, map[string]string{
				"error":    "Permission denied for this area",
				"redirect": authz.LandingPath(decision.RedirectRole),
			})
		}
	}
}

// CurrentUser returns the authenticated user set by Authenticate, or nil.
func CurrentUser(c echo.Context) *entity.User {
	user, _ := c.Get(ContextKeyUser).(*entity.User)

	return user
}
