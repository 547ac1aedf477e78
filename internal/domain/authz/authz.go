// Package authz implements the role gate used by the delivery layer to
// decide whether a resolved user may reach a route group. The gate is a
// pure function; the trusted enforcement point is the server-minted token
// it is evaluated against, never a client-supplied role claim.
package authz

import "fieldops/internal/domain/entity"

// Decision is the outcome of an authorization check. When denied for a
// known user it carries the role whose landing area the client should be
// redirected to; this is routing advice, not a security control.
type Decision struct {
	Allowed      bool
	RedirectRole entity.Role
}

// landingPaths is the fixed per-role default landing area mapping.
var landingPaths = map[entity.Role]string{
	entity.RoleAdmin:        "/admin",
	entity.RoleFieldOfficer: "/field",
	entity.RoleDistributor:  "/distributor",
}

// Authorize decides whether user may access an area restricted to the
// allowed roles. A nil user means "unauthenticated", which callers must
// treat as a distinct condition from "denied".
func Authorize(user *entity.User, allowed entity.Roles) Decision {
	if user == nil {
		return Decision{Allowed: false}
	}
	if allowed.Contains(user.Role) {
		return Decision{Allowed: true}
	}

	return Decision{Allowed: false, RedirectRole: user.Role}
}

// LandingPath returns the default landing area for a role. Unknown roles
// fall back to the field officer area, mirroring the resolver's fallback.
func LandingPath(role entity.Role) string {
	if path, ok := landingPaths[role]; ok {
		return path
	}

	return landingPaths[entity.RoleFieldOfficer]
}
