// Package service defines domain service interfaces implemented by the
// infrastructure layer.
package service

import "context"

// Identity is the verified external identity behind a client credential.
// RoleClaim carries the role the identity provider attached to the account;
// it is a hint only and never overrides the stored role.
type Identity struct {
	// ID is the provider-issued stable identifier.
	ID string
	// Email is the verified email address, if any.
	Email string
	// Name is the display name from the provider, if any.
	Name string
	// RoleClaim is the role custom claim from the provider token, if any.
	RoleClaim string
}

// CredentialIssuer is implemented by identity providers that mint their own
// credentials, such as the in-process provider. External providers issue
// credentials out of band and do not implement it.
type CredentialIssuer interface {
	// SignUp registers an account and returns its identity id.
	SignUp(email, name, password, roleClaim string) (string, error)

	// SignIn checks the password and issues a credential for Verify.
	SignIn(email, password string) (string, error)
}

// IdentityProvider verifies client credentials against an external identity
// system and can revoke an identity's sessions.
type IdentityProvider interface {
	// Verify validates the given credential and returns the identity
	// behind it. Returns domain ErrInvalidCredentials on any failure.
	Verify(ctx context.Context, credential string) (*Identity, error)

	// Revoke invalidates all outstanding sessions for the identity.
	// Used when a client presents a role that does not match the stored
	// role.
	Revoke(ctx context.Context, identityID string) error
}
