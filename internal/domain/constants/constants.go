// Package constants holds shared provider and environment identifiers.
package constants

// Pub/Sub provider types.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Identity provider types.
const (
	IdentityProviderFirebase = "firebase"
	IdentityProviderLocal    = "local"
)
