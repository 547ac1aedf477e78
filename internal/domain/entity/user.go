// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

// User is the application-level view of an authenticated person.
// The ID is the stable identifier issued by the external identity
// provider; all operational records reference it via their UserID field.
type User struct {
	ID       string `json:"id"`       // Stable identity id from the external provider.
	Name     string `json:"name"`     // Display name, merged from the stored profile or the identity.
	Email    string `json:"email"`    // Primary contact email, also the login identifier.
	Role     Role   `json:"role"`     // Resolved role; authoritative source is the stored profile.
	Phone    string `json:"phone"`    // Contact phone number, recorded at signup.
	State    string `json:"state"`    // Operating state, used for per-state rollups.
	District string `json:"district"` // Operating district within the state.
}
