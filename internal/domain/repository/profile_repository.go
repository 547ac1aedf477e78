// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"fieldops/internal/domain/entity"
)

// ErrProfileNotFound is a domain-specific error returned when no profile
// record exists for an identity.
var ErrProfileNotFound = errors.New("profile not found")

// ErrRoleNotFound is returned when no role record exists for an identity.
var ErrRoleNotFound = errors.New("role record not found")

// ProfileRecord is the stored signup profile for an identity. Two records
// are kept per identity (a role record and the profile blob), both keyed by
// the identity's stable id, so the role can be resolved even when the blob
// was never written.
type ProfileRecord struct {
	IdentityID string
	Role       entity.Role
	Name       string
	Phone      string
	State      string
	District   string
	UpdatedAt  time.Time
}

// ProfileRepository is the key-value store for signup profiles. Signup is
// the only write path; the session resolver is the main reader.
type ProfileRepository interface {
	// FindRole retrieves the stored role for an identity.
	// Returns ErrRoleNotFound when the identity never signed up.
	FindRole(ctx context.Context, identityID string) (entity.Role, error)

	// FindProfile retrieves the stored profile blob for an identity.
	// Returns ErrProfileNotFound when absent.
	FindProfile(ctx context.Context, identityID string) (*ProfileRecord, error)

	// SaveRole upserts the role record for an identity.
	SaveRole(ctx context.Context, identityID string, role entity.Role) error

	// SaveProfile upserts the profile blob for an identity.
	SaveProfile(ctx context.Context, record *ProfileRecord) error

	// ListProfiles returns every stored profile. Consumed by the admin
	// views and the per-state rollup.
	ListProfiles(ctx context.Context) ([]*ProfileRecord, error)
}

// RepositoryFactory yields repositories bound to one transaction.
type RepositoryFactory interface {
	ProfileRepo() ProfileRepository
}

// TransactionManager runs a function within a single storage transaction.
// Signup writes the role record and the profile blob together; the
// transaction keeps the two keys consistent.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}
