// Package memory provides in-memory repository implementations. The profile
// store backs development and tests; the activity store is the primary store
// for field records.
package memory

import (
	"context"
	"sync"
	"time"

	"fieldops/internal/domain/entity"
	"fieldops/internal/domain/repository"
)

// ProfileRepository is an in-memory implementation of repository.ProfileRepository.
type ProfileRepository struct {
	mu       sync.RWMutex
	roles    map[string]entity.Role
	profiles map[string]*repository.ProfileRecord
}

// NewProfileRepository creates an empty in-memory profile store.
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		roles:    make(map[string]entity.Role),
		profiles: make(map[string]*repository.ProfileRecord),
	}
}

func (r *ProfileRepository) FindRole(_ context.Context, identityID string) (entity.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	role, ok := r.roles[identityID]
	if !ok {
		return "", repository.ErrRoleNotFound
	}

	return role, nil
}

func (r *ProfileRepository) FindProfile(_ context.Context, identityID string) (*repository.ProfileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.profiles[identityID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}

	copied := *record

	return &copied, nil
}

func (r *ProfileRepository) SaveRole(_ context.Context, identityID string, role entity.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.roles[identityID] = role

	return nil
}

func (r *ProfileRepository) SaveProfile(_ context.Context, record *repository.ProfileRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *record
	copied.UpdatedAt = time.Now()
	r.profiles[record.IdentityID] = &copied

	return nil
}

func (r *ProfileRepository) ListProfiles(_ context.Context) ([]*repository.ProfileRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*repository.ProfileRecord, 0, len(r.profiles))
	for _, record := range r.profiles {
		copied := *record
		out = append(out, &copied)
	}

	return out, nil
}

// memoryFactory binds the profile repository for TransactionManager.Execute.
type memoryFactory struct {
	profiles *ProfileRepository
}

func (f *memoryFactory) ProfileRepo() repository.ProfileRepository {
	return f.profiles
}

// TransactionManager is the in-memory TransactionManager. Writes are atomic
// per call already, so Execute simply runs the function against the shared
// store.
type TransactionManager struct {
	profiles *ProfileRepository
}

// NewTransactionManager creates a transaction manager over the given store.
func NewTransactionManager(profiles *ProfileRepository) *TransactionManager {
	return &TransactionManager{profiles: profiles}
}

func (m *TransactionManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return fn(&memoryFactory{profiles: m.profiles})
}
