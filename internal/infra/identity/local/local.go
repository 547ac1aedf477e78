// Package local provides an in-process identity provider for development
// and tests. Accounts live in memory; credentials are opaque tokens issued
// by SignIn.
package local

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"fieldops/internal/domain/service"
	"fieldops/internal/errors"
)

type account struct {
	id           string
	email        string
	name         string
	passwordHash string
	roleClaim    string
}

type localProvider struct {
	mu       sync.RWMutex
	hasher   service.PasswordHasher
	byEmail  map[string]*account
	sessions map[string]*account // issued credential -> account
}

// NewProvider creates an empty local identity provider.
func NewProvider(hasher service.PasswordHasher) *localProvider {
	return &localProvider{
		hasher:   hasher,
		byEmail:  make(map[string]*account),
		sessions: make(map[string]*account),
	}
}

// SignUp registers an account and returns its identity id. The roleClaim is
// attached to every identity Verify returns for this account.
func (p *localProvider) SignUp(email, name, password, roleClaim string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.byEmail[email]; exists {
		return "", errors.Errorf("account %s already exists", email)
	}

	hash, err := p.hasher.Hash(password)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}

	acc := &account{
		id:           uuid.NewString(),
		email:        email,
		name:         name,
		passwordHash: hash,
		roleClaim:    roleClaim,
	}
	p.byEmail[email] = acc

	return acc.id, nil
}

// SignIn checks the password and issues an opaque credential for Verify.
func (p *localProvider) SignIn(email, password string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	acc, exists := p.byEmail[email]
	if !exists || !p.hasher.Check(password, acc.passwordHash) {
		return "", errors.New("invalid email or password")
	}

	credential := uuid.NewString()
	p.sessions[credential] = acc

	return credential, nil
}

// Verify resolves an issued credential back to its identity.
func (p *localProvider) Verify(_ context.Context, credential string) (*service.Identity, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	acc, exists := p.sessions[credential]
	if !exists {
		return nil, errors.New("unknown credential")
	}

	return &service.Identity{
		ID:        acc.id,
		Email:     acc.email,
		Name:      acc.name,
		RoleClaim: acc.roleClaim,
	}, nil
}

// Revoke drops every issued credential for the identity.
func (p *localProvider) Revoke(_ context.Context, identityID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for credential, acc := range p.sessions {
		if acc.id == identityID {
			delete(p.sessions, credential)
		}
	}

	return nil
}
