package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"fieldops/internal/domain/entity"
	"fieldops/internal/domain/repository"
	"fieldops/internal/domain/service"
	"fieldops/internal/errors"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// profileRecord builds a canonical stored profile for tests.
func profileRecord(identityID string, role entity.Role) *repository.ProfileRecord {
	return &repository.ProfileRecord{
		IdentityID: identityID,
		Role:       role,
		Name:       "Asha Patel",
		Phone:      "9876543210",
		State:      "Maharashtra",
		District:   "Pune",
	}
}

// fakeIdentityProvider verifies credentials against a fixed map and records
// revocations.
type fakeIdentityProvider struct {
	mu         sync.Mutex
	identities map[string]*service.Identity
	revoked    []string
}

func newFakeIdentityProvider() *fakeIdentityProvider {
	return &fakeIdentityProvider{identities: make(map[string]*service.Identity)}
}

func (p *fakeIdentityProvider) add(credential string, identity *service.Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.identities[credential] = identity
}

func (p *fakeIdentityProvider) Verify(_ context.Context, credential string) (*service.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	identity, ok := p.identities[credential]
	if !ok {
		return nil, errors.New("unknown credential")
	}

	return identity, nil
}

func (p *fakeIdentityProvider) Revoke(_ context.Context, identityID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.revoked = append(p.revoked, identityID)

	return nil
}

func (p *fakeIdentityProvider) revokedIDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.revoked))
	copy(out, p.revoked)

	return out
}

// capturingPublisher records published events.
type capturingPublisher struct {
	mu     sync.Mutex
	events []*service.FieldEvent
}

func (p *capturingPublisher) PublishFieldEvent(_ context.Context, event *service.FieldEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	copied := *event
	p.events = append(p.events, &copied)

	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func (p *capturingPublisher) published() []*service.FieldEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]*service.FieldEvent, len(p.events))
	copy(out, p.events)

	return out
}
