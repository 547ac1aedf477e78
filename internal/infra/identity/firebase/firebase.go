// Package firebase verifies client credentials against Firebase Auth.
package firebase

import (
	"context"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"fieldops/config"
	"fieldops/internal/domain/service"
	"fieldops/internal/errors"
)

type firebaseProvider struct {
	client *fbauth.Client
	logger *slog.Logger
}

// NewProvider creates an identity provider backed by the Firebase Admin SDK.
func NewProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.IdentityProvider, error) {
	var opts []option.ClientOption
	if cfg.Identity != nil && cfg.Identity.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Identity.CredentialsPath))
	}

	var fbConfig *firebase.Config
	if cfg.Identity != nil && cfg.Identity.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.Identity.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	return &firebaseProvider{
		client: client,
		logger: logger,
	}, nil
}

// Verify validates a Firebase ID token and extracts the identity behind it.
func (p *firebaseProvider) Verify(ctx context.Context, credential string) (*service.Identity, error) {
	token, err := p.client.VerifyIDToken(ctx, credential)
	if err != nil {
		return nil, errors.Wrap(err, "verify id token")
	}

	identity := &service.Identity{ID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	if role, ok := token.Claims["role"].(string); ok {
		identity.RoleClaim = role
	}

	return identity, nil
}

// Revoke invalidates every outstanding session for the identity. Issued ID
// tokens stay valid until their natural expiry, so Verify callers must also
// consult the stored role.
func (p *firebaseProvider) Revoke(ctx context.Context, identityID string) error {
	if err := p.client.RevokeRefreshTokens(ctx, identityID); err != nil {
		return errors.Wrap(err, "revoke refresh tokens")
	}

	p.logger.Info("revoked identity sessions", slog.String("identityID", identityID))

	return nil
}
