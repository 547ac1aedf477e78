// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	"fieldops/config"
	deliverycontext "fieldops/internal/delivery/context"
	"fieldops/internal/domain/authz"
	"fieldops/internal/domain/entity"
	domainerrors "fieldops/internal/domain/errors"
	"fieldops/internal/domain/repository"
	"fieldops/internal/domain/service"
	"fieldops/internal/usecase"
)

const defaultVerifyTimeout = 10 * time.Second

// authService implements the AuthUsecase interface.
type authService struct {
	txManager     repository.TransactionManager
	profileRepo   repository.ProfileRepository
	identity      service.IdentityProvider
	tokenService  service.TokenService
	verifyTimeout time.Duration
	logger        *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	ProfileRepo  repository.ProfileRepository
	Identity     service.IdentityProvider
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	verifyTimeout := defaultVerifyTimeout
	if params.Config != nil && params.Config.Identity != nil && params.Config.Identity.VerifyTimeout > 0 {
		verifyTimeout = params.Config.Identity.VerifyTimeout
	}

	return &authService{
		txManager:     params.TxManager,
		profileRepo:   params.ProfileRepo,
		identity:      params.Identity,
		tokenService:  params.TokenService,
		verifyTimeout: verifyTimeout,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// verify checks the credential against the identity provider under a bounded timeout.
func (srv *authService) verify(ctx context.Context, credential string) (*service.Identity, error) {
	verifyCtx, cancel := context.WithTimeout(ctx, srv.verifyTimeout)
	defer cancel()

	identity, err := srv.identity.Verify(verifyCtx, credential)
	if err != nil {
		srv.log(ctx).Warn("Credential verification failed", slog.String("error", err.Error()))

		return nil, domainerrors.ErrInvalidCredentials.Wrap(err)
	}

	return identity, nil
}

// Signup registers a new user: it verifies the credential and stores the
// chosen role and profile in one transaction.
func (srv *authService) Signup(ctx context.Context, input usecase.SignupInput) (*usecase.AuthOutput, error) {
	if !input.Role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role: " + input.Role.String())
	}

	identity, err := srv.verify(ctx, input.Credential)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Starting signup",
		slog.String("identityID", identity.ID),
		slog.Any("role", input.Role),
	)

	if _, err := srv.profileRepo.FindRole(ctx, identity.ID); err == nil {
		return nil, domainerrors.ErrProfileAlreadyExists.WrapMessage("account already registered")
	} else if !errors.Is(err, repository.ErrRoleNotFound) {
		return nil, errors.Wrap(err, "failed to check existing role")
	}

	record := &repository.ProfileRecord{
		IdentityID: identity.ID,
		Role:       input.Role,
		Name:       input.Name,
		Phone:      input.Phone,
		State:      input.State,
		District:   input.District,
	}

	// The role record and the profile blob are written together; a partial
	// signup would leave the session resolver unable to place the user.
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()
		if err := profileRepo.SaveRole(ctx, identity.ID, input.Role); err != nil {
			return errors.Wrap(err, "failed to save role")
		}
		if err := profileRepo.SaveProfile(ctx, record); err != nil {
			return errors.Wrap(err, "failed to save profile")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return srv.buildAuthOutput(ctx, identity, record, input.Role)
}

// Login verifies the credential and resolves the stored role. When the
// client signed in under a different role than the stored one, the login
// fails and the identity's provider sessions are revoked.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	identity, err := srv.verify(ctx, input.Credential)
	if err != nil {
		return nil, err
	}

	role, record, err := srv.resolveRole(ctx, identity)
	if err != nil {
		return nil, err
	}

	if input.Role != "" && input.Role != role {
		srv.log(ctx).Warn("Role mismatch on login",
			slog.String("identityID", identity.ID),
			slog.Any("requested", input.Role),
			slog.Any("resolved", role),
		)
		if revokeErr := srv.identity.Revoke(ctx, identity.ID); revokeErr != nil {
			srv.log(ctx).Error("Failed to revoke sessions after role mismatch",
				slog.String("identityID", identity.ID),
				slog.String("error", revokeErr.Error()),
			)
		}

		return nil, domainerrors.ErrRoleMismatch.WrapMessage("account is not registered under the requested role")
	}

	return srv.buildAuthOutput(ctx, identity, record, role)
}

// Resolve builds the user for an authenticated subject from its token claims.
func (srv *authService) Resolve(ctx context.Context, userID string, role entity.Role) (*entity.User, error) {
	user := &entity.User{ID: userID, Role: role}

	record, err := srv.profileRepo.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return user, nil
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	applyProfile(user, record)

	return user, nil
}

// Profile returns the caller's stored profile.
func (srv *authService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	record, err := srv.profileRepo.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrProfileNotFound.WrapMessage("no profile for this account")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	user := &entity.User{ID: userID, Role: record.Role}
	applyProfile(user, record)

	return user, nil
}

// Logout revokes the identity's provider sessions. Issued access tokens
// expire on their own.
func (srv *authService) Logout(ctx context.Context, userID string) error {
	if err := srv.identity.Revoke(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to revoke sessions")
	}

	srv.log(ctx).Info("User logged out", slog.String("userID", userID))

	return nil
}

// resolveRole determines the user's effective role. The stored role wins;
// the provider's role claim is a fallback for accounts that predate the
// role record; anything else defaults to field officer.
func (srv *authService) resolveRole(ctx context.Context, identity *service.Identity) (entity.Role, *repository.ProfileRecord, error) {
	var record *repository.ProfileRecord
	if found, err := srv.profileRepo.FindProfile(ctx, identity.ID); err == nil {
		record = found
	} else if !errors.Is(err, repository.ErrProfileNotFound) {
		return "", nil, errors.Wrap(err, "failed to load profile")
	}

	role, err := srv.profileRepo.FindRole(ctx, identity.ID)
	if err == nil {
		return role, record, nil
	}
	if !errors.Is(err, repository.ErrRoleNotFound) {
		return "", nil, errors.Wrap(err, "failed to load role")
	}

	if claimed := entity.Role(identity.RoleClaim); claimed.IsValid() {
		return claimed, record, nil
	}

	return entity.RoleFieldOfficer, record, nil
}

func (srv *authService) buildAuthOutput(ctx context.Context, identity *service.Identity, record *repository.ProfileRecord, role entity.Role) (*usecase.AuthOutput, error) {
	token, err := srv.tokenService.GenerateAccessToken(identity.ID, role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	user := &entity.User{
		ID:    identity.ID,
		Name:  identity.Name,
		Email: identity.Email,
		Role:  role,
	}
	if record != nil {
		applyProfile(user, record)
	}

	srv.log(ctx).Info("Session resolved",
		slog.String("userID", user.ID),
		slog.Any("role", role),
	)

	return &usecase.AuthOutput{
		User:        user,
		AccessToken: token,
		LandingPath: authz.LandingPath(role),
	}, nil
}

// applyProfile overlays stored profile fields onto the user. Stored values
// win over identity provider values.
func applyProfile(user *entity.User, record *repository.ProfileRecord) {
	if record.Name != "" {
		user.Name = record.Name
	}
	user.Phone = record.Phone
	user.State = record.State
	user.District = record.District
	if record.Role != "" {
		user.Role = record.Role
	}
}
