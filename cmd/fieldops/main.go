package main

import (
	"context"
	"log/slog"
	"os"

	"fieldops/config"
	"fieldops/internal/delivery"
	"fieldops/internal/delivery/http"
	"fieldops/internal/delivery/http/middleware"
	"fieldops/internal/delivery/http/router/handler"
	"fieldops/internal/domain/constants"
	"fieldops/internal/domain/repository"
	"fieldops/internal/domain/service"
	"fieldops/internal/infra/auth"
	"fieldops/internal/infra/catalog"
	"fieldops/internal/infra/identity/firebase"
	"fieldops/internal/infra/identity/local"
	logs "fieldops/internal/infra/log"
	"fieldops/internal/infra/persistence/memory"
	"fieldops/internal/infra/persistence/postgres"
	"fieldops/internal/infra/pubsub"
	"fieldops/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

type profileStoreParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// newProfileStore selects the profile persistence backend. Without a
// Postgres configuration the in-memory store is used.
func newProfileStore(params profileStoreParams) (repository.ProfileRepository, repository.TransactionManager, error) {
	if params.Config.Postgres == nil {
		store := memory.NewProfileRepository()

		return store, memory.NewTransactionManager(store), nil
	}

	db, err := postgres.New(postgres.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return nil, nil, err
	}

	return postgres.NewProfileRepository(db), postgres.NewTransactionManager(db), nil
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newProfileStore,
			memory.NewMeetingRepository,
			memory.NewSampleRepository,
			memory.NewSaleRepository,
			memory.NewDailyLogRepository,
		),
		fx.Provide(
			func(repo *memory.MeetingRepository) repository.MeetingRepository { return repo },
			func(repo *memory.SampleRepository) repository.SampleRepository { return repo },
			func(repo *memory.SaleRepository) repository.SaleRepository { return repo },
			func(repo *memory.DailyLogRepository) repository.DailyLogRepository { return repo },
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPasswordHasher,
			auth.NewJWTService,
			newIdentityProvider,
			catalog.New,
		),
		pubsub.Module,
	)
}

func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	cost := 0
	if cfg.Auth != nil {
		cost = cfg.Auth.BcryptCost
	}

	return auth.NewBcryptHasher(cost)
}

// newIdentityProvider selects the identity backend. Firebase requires
// explicit configuration; everything else falls back to the in-process
// provider backed by the password hasher.
func newIdentityProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger, hasher service.PasswordHasher) (service.IdentityProvider, error) {
	if cfg.Identity != nil && cfg.Identity.Provider == constants.IdentityProviderFirebase {
		return firebase.NewProvider(ctx, cfg, logger)
	}

	return local.NewProvider(hasher), nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewActivityService,
			impl.NewAnalyticsService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewCredentialHandler,
			handler.NewActivityHandler,
			handler.NewAnalyticsHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
