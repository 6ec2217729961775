package main

import (
	"context"
	"log/slog"
	"os"

	"blog/config"
	"blog/internal/delivery"
	"blog/internal/delivery/api"
	"blog/internal/delivery/api/middleware"
	"blog/internal/delivery/api/router/handler"
	"blog/internal/delivery/api/session"
	"blog/internal/domain/repository"
	"blog/internal/domain/validation"
	"blog/internal/errors"
	"blog/internal/infra/auth"
	"blog/internal/infra/auth/google"
	logs "blog/internal/infra/log"
	"blog/internal/infra/persistence/memory"
	"blog/internal/infra/persistence/postgres"
	"blog/internal/usecase/impl"

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
		validation.New,
	)
}

// repositories is the store selected by store.driver.
type repositories struct {
	fx.Out

	UserRepo repository.UserRepository
	PostRepo repository.PostRepository
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newRepositories,
		),
	)
}

func newRepositories(params postgres.Params) (repositories, error) {
	switch params.Config.Store.Driver {
	case config.StoreDriverMemory:
		params.Logger.Warn("Using in-memory store; data is lost on restart")
		store := memory.NewStore()

		return repositories{
			UserRepo: memory.NewUserRepository(store),
			PostRepo: memory.NewPostRepository(store),
		}, nil
	case config.StoreDriverPostgres:
		db, err := postgres.New(params)
		if err != nil {
			return repositories{}, err
		}

		return repositories{
			UserRepo: postgres.NewUserRepository(db),
			PostRepo: postgres.NewPostRepository(db),
		}, nil
	default:
		return repositories{}, errors.Errorf("unknown store driver %q", params.Config.Store.Driver)
	}
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			google.NewOAuthService,
			session.NewManager,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewIdentityResolver,
			impl.NewAuthService,
			impl.NewPostService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewPostHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
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
