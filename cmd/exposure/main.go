package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"exposure/config"
	"exposure/internal/delivery"
	"exposure/internal/delivery/api"
	"exposure/internal/delivery/api/middleware"
	"exposure/internal/delivery/api/router/handler"
	"exposure/internal/delivery/scheduler"
	"exposure/internal/domain/constants"
	"exposure/internal/domain/repository"
	"exposure/internal/errors"
	"exposure/internal/infra/auth"
	logs "exposure/internal/infra/log"
	"exposure/internal/infra/metrics"
	"exposure/internal/infra/persistence/memory"
	"exposure/internal/infra/persistence/postgres"
	"exposure/internal/infra/pubsub"
	"exposure/internal/infra/snapshot"
	"exposure/internal/infra/webhook"
	"exposure/internal/usecase/impl"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "exposure",
		Short:         "Mobile network exposure subscription and event delivery service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(*cobra.Command, []string) error {
			newApp().Run()

			return nil
		},
	}
	rootCmd.AddCommand(newHashPasswordCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *fx.App {
	return fx.New(
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
	)
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		metrics.New,
	)
}

type storageParams struct {
	fx.In
	fx.Lifecycle

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

type storageResult struct {
	fx.Out

	Subscriptions repository.SubscriptionRepository
	Events        repository.EventRepository
}

// newStorage builds the repositories of the configured storage driver.
func newStorage(params storageParams) (storageResult, error) {
	switch params.Config.Storage.Driver {
	case constants.StorageDriverMemory:
		return storageResult{
			Subscriptions: memory.NewSubscriptionRepository(),
			Events:        memory.NewEventRepository(params.Config),
		}, nil

	case constants.StorageDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
			Metrics:   params.Metrics,
		})
		if err != nil {
			return storageResult{}, err
		}

		return storageResult{
			Subscriptions: postgres.NewSubscriptionRepository(db),
			Events:        postgres.NewEventRepository(db),
		}, nil

	default:
		return storageResult{}, errors.Errorf("unsupported storage driver %q", params.Config.Storage.Driver)
	}
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newStorage,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			webhook.NewHTTPSender,
			snapshot.NewHTTPProvider,
			pubsub.NewEventPublisher,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSubscriptionService,
			impl.NewDeliveryService,
			impl.NewPublishScheduler,
			impl.NewEventService,
			impl.NewAuthService,
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
			handler.NewSubscriberHandler,
			handler.NewMonitoringHandler,
			handler.NewEventHandler,
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
			fx.Annotate(
				scheduler.NewRunner,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startServer launches every delivery once the other start hooks, such as
// the database migration, have run.
func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, d := range params.Deliveries {
				go func() {
					if err := d.Serve(ctx); err != nil {
						params.Logger.Error("Delivery stopped", slog.Any("error", err))
						os.Exit(1)
					}
				}()
			}

			return nil
		},
	})
}
