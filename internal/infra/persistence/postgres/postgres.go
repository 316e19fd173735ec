package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"exposure/config"
	"exposure/internal/domain/lifecycle"
	"exposure/internal/errors"
	"exposure/internal/infra/metrics"
	"exposure/internal/infra/persistence/model"

	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// New opens the PostgreSQL connection pool and ties it to the fx lifecycle.
func New(params Params) (*gorm.DB, error) {
	cfg := params.Config.Postgres
	if cfg == nil {
		return nil, errors.New("postgres configuration is required for the postgres storage driver")
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		// Every repository write is a single statement, so GORM's implicit
		// per-statement transaction is redundant.
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}
	configurePool(sqlDB, cfg)

	if params.Metrics != nil {
		params.Metrics.Registry.MustRegister(collectors.NewDBStatsCollector(sqlDB, cfg.Database))
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			if cfg.AutoMigrate {
				if err := db.WithContext(ctx).AutoMigrate(&model.SubscriptionModel{}, &model.EventModel{}); err != nil {
					return errors.Wrap(err, "failed to migrate PostgreSQL schema")
				}
			}

			params.Logger.Info("[Postgres] Connected",
				slog.String("host", cfg.Host),
				slog.String("database", cfg.Database),
				slog.Bool("migrated", cfg.AutoMigrate),
			)

			return nil
		},
		OnStop: func(_ context.Context) error {
			return errors.WithStack(sqlDB.Close())
		},
	})

	return db, nil
}

func configurePool(sqlDB *sql.DB, cfg *config.PostgresConfig) {
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}
