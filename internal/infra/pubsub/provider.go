// Package pubsub forwards the events matched in each cycle to the analytics pipeline.
package pubsub

import (
	"context"
	"log/slog"

	"exposure/config"
	"exposure/internal/domain/constants"
	"exposure/internal/domain/service"
	"exposure/internal/errors"

	"go.uber.org/fx"
)

// discardPublisher drops batches when no sink is configured.
type discardPublisher struct {
	logger *slog.Logger
}

func (p *discardPublisher) PublishCycleEvents(_ context.Context, batch *service.CycleEvents) error {
	p.logger.Debug("[PubSub] No sink configured, cycle events discarded",
		slog.String("cycle_id", batch.CycleID),
		slog.Int("event_count", len(batch.Events)),
	)

	return nil
}

func (p *discardPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

type publisherFactory func(ctx context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error)

var factories = map[string]publisherFactory{
	constants.PubSubProviderLocal: func(_ context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("pubsub.localEndpoint is required for the local provider")
		}

		return NewLocalHTTPPublisher(cfg.LocalEndpoint, logger), nil
	},
	constants.PubSubProviderGoogle: func(ctx context.Context, cfg *config.PubSubConfig, logger *slog.Logger) (service.EventPublisher, error) {
		if cfg.ProjectID == "" || cfg.TopicID == "" {
			return nil, errors.New("pubsub.projectId and pubsub.topicId are required for the google provider")
		}

		return NewGooglePubSubPublisher(ctx, cfg.ProjectID, cfg.TopicID, logger)
	},
}

// NewEventPublisher creates the analytics event sink selected by pubsub.provider.
// Without a provider the cycle events are discarded.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	if cfg == nil || cfg.Provider == "" {
		params.Logger.Info("[PubSub] No provider configured, cycle events will not be published")

		return &discardPublisher{logger: params.Logger}, nil
	}

	factory, ok := factories[cfg.Provider]
	if !ok {
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}

	publisher, err := factory(params.Ctx, cfg, params.Logger)
	if err != nil {
		return nil, err
	}

	params.Logger.Info("[PubSub] Cycle event sink ready", slog.String("provider", cfg.Provider))

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			params.Logger.Info("[PubSub] Closing cycle event sink")

			return publisher.Close()
		},
	})

	return publisher, nil
}
