package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"exposure/internal/domain/service"
	"exposure/internal/errors"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
)

// googlePubSubPublisher sends one message per cycle. Publish results are
// awaited in the background so a slow topic never holds the cycle; Close
// waits for them before stopping the publisher.
type googlePubSubPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
	pending   sync.WaitGroup
}

// NewGooglePubSubPublisher connects to projectID and checks that topicID exists.
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Pub/Sub client")
	}

	topicPath := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topicPath}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "cycle event topic %s is not reachable", topicPath)
	}

	logger.Info("[GooglePubSub] Cycle event topic ready", slog.String("topic", topicPath))

	return &googlePubSubPublisher{
		client:    client,
		publisher: client.Publisher(topicID),
		logger:    logger,
	}, nil
}

func (p *googlePubSubPublisher) PublishCycleEvents(ctx context.Context, batch *service.CycleEvents) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return errors.WithStack(err)
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: batchAttributes(batch),
	})

	p.pending.Add(1)
	go func() {
		defer p.pending.Done()

		// the cycle context may already be gone when the server answers
		serverID, err := result.Get(context.WithoutCancel(ctx))
		if err != nil {
			p.logger.Error("[GooglePubSub] Cycle events were not published",
				slog.String("cycle_id", batch.CycleID),
				slog.Int("event_count", len(batch.Events)),
				slog.Any("error", err),
			)

			return
		}

		p.logger.Debug("[GooglePubSub] Cycle events published",
			slog.String("cycle_id", batch.CycleID),
			slog.String("message_id", serverID),
		)
	}()

	return nil
}

func (p *googlePubSubPublisher) Close() error {
	p.publisher.Stop()
	p.pending.Wait()

	return errors.WithStack(p.client.Close())
}

// batchAttributes are the message attributes used for filtering and tracing.
func batchAttributes(batch *service.CycleEvents) map[string]string {
	attributes := map[string]string{
		"cycle_id":    batch.CycleID,
		"event_count": strconv.Itoa(len(batch.Events)),
	}
	if batch.RequestID != "" {
		attributes["request_id"] = batch.RequestID
	}

	return attributes
}
