package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"exposure/internal/domain/service"
	"exposure/internal/errors"

	"github.com/cenkalti/backoff/v4"
)

const (
	localSubscription    = "projects/local/subscriptions/exposure-events"
	localPublishAttempts = 3
)

// PushMessage is the body Google Pub/Sub sends to push endpoints. The local
// publisher produces the same shape so the analytics receiver can be
// developed against either.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// localHTTPPublisher pushes each cycle batch straight to an HTTP receiver.
// 5xx answers and transport errors are retried a few times; 4xx are not.
type localHTTPPublisher struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
	newBackOff func() backoff.BackOff
}

// NewLocalHTTPPublisher creates the development sink posting to endpoint.
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return newLocalHTTPPublisher(endpoint, logger, func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = 200 * time.Millisecond
		b.MaxElapsedTime = 0

		return backoff.WithMaxRetries(b, localPublishAttempts-1)
	})
}

func newLocalHTTPPublisher(endpoint string, logger *slog.Logger, newBackOff func() backoff.BackOff) *localHTTPPublisher {
	return &localHTTPPublisher{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		now:        time.Now,
		newBackOff: newBackOff,
	}
}

func (p *localHTTPPublisher) PublishCycleEvents(ctx context.Context, batch *service.CycleEvents) error {
	body, err := p.envelope(batch)
	if err != nil {
		return err
	}

	attempt := 0
	push := func() error {
		attempt++

		return p.push(ctx, body, batch.RequestID)
	}
	notify := func(err error, wait time.Duration) {
		p.logger.Debug("[LocalPubSub] Push failed, retrying",
			slog.String("cycle_id", batch.CycleID),
			slog.Int("attempt", attempt),
			slog.Duration("retry_in", wait),
			slog.Any("error", err),
		)
	}

	if err := backoff.RetryNotify(push, backoff.WithContext(p.newBackOff(), ctx), notify); err != nil {
		return err
	}

	p.logger.Debug("[LocalPubSub] Cycle events pushed",
		slog.String("endpoint", p.endpoint),
		slog.String("cycle_id", batch.CycleID),
		slog.Int("event_count", len(batch.Events)),
		slog.Int("attempts", attempt),
	)

	return nil
}

func (p *localHTTPPublisher) envelope(batch *service.CycleEvents) ([]byte, error) {
	data, err := json.Marshal(batch)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var msg PushMessage
	msg.Subscription = localSubscription
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.MessageID = batch.CycleID
	msg.Message.PublishTime = p.now().UTC().Format(time.RFC3339)
	msg.Message.Attributes = batchAttributes(batch)

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return body, nil
}

func (p *localHTTPPublisher) push(ctx context.Context, body []byte, requestID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(errors.WithStack(err))
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 500:
		return errors.Errorf("push endpoint returned status %d", resp.StatusCode)
	default:
		return backoff.Permanent(errors.Errorf("push endpoint rejected the batch with status %d", resp.StatusCode))
	}
}

// Close is a no-op; the HTTP client holds nothing that needs releasing.
func (p *localHTTPPublisher) Close() error {
	return nil
}
