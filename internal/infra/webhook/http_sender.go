// Package webhook posts events to subscriber callback endpoints.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"exposure/internal/domain/entity"
	"exposure/internal/domain/service"
	"exposure/internal/errors"
)

// maxDrainBytes bounds how much of a response body is read to reuse the connection.
const maxDrainBytes = 4 << 10

type httpSender struct {
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// NewHTTPSender creates a WebhookSender backed by a shared http.Client.
// Per-request deadlines come from the caller's context.
func NewHTTPSender(logger *slog.Logger) service.WebhookSender {
	return newHTTPSender(&http.Client{}, logger)
}

func newHTTPSender(client *http.Client, logger *slog.Logger) *httpSender {
	return &httpSender{
		httpClient: client,
		userAgent:  "exposure-webhook/1.0",
		logger:     logger,
	}
}

// Send POSTs event as JSON to endpoint. Any 2xx answer is a success.
func (s *httpSender) Send(ctx context.Context, endpoint string, event *entity.Event) (*service.WebhookResponse, error) {
	target, err := url.Parse(endpoint)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return nil, errors.Wrapf(service.ErrInvalidEndpoint, "endpoint %q", endpoint)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(service.ErrInvalidEndpoint, "build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("X-Event-Id", event.ID.String())
	req.Header.Set("X-Subscription-Id", event.SubscriptionID.String())

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	result := &service.WebhookResponse{StatusCode: resp.StatusCode}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return result, errors.Errorf("webhook returned non-success status: %d", resp.StatusCode)
	}

	s.logger.Debug("[Webhook] Event posted",
		slog.String("endpoint", endpoint),
		slog.String("event_id", event.ID.String()),
		slog.Int("status", resp.StatusCode),
	)

	return result, nil
}
