package service

import (
	"context"

	"exposure/internal/domain/entity"
	"exposure/internal/errors"
)

// ErrInvalidEndpoint marks a callback endpoint that can never be reached,
// such as a malformed URL. Deliveries failing with it are not retried.
var ErrInvalidEndpoint = errors.New("invalid callback endpoint")

// WebhookResponse is what the subscriber's endpoint answered.
type WebhookResponse struct {
	StatusCode int
}

// WebhookSender performs a single webhook POST. It returns an error for
// transport failures and non-2xx answers; retrying is the caller's concern.
type WebhookSender interface {
	Send(ctx context.Context, endpoint string, event *entity.Event) (*WebhookResponse, error)
}
