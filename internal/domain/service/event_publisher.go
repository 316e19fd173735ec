package service

import (
	"context"

	"exposure/internal/domain/entity"
)

// CycleEvents is the batch of events matched in one evaluation cycle.
type CycleEvents struct {
	RequestID string          `json:"request_id,omitempty"` // For distributed tracing
	CycleID   string          `json:"cycle_id"`
	Timestamp string          `json:"timestamp"`
	Events    []*entity.Event `json:"events"`
}

// EventPublisher forwards matched events to the analytics pipeline.
type EventPublisher interface {
	// PublishCycleEvents publishes the events of one cycle
	PublishCycleEvents(ctx context.Context, batch *CycleEvents) error

	// Close releases any resources held by the publisher
	Close() error
}
