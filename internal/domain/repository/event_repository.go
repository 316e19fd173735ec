package repository

import (
	"context"

	"exposure/internal/domain/entity"
)

// EventRepository keeps the matched events for later inspection.
type EventRepository interface {
	// Append stores events in match order.
	Append(ctx context.Context, events []*entity.Event) error

	// List returns the most recent events passing filter, newest first.
	List(ctx context.Context, filter entity.EventFilter) ([]*entity.Event, error)
}
