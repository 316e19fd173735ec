// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"exposure/internal/domain/entity"
	"exposure/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for subscription persistence.
var (
	// ErrSubscriptionNotFound is returned when a subscription is not found.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrNotDeliverable is returned when a subscription cannot take another report.
	ErrNotDeliverable = errors.New("subscription not deliverable")
)

// SubscriptionRepository is the single source of truth for subscriptions.
// Implementations return copies and make every mutation mutually exclusive
// per subscription.
type SubscriptionRepository interface {
	// Create persists a validated subscription.
	Create(ctx context.Context, subscription *entity.Subscription) error

	// FindByID retrieves a subscription by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Subscription, error)

	// List returns subscriptions passing filter, oldest first.
	List(ctx context.Context, filter entity.SubscriptionFilter) ([]*entity.Subscription, error)

	// Cancel moves an active subscription to Cancelled. Terminal subscriptions are left as they are.
	Cancel(ctx context.Context, id uuid.UUID) (*entity.Subscription, error)

	// AdvanceLifecycle expires or exhausts active subscriptions and returns how many moved.
	AdvanceLifecycle(ctx context.Context, now time.Time) (int, error)

	// ReserveDelivery takes one report slot, returning ErrNotDeliverable when none is left.
	ReserveDelivery(ctx context.Context, id uuid.UUID) (*entity.Subscription, error)

	// RecordDelivery releases a reserved slot, counting it as sent on success.
	RecordDelivery(ctx context.Context, id uuid.UUID, success bool) (*entity.Subscription, error)
}
