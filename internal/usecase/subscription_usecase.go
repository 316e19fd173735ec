// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"exposure/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateSubscriptionInput is the merged form of the simple and the 3GPP
// monitoring subscription requests.
type CreateSubscriptionInput struct {
	AppID                string
	Kind                 entity.SubscriptionKind
	MonitoringType       entity.MonitoringType
	ReachabilityType     entity.ReachabilityType
	TargetUsers          []entity.UserID `validate:"required,min=1,dive,required"`
	CallbackEndpoint     string          `validate:"required,url"`
	MaxReports           *int            `validate:"omitempty,min=1"`
	ExpireAt             *time.Time
	MaximumDetectionTime *int `validate:"omitempty,min=1"`
}

// SubscriptionUsecase manages the subscription lifecycle on behalf of clients.
type SubscriptionUsecase interface {
	// CreateSubscription validates the input and stores an Active subscription.
	CreateSubscription(ctx context.Context, input *CreateSubscriptionInput) (*entity.Subscription, error)

	// GetSubscription returns one subscription.
	GetSubscription(ctx context.Context, id uuid.UUID) (*entity.Subscription, error)

	// ListSubscriptions returns the subscriptions passing filter.
	ListSubscriptions(ctx context.Context, filter entity.SubscriptionFilter) ([]*entity.Subscription, error)

	// CancelSubscription stops future deliveries. Cancelling twice is not an error.
	CancelSubscription(ctx context.Context, id uuid.UUID) (*entity.Subscription, error)
}
