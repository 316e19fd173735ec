package impl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"exposure/internal/domain/entity"
	domainerrors "exposure/internal/domain/errors"
	"exposure/internal/domain/repository"
	"exposure/internal/errors"
	"exposure/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/fx"
)

type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	validate         *validator.Validate
	now              func() time.Time
}

// SubscriptionServiceParams holds dependencies for SubscriptionService, injected by Fx.
type SubscriptionServiceParams struct {
	fx.In

	SubscriptionRepo repository.SubscriptionRepository
}

// NewSubscriptionService creates a new subscription service instance
func NewSubscriptionService(params SubscriptionServiceParams) usecase.SubscriptionUsecase {
	return newSubscriptionService(params.SubscriptionRepo, time.Now)
}

func newSubscriptionService(repo repository.SubscriptionRepository, now func() time.Time) *subscriptionService {
	return &subscriptionService{
		subscriptionRepo: repo,
		validate:         validator.New(validator.WithRequiredStructEnabled()),
		now:              now,
	}
}

// CreateSubscription validates the input and stores an Active subscription
func (s *subscriptionService) CreateSubscription(ctx context.Context, input *usecase.CreateSubscriptionInput) (*entity.Subscription, error) {
	now := s.now()
	if err := s.validateInput(input, now); err != nil {
		return nil, err
	}

	subscription := &entity.Subscription{
		ID:                   uuid.New(),
		AppID:                input.AppID,
		Kind:                 input.Kind,
		MonitoringType:       input.MonitoringType,
		ReachabilityType:     input.ReachabilityType,
		TargetUsers:          dedupeUsers(input.TargetUsers),
		CallbackEndpoint:     input.CallbackEndpoint,
		MaxReports:           input.MaxReports,
		ExpireAt:             input.ExpireAt,
		MaximumDetectionTime: input.MaximumDetectionTime,
		Status:               entity.StatusActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.subscriptionRepo.Create(ctx, subscription); err != nil {
		return nil, errors.Wrap(err, "failed to create subscription")
	}

	return subscription, nil
}

// GetSubscription returns one subscription
func (s *subscriptionService) GetSubscription(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	subscription, err := s.subscriptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, id, "failed to find subscription")
	}

	return subscription, nil
}

// ListSubscriptions returns the subscriptions passing filter
func (s *subscriptionService) ListSubscriptions(ctx context.Context, filter entity.SubscriptionFilter) ([]*entity.Subscription, error) {
	subscriptions, err := s.subscriptionRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subscriptions")
	}

	return subscriptions, nil
}

// CancelSubscription stops future deliveries
func (s *subscriptionService) CancelSubscription(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	subscription, err := s.subscriptionRepo.Cancel(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, id, "failed to cancel subscription")
	}

	return subscription, nil
}

func (s *subscriptionService) validateInput(input *usecase.CreateSubscriptionInput, now time.Time) error {
	if input == nil {
		return domainerrors.ErrValidationFailed.WithDetails("empty request")
	}

	var problems []string

	if err := s.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return errors.Wrap(err, "validate subscription input")
		}
		for _, fe := range fieldErrs {
			problems = append(problems, describeFieldError(fe))
		}
	}

	switch {
	case !input.Kind.IsValid():
		problems = append(problems, fmt.Sprintf("unsupported kind %q", input.Kind))
	case input.Kind == entity.KindMonitoringEvent && input.MonitoringType != entity.MonitoringTypeLocationReporting:
		problems = append(problems, fmt.Sprintf("unsupported monitoring type %q", input.MonitoringType))
	case input.Kind != entity.KindMonitoringEvent && input.MonitoringType != "":
		problems = append(problems, "monitoring type only applies to MonitoringEvent subscriptions")
	}

	if !input.ReachabilityType.IsValid() {
		problems = append(problems, fmt.Sprintf("unsupported reachability type %q", input.ReachabilityType))
	}

	if input.CallbackEndpoint != "" && !isWebhookURL(input.CallbackEndpoint) {
		problems = append(problems, "callback endpoint must be an absolute http or https URL")
	}

	if input.ExpireAt != nil && !input.ExpireAt.After(now) {
		problems = append(problems, "expiry time must be in the future")
	}

	if len(problems) > 0 {
		return domainerrors.ErrValidationFailed.WithDetails(strings.Join(problems, "; "))
	}

	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Namespace(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Namespace())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag())
	}
}

func isWebhookURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func dedupeUsers(users []entity.UserID) []entity.UserID {
	seen := make(map[entity.UserID]struct{}, len(users))
	out := make([]entity.UserID, 0, len(users))
	for _, user := range users {
		if _, ok := seen[user]; ok {
			continue
		}
		seen[user] = struct{}{}
		out = append(out, user)
	}

	return out
}

func mapNotFound(err error, id uuid.UUID, message string) error {
	if errors.Is(err, repository.ErrSubscriptionNotFound) {
		return domainerrors.ErrSubscriptionNotFound.WithDetails(id.String())
	}

	return errors.Wrap(err, message)
}
