package handler

import (
	"net/http"
	"time"

	"exposure/internal/delivery/api/response"
	"exposure/internal/domain/entity"
	"exposure/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SubscriberHandlerParams holds dependencies for SubscriberHandler, injected by Fx.
type SubscriberHandlerParams struct {
	fx.In

	SubscriptionUC usecase.SubscriptionUsecase
}

// SubscriberHandler serves the simple subscription form.
type SubscriberHandler struct {
	subscriptionUC usecase.SubscriptionUsecase
}

// NewSubscriberHandler is the constructor for SubscriberHandler
func NewSubscriberHandler(params SubscriberHandlerParams) *SubscriberHandler {
	return &SubscriberHandler{subscriptionUC: params.SubscriptionUC}
}

// CreateSubscriberRequest is the simple subscription body. User IDs may be
// strings or integers.
type CreateSubscriberRequest struct {
	NotifyEndpoint   string                  `json:"notify_endpoint" validate:"required"`
	Kind             entity.SubscriptionKind `json:"kind" validate:"required"`
	UserIDs          []entity.UserID         `json:"user_ids" validate:"required"`
	MaxReports       *int                    `json:"max_reports,omitempty"`
	ExpireAt         *time.Time              `json:"expire_at,omitempty"`
	ReachabilityType entity.ReachabilityType `json:"reachability_type,omitempty"`
}

// CreateSubscriberResponse carries the new subscription ID.
type CreateSubscriberResponse struct {
	ID uuid.UUID `json:"id"`
}

// CreateSubscriber registers a webhook for PDN connection or location events.
func (h *SubscriberHandler) CreateSubscriber(c echo.Context) error {
	var req CreateSubscriberRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid subscriber input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	subscription, err := h.subscriptionUC.CreateSubscription(c.Request().Context(), &usecase.CreateSubscriptionInput{
		Kind:             req.Kind,
		ReachabilityType: req.ReachabilityType,
		TargetUsers:      req.UserIDs,
		CallbackEndpoint: req.NotifyEndpoint,
		MaxReports:       req.MaxReports,
		ExpireAt:         req.ExpireAt,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, CreateSubscriberResponse{ID: subscription.ID})
}

// ListSubscribers filters by the kind, status and user_id query parameters.
func (h *SubscriberHandler) ListSubscribers(c echo.Context) error {
	filter := entity.SubscriptionFilter{
		Kind:   entity.SubscriptionKind(c.QueryParam("kind")),
		Status: entity.SubscriptionStatus(c.QueryParam("status")),
		UserID: entity.UserID(c.QueryParam("user_id")),
	}

	subscriptions, err := h.subscriptionUC.ListSubscriptions(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, subscriptions)
}

// GetSubscriber returns one subscription.
func (h *SubscriberHandler) GetSubscriber(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid subscription ID")
	}

	subscription, err := h.subscriptionUC.GetSubscription(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, subscription)
}

// CancelSubscriber stops deliveries and returns the final state.
func (h *SubscriberHandler) CancelSubscriber(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid subscription ID")
	}

	subscription, err := h.subscriptionUC.CancelSubscription(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, subscription)
}
