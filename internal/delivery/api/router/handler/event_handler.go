package handler

import (
	"net/http"
	"strconv"

	"exposure/internal/delivery/api/response"
	"exposure/internal/domain/entity"
	domainerrors "exposure/internal/domain/errors"
	"exposure/internal/errors"
	"exposure/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// EventHandlerParams holds dependencies for EventHandler, injected by Fx.
type EventHandlerParams struct {
	fx.In

	PublishUC usecase.PublishUsecase
	EventUC   usecase.EventUsecase
}

// EventHandler triggers evaluation cycles and exposes the event log.
type EventHandler struct {
	publishUC usecase.PublishUsecase
	eventUC   usecase.EventUsecase
}

// NewEventHandler is the constructor for EventHandler
func NewEventHandler(params EventHandlerParams) *EventHandler {
	return &EventHandler{
		publishUC: params.PublishUC,
		eventUC:   params.EventUC,
	}
}

// PublishQueuedResponse is returned when the caller does not wait for the cycle.
type PublishQueuedResponse struct {
	Queued bool `json:"queued"`
}

// Publish queues an immediate cycle. With wait=true the response carries the
// report of the cycle that served the request.
func (h *EventHandler) Publish(c echo.Context) error {
	wait := false
	if raw := c.QueryParam("wait"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_QUERY", "wait must be a boolean")
		}
		wait = parsed
	}

	reports, err := h.publishUC.Trigger()
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if !wait {
		return response.Success(c, http.StatusAccepted, PublishQueuedResponse{Queued: true})
	}

	ctx := c.Request().Context()
	select {
	case report, ok := <-reports:
		if !ok {
			return response.HandleAppError(c, domainerrors.ErrSchedulerStopped)
		}

		return response.Success(c, http.StatusOK, report)
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}

// ListEvents returns the newest matched events first.
func (h *EventHandler) ListEvents(c echo.Context) error {
	filter := entity.EventFilter{
		UserID: entity.UserID(c.QueryParam("user_id")),
		Kind:   entity.SubscriptionKind(c.QueryParam("kind")),
	}

	if raw := c.QueryParam("subscription_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_QUERY", "subscription_id must be a UUID")
		}
		filter.SubscriptionID = id
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return response.BadRequest(c, "INVALID_QUERY", "limit must be a non-negative integer")
		}
		filter.Limit = limit
	}

	events, err := h.eventUC.ListEvents(c.Request().Context(), filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, events)
}
