package handler

import (
	"net/http"
	"strings"
	"time"

	"exposure/internal/delivery/api/response"
	"exposure/internal/domain/entity"
	domainerrors "exposure/internal/domain/errors"
	"exposure/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// MonitoringPathPrefix is the mount point of the 3GPP monitoring event API.
const MonitoringPathPrefix = "/nef/api/v1/3gpp-monitoring-event/v1"

// MonitoringHandlerParams holds dependencies for MonitoringHandler, injected by Fx.
type MonitoringHandlerParams struct {
	fx.In

	SubscriptionUC usecase.SubscriptionUsecase
}

// MonitoringHandler serves the 3GPP MonitoringEvent subscription resource.
type MonitoringHandler struct {
	subscriptionUC usecase.SubscriptionUsecase
}

// NewMonitoringHandler is the constructor for MonitoringHandler
func NewMonitoringHandler(params MonitoringHandlerParams) *MonitoringHandler {
	return &MonitoringHandler{subscriptionUC: params.SubscriptionUC}
}

// MonitoringEventSubscription is the 3GPP TS 29.122 resource, limited to the
// attributes this engine acts on.
type MonitoringEventSubscription struct {
	Self                    string                    `json:"self,omitempty"`
	ExternalID              string                    `json:"externalId,omitempty" validate:"required_without=Msisdn"`
	Msisdn                  string                    `json:"msisdn,omitempty" validate:"required_without=ExternalID"`
	NotificationDestination string                    `json:"notificationDestination" validate:"required"`
	MonitoringType          entity.MonitoringType     `json:"monitoringType" validate:"required"`
	MaximumNumberOfReports  *int                      `json:"maximumNumberOfReports,omitempty"`
	MonitorExpireTime       *time.Time                `json:"monitorExpireTime,omitempty"`
	MaximumDetectionTime    *int                      `json:"maximumDetectionTime,omitempty"`
	ReachabilityType        entity.ReachabilityType   `json:"reachabilityType,omitempty"`
	Status                  entity.SubscriptionStatus `json:"status,omitempty"`
	ReportsSent             int                       `json:"numberOfReportsSent"`
}

// Create registers a MonitoringEvent subscription for the application in the path.
func (h *MonitoringHandler) Create(c echo.Context) error {
	var req MonitoringEventSubscription
	if err := c.Bind(&req); err != nil {
		return response.Problem(c, http.StatusBadRequest, "INVALID_MSG_FORMAT", "request body is not a MonitoringEventSubscription")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleProblem(c, err)
	}

	user := req.ExternalID
	if user == "" {
		user = req.Msisdn
	}

	subscription, err := h.subscriptionUC.CreateSubscription(c.Request().Context(), &usecase.CreateSubscriptionInput{
		AppID:                c.Param("scsAsId"),
		Kind:                 entity.KindMonitoringEvent,
		MonitoringType:       req.MonitoringType,
		ReachabilityType:     req.ReachabilityType,
		TargetUsers:          []entity.UserID{entity.UserID(user)},
		CallbackEndpoint:     req.NotificationDestination,
		MaxReports:           req.MaximumNumberOfReports,
		ExpireAt:             req.MonitorExpireTime,
		MaximumDetectionTime: req.MaximumDetectionTime,
	})
	if err != nil {
		return response.HandleProblem(c, err)
	}

	resource := toMonitoringResource(c, subscription)
	c.Response().Header().Set(echo.HeaderLocation, resource.Self)

	return c.JSON(http.StatusCreated, resource)
}

// List returns every MonitoringEvent subscription of the application.
func (h *MonitoringHandler) List(c echo.Context) error {
	subscriptions, err := h.subscriptionUC.ListSubscriptions(c.Request().Context(), entity.SubscriptionFilter{
		Kind:  entity.KindMonitoringEvent,
		AppID: c.Param("scsAsId"),
	})
	if err != nil {
		return response.HandleProblem(c, err)
	}

	resources := make([]MonitoringEventSubscription, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		resources = append(resources, toMonitoringResource(c, subscription))
	}

	return c.JSON(http.StatusOK, resources)
}

// Get returns one subscription owned by the application.
func (h *MonitoringHandler) Get(c echo.Context) error {
	subscription, err := h.owned(c)
	if err != nil {
		return response.HandleProblem(c, err)
	}

	return c.JSON(http.StatusOK, toMonitoringResource(c, subscription))
}

// Delete cancels a subscription owned by the application.
func (h *MonitoringHandler) Delete(c echo.Context) error {
	subscription, err := h.owned(c)
	if err != nil {
		return response.HandleProblem(c, err)
	}

	if _, err := h.subscriptionUC.CancelSubscription(c.Request().Context(), subscription.ID); err != nil {
		return response.HandleProblem(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// owned loads the subscription in the path and hides those of other applications.
func (h *MonitoringHandler) owned(c echo.Context) (*entity.Subscription, error) {
	raw := c.Param("subscriptionId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domainerrors.ErrSubscriptionNotFound.WithDetails(raw)
	}

	subscription, err := h.subscriptionUC.GetSubscription(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}

	if subscription.Kind != entity.KindMonitoringEvent || subscription.AppID != c.Param("scsAsId") {
		return nil, domainerrors.ErrSubscriptionNotFound.WithDetails(raw)
	}

	return subscription, nil
}

func toMonitoringResource(c echo.Context, s *entity.Subscription) MonitoringEventSubscription {
	resource := MonitoringEventSubscription{
		Self: c.Scheme() + "://" + c.Request().Host + MonitoringPathPrefix + "/" +
			c.Param("scsAsId") + "/subscriptions/" + s.ID.String(),
		NotificationDestination: s.CallbackEndpoint,
		MonitoringType:          s.MonitoringType,
		MaximumNumberOfReports:  s.MaxReports,
		MonitorExpireTime:       s.ExpireAt,
		MaximumDetectionTime:    s.MaximumDetectionTime,
		ReachabilityType:        s.ReachabilityType,
		Status:                  s.Status,
		ReportsSent:             s.ReportsSent,
	}

	if len(s.TargetUsers) > 0 {
		// external identifiers have the username@realm form, MSISDNs are digits
		user := s.TargetUsers[0].String()
		if strings.Contains(user, "@") {
			resource.ExternalID = user
		} else {
			resource.Msisdn = user
		}
	}

	return resource
}
