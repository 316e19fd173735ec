// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"exposure/internal/delivery/api/middleware"
	"exposure/internal/delivery/api/router/handler"
	"exposure/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	SubscriberHandler *handler.SubscriberHandler
	MonitoringHandler *handler.MonitoringHandler
	EventHandler      *handler.EventHandler
	AuthMiddleware    *middleware.AuthMiddleware
	Metrics           *metrics.Metrics
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	subscriberHandler *handler.SubscriberHandler
	monitoringHandler *handler.MonitoringHandler
	eventHandler      *handler.EventHandler
	authMiddleware    *middleware.AuthMiddleware
	metrics           *metrics.Metrics
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		subscriberHandler: params.SubscriberHandler,
		monitoringHandler: params.MonitoringHandler,
		eventHandler:      params.EventHandler,
		authMiddleware:    params.AuthMiddleware,
		metrics:           params.Metrics,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler(r.metrics))

	e.POST("/api/v1/login/access-token", r.authHandler.Login)

	// Simple form, open to the local network
	exposure := e.Group("/mobile_network_exposure")
	{
		exposure.POST("/subscribers", r.subscriberHandler.CreateSubscriber)
		exposure.GET("/subscribers", r.subscriberHandler.ListSubscribers)
		exposure.GET("/subscribers/:id", r.subscriberHandler.GetSubscriber)
		exposure.DELETE("/subscribers/:id", r.subscriberHandler.CancelSubscriber)
		exposure.POST("/events/publish", r.eventHandler.Publish)
		exposure.GET("/events", r.eventHandler.ListEvents)
	}

	// 3GPP monitoring event API, bearer tokens when auth is enabled
	monitoring := e.Group(handler.MonitoringPathPrefix+"/:scsAsId/subscriptions", r.authMiddleware.Authenticate)
	{
		monitoring.POST("", r.monitoringHandler.Create)
		monitoring.GET("", r.monitoringHandler.List)
		monitoring.GET("/:subscriptionId", r.monitoringHandler.Get)
		monitoring.DELETE("/:subscriptionId", r.monitoringHandler.Delete)
	}
}
