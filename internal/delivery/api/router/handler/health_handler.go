package handler

import (
	"net/http"

	"exposure/internal/delivery/api/response"
	"exposure/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

// MetricsHandler exposes the Prometheus registry of m.
func MetricsHandler(m *metrics.Metrics) echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{
		Registry: m.Registry,
	}))
}
