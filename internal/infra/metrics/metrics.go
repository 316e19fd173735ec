// Package metrics holds the Prometheus instruments of the exposure engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Cycle results.
const (
	CycleOK      = "ok"
	CycleSkipped = "skipped"
	CycleFailed  = "failed"
)

// Metrics groups the instruments updated by the scheduler and the delivery engine.
type Metrics struct {
	Registry *prometheus.Registry

	CyclesTotal         *prometheus.CounterVec
	EventsMatchedTotal  *prometheus.CounterVec
	DeliveriesTotal     *prometheus.CounterVec
	DeliveryAttempts    prometheus.Counter
	DeliveriesInFlight  prometheus.Gauge
	DeliveryDuration    prometheus.Histogram
	SubscriptionsActive prometheus.Gauge

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New builds the instruments and registers them on a private registry,
// together with the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		CyclesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exposure_cycles_total",
				Help: "Total number of evaluation cycles by result",
			},
			[]string{"result"},
		),
		EventsMatchedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exposure_events_matched_total",
				Help: "Total number of events produced by the matcher",
			},
			[]string{"kind"},
		),
		DeliveriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exposure_deliveries_total",
				Help: "Total number of resolved deliveries by outcome",
			},
			[]string{"outcome"},
		),
		DeliveryAttempts: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "exposure_delivery_attempts_total",
				Help: "Total number of webhook requests sent",
			},
		),
		DeliveriesInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "exposure_deliveries_in_flight",
				Help: "Number of deliveries not yet resolved",
			},
		),
		DeliveryDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "exposure_delivery_duration_seconds",
				Help:    "Time from dispatch to resolution of a delivery",
				Buckets: prometheus.DefBuckets,
			},
		),
		SubscriptionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "exposure_subscriptions_active",
				Help: "Number of active subscriptions seen by the last cycle",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exposure_http_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "exposure_http_request_duration_seconds",
				Help:    "API request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	m.Registry.MustRegister(
		m.CyclesTotal,
		m.EventsMatchedTotal,
		m.DeliveriesTotal,
		m.DeliveryAttempts,
		m.DeliveriesInFlight,
		m.DeliveryDuration,
		m.SubscriptionsActive,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}
