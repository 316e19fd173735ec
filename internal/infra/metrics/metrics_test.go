package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersInstruments(t *testing.T) {
	m := New()

	m.CyclesTotal.WithLabelValues(CycleOK).Inc()
	m.DeliveriesTotal.WithLabelValues("delivered").Add(2)
	m.DeliveryAttempts.Inc()

	assert.InDelta(t, 1, testutil.ToFloat64(m.CyclesTotal.WithLabelValues(CycleOK)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.DeliveriesTotal.WithLabelValues("delivered")), 0)

	families, err := m.Registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["exposure_cycles_total"])
	assert.True(t, names["exposure_delivery_attempts_total"])
	assert.True(t, names["go_goroutines"])
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
