package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestSubscriptionMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSubscriptionMetrics(reg)

	m.IncCreated()
	m.IncCreated()
	m.IncTransition("pause")
	m.IncTransition("PAUSE")
	m.IncDeleted()

	assert.Equal(t, 2.0, counterValue(t, m.created))
	assert.Equal(t, 2.0, counterValue(t, m.transitions.WithLabelValues("pause")))
	assert.Equal(t, 1.0, counterValue(t, m.deleted))
}

func TestSubscriptionMetricsNilSafe(t *testing.T) {
	var m *SubscriptionMetrics
	m.IncCreated()
	m.IncTransition("cancel")
	m.IncDeleted()

	empty := NewSubscriptionMetrics(nil)
	empty.IncCreated()
}
