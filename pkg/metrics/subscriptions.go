package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// SubscriptionMetrics records subscription lifecycle events.
type SubscriptionMetrics struct {
	created     prometheus.Counter
	transitions *prometheus.CounterVec
	deleted     prometheus.Counter
}

// NewSubscriptionMetrics registers the subscription metrics on the provided registerer.
func NewSubscriptionMetrics(reg prometheus.Registerer) *SubscriptionMetrics {
	if reg == nil {
		return &SubscriptionMetrics{}
	}
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "subscriptions_created_total",
		Help: "Subscriptions created successfully.",
	})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "subscription_transitions_total",
		Help: "Subscription lifecycle transitions by action.",
	}, []string{"action"})
	deleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "subscriptions_deleted_total",
		Help: "Subscriptions hard-deleted.",
	})
	reg.MustRegister(created, transitions, deleted)
	return &SubscriptionMetrics{
		created:     created,
		transitions: transitions,
		deleted:     deleted,
	}
}

// IncCreated increments the created counter.
func (m *SubscriptionMetrics) IncCreated() {
	if m == nil || m.created == nil {
		return
	}
	m.created.Inc()
}

// IncTransition increments the transition counter for the given action.
func (m *SubscriptionMetrics) IncTransition(action string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(action)).Inc()
}

// IncDeleted increments the deleted counter.
func (m *SubscriptionMetrics) IncDeleted() {
	if m == nil || m.deleted == nil {
		return
	}
	m.deleted.Inc()
}

func normalizeLabel(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return "unknown"
	}
	return trimmed
}
