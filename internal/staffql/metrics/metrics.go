// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Authentication outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeUnknownUser   = "unknown_user"
	OutcomeWrongPassword = "wrong_password"
	OutcomeDuplicate     = "duplicate"
	OutcomeError         = "error"
)

type Metrics struct {
	// Operations counts executed GraphQL operations by type and result.
	Operations *prometheus.CounterVec

	// Auth counts register/login attempts by flow and outcome.
	Auth *prometheus.CounterVec

	// TokensRejected counts presented tokens that failed verification.
	TokensRejected prometheus.Counter
}

// New creates the collectors and registers them with reg. A nil reg skips
// registration, which keeps tests independent of the global registry.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "staffql",
			Name:      "graphql_operations_total",
			Help:      "GraphQL operations executed, by operation type and result.",
		}, []string{"operation", "result"}),
		Auth: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "staffql",
			Name:      "auth_attempts_total",
			Help:      "Register and login attempts, by flow and outcome.",
		}, []string{"flow", "outcome"}),
		TokensRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "staffql",
			Name:      "tokens_rejected_total",
			Help:      "Presented session tokens that failed verification.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Operations, m.Auth, m.TokensRejected)
	}
	return m
}

// ObserveAuth is a no-op on a nil receiver.
func (m *Metrics) ObserveAuth(flow, outcome string) {
	if m == nil {
		return
	}
	m.Auth.WithLabelValues(flow, outcome).Inc()
}

// ObserveOperation is a no-op on a nil receiver.
func (m *Metrics) ObserveOperation(operation string, failed bool) {
	if m == nil {
		return
	}
	result := "ok"
	if failed {
		result = "error"
	}
	m.Operations.WithLabelValues(operation, result).Inc()
}

// ObserveRejectedToken is a no-op on a nil receiver.
func (m *Metrics) ObserveRejectedToken() {
	if m == nil {
		return
	}
	m.TokensRejected.Inc()
}
