package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveAuth("login", OutcomeSuccess)
	m.ObserveAuth("login", OutcomeSuccess)
	m.ObserveAuth("login", OutcomeWrongPassword)
	m.ObserveOperation("mutation", false)
	m.ObserveOperation("query", true)
	m.ObserveRejectedToken()

	require.Equal(t, 2.0, testutil.ToFloat64(m.Auth.WithLabelValues("login", OutcomeSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Auth.WithLabelValues("login", OutcomeWrongPassword)))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("query", "error")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.TokensRejected))

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	require.Equal(t, 5, n)
}

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveAuth("register", OutcomeError)
		m.ObserveOperation("query", false)
		m.ObserveRejectedToken()
	})
}
