package staffql_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLivezEndpoint verifies the liveness check.
func TestLivezEndpoint(t *testing.T) {
	client := setupStaffQL(t, nil)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
}

// TestReadyzEndpoint verifies readiness reports the database as reachable.
func TestReadyzEndpoint(t *testing.T) {
	client := setupStaffQL(t, nil)

	health, err := client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}
