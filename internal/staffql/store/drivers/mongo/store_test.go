package mongo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/staffql/internal/staffql/store"
	"github.com/aussiebroadwan/staffql/internal/staffql/store/drivers/mongo"
	"github.com/aussiebroadwan/staffql/internal/staffql/store/storetest"
	"github.com/aussiebroadwan/staffql/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const mongoImage = "mongo:7"

// setupMongoContainer starts a throwaway MongoDB and returns its URI.
func setupMongoContainer(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        mongoImage,
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForListeningPort("27017/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	return fmt.Sprintf("mongodb://%s:%s", host, port.Port())
}

func TestStoreContract(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mongo container test in short mode")
	}

	uri := setupMongoContainer(t)

	// One database per subtest keeps them isolated on a shared server.
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := mongo.NewStore(t.Context(), uri, "staffql_"+idx.New())
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, s.ApplyMigrations())
		require.NoError(t, s.ApplyMigrations())
		return s
	})
}

func TestNewStoreFailsWhenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := mongo.NewStore(ctx, "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200", "staffql",
		mongo.WithTimeout(500*time.Millisecond))
	require.Error(t, err)
}
