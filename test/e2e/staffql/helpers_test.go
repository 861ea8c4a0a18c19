package staffql_test

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/staffql/pkg/idx"
	"github.com/aussiebroadwan/staffql/pkg/staffsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Shared setup for the staffql end-to-end tests. One MongoDB container is
 * started for the whole run and every test gets its own staffql container
 * pointed at a fresh database on it.
 */

const (
	testImageName = "staffql-test:latest"
	mongoImage    = "mongo:7"
	mongoAlias    = "mongo"

	tokenSecret = "e2e-secret-0123456789abcdef0123456789"
)

var (
	stackNetwork *testcontainers.DockerNetwork
	mongoURI     = fmt.Sprintf("mongodb://%s:27017", mongoAlias)
)

// TestMain builds the image and starts MongoDB once for all tests.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()

	fmt.Fprintf(os.Stdout, "Building staffql Docker image...")
	if err := buildDockerImage(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	mongoContainer, err := startMongo(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start MongoDB: %v\n", err)
		cleanupDockerImage(ctx)
		os.Exit(1)
	}

	exitCode := m.Run()

	_ = mongoContainer.Terminate(ctx)
	_ = stackNetwork.Remove(ctx)
	cleanupDockerImage(ctx)

	os.Exit(exitCode)
}

func buildDockerImage(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/staffql/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage(ctx context.Context) {
	_ = exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName).Run()
}

func startMongo(ctx context.Context) (testcontainers.Container, error) {
	net, err := network.New(ctx)
	if err != nil {
		return nil, err
	}
	stackNetwork = net

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:          mongoImage,
			ExposedPorts:   []string{"27017/tcp"},
			Networks:       []string{net.Name},
			NetworkAliases: map[string][]string{net.Name: {mongoAlias}},
			WaitingFor: wait.ForListeningPort("27017/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
}

// setupStaffQL starts a staffql container on its own database and returns a
// client for it. extraEnv overrides the defaults below.
func setupStaffQL(t *testing.T, extraEnv map[string]string) *staffsdk.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	env := map[string]string{
		"STAFFQL_ENV":            "test",
		"STAFFQL_LOG_LEVEL":      "info",
		"STAFFQL_LOG_FORMAT":     "json",
		"STAFFQL_STORE_DRIVER":   "mongo",
		"STAFFQL_STORE_URI":      mongoURI,
		"STAFFQL_STORE_DATABASE": "staffql_" + idx.New(),
		"STAFFQL_TOKEN_SECRET":   tokenSecret,
		"STAFFQL_PASSWORD_COST":  "4",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"8080/tcp"},
			Networks:     []string{stackNetwork.Name},
			Env:          env,
			WaitingFor: wait.ForHTTP("/readyz").
				WithPort("8080/tcp").
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
	port, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	return staffsdk.NewClient(fmt.Sprintf("http://%s:%s", host, port.Port()))
}

// registerUser registers email with password and returns the session.
func registerUser(t *testing.T, client *staffsdk.Client, email, password string) *staffsdk.Session {
	t.Helper()
	session, err := client.Register(t.Context(), staffsdk.RegisterInput{Email: email, Password: password})
	require.NoError(t, err, "register should succeed")
	require.NotEmpty(t, session.Token(), "register should return a token")
	return session
}

// assertCode checks that err is a GraphQL error carrying code.
func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, staffsdk.IsCode(err, code), "expected %s, got: %v", code, err)
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *staffsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
