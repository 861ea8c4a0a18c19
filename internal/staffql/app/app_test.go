package app

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/staffql/pkg/staffsdk"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func sqliteConfig(t *testing.T) Config {
	t.Helper()

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	dir := t.TempDir()
	cfg.Log.Level = "error"
	cfg.Store.Driver = DriverSQLite
	cfg.Store.File = filepath.Join(dir, "staffql.db")
	cfg.Password.Cost = bcrypt.MinCost
	cfg.Password.PepperFile = filepath.Join(dir, "pepper")
	cfg.Token.Secret = "0123456789abcdef0123456789abcdef"
	return cfg
}

func startApp(t *testing.T, cfg Config) *staffsdk.Client {
	t.Helper()

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown() })

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)
	return staffsdk.NewClient(srv.URL)
}

func TestApplication_ServesGraphQL(t *testing.T) {
	client := startApp(t, sqliteConfig(t))
	ctx := t.Context()

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)

	_, err = client.Register(ctx, staffsdk.RegisterInput{Email: "a@x.com", Password: "pw1"})
	require.NoError(t, err)

	session, err := client.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.NotNil(t, me)
	require.Equal(t, "a@x.com", me.Email)
}

func TestApplication_PepperFileCreated(t *testing.T) {
	cfg := sqliteConfig(t)
	startApp(t, cfg)

	data, err := os.ReadFile(cfg.Password.PepperFile)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestApplication_EmployeeGate(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Authz.Employees = true
	client := startApp(t, cfg)
	ctx := t.Context()

	_, err := client.Anonymous().Employees(ctx, staffsdk.EmployeeFilter{})
	require.True(t, staffsdk.IsCode(err, staffsdk.CodeUnauthenticated), "got %v", err)

	session, err := client.Register(ctx, staffsdk.RegisterInput{Email: "b@x.com", Password: "pw"})
	require.NoError(t, err)

	added, err := session.AddEmployee(ctx, staffsdk.EmployeeInput{FirstName: "Ada", LastName: "Lovelace", Project: "engine"})
	require.NoError(t, err)
	require.NotEmpty(t, added.ID)
}

func TestApplication_TokensSurviveRestartWithSameSecret(t *testing.T) {
	cfg := sqliteConfig(t)

	first, err := New(cfg)
	require.NoError(t, err)
	srv := httptest.NewServer(first.Handler())
	session, err := staffsdk.NewClient(srv.URL).Register(t.Context(), staffsdk.RegisterInput{Email: "c@x.com", Password: "pw"})
	require.NoError(t, err)
	srv.Close()
	require.NoError(t, first.Shutdown())

	client := startApp(t, cfg)
	me, err := client.NewSessionFromToken(session.Token()).Me(t.Context())
	require.NoError(t, err)
	require.NotNil(t, me)
	require.Equal(t, "c@x.com", me.Email)
}

func TestNew_FailsWhenStoreUnreachable(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	cfg.Log.Level = "error"
	cfg.Store.URI = "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200"
	cfg.Store.Timeout = 500 * time.Millisecond

	_, err = New(cfg)
	require.Error(t, err)
}
