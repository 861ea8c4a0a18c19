package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	staffgql "github.com/aussiebroadwan/staffql/internal/staffql/graphql"
	httpapi "github.com/aussiebroadwan/staffql/internal/staffql/http"
	"github.com/aussiebroadwan/staffql/internal/staffql/metrics"
	"github.com/aussiebroadwan/staffql/internal/staffql/reqctx"
	"github.com/aussiebroadwan/staffql/internal/staffql/service"
	"github.com/aussiebroadwan/staffql/internal/staffql/store"
	"github.com/aussiebroadwan/staffql/internal/staffql/store/drivers/mongo"
	"github.com/aussiebroadwan/staffql/internal/staffql/store/drivers/sqlite"
	"github.com/aussiebroadwan/staffql/pkg/cryptox"
	"github.com/aussiebroadwan/staffql/pkg/jwtx"
	"github.com/aussiebroadwan/staffql/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application owns the store connection, the services and the HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	tokenService    *service.TokenService
	identityService *service.IdentityService
	employeeService *service.EmployeeService

	server *http.Server
	router *httpapi.Router
}

// New builds the application. It fails when the store is unreachable, so the
// process never starts serving without a database.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "staffql",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.Log.Level,
			Format:  cfg.Log.Format,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("staffql starting",
		"port", app.cfg.HTTP.Port,
		"store", app.cfg.Store.Driver,
		"version", BuildVersion,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests for up to http.shutdowngrace, then
// closes the store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down staffql...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.HTTP.ShutdownGrace)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("staffql stopped")
	return nil
}

// initDatabase connects the configured store driver and applies its
// migrations or indexes.
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.Store.Driver {
	case DriverSQLite:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.Store.File)
		db, err = sqlite.NewStore(dsn, sqlite.WithTimeout(app.cfg.Store.Timeout))
	case DriverMongo:
		db, err = mongo.NewStore(context.Background(), app.cfg.Store.URI, app.cfg.Store.Database,
			mongo.WithTimeout(app.cfg.Store.Timeout))
	default:
		err = fmt.Errorf("unknown store driver %q", app.cfg.Store.Driver)
	}
	if err != nil {
		app.logger.Error("store unreachable", "driver", app.cfg.Store.Driver, "error", err)
		return fmt.Errorf("failed to connect store: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply store migrations: %w", err)
	}

	app.logger.Info("store ready", "driver", app.cfg.Store.Driver)
	return nil
}

// initServices builds the hasher, token service and domain services.
func (app *Application) initServices() error {
	pepper, err := cryptox.LoadOrGeneratePepper(app.cfg.Password.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}

	hasher, err := cryptox.NewHasher(cryptox.HasherOptions{
		Algorithm: app.cfg.Password.Algorithm,
		Cost:      app.cfg.Password.Cost,
		Pepper:    pepper,
	})
	if err != nil {
		return fmt.Errorf("failed to configure password hasher: %w", err)
	}
	if hasher.IsWeak() {
		app.logger.Warn("password hashing cost is below the recommended minimum",
			"algorithm", hasher.Algorithm(), "cost", hasher.Cost())
	}

	secret := app.cfg.Token.Secret
	if secret == "" {
		secret, err = cryptox.GenerateSecret(cryptox.SecretSize256)
		if err != nil {
			return fmt.Errorf("failed to generate token secret: %w", err)
		}
		app.logger.Warn("token.secret not set, using a random secret; tokens will not survive a restart")
	}

	signer, err := jwtx.NewSignerHS256([]byte(secret))
	if err != nil {
		return fmt.Errorf("failed to create token signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256([]byte(secret), app.cfg.Token.Issuer)
	if err != nil {
		return fmt.Errorf("failed to create token verifier: %w", err)
	}

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = metrics.New(app.registry)

	app.tokenService = &service.TokenService{
		Signer:   signer,
		Verifier: verifier,
		Issuer:   app.cfg.Token.Issuer,
		TTL:      app.cfg.Token.TTL,
		Metrics:  app.metrics,
	}
	if app.cfg.Token.TTL == 0 {
		app.logger.Warn("token.ttl is 0, issued tokens never expire")
	}

	validate := service.NewValidator()
	app.identityService = &service.IdentityService{
		Hasher:   hasher,
		Tokens:   app.tokenService,
		Validate: validate,
		Metrics:  app.metrics,
	}
	app.employeeService = &service.EmployeeService{
		RequireIdentity: app.cfg.Authz.Employees,
		Validate:        validate,
	}

	return nil
}

// initHTTP parses the schema and builds the router and server.
func (app *Application) initHTTP() error {
	schema, err := staffgql.NewSchema(&staffgql.Resolver{
		Users:   app.identityService,
		Staff:   app.employeeService,
		Metrics: app.metrics,
	})
	if err != nil {
		return fmt.Errorf("failed to parse graphql schema: %w", err)
	}

	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)
	router.Schema = schema
	router.Context = &reqctx.Builder{Tokens: app.tokenService, Store: app.db}
	router.Gatherer = app.registry
	router.ApplyRoutes()
	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}
