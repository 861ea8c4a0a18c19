package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/staffql/internal/staffql/reqctx"
	"github.com/aussiebroadwan/staffql/internal/staffql/store"
	"github.com/aussiebroadwan/staffql/pkg/httpx"
	"github.com/aussiebroadwan/staffql/pkg/slogx"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxRequestBytes caps the size of a GraphQL request body.
const MaxRequestBytes = 1 << 20

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	Schema   *graphql.Schema
	Context  *reqctx.Builder
	Gatherer prometheus.Gatherer // nil disables /metrics
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerGraphQL()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerGraphQL() {
	// The request context is built once here, before any resolver runs.
	r.Mux.Handle("POST /graphql",
		httpx.Chain(&relay.Handler{Schema: r.Schema},
			httpx.NoStore(),
			httpx.LimitBody(MaxRequestBytes),
			r.Context.Middleware(),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))

	if r.Gatherer != nil {
		r.Mux.Handle("GET /metrics", promhttp.HandlerFor(r.Gatherer, promhttp.HandlerOpts{}))
	}
}
