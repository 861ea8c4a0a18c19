// Package reqctx builds the per-request context every GraphQL resolver runs
// with: the caller's identity, if any, and the data store handle.
package reqctx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/staffql/internal/staffql/domain"
	"github.com/aussiebroadwan/staffql/internal/staffql/store"
	"github.com/aussiebroadwan/staffql/pkg/httpx"
	"github.com/aussiebroadwan/staffql/pkg/slogx"
)

// AuthorizationHeader carries the session token. The raw token is accepted,
// as is the conventional "Bearer " form.
const AuthorizationHeader = "Authorization"

// TokenVerifier resolves a session token to an identity. It reports false
// for anything that is not a valid token and never fails otherwise.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, bool)
}

// Context is built once per request and is read-only afterwards.
type Context struct {
	identity *domain.Identity
	Store    store.Store
}

// New returns a context for the given identity, which may be nil.
func New(s store.Store, identity *domain.Identity) *Context {
	if identity != nil {
		id := *identity
		identity = &id
	}
	return &Context{identity: identity, Store: s}
}

// Identity returns the authenticated caller and whether there is one.
func (c *Context) Identity() (domain.Identity, bool) {
	if c == nil || c.identity == nil {
		return domain.Identity{}, false
	}
	return *c.identity, true
}

// Authenticated reports whether the request carried a valid token.
func (c *Context) Authenticated() bool {
	_, ok := c.Identity()
	return ok
}

// Builder assembles request contexts.
type Builder struct {
	Tokens TokenVerifier
	Store  store.Store
}

// Build never fails. A missing, malformed, expired or otherwise invalid token
// yields an unauthenticated context.
func (b *Builder) Build(r *http.Request) *Context {
	token := ExtractToken(r.Header.Get(AuthorizationHeader))
	if token == "" || b.Tokens == nil {
		return New(b.Store, nil)
	}

	identity, ok := b.Tokens.Verify(token)
	if !ok {
		return New(b.Store, nil)
	}
	return New(b.Store, &identity)
}

// Middleware builds the context and installs it on the request. Log lines of
// authenticated requests carry the caller's id.
func (b *Builder) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc := b.Build(r)
			ctx := WithContext(r.Context(), rc)
			if id, ok := rc.Identity(); ok {
				ctx = slogx.With(ctx, "user_id", id.ID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken trims the header value and strips an optional "Bearer " scheme.
func ExtractToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		header = strings.TrimSpace(header[7:])
	}
	return header
}

type ctxKey struct{}

// WithContext attaches rc to ctx.
func WithContext(ctx context.Context, rc *Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// FromContext returns the request context installed by Middleware. Without
// one it returns an unauthenticated context with no store.
func FromContext(ctx context.Context) *Context {
	if rc, ok := ctx.Value(ctxKey{}).(*Context); ok && rc != nil {
		return rc
	}
	return New(nil, nil)
}
