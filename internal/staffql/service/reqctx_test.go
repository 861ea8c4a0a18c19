package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/staffql/internal/staffql/reqctx"
	"github.com/stretchr/testify/require"
)

func TestRequestContextWithTokenService(t *testing.T) {
	s := newTestStore(t)
	tokens := newTestTokens(t, testSecret)
	builder := &reqctx.Builder{Tokens: tokens, Store: s}

	valid, err := tokens.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	expiring := newTestTokens(t, testSecret)
	expiring.TTL = time.Minute
	expiring.Now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := expiring.Issue("user-1", "a@x.com")
	require.NoError(t, err)

	for name, tc := range map[string]struct {
		header string
		wantID string
	}{
		"no header":     {},
		"garbage":       {header: "garbage"},
		"expired":       {header: expired},
		"raw token":     {header: valid, wantID: "user-1"},
		"bearer prefix": {header: "Bearer " + valid, wantID: "user-1"},
	} {
		t.Run(name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/graphql", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}

			rc := builder.Build(r)
			require.NotNil(t, rc)
			require.Equal(t, s, rc.Store)

			identity, ok := rc.Identity()
			if tc.wantID == "" {
				require.False(t, ok)
				return
			}
			require.True(t, ok)
			require.Equal(t, tc.wantID, identity.ID)
			require.Equal(t, "a@x.com", identity.Email)
		})
	}
}
