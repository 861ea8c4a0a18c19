package service

import (
	"testing"

	"github.com/aussiebroadwan/staffql/internal/staffql/domain"
	"github.com/aussiebroadwan/staffql/internal/staffql/reqctx"
	"github.com/aussiebroadwan/staffql/internal/staffql/store"
	"github.com/aussiebroadwan/staffql/internal/staffql/store/drivers/sqlite"
	"github.com/aussiebroadwan/staffql/pkg/cryptox"
	"github.com/aussiebroadwan/staffql/pkg/jwtx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	testIssuer = "staffql-test"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestTokens(t *testing.T, secret string) *TokenService {
	t.Helper()

	signer, err := jwtx.NewSignerHS256([]byte(secret))
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256([]byte(secret), testIssuer)
	require.NoError(t, err)

	return &TokenService{
		Signer:   signer,
		Verifier: verifier,
		Issuer:   testIssuer,
		TTL:      jwtx.DefaultSessionTTL,
	}
}

func newTestIdentityService(t *testing.T) *IdentityService {
	t.Helper()

	hasher, err := cryptox.NewHasher(cryptox.HasherOptions{Cost: bcrypt.MinCost})
	require.NoError(t, err)

	return &IdentityService{
		Hasher:   hasher,
		Tokens:   newTestTokens(t, testSecret),
		Validate: NewValidator(),
	}
}

func anonymous(s store.Store) *reqctx.Context {
	return reqctx.New(s, nil)
}

func authenticated(s store.Store, id, email string) *reqctx.Context {
	return reqctx.New(s, &domain.Identity{ID: id, Email: email})
}
