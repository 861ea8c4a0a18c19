package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/staffql/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "staffql"

var (
	exampleSecret = []byte("0123456789abcdef0123456789abcdef")
	otherSecret   = []byte("fedcba9876543210fedcba9876543210")
)

func newPair(t *testing.T, secret []byte) (*jwtx.HS256Signer, *jwtx.HS256Verifier) {
	t.Helper()
	signer, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(secret, exampleIssuer)
	require.NoError(t, err)
	return signer, verifier
}

func TestHS256_RejectsWeakSecret(t *testing.T) {
	_, err := jwtx.NewSignerHS256([]byte("mysecret"))
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)

	_, err = jwtx.NewVerifierHS256(nil, exampleIssuer)
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestHS256SignAndVerify(t *testing.T) {
	signer, verifier := newPair(t, exampleSecret)
	require.Equal(t, "HS256", signer.Alg())

	claims := jwtx.NewSessionClaims("user-789", "user@example.com", exampleIssuer, 10*time.Minute, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3)

	parsed, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-789", parsed.Subject)
	require.Equal(t, "user@example.com", parsed.Email)
	require.Equal(t, claims.ID, parsed.ID)
}

func TestHS256Verify_Failures(t *testing.T) {
	signer, verifier := newPair(t, exampleSecret)
	otherSigner, _ := newPair(t, otherSecret)
	now := time.Now().UTC()

	valid, err := signer.Sign(jwtx.NewSessionClaims("user-1", "a@x.com", exampleIssuer, time.Hour, now))
	require.NoError(t, err)

	foreign, err := otherSigner.Sign(jwtx.NewSessionClaims("user-1", "a@x.com", exampleIssuer, time.Hour, now))
	require.NoError(t, err)

	expired, err := signer.Sign(jwtx.NewSessionClaims("user-1", "a@x.com", exampleIssuer, time.Minute, now.Add(-time.Hour)))
	require.NoError(t, err)

	wrongIssuer, err := signer.Sign(jwtx.NewSessionClaims("user-1", "a@x.com", "someone-else", time.Hour, now))
	require.NoError(t, err)

	noSubject, err := signer.Sign(jwtx.NewSessionClaims("", "a@x.com", exampleIssuer, time.Hour, now))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone,
		jwtx.NewSessionClaims("user-1", "a@x.com", exampleIssuer, time.Hour, now),
	).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	tamperedClaims, err := signer.Sign(jwtx.NewSessionClaims("admin", "a@x.com", exampleIssuer, time.Hour, now))
	require.NoError(t, err)
	tampered := parts[0] + "." + strings.Split(tamperedClaims, ".")[1] + "." + parts[2]

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"empty", "", jwtx.ErrMalformed},
		{"garbage", "not-a-token", jwtx.ErrMalformed},
		{"truncated", valid[:len(valid)-5], nil},
		{"signed with different key", foreign, jwtx.ErrInvalidSig},
		{"tampered claims", tampered, jwtx.ErrInvalidSig},
		{"alg none", unsigned, nil},
		{"expired", expired, jwtx.ErrExpired},
		{"wrong issuer", wrongIssuer, jwtx.ErrIssuer},
		{"missing subject", noSubject, jwtx.ErrInvalidClaim},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.token)
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestHS256Verify_WithClock(t *testing.T) {
	signer, verifier := newPair(t, exampleSecret)
	now := time.Now().UTC()

	token, err := signer.Sign(jwtx.NewSessionClaims("user-1", "a@x.com", exampleIssuer, time.Minute, now))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.NoError(t, err)

	later := verifier.WithClock(func() time.Time { return now.Add(time.Hour) })
	_, err = later.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}
