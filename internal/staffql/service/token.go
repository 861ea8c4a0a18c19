package service

import (
	"time"

	"github.com/aussiebroadwan/staffql/internal/staffql/domain"
	"github.com/aussiebroadwan/staffql/internal/staffql/metrics"
	"github.com/aussiebroadwan/staffql/pkg/jwtx"
)

// TokenService issues and verifies session tokens. It is stateless, the
// signing secret lives in the injected Signer and Verifier.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration // zero issues tokens without expiry
	Metrics  *metrics.Metrics

	// Now defaults to time.Now.
	Now func() time.Time
}

// Issue signs a token naming the identity.
func (s *TokenService) Issue(id, email string) (string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return s.Signer.Sign(jwtx.NewSessionClaims(id, email, s.Issuer, s.TTL, now()))
}

// Verify resolves a token to the identity it names. Any failure, including an
// empty token, reports false.
func (s *TokenService) Verify(token string) (domain.Identity, bool) {
	if token == "" {
		return domain.Identity{}, false
	}

	claims, err := s.Verifier.Verify(token)
	if err != nil {
		s.Metrics.ObserveRejectedToken()
		return domain.Identity{}, false
	}
	return domain.Identity{ID: claims.Subject, Email: claims.Email}, true
}
