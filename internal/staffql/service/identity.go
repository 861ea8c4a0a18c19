package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/staffql/internal/staffql/domain"
	"github.com/aussiebroadwan/staffql/internal/staffql/metrics"
	"github.com/aussiebroadwan/staffql/internal/staffql/reqctx"
	"github.com/aussiebroadwan/staffql/internal/staffql/store"
	"github.com/aussiebroadwan/staffql/pkg/cryptox"
	"github.com/aussiebroadwan/staffql/pkg/slogx"
	"github.com/go-playground/validator/v10"
)

type RegisterInput struct {
	Email      string `validate:"required"`
	Password   string `validate:"required"`
	UserName   string
	Position   string
	Experience string
}

type LoginInput struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// Session is returned by a successful register or login. It never carries
// the password hash.
type Session struct {
	Token      string
	Email      string
	UserName   string
	Position   string
	Experience string
}

type IdentityService struct {
	Hasher   *cryptox.Hasher
	Tokens   *TokenService
	Validate *validator.Validate
	Metrics  *metrics.Metrics
}

// Register hashes the password, persists the identity and issues a token for
// it, strictly in that order.
func (s *IdentityService) Register(ctx context.Context, rc *reqctx.Context, in RegisterInput) (Session, error) {
	l := slogx.FromContext(ctx)

	if err := validateInput(s.Validate, in); err != nil {
		return Session{}, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		s.Metrics.ObserveAuth("register", metrics.OutcomeError)
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := rc.Store.Users().CreateUser(ctx, domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		UserName:     in.UserName,
		Position:     in.Position,
		Experience:   in.Experience,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			s.Metrics.ObserveAuth("register", metrics.OutcomeDuplicate)
			return Session{}, ErrDuplicateIdentity
		}
		s.Metrics.ObserveAuth("register", metrics.OutcomeError)
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	token, err := s.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.Metrics.ObserveAuth("register", metrics.OutcomeError)
		return Session{}, fmt.Errorf("issue token: %w", err)
	}

	l.Info("user registered", slog.String("user_id", user.ID))
	s.Metrics.ObserveAuth("register", metrics.OutcomeSuccess)

	return Session{
		Token:      token,
		Email:      user.Email,
		UserName:   user.UserName,
		Position:   user.Position,
		Experience: user.Experience,
	}, nil
}

// Login checks the credentials and issues a token. An unknown email is
// ErrNotFound and a wrong password is ErrAuthentication.
func (s *IdentityService) Login(ctx context.Context, rc *reqctx.Context, in LoginInput) (Session, error) {
	l := slogx.FromContext(ctx)

	if err := validateInput(s.Validate, in); err != nil {
		return Session{}, err
	}

	user, err := rc.Store.Users().GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Metrics.ObserveAuth("login", metrics.OutcomeUnknownUser)
			return Session{}, ErrNotFound
		}
		s.Metrics.ObserveAuth("login", metrics.OutcomeError)
		return Session{}, fmt.Errorf("lookup user: %w", err)
	}

	if !s.Hasher.Verify(in.Password, user.PasswordHash) {
		l.Info("login failed", slog.String("user_id", user.ID))
		s.Metrics.ObserveAuth("login", metrics.OutcomeWrongPassword)
		return Session{}, ErrAuthentication
	}

	token, err := s.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.Metrics.ObserveAuth("login", metrics.OutcomeError)
		return Session{}, fmt.Errorf("issue token: %w", err)
	}

	s.Metrics.ObserveAuth("login", metrics.OutcomeSuccess)
	return Session{Token: token, Email: user.Email}, nil
}

// Me returns the caller's profile. An unauthenticated request, or a token
// naming a user that no longer exists, yields nil without error.
func (s *IdentityService) Me(ctx context.Context, rc *reqctx.Context) (*domain.User, error) {
	identity, ok := rc.Identity()
	if !ok {
		return nil, nil
	}

	user, err := rc.Store.Users().GetUserByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return &user, nil
}
