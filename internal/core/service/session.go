package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/su-perfume/storefront/internal/core/domain"
	"github.com/su-perfume/storefront/internal/core/port"
)

var _ port.SessionManager = (*SessionService)(nil)

var (
	ErrInvalidCredentials = errors.New("email and password are required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrNameRequired       = errors.New("name is required")
)

// SessionService is the single read/write boundary for the client identity.
// All role and token reads go through Current; the underlying store keys are
// written only here. Logout clears the identity keys only; favorites and
// cart deliberately survive it.
type SessionService struct {
	auth     port.Authenticator
	store    port.StateStore
	validate *validator.Validate

	mu      sync.Mutex
	current domain.Session
}

func NewSession(auth port.Authenticator, store port.StateStore) *SessionService {
	return &SessionService{
		auth:     auth,
		store:    store,
		validate: validator.New(),
		current:  store.LoadSession(),
	}
}

func (s *SessionService) Current() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Login authenticates against the remote auth API and persists the
// resulting session. Validation failures never reach the network.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	const op = "SessionService.Login"

	email = strings.TrimSpace(email)
	if password == "" {
		return domain.Session{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	sess, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	s.setCurrent(sess)
	return sess, nil
}

// Register signs up a new USER account. A registration-only response
// (empty token) is returned as-is without establishing a session, so the
// caller can fall back to the sign-in flow.
func (s *SessionService) Register(ctx context.Context, name, email, password, confirm string) (domain.Session, error) {
	const op = "SessionService.Register"

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return domain.Session{}, fmt.Errorf("%s: %w", op, ErrNameRequired)
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}
	if password == "" {
		return domain.Session{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if password != confirm {
		return domain.Session{}, fmt.Errorf("%s: %w", op, ErrPasswordMismatch)
	}

	u := domain.User{Name: name, Email: email, Role: domain.RoleUser}
	sess, err := s.auth.Register(ctx, "", u, password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	if sess.IsAuthenticated() {
		s.setCurrent(sess)
	}
	return sess, nil
}

// Logout clears the session identity fields only.
func (s *SessionService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = domain.Session{}
	s.store.ClearSession()
}

func (s *SessionService) setCurrent(sess domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sess
	s.store.SaveSession(sess)
}
