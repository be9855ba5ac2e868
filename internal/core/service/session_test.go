package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/su-perfume/storefront/internal/core/domain"
	"github.com/su-perfume/storefront/internal/core/service"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, email, password string) (domain.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *MockAuthenticator) Register(
	ctx context.Context, token string, u domain.User, password string,
) (domain.Session, error) {
	args := m.Called(ctx, token, u, password)
	return args.Get(0).(domain.Session), args.Error(1)
}

func userSession() domain.Session {
	return domain.Session{
		User:  domain.User{ID: "u1", Name: "Ann", Email: "ann@example.com", Role: domain.RoleUser},
		Token: "jwt-token",
		Role:  domain.RoleUser,
	}
}

func TestSessionLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Login", t.Context(), "ann@example.com", "secret").
			Return(userSession(), nil)

		store := &memStore{}
		sessions := service.NewSession(auth, store)

		sess, err := sessions.Login(t.Context(), " ann@example.com ", "secret")
		require.NoError(t, err)

		assert.True(t, sess.IsAuthenticated())
		assert.Equal(t, userSession(), sessions.Current())
		assert.Equal(t, userSession(), store.session)
	})

	t.Run("InvalidEmailNeverReachesNetwork", func(t *testing.T) {
		auth := new(MockAuthenticator)
		sessions := service.NewSession(auth, &memStore{})

		_, err := sessions.Login(t.Context(), "not-an-email", "secret")

		require.ErrorIs(t, err, service.ErrInvalidEmail)
		auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("EmptyPassword", func(t *testing.T) {
		sessions := service.NewSession(new(MockAuthenticator), &memStore{})

		_, err := sessions.Login(t.Context(), "ann@example.com", "")
		require.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}

func TestSessionRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Register", t.Context(), "",
			domain.User{Name: "Ann", Email: "ann@example.com", Role: domain.RoleUser}, "secret").
			Return(userSession(), nil)

		sessions := service.NewSession(auth, &memStore{})

		sess, err := sessions.Register(t.Context(), "Ann", "ann@example.com", "secret", "secret")
		require.NoError(t, err)
		assert.True(t, sess.IsAuthenticated())
		assert.Equal(t, userSession(), sessions.Current())
	})

	t.Run("PasswordMismatch", func(t *testing.T) {
		auth := new(MockAuthenticator)
		sessions := service.NewSession(auth, &memStore{})

		_, err := sessions.Register(t.Context(), "Ann", "ann@example.com", "secret", "other")

		require.ErrorIs(t, err, service.ErrPasswordMismatch)
		auth.AssertNotCalled(t, "Register",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NameRequired", func(t *testing.T) {
		sessions := service.NewSession(new(MockAuthenticator), &memStore{})

		_, err := sessions.Register(t.Context(), "  ", "ann@example.com", "secret", "secret")
		require.ErrorIs(t, err, service.ErrNameRequired)
	})

	t.Run("RegistrationOnlyResponseKeepsGuest", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Register", t.Context(), "", mock.AnythingOfType("domain.User"), "secret").
			Return(domain.Session{}, nil)

		store := &memStore{}
		sessions := service.NewSession(auth, store)

		sess, err := sessions.Register(t.Context(), "Ann", "ann@example.com", "secret", "secret")
		require.NoError(t, err)

		assert.False(t, sess.IsAuthenticated())
		assert.False(t, sessions.Current().IsAuthenticated())
		assert.Empty(t, store.session.Token)
	})
}

func TestSessionLogout(t *testing.T) {
	store := &memStore{session: userSession()}
	sessions := service.NewSession(new(MockAuthenticator), store)
	require.True(t, sessions.Current().IsAuthenticated())

	sessions.Logout()

	assert.False(t, sessions.Current().IsAuthenticated())
	assert.Empty(t, store.session.Token)
}
