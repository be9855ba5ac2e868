package service_test

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/su-perfume/storefront/internal/core/domain"
	"github.com/su-perfume/storefront/internal/core/service"
)

type MockImageUploader struct {
	mock.Mock
}

func (m *MockImageUploader) UploadImage(
	ctx context.Context, token, filename string, data []byte,
) (string, error) {
	args := m.Called(ctx, token, filename, data)
	return args.String(0), args.Error(1)
}

// stubSession serves a fixed session to the admin service.
type stubSession struct {
	sess domain.Session
}

func (s stubSession) Current() domain.Session { return s.sess }

func (s stubSession) Login(context.Context, string, string) (domain.Session, error) {
	return s.sess, nil
}

func (s stubSession) Register(context.Context, string, string, string, string) (domain.Session, error) {
	return s.sess, nil
}

func (s stubSession) Logout() {}

func adminSession() stubSession {
	return stubSession{sess: domain.Session{
		User:  domain.User{ID: "a1", Name: "Boss", Role: domain.RoleAdmin},
		Token: "admin-token",
		Role:  domain.RoleAdmin,
	}}
}

func pngBytes(n int) []byte {
	data := make([]byte, n)
	copy(data, "\x89PNG\r\n\x1a\n")
	return data
}

func TestAdminCreateProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		draft := domain.Product{Name: " Bloom ", Brand: "Gucci", Cost: 120}
		clean := domain.Product{Name: "Bloom", Brand: "Gucci", Cost: 120}
		created := clean
		created.ID = "42"

		provider := new(MockCatalogProvider)
		provider.On("CreateProduct", t.Context(), "admin-token", clean).
			Return(created, nil)

		admin := service.NewAdmin(provider, new(MockAuthenticator), new(MockImageUploader), adminSession())

		got, err := admin.CreateProduct(t.Context(), draft)
		require.NoError(t, err)
		assert.Equal(t, "42", got.ID)
	})

	t.Run("NotAdmin", func(t *testing.T) {
		admin := service.NewAdmin(
			new(MockCatalogProvider), new(MockAuthenticator),
			new(MockImageUploader), stubSession{sess: userSession()},
		)

		_, err := admin.CreateProduct(t.Context(), domain.Product{Name: "Bloom", Brand: "Gucci"})
		require.ErrorIs(t, err, service.ErrNotAdmin)
	})

	t.Run("InvalidForm", func(t *testing.T) {
		provider := new(MockCatalogProvider)
		admin := service.NewAdmin(provider, new(MockAuthenticator), new(MockImageUploader), adminSession())

		_, err := admin.CreateProduct(t.Context(), domain.Product{Name: "", Brand: "Gucci", Cost: 10})
		require.ErrorIs(t, err, service.ErrInvalidProduct)

		_, err = admin.CreateProduct(t.Context(), domain.Product{Name: "Bloom", Brand: "Gucci", Cost: -1})
		require.ErrorIs(t, err, service.ErrInvalidProduct)

		provider.AssertNotCalled(t, "CreateProduct",
			mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAdminDeleteProduct(t *testing.T) {
	provider := new(MockCatalogProvider)
	provider.On("DeleteProduct", t.Context(), "admin-token", "42").Return(nil)

	admin := service.NewAdmin(provider, new(MockAuthenticator), new(MockImageUploader), adminSession())

	require.NoError(t, admin.DeleteProduct(t.Context(), "42"))
	provider.AssertExpectations(t)
}

func TestAdminRegisterAdmin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Register", t.Context(), "admin-token",
			domain.User{Name: "Kate", Email: "kate@example.com", Role: domain.RoleAdmin}, "secret").
			Return(domain.Session{}, nil)

		admin := service.NewAdmin(new(MockCatalogProvider), auth, new(MockImageUploader), adminSession())

		require.NoError(t, admin.RegisterAdmin(t.Context(), "Kate", "kate@example.com", "secret"))
		auth.AssertExpectations(t)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		admin := service.NewAdmin(
			new(MockCatalogProvider), new(MockAuthenticator),
			new(MockImageUploader), adminSession(),
		)

		err := admin.RegisterAdmin(t.Context(), "Kate", "kate", "secret")
		require.ErrorIs(t, err, service.ErrInvalidEmail)
	})
}

func TestAdminResolveImage(t *testing.T) {
	t.Run("UploadSucceeds", func(t *testing.T) {
		data := pngBytes(512)
		uploader := new(MockImageUploader)
		uploader.On("UploadImage", t.Context(), "admin-token", "bloom.png", data).
			Return("https://cdn.example.com/bloom.png", nil)

		admin := service.NewAdmin(new(MockCatalogProvider), new(MockAuthenticator), uploader, adminSession())

		url, err := admin.ResolveImage(t.Context(), "bloom.png", data)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/bloom.png", url)
	})

	t.Run("UploadUnreachableFallsBackToInline", func(t *testing.T) {
		data := pngBytes(64)
		uploader := new(MockImageUploader)
		uploader.On("UploadImage", t.Context(), "admin-token", "bloom.png", data).
			Return("", errors.New("connection refused"))

		admin := service.NewAdmin(new(MockCatalogProvider), new(MockAuthenticator), uploader, adminSession())

		url, err := admin.ResolveImage(t.Context(), "bloom.png", data)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))
		assert.Equal(t, base64.StdEncoding.EncodeToString(data),
			strings.TrimPrefix(url, "data:image/png;base64,"))
		uploader.AssertNumberOfCalls(t, "UploadImage", 3)
	})

	t.Run("RejectsNonImage", func(t *testing.T) {
		admin := service.NewAdmin(
			new(MockCatalogProvider), new(MockAuthenticator),
			new(MockImageUploader), adminSession(),
		)

		_, err := admin.ResolveImage(t.Context(), "notes.txt", []byte("just text"))
		require.ErrorIs(t, err, service.ErrNotImage)
	})

	t.Run("RejectsOversizedImage", func(t *testing.T) {
		admin := service.NewAdmin(
			new(MockCatalogProvider), new(MockAuthenticator),
			new(MockImageUploader), adminSession(),
		)

		_, err := admin.ResolveImage(t.Context(), "big.png", pngBytes(5<<20+1))
		require.ErrorIs(t, err, service.ErrImageTooLarge)
	})
}
