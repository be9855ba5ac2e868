package restapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/su-perfume/storefront/internal/adapter/restapi"
	"github.com/su-perfume/storefront/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *restapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return restapi.New(srv.URL, 5*time.Second)
}

func TestFetchProducts(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodGet, r.Method)
			require.Equal(t, "/products", r.URL.Path)
			assert.Empty(t, r.Header.Get("Authorization"))

			w.Write([]byte(`[
				{"_id":"1","name":"Sauvage","brand":"Dior","cost":155,
				 "description":"Woody","imgURL":"https://img/1.png"}
			]`))
		})

		got, err := client.FetchProducts(t.Context())
		require.NoError(t, err)

		require.Len(t, got, 1)
		assert.Equal(t, domain.Product{
			ID:          "1",
			Name:        "Sauvage",
			Brand:       "Dior",
			Cost:        155,
			Description: "Woody",
			ImageURL:    "https://img/1.png",
		}, got[0])
	})

	t.Run("ServerErrorMessageSurfaces", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"db down"}`))
		})

		_, err := client.FetchProducts(t.Context())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
		assert.Contains(t, err.Error(), "db down")
	})

	t.Run("MalformedBody", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		})

		_, err := client.FetchProducts(t.Context())
		require.Error(t, err)
	})
}

func TestCreateProduct(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/products", r.URL.Path)
		require.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Bloom", body["name"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id":"42","name":"Bloom","brand":"Gucci","cost":120}`))
	})

	created, err := client.CreateProduct(t.Context(), "admin-token",
		domain.Product{Name: "Bloom", Brand: "Gucci", Cost: 120})
	require.NoError(t, err)
	assert.Equal(t, "42", created.ID)
}

func TestDeleteProduct(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/products/42", r.URL.Path)
		require.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteProduct(t.Context(), "admin-token", "42"))
}

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/login", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ann@example.com", body["email"])
			assert.Equal(t, "secret", body["password"])

			w.Write([]byte(`{
				"user":{"_id":"u1","name":"Ann","email":"ann@example.com","role":"USER"},
				"token":"jwt-token"
			}`))
		})

		sess, err := client.Login(t.Context(), "ann@example.com", "secret")
		require.NoError(t, err)

		assert.True(t, sess.IsAuthenticated())
		assert.Equal(t, "jwt-token", sess.Token)
		assert.Equal(t, domain.RoleUser, sess.Role)
		assert.Equal(t, "Ann", sess.User.Name)
	})

	t.Run("BadCredentials", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"wrong email or password"}`))
		})

		_, err := client.Login(t.Context(), "ann@example.com", "wrong")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "wrong email or password")
	})
}

func TestRegister(t *testing.T) {
	t.Run("WithAdminToken", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/auth/register", r.URL.Path)
			require.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, domain.RoleAdmin, body["role"])

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"user":{"_id":"u2","name":"Kate","role":"ADMIN"}}`))
		})

		u := domain.User{Name: "Kate", Email: "kate@example.com", Role: domain.RoleAdmin}
		sess, err := client.Register(t.Context(), "admin-token", u, "secret")
		require.NoError(t, err)

		assert.False(t, sess.IsAuthenticated())
		assert.Equal(t, "Kate", sess.User.Name)
	})

	t.Run("Anonymous", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			w.Write([]byte(`{"user":{"_id":"u3","name":"Ann","role":"USER"},"token":"jwt"}`))
		})

		u := domain.User{Name: "Ann", Email: "ann@example.com", Role: domain.RoleUser}
		sess, err := client.Register(t.Context(), "", u, "secret")
		require.NoError(t, err)
		assert.True(t, sess.IsAuthenticated())
	})
}

func TestUploadImage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/upload", r.URL.Path)
		require.Equal(t, "Bearer admin-token", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "bloom.png", header.Filename)

		w.Write([]byte(`{"imageUrl":"https://cdn.example.com/bloom.png"}`))
	})

	url, err := client.UploadImage(t.Context(), "admin-token", "bloom.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/bloom.png", url)
}
