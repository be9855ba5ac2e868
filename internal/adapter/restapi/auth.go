package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/su-perfume/storefront/internal/core/domain"
	"github.com/su-perfume/storefront/internal/core/port"
)

var _ port.Authenticator = (*Client)(nil)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (c *Client) Login(ctx context.Context, email, password string) (domain.Session, error) {
	const op = "restapi.Login"

	body := loginRequest{Email: email, Password: password}
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", "", body)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return domain.Session{}, fmt.Errorf("%s: %w", op, apiError(resp))
	}

	var auth AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return domain.Session{}, fmt.Errorf("%s: failed to parse response: %w", op, err)
	}
	return auth.toDomain(), nil
}

// Register creates an account. The response token may be empty when the
// API answers with a registration-only body.
func (c *Client) Register(
	ctx context.Context, token string, u domain.User, password string,
) (domain.Session, error) {
	const op = "restapi.Register"

	body := registerRequest{Name: u.Name, Email: u.Email, Password: password, Role: u.Role}
	req, err := c.newRequest(ctx, http.MethodPost, "/auth/register", token, body)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return domain.Session{}, fmt.Errorf("%s: %w", op, apiError(resp))
	}

	var auth AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return domain.Session{}, fmt.Errorf("%s: failed to parse response: %w", op, err)
	}
	return auth.toDomain(), nil
}
