package restapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/su-perfume/storefront/internal/core/domain"
	"github.com/su-perfume/storefront/internal/core/port"
)

var _ port.CatalogProvider = (*Client)(nil)

// FetchProducts retrieves the full product list. There is no pagination;
// the catalog is loaded wholesale.
func (c *Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "restapi.FetchProducts"
	log := slog.With("op", op)

	req, err := c.newRequest(ctx, http.MethodGet, "/products", "", nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w", op, apiError(resp))
	}

	var ps []Product
	if err := json.NewDecoder(resp.Body).Decode(&ps); err != nil {
		return nil, fmt.Errorf("%s: failed to parse products: %w", op, err)
	}

	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.toDomain())
	}

	log.Debug("catalog fetched", "nProducts", len(out))
	return out, nil
}

func (c *Client) CreateProduct(
	ctx context.Context, token string, p domain.Product,
) (domain.Product, error) {
	const op = "restapi.CreateProduct"

	req, err := c.newRequest(ctx, http.MethodPost, "/products", token, fromDomain(p))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return domain.Product{}, fmt.Errorf("%s: %w", op, apiError(resp))
	}

	var created Product
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return domain.Product{}, fmt.Errorf("%s: failed to parse product: %w", op, err)
	}
	return created.toDomain(), nil
}

func (c *Client) DeleteProduct(ctx context.Context, token, productID string) error {
	const op = "restapi.DeleteProduct"

	path := "/products/" + url.PathEscape(productID)
	req, err := c.newRequest(ctx, http.MethodDelete, path, token, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("%s: %w", op, apiError(resp))
	}
	return nil
}
