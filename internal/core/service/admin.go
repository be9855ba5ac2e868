package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/su-perfume/storefront/internal/core/domain"
	"github.com/su-perfume/storefront/internal/core/port"
	"github.com/su-perfume/storefront/pkg/retry"
)

var _ port.AdminManager = (*AdminService)(nil)

var (
	ErrNotAdmin       = errors.New("session has no admin role")
	ErrInvalidProduct = errors.New("product name, brand and a non-negative cost are required")
	ErrNotImage       = errors.New("file is not an image")
	ErrImageTooLarge  = errors.New("image exceeds the 5MB limit")
)

// maxImageBytes caps admin image uploads at 5MB.
const maxImageBytes = 5 << 20

// AdminService covers the admin panel operations: product create/delete,
// admin registration and image resolution. The bearer token is read from
// the session boundary on every call, never cached.
type AdminService struct {
	catalog  port.CatalogProvider
	auth     port.Authenticator
	uploader port.ImageUploader
	session  port.SessionManager
	validate *validator.Validate
}

type productForm struct {
	Name  string  `validate:"required"`
	Brand string  `validate:"required"`
	Cost  float64 `validate:"gte=0"`
}

func NewAdmin(
	catalog port.CatalogProvider,
	auth port.Authenticator,
	uploader port.ImageUploader,
	session port.SessionManager,
) AdminService {
	return AdminService{
		catalog:  catalog,
		auth:     auth,
		uploader: uploader,
		session:  session,
		validate: validator.New(),
	}
}

func (s AdminService) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	const op = "AdminService.CreateProduct"

	token, err := s.adminToken()
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p.Name = strings.TrimSpace(p.Name)
	p.Brand = strings.TrimSpace(p.Brand)
	form := productForm{Name: p.Name, Brand: p.Brand, Cost: p.Cost}
	if err := s.validate.Struct(form); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, ErrInvalidProduct)
	}

	created, err := s.catalog.CreateProduct(ctx, token, p)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

func (s AdminService) DeleteProduct(ctx context.Context, productID string) error {
	const op = "AdminService.DeleteProduct"

	token, err := s.adminToken()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.catalog.DeleteProduct(ctx, token, productID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RegisterAdmin creates another ADMIN account through the auth API using
// the current admin's bearer token.
func (s AdminService) RegisterAdmin(ctx context.Context, name, email, password string) error {
	const op = "AdminService.RegisterAdmin"

	token, err := s.adminToken()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || password == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err := s.validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidEmail)
	}

	u := domain.User{Name: name, Email: email, Role: domain.RoleAdmin}
	if _, err := s.auth.Register(ctx, token, u, password); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ResolveImage turns raw image bytes into an image reference for a new
// product. The upload endpoint is best-effort: when it stays unreachable
// after retrying, the image is embedded as an inline data reference
// instead of failing the product creation.
func (s AdminService) ResolveImage(ctx context.Context, filename string, data []byte) (string, error) {
	const op = "AdminService.ResolveImage"
	log := slog.With("op", op)

	token, err := s.adminToken()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if len(data) > maxImageBytes {
		return "", fmt.Errorf("%s: %w", op, ErrImageTooLarge)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%s: %w", op, ErrNotImage)
	}

	cfg := retry.Config{
		MaxAttempts: 3,
		Backoff:     retry.LinearBackoff(500 * time.Millisecond),
	}
	url, err := retry.DoWithResult(ctx, cfg, func() (string, error) {
		return s.uploader.UploadImage(ctx, token, filename, data)
	})
	if err == nil {
		return url, nil
	}

	log.Warn("upload unreachable, embedding image inline", "err", err)
	inline := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	return inline, nil
}

func (s AdminService) adminToken() (string, error) {
	sess := s.session.Current()
	if !sess.IsAuthenticated() || !sess.IsAdmin() {
		return "", ErrNotAdmin
	}
	return sess.Token, nil
}
