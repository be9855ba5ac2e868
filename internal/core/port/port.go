package port

import (
	"context"

	"github.com/su-perfume/storefront/internal/core/domain"
)

// Outbound adapters.

type CatalogProvider interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, token string, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, token, productID string) error
}

type Authenticator interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)

	// Register creates a user account. The token argument is empty for
	// self sign-up and carries the admin bearer token when an admin
	// registers another admin. The returned session token may be empty
	// for registration-only responses.
	Register(ctx context.Context, token string, u domain.User, password string) (domain.Session, error)
}

type ImageUploader interface {
	UploadImage(ctx context.Context, token, filename string, data []byte) (string, error)
}

type OrderNotifier interface {
	NotifyOrder(ctx context.Context, text string) error
}

// StateStore is the durable client state boundary. Loads degrade to an
// empty default on missing or unparsable data and saves are best-effort,
// so neither direction returns an error to the caller.
type StateStore interface {
	LoadFavorites() []domain.FavoriteEntry
	SaveFavorites([]domain.FavoriteEntry)
	LoadCart() []domain.CartLine
	SaveCart([]domain.CartLine)
	LoadSession() domain.Session
	SaveSession(domain.Session)
	ClearSession()
}

// Core services as seen by the view layer.

type CatalogViewer interface {
	Refresh(ctx context.Context) error
	Display(domain.FilterState) []domain.Product
	Brands() []string
	Size() int
}

type CollectionsKeeper interface {
	Favorites() []domain.FavoriteEntry
	Cart() []domain.CartLine
	IsFavorite(productID string) bool
	InCart(productID string) bool
	ToggleFavorite(p domain.Product)
	AddToCart(p domain.Product)
	RemoveFromCart(productID string)
	UpdateCartQuantity(productID string, quantity int)
	ClearCart()
	TotalPrice() float64
	TotalItemCount() int
	FavoritesCount() int
}

type OrderSubmitter interface {
	Submit(ctx context.Context, contact domain.ContactInfo) error
}

type SessionManager interface {
	Current() domain.Session
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Register(ctx context.Context, name, email, password, confirm string) (domain.Session, error)
	Logout()
}

type AdminManager interface {
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	RegisterAdmin(ctx context.Context, name, email, password string) error
	ResolveImage(ctx context.Context, filename string, data []byte) (string, error)
}
