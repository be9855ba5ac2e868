package service

import (
	"slices"
	"sync"

	"github.com/su-perfume/storefront/internal/core/domain"
	"github.com/su-perfume/storefront/internal/core/port"
)

var _ port.CollectionsKeeper = (*CollectionsService)(nil)

// CollectionsService maintains the favorites and cart collections, both
// keyed by product ID. Every mutation produces a new collection value and
// is followed synchronously by a store save, so the persisted state always
// reflects the most recent mutation.
type CollectionsService struct {
	store port.StateStore

	mu        sync.Mutex
	favorites []domain.FavoriteEntry
	cart      []domain.CartLine
}

func NewCollections(store port.StateStore) *CollectionsService {
	return &CollectionsService{
		store:     store,
		favorites: store.LoadFavorites(),
		cart:      store.LoadCart(),
	}
}

func (s *CollectionsService) Favorites() []domain.FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.favorites)
}

func (s *CollectionsService) Cart() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.cart)
}

func (s *CollectionsService) IsFavorite(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.ContainsFunc(s.favorites, func(f domain.FavoriteEntry) bool {
		return f.ID == productID
	})
}

func (s *CollectionsService) InCart(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.ContainsFunc(s.cart, func(l domain.CartLine) bool {
		return l.ID == productID
	})
}

// ToggleFavorite removes the entry with the product's ID when present and
// inserts a snapshot otherwise. Applying it twice restores the collection.
func (s *CollectionsService) ToggleFavorite(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.FavoriteEntry, 0, len(s.favorites)+1)
	removed := false
	for _, f := range s.favorites {
		if f.ID == p.ID {
			removed = true
			continue
		}
		next = append(next, f)
	}
	if !removed {
		next = append(next, domain.FavoriteEntry{Product: p})
	}

	s.favorites = next
	s.store.SaveFavorites(next)
}

// AddToCart increments the quantity of an existing line or inserts a new
// line with quantity 1. At most one line exists per product ID.
func (s *CollectionsService) AddToCart(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.cart)
	found := false
	for i := range next {
		if next[i].ID == p.ID {
			next[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		next = append(next, domain.CartLine{Product: p, Quantity: 1})
	}

	s.cart = next
	s.store.SaveCart(next)
}

func (s *CollectionsService) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLineLocked(productID)
}

// UpdateCartQuantity sets the line quantity. A quantity of zero or less
// removes the line instead of storing a non-positive value.
func (s *CollectionsService) UpdateCartQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.cart)
	for i := range next {
		if next[i].ID == productID {
			next[i].Quantity = quantity
			break
		}
	}
	s.cart = next
	s.store.SaveCart(next)
}

func (s *CollectionsService) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = []domain.CartLine{}
	s.store.SaveCart(s.cart)
}

func (s *CollectionsService) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, l := range s.cart {
		total += l.LineTotal()
	}
	return total
}

func (s *CollectionsService) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, l := range s.cart {
		count += l.Quantity
	}
	return count
}

func (s *CollectionsService) FavoritesCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.favorites)
}

func (s *CollectionsService) removeLineLocked(productID string) {
	next := slices.DeleteFunc(slices.Clone(s.cart), func(l domain.CartLine) bool {
		return l.ID == productID
	})
	s.cart = next
	s.store.SaveCart(next)
}
