package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/su-perfume/storefront/internal/core/domain"
	"github.com/su-perfume/storefront/internal/core/port"
)

var _ port.CatalogViewer = (*CatalogService)(nil)

// filterKey is the comparable form of a FilterState, used as memo key.
type filterKey struct {
	search string
	brand  string
	hasMin bool
	min    float64
	hasMax bool
	max    float64
	sort   domain.SortKey
}

type displayMemo struct {
	valid   bool
	version uint64
	key     filterKey
	result  []domain.Product
}

// CatalogService holds the session catalog and derives display lists
// from it. Display is a pure function of (catalog, FilterState); the last
// derivation is memoized and invalidated whenever the catalog changes.
type CatalogService struct {
	provider port.CatalogProvider

	mu       sync.Mutex
	products []domain.Product
	brands   []string
	version  uint64
	memo     displayMemo
	collator *collate.Collator
}

func NewCatalog(provider port.CatalogProvider) *CatalogService {
	return &CatalogService{
		provider: provider,
		collator: collate.New(language.English, collate.IgnoreCase),
	}
}

// Refresh fetches the full product list from the remote catalog and
// replaces the in-memory one. Fetch errors leave the previous catalog
// in place.
func (s *CatalogService) Refresh(ctx context.Context) error {
	const op = "CatalogService.Refresh"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.provider.FetchProducts(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = ps
	s.brands = collectBrands(ps)
	s.version++
	s.memo = displayMemo{}
	return nil
}

func (s *CatalogService) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.products)
}

// Brands returns the distinct trimmed brand names of the current catalog,
// sorted lexicographically.
func (s *CatalogService) Brands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.brands)
}

// Display derives the ordered product list for the given filter state.
// The filtered result is always a subset of the catalog; with the
// relevance sort key the catalog order is preserved.
func (s *CatalogService) Display(f domain.FilterState) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := makeFilterKey(f)
	if s.memo.valid && s.memo.version == s.version && s.memo.key == key {
		return slices.Clone(s.memo.result)
	}

	result := s.sortProducts(filterProducts(s.products, f), f.Sort)
	s.memo = displayMemo{valid: true, version: s.version, key: key, result: result}
	return slices.Clone(result)
}

func makeFilterKey(f domain.FilterState) filterKey {
	k := filterKey{search: f.Search, brand: f.Brand, sort: f.Sort}
	if f.MinPrice != nil {
		k.hasMin, k.min = true, *f.MinPrice
	}
	if f.MaxPrice != nil {
		k.hasMax, k.max = true, *f.MaxPrice
	}
	return k
}

// filterProducts applies search, brand and price predicates, AND-combined.
// A product with neither name nor brand never matches a non-empty search.
func filterProducts(ps []domain.Product, f domain.FilterState) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	brandFiltered := f.Brand != "" && f.Brand != domain.AllBrands

	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Brand), q) {
			continue
		}
		if brandFiltered && p.Brand != f.Brand {
			continue
		}
		cost := p.CostValue()
		if f.MinPrice != nil && cost < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && cost > *f.MaxPrice {
			continue
		}
		out = append(out, p)
	}
	return out
}

// sortProducts orders the filtered list. The sort is stable and returns
// a new slice; ps is never reordered in place.
func (s *CatalogService) sortProducts(ps []domain.Product, key domain.SortKey) []domain.Product {
	if key == domain.SortRelevance || key == "" {
		return ps
	}

	out := slices.Clone(ps)
	switch key {
	case domain.SortPriceAsc:
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return compareFloat(a.CostValue(), b.CostValue())
		})
	case domain.SortPriceDesc:
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return compareFloat(b.CostValue(), a.CostValue())
		})
	case domain.SortNameAsc:
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return s.collator.CompareString(a.Name, b.Name)
		})
	case domain.SortNameDesc:
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return s.collator.CompareString(b.Name, a.Name)
		})
	}
	return out
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func collectBrands(ps []domain.Product) []string {
	seen := make(map[string]struct{}, len(ps))
	brands := make([]string, 0, len(ps))
	for _, p := range ps {
		b := strings.TrimSpace(p.Brand)
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		brands = append(brands, b)
	}
	slices.Sort(brands)
	return brands
}
