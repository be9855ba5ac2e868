package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/su-perfume/storefront/internal/core/domain"
	"github.com/su-perfume/storefront/internal/core/service"
)

type MockCatalogProvider struct {
	mock.Mock
}

func (m *MockCatalogProvider) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalogProvider) CreateProduct(
	ctx context.Context, token string, p domain.Product,
) (domain.Product, error) {
	args := m.Called(ctx, token, p)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockCatalogProvider) DeleteProduct(ctx context.Context, token, productID string) error {
	args := m.Called(ctx, token, productID)
	return args.Error(0)
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Bloom", Brand: "Gucci", Cost: 120},
		{ID: "2", Name: "Sauvage", Brand: "Dior", Cost: 155},
		{ID: "3", Name: "La Vie Est Belle", Brand: "Lancome", Cost: 98},
		{ID: "4", Name: "Black Opium", Brand: "YSL", Cost: 130},
		{ID: "5", Name: "Dior Homme", Brand: "Dior", Cost: 110},
	}
}

func newTestCatalog(t *testing.T, ps []domain.Product) *service.CatalogService {
	t.Helper()
	provider := new(MockCatalogProvider)
	provider.On("FetchProducts", t.Context()).Return(ps, nil)

	catalog := service.NewCatalog(provider)
	require.NoError(t, catalog.Refresh(t.Context()))
	return catalog
}

func TestCatalogRefresh(t *testing.T) {
	t.Run("ReplacesCatalog", func(t *testing.T) {
		catalog := newTestCatalog(t, testProducts())
		assert.Equal(t, 5, catalog.Size())
	})

	t.Run("FetchErrorKeepsPrevious", func(t *testing.T) {
		provider := new(MockCatalogProvider)
		provider.On("FetchProducts", t.Context()).
			Return(testProducts(), nil).Once()
		provider.On("FetchProducts", t.Context()).
			Return([]domain.Product(nil), errors.New("boom"))

		catalog := service.NewCatalog(provider)
		require.NoError(t, catalog.Refresh(t.Context()))
		require.Error(t, catalog.Refresh(t.Context()))
		assert.Equal(t, 5, catalog.Size())
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		catalog := service.NewCatalog(new(MockCatalogProvider))
		require.ErrorIs(t, catalog.Refresh(ctx), context.Canceled)
	})
}

func TestCatalogBrands(t *testing.T) {
	catalog := newTestCatalog(t, testProducts())
	assert.Equal(t, []string{"Dior", "Gucci", "Lancome", "YSL"}, catalog.Brands())
}

func TestCatalogDisplay(t *testing.T) {
	t.Run("DefaultFilterKeepsCatalogOrder", func(t *testing.T) {
		catalog := newTestCatalog(t, testProducts())
		got := catalog.Display(domain.NewFilterState())

		require.Len(t, got, 5)
		assert.Equal(t, testProducts(), got)
	})

	t.Run("SearchMatchesNameOrBrand", func(t *testing.T) {
		catalog := newTestCatalog(t, testProducts())

		f := domain.NewFilterState()
		f.Search = "dior"
		got := catalog.Display(f)

		require.Len(t, got, 2)
		assert.Equal(t, "Sauvage", got[0].Name)
		assert.Equal(t, "Dior Homme", got[1].Name)
	})

	t.Run("SearchIsTrimmedAndCaseInsensitive", func(t *testing.T) {
		catalog := newTestCatalog(t, testProducts())

		f := domain.NewFilterState()
		f.Search = "  BLOOM "
		got := catalog.Display(f)

		require.Len(t, got, 1)
		assert.Equal(t, "Bloom", got[0].Name)
	})

	t.Run("BrandIsExactMatch", func(t *testing.T) {
		catalog := newTestCatalog(t, testProducts())

		f := domain.NewFilterState()
		f.Brand = "Dior"
		got := catalog.Display(f)

		require.Len(t, got, 2)
		for _, p := range got {
			assert.Equal(t, "Dior", p.Brand)
		}
	})

	t.Run("PriceBoundsAreInclusive", func(t *testing.T) {
		catalog := newTestCatalog(t, testProducts())

		minPrice, maxPrice := 110.0, 130.0
		f := domain.NewFilterState()
		f.MinPrice = &minPrice
		f.MaxPrice = &maxPrice
		got := catalog.Display(f)

		require.Len(t, got, 3)
		for _, p := range got {
			assert.GreaterOrEqual(t, p.Cost, minPrice)
			assert.LessOrEqual(t, p.Cost, maxPrice)
		}
	})

	t.Run("PredicatesCombine", func(t *testing.T) {
		catalog := newTestCatalog(t, testProducts())

		maxPrice := 140.0
		f := domain.NewFilterState()
		f.Search = "o"
		f.MaxPrice = &maxPrice
		f.Sort = domain.SortPriceDesc
		got := catalog.Display(f)

		require.Len(t, got, 4)
		assert.Equal(t, []string{"Black Opium", "Bloom", "Dior Homme", "La Vie Est Belle"},
			[]string{got[0].Name, got[1].Name, got[2].Name, got[3].Name})
	})

	t.Run("SortPriceAscAndDescAreReverses", func(t *testing.T) {
		catalog := newTestCatalog(t, testProducts())

		asc := domain.NewFilterState()
		asc.Sort = domain.SortPriceAsc
		desc := domain.NewFilterState()
		desc.Sort = domain.SortPriceDesc

		up := catalog.Display(asc)
		down := catalog.Display(desc)
		require.Len(t, up, 5)
		require.Len(t, down, 5)
		for i := range up {
			assert.Equal(t, up[i].ID, down[len(down)-1-i].ID)
		}
	})

	t.Run("SortNameAsc", func(t *testing.T) {
		catalog := newTestCatalog(t, testProducts())

		f := domain.NewFilterState()
		f.Sort = domain.SortNameAsc
		got := catalog.Display(f)

		names := make([]string, len(got))
		for i, p := range got {
			names[i] = p.Name
		}
		assert.Equal(t,
			[]string{"Black Opium", "Bloom", "Dior Homme", "La Vie Est Belle", "Sauvage"},
			names)
	})

	t.Run("ResultIsCallerOwned", func(t *testing.T) {
		catalog := newTestCatalog(t, testProducts())

		first := catalog.Display(domain.NewFilterState())
		first[0].Name = "mutated"

		again := catalog.Display(domain.NewFilterState())
		require.Len(t, again, 5)
		assert.Equal(t, "Bloom", again[0].Name)

		again[0].Name = "mutated again"
		assert.Equal(t, "Bloom", catalog.Display(domain.NewFilterState())[0].Name)
	})

	t.Run("NoMatchesIsEmptyNotError", func(t *testing.T) {
		catalog := newTestCatalog(t, testProducts())

		f := domain.NewFilterState()
		f.Search = "zzz"
		assert.Empty(t, catalog.Display(f))
	})
}
