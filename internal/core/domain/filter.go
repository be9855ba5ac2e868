package domain

// AllBrands is the sentinel brand selection meaning "no brand filter".
const AllBrands = "All brands"

// A SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNameAsc   SortKey = "name_asc"
	SortNameDesc  SortKey = "name_desc"
)

// A FilterState holds the catalog view controls. The zero value of the
// price bounds (nil) means unbounded. FilterState is ephemeral view state,
// never persisted.
type FilterState struct {
	Search   string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	Sort     SortKey
}

// NewFilterState returns the default state: no search, all brands,
// unbounded prices, relevance order.
func NewFilterState() FilterState {
	return FilterState{Brand: AllBrands, Sort: SortRelevance}
}
