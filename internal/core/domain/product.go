package domain

import "math"

type (
	// A Product is a catalog entry. Products are sourced wholesale from the
	// remote catalog and are immutable on the client side; the only local
	// mutations happen through the admin create/delete operations.
	Product struct {
		ID          string
		Name        string
		Brand       string
		Cost        float64
		Description string
		ImageURL    string
	}

	// A FavoriteEntry is a Product snapshot kept in the favorites collection.
	// At most one entry exists per product ID.
	FavoriteEntry struct {
		Product
	}

	// A CartLine is a Product snapshot plus a quantity.
	// Quantity is always >= 1; setting it to zero removes the line.
	CartLine struct {
		Product
		Quantity int
	}
)

// CostValue returns the product cost with missing or invalid
// values normalized to zero.
func (p Product) CostValue() float64 {
	if math.IsNaN(p.Cost) || math.IsInf(p.Cost, 0) {
		return 0
	}
	return p.Cost
}

// LineTotal is cost multiplied by quantity.
func (l CartLine) LineTotal() float64 {
	return l.CostValue() * float64(l.Quantity)
}
