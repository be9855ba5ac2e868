package domain

type (
	// ContactInfo is the order form data.
	ContactInfo struct {
		Name    string
		Phone   string
		Address string
	}

	// An Order is the cart contents at submission time together with the
	// contact data. Orders are never stored locally, only delivered.
	Order struct {
		Items      []CartLine
		TotalPrice float64
		Contact    ContactInfo
	}
)
