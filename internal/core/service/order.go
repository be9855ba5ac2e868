package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/su-perfume/storefront/internal/core/domain"
	"github.com/su-perfume/storefront/internal/core/port"
)

var _ port.OrderSubmitter = (*OrderService)(nil)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidContact = errors.New("name, phone and address are required")
)

// OrderService validates the contact form, serializes the cart into a
// human-readable message and delivers it through the order notifier.
// On successful delivery the cart is cleared; on failure it is left intact
// and no retry is attempted.
type OrderService struct {
	collections port.CollectionsKeeper
	notifier    port.OrderNotifier
	validate    *validator.Validate
}

type contactForm struct {
	Name    string `validate:"required"`
	Phone   string `validate:"required"`
	Address string `validate:"required"`
}

func NewOrder(collections port.CollectionsKeeper, notifier port.OrderNotifier) OrderService {
	return OrderService{
		collections: collections,
		notifier:    notifier,
		validate:    validator.New(),
	}
}

func (s OrderService) Submit(ctx context.Context, contact domain.ContactInfo) error {
	const op = "OrderService.Submit"

	contact.Name = strings.TrimSpace(contact.Name)
	contact.Phone = strings.TrimSpace(contact.Phone)
	contact.Address = strings.TrimSpace(contact.Address)

	form := contactForm(contact)
	if err := s.validate.Struct(form); err != nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidContact)
	}

	items := s.collections.Cart()
	if len(items) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyCart)
	}

	order := domain.Order{
		Items:      items,
		TotalPrice: s.collections.TotalPrice(),
		Contact:    contact,
	}

	if err := s.notifier.NotifyOrder(ctx, FormatOrderMessage(order)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.collections.ClearCart()
	return nil
}

// FormatOrderMessage renders the order notification text: one bullet line
// per cart item, the total, then the contact fields, in a fixed template.
func FormatOrderMessage(o domain.Order) string {
	var b strings.Builder
	b.WriteString("New order:\nItems:\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "• %s x %d — $%.2f\n", it.Name, it.Quantity, it.LineTotal())
	}
	fmt.Fprintf(&b, "\nTotal: $%.2f\n\n", o.TotalPrice)
	fmt.Fprintf(&b, "Name: %s\nPhone: %s\nAddress: %s",
		o.Contact.Name, o.Contact.Phone, o.Contact.Address)
	return b.String()
}
