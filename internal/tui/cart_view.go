package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/su-perfume/storefront/internal/core/domain"
)

// orderForm collects the contact details for checkout.
type orderForm struct {
	inputs     [3]textinput.Model
	focus      int
	submitting bool
}

const (
	orderFieldName = iota
	orderFieldPhone
	orderFieldAddress
)

func newOrderForm() orderForm {
	var f orderForm
	for i := range f.inputs {
		f.inputs[i] = textinput.New()
		f.inputs[i].CharLimit = 96
	}
	f.inputs[orderFieldName].Placeholder = "Your name"
	f.inputs[orderFieldPhone].Placeholder = "Phone"
	f.inputs[orderFieldAddress].Placeholder = "Delivery address"
	f.inputs[orderFieldName].Focus()
	return f
}

func (f orderForm) contact() domain.ContactInfo {
	return domain.ContactInfo{
		Name:    strings.TrimSpace(f.inputs[orderFieldName].Value()),
		Phone:   strings.TrimSpace(f.inputs[orderFieldPhone].Value()),
		Address: strings.TrimSpace(f.inputs[orderFieldAddress].Value()),
	}
}

func (f *orderForm) focusNext(backwards bool) {
	if backwards {
		f.focus--
	} else {
		f.focus++
	}
	if f.focus < 0 {
		f.focus = len(f.inputs) - 1
	}
	if f.focus >= len(f.inputs) {
		f.focus = 0
	}
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

func (f *orderForm) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *orderForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = orderFieldName
	f.inputs[orderFieldName].Focus()
	f.submitting = false
}

func (m Model) updateCart(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	lines := m.collections.Cart()
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cartCursor > 0 {
			m.cartCursor--
		}
	case "down", "j":
		if m.cartCursor < len(lines)-1 {
			m.cartCursor++
		}
	case "+", "right":
		if m.cartCursor < len(lines) {
			l := lines[m.cartCursor]
			m.collections.UpdateCartQuantity(l.Product.ID, l.Quantity+1)
		}
	case "-", "left":
		if m.cartCursor < len(lines) {
			l := lines[m.cartCursor]
			m.collections.UpdateCartQuantity(l.Product.ID, l.Quantity-1)
			m.clampCartCursor()
		}
	case "x", "delete":
		if m.cartCursor < len(lines) {
			m.collections.RemoveFromCart(lines[m.cartCursor].Product.ID)
			m.clampCartCursor()
		}
	case "o", "enter":
		if len(lines) > 0 {
			m.state = screenOrderForm
			m.errMsg = ""
			m.statusMsg = ""
			return m, textinput.Blink
		}
	case "v":
		m.state = screenFavorites
		m.favCursor = 0
	case "g", "esc":
		m.state = screenCatalog
	case "l":
		m.logout()
	}
	return m, nil
}

func (m *Model) clampCartCursor() {
	if n := len(m.collections.Cart()); m.cartCursor >= n && m.cartCursor > 0 {
		m.cartCursor = n - 1
	}
}

func (m Model) renderCart() string {
	var b strings.Builder
	b.WriteString(m.header("Cart"))
	b.WriteString("\n\n")
	lines := m.collections.Cart()
	if len(lines) == 0 {
		b.WriteString(faintStyle.Render("Your cart is empty."))
	} else {
		for i, l := range lines {
			row := fmt.Sprintf("%-28s %s x %-3d = %s",
				truncate(l.Product.Name, 28),
				priceStyle.Render(fmt.Sprintf("$%.2f", l.Product.CostValue())),
				l.Quantity,
				priceStyle.Render(fmt.Sprintf("$%.2f", l.LineTotal())))
			if i == m.cartCursor {
				b.WriteString(selectedStyle.Render("> " + row))
			} else {
				b.WriteString(rowStyle.Render("  " + row))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(headerStyle.Render(fmt.Sprintf("Total: $%.2f", m.collections.TotalPrice())))
	}
	if m.statusMsg != "" {
		b.WriteString("\n" + statusStyle.Render(m.statusMsg))
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}
	b.WriteString("\n\n")
	b.WriteString(faintStyle.Render("+/- quantity   x remove   o order   g back   q quit"))
	return b.String()
}

func (m Model) updateOrderForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.state = screenCart
			return m, nil
		case "tab", "down":
			m.order.focusNext(false)
			return m, nil
		case "shift+tab", "up":
			m.order.focusNext(true)
			return m, nil
		case "enter":
			if m.order.focus < orderFieldAddress {
				m.order.focusNext(false)
				return m, nil
			}
			if m.order.submitting {
				return m, nil
			}
			m.order.submitting = true
			m.errMsg = ""
			return m, m.submitOrder()
		}
	}
	cmd := m.order.updateInputs(msg)
	return m, cmd
}

func (m Model) renderOrderForm() string {
	var b strings.Builder
	b.WriteString(m.header("Checkout"))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf(
		"%d item(s), total $%.2f", m.collections.TotalItemCount(), m.collections.TotalPrice())))
	b.WriteString("\n\n")
	labels := [3]string{"Name    ", "Phone   ", "Address "}
	for i, in := range m.order.inputs {
		b.WriteString(labels[i] + in.View() + "\n")
	}
	if m.order.submitting {
		b.WriteString("\n" + faintStyle.Render("Sending order..."))
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("Tab next field   Enter send   Esc back to cart"))
	return b.String()
}
