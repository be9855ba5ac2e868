package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/su-perfume/storefront/internal/core/domain"
)

// adminSection selects which part of the admin panel is active.
type adminSection int

const (
	sectionProducts adminSection = iota
	sectionAddProduct
	sectionAddAdmin
)

// adminPanel holds the product list cursor and the two admin forms.
type adminPanel struct {
	section    adminSection
	cursor     int
	submitting bool

	productInputs [5]textinput.Model
	productFocus  int

	adminInputs [3]textinput.Model
	adminFocus  int
}

const (
	prodFieldName = iota
	prodFieldBrand
	prodFieldCost
	prodFieldDescription
	prodFieldImage
)

const (
	adminFieldName = iota
	adminFieldEmail
	adminFieldPassword
)

func newAdminPanel() adminPanel {
	var p adminPanel
	placeholders := [5]string{"Name", "Brand", "Cost", "Description", "Image URL or file path"}
	for i := range p.productInputs {
		p.productInputs[i] = textinput.New()
		p.productInputs[i].Placeholder = placeholders[i]
		p.productInputs[i].CharLimit = 256
	}
	adminPh := [3]string{"Name", "Email", "Password"}
	for i := range p.adminInputs {
		p.adminInputs[i] = textinput.New()
		p.adminInputs[i].Placeholder = adminPh[i]
		p.adminInputs[i].CharLimit = 96
	}
	p.adminInputs[adminFieldPassword].EchoMode = textinput.EchoPassword
	p.adminInputs[adminFieldPassword].EchoCharacter = '•'
	return p
}

func (p *adminPanel) setSection(s adminSection) {
	p.section = s
	for i := range p.productInputs {
		p.productInputs[i].Blur()
	}
	for i := range p.adminInputs {
		p.adminInputs[i].Blur()
	}
	switch s {
	case sectionAddProduct:
		p.productFocus = prodFieldName
		p.productInputs[prodFieldName].Focus()
	case sectionAddAdmin:
		p.adminFocus = adminFieldName
		p.adminInputs[adminFieldName].Focus()
	}
}

func (p *adminPanel) focusNext(backwards bool) {
	switch p.section {
	case sectionAddProduct:
		p.productFocus = step(p.productFocus, len(p.productInputs), backwards)
		for i := range p.productInputs {
			if i == p.productFocus {
				p.productInputs[i].Focus()
			} else {
				p.productInputs[i].Blur()
			}
		}
	case sectionAddAdmin:
		p.adminFocus = step(p.adminFocus, len(p.adminInputs), backwards)
		for i := range p.adminInputs {
			if i == p.adminFocus {
				p.adminInputs[i].Focus()
			} else {
				p.adminInputs[i].Blur()
			}
		}
	}
}

func step(cur, n int, backwards bool) int {
	if backwards {
		cur--
	} else {
		cur++
	}
	if cur < 0 {
		return n - 1
	}
	if cur >= n {
		return 0
	}
	return cur
}

func (p *adminPanel) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch p.section {
	case sectionAddProduct:
		p.productInputs[p.productFocus], cmd = p.productInputs[p.productFocus].Update(msg)
	case sectionAddAdmin:
		p.adminInputs[p.adminFocus], cmd = p.adminInputs[p.adminFocus].Update(msg)
	}
	return cmd
}

func (p *adminPanel) resetProductForm() {
	for i := range p.productInputs {
		p.productInputs[i].SetValue("")
	}
}

func (p *adminPanel) resetAdminForm() {
	for i := range p.adminInputs {
		p.adminInputs[i].SetValue("")
	}
}

func (p adminPanel) productDraft() (domain.Product, string) {
	cost, _ := strconv.ParseFloat(
		strings.TrimSpace(p.productInputs[prodFieldCost].Value()), 64)
	return domain.Product{
		Name:        strings.TrimSpace(p.productInputs[prodFieldName].Value()),
		Brand:       strings.TrimSpace(p.productInputs[prodFieldBrand].Value()),
		Cost:        cost,
		Description: strings.TrimSpace(p.productInputs[prodFieldDescription].Value()),
	}, strings.TrimSpace(p.productInputs[prodFieldImage].Value())
}

// submitCreateProduct resolves the image reference and creates the
// product. An image given as a local path is read and uploaded; URLs and
// data URIs pass through untouched.
func (m Model) submitCreateProduct() tea.Cmd {
	draft, image := m.adminPanel.productDraft()
	return func() tea.Msg {
		if image != "" && !strings.Contains(image, "://") && !strings.HasPrefix(image, "data:") {
			data, err := os.ReadFile(image)
			if err != nil {
				return adminMsg{err: fmt.Errorf("read image: %w", err)}
			}
			url, err := m.admin.ResolveImage(m.ctx, filepath.Base(image), data)
			if err != nil {
				return adminMsg{err: err}
			}
			draft.ImageURL = url
		} else {
			draft.ImageURL = image
		}
		created, err := m.admin.CreateProduct(m.ctx, draft)
		if err != nil {
			return adminMsg{err: err}
		}
		return adminMsg{info: fmt.Sprintf("Product %q created", created.Name), refresh: true}
	}
}

func (m Model) submitDeleteProduct(p domain.Product) tea.Cmd {
	return func() tea.Msg {
		if err := m.admin.DeleteProduct(m.ctx, p.ID); err != nil {
			return adminMsg{err: err}
		}
		return adminMsg{info: fmt.Sprintf("Product %q deleted", p.Name), refresh: true}
	}
}

func (m Model) submitRegisterAdmin() tea.Cmd {
	p := m.adminPanel
	name := strings.TrimSpace(p.adminInputs[adminFieldName].Value())
	email := strings.TrimSpace(p.adminInputs[adminFieldEmail].Value())
	password := p.adminInputs[adminFieldPassword].Value()
	return func() tea.Msg {
		if err := m.admin.RegisterAdmin(m.ctx, name, email, password); err != nil {
			return adminMsg{err: err}
		}
		return adminMsg{info: fmt.Sprintf("Admin %s registered", email)}
	}
}

func (m Model) updateAdmin(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.adminPanel.section == sectionProducts {
		switch key.String() {
		case "q":
			return m, tea.Quit
		case "up", "k":
			if m.adminPanel.cursor > 0 {
				m.adminPanel.cursor--
			}
		case "down", "j":
			if m.adminPanel.cursor < m.catalog.Size()-1 {
				m.adminPanel.cursor++
			}
		case "n":
			m.adminPanel.setSection(sectionAddProduct)
			m.errMsg = ""
			return m, textinput.Blink
		case "u":
			m.adminPanel.setSection(sectionAddAdmin)
			m.errMsg = ""
			return m, textinput.Blink
		case "x", "delete":
			all := m.catalog.Display(domain.NewFilterState())
			if m.adminPanel.cursor < len(all) && !m.adminPanel.submitting {
				m.adminPanel.submitting = true
				return m, m.submitDeleteProduct(all[m.adminPanel.cursor])
			}
		case "R":
			m.loading = true
			return m, m.fetchCatalog()
		case "g":
			m.state = screenCatalog
		case "l":
			m.logout()
		}
		return m, nil
	}

	switch key.String() {
	case "esc":
		m.adminPanel.setSection(sectionProducts)
		return m, nil
	case "tab", "down":
		m.adminPanel.focusNext(false)
		return m, nil
	case "shift+tab", "up":
		m.adminPanel.focusNext(true)
		return m, nil
	case "enter":
		if m.adminPanel.submitting {
			return m, nil
		}
		m.adminPanel.submitting = true
		m.errMsg = ""
		if m.adminPanel.section == sectionAddProduct {
			return m, m.submitCreateProduct()
		}
		return m, m.submitRegisterAdmin()
	}
	cmd := m.adminPanel.updateInputs(msg)
	return m, cmd
}

func (m Model) renderAdmin() string {
	var b strings.Builder
	b.WriteString(m.header("Admin panel"))
	b.WriteString("\n\n")

	switch m.adminPanel.section {
	case sectionAddProduct:
		b.WriteString(headerStyle.Render("New product"))
		b.WriteString("\n")
		labels := [5]string{"Name        ", "Brand       ", "Cost        ", "Description ", "Image       "}
		for i, in := range m.adminPanel.productInputs {
			b.WriteString(labels[i] + in.View() + "\n")
		}
		b.WriteString("\n" + faintStyle.Render("Tab next field   Enter create   Esc back"))
	case sectionAddAdmin:
		b.WriteString(headerStyle.Render("New administrator"))
		b.WriteString("\n")
		labels := [3]string{"Name     ", "Email    ", "Password "}
		for i, in := range m.adminPanel.adminInputs {
			b.WriteString(labels[i] + in.View() + "\n")
		}
		b.WriteString("\n" + faintStyle.Render("Tab next field   Enter register   Esc back"))
	default:
		all := m.catalog.Display(domain.NewFilterState())
		if m.loading {
			b.WriteString(faintStyle.Render("Loading products..."))
		} else if len(all) == 0 {
			b.WriteString(faintStyle.Render("No products yet. Press n to add one."))
		} else {
			for i, p := range all {
				row := fmt.Sprintf("%-28s %-14s %s",
					truncate(p.Name, 28), truncate(p.Brand, 14),
					priceStyle.Render(fmt.Sprintf("$%8.2f", p.CostValue())))
				if i == m.adminPanel.cursor {
					b.WriteString(selectedStyle.Render("> " + row))
				} else {
					b.WriteString(rowStyle.Render("  " + row))
				}
				b.WriteString("\n")
			}
		}
		b.WriteString("\n" + faintStyle.Render(
			"n new product   x delete   u new admin   R reload   g store   l logout   q quit"))
	}

	if m.adminPanel.submitting {
		b.WriteString("\n" + faintStyle.Render("Working..."))
	}
	if m.statusMsg != "" {
		b.WriteString("\n" + statusStyle.Render(m.statusMsg))
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg))
	}
	return b.String()
}
