package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/su-perfume/storefront/internal/core/domain"
)

// catalogFocus tracks which control on the catalog screen owns keystrokes.
type catalogFocus int

const (
	focusList catalogFocus = iota
	focusSearch
	focusMin
	focusMax
)

var sortOrder = []domain.SortKey{
	domain.SortRelevance,
	domain.SortPriceAsc,
	domain.SortPriceDesc,
	domain.SortNameAsc,
	domain.SortNameDesc,
}

var sortLabels = map[domain.SortKey]string{
	domain.SortRelevance: "relevance",
	domain.SortPriceAsc:  "price ↑",
	domain.SortPriceDesc: "price ↓",
	domain.SortNameAsc:   "name A-Z",
	domain.SortNameDesc:  "name Z-A",
}

// applyFilter re-reads the filter controls, recomputes the visible product
// list and clamps the cursor.
func (m *Model) applyFilter() {
	m.filter.Search = m.searchInput.Value()
	m.filter.MinPrice = parsePrice(m.minInput.Value())
	m.filter.MaxPrice = parsePrice(m.maxInput.Value())
	m.products = m.catalog.Display(m.filter)
	if m.cursor >= len(m.products) {
		m.cursor = len(m.products) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func parsePrice(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (m *Model) brandOptions() []string {
	return append([]string{domain.AllBrands}, m.catalog.Brands()...)
}

func (m *Model) cycleSort() {
	for i, k := range sortOrder {
		if k == m.filter.Sort {
			m.filter.Sort = sortOrder[(i+1)%len(sortOrder)]
			m.applyFilter()
			return
		}
	}
	m.filter.Sort = domain.SortRelevance
	m.applyFilter()
}

func (m *Model) cycleBrand(backwards bool) {
	opts := m.brandOptions()
	if backwards {
		m.brandIdx--
	} else {
		m.brandIdx++
	}
	if m.brandIdx < 0 {
		m.brandIdx = len(opts) - 1
	}
	if m.brandIdx >= len(opts) {
		m.brandIdx = 0
	}
	m.filter.Brand = opts[m.brandIdx]
	m.applyFilter()
}

func (m *Model) resetFilters() {
	m.filter = domain.NewFilterState()
	m.brandIdx = 0
	m.searchInput.SetValue("")
	m.minInput.SetValue("")
	m.maxInput.SetValue("")
	m.applyFilter()
}

func (m *Model) blurCatalogInputs() {
	m.catFocus = focusList
	m.searchInput.Blur()
	m.minInput.Blur()
	m.maxInput.Blur()
}

func (m Model) updateCatalog(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// Text inputs capture everything except navigation keys.
	if m.catFocus != focusList {
		switch key.String() {
		case "enter", "esc":
			m.blurCatalogInputs()
			m.applyFilter()
			return m, nil
		case "tab":
			switch m.catFocus {
			case focusSearch:
				m.focusCatalogInput(focusMin)
			case focusMin:
				m.focusCatalogInput(focusMax)
			default:
				m.blurCatalogInputs()
			}
			m.applyFilter()
			return m, nil
		}
		var cmd tea.Cmd
		switch m.catFocus {
		case focusSearch:
			m.searchInput, cmd = m.searchInput.Update(msg)
		case focusMin:
			m.minInput, cmd = m.minInput.Update(msg)
		case focusMax:
			m.maxInput, cmd = m.maxInput.Update(msg)
		}
		m.applyFilter()
		return m, cmd
	}

	switch key.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case "/":
		m.focusCatalogInput(focusSearch)
		return m, textinput.Blink
	case "f":
		m.showFilters = !m.showFilters
		if m.showFilters {
			m.focusCatalogInput(focusMin)
			return m, textinput.Blink
		}
		m.blurCatalogInputs()
	case "s":
		m.cycleSort()
	case "b":
		m.cycleBrand(false)
	case "B":
		m.cycleBrand(true)
	case "r":
		m.resetFilters()
	case "R":
		m.loading = true
		m.statusMsg = ""
		return m, m.fetchCatalog()
	case " ":
		if p, ok := m.selectedProduct(); ok {
			m.collections.ToggleFavorite(p)
		}
	case "enter", "a":
		if p, ok := m.selectedProduct(); ok {
			m.collections.AddToCart(p)
			m.statusMsg = fmt.Sprintf("%q added to cart", p.Name)
		}
	case "v":
		m.state = screenFavorites
		m.favCursor = 0
	case "c":
		m.state = screenCart
		m.cartCursor = 0
	case "p":
		if sess := m.session.Current(); sess.IsAdmin() {
			m.state = screenAdmin
		}
	case "l":
		m.logout()
	}
	return m, nil
}

func (m *Model) focusCatalogInput(f catalogFocus) {
	m.blurCatalogInputs()
	m.catFocus = f
	switch f {
	case focusSearch:
		m.searchInput.Focus()
	case focusMin:
		m.showFilters = true
		m.minInput.Focus()
	case focusMax:
		m.showFilters = true
		m.maxInput.Focus()
	}
}

func (m Model) selectedProduct() (domain.Product, bool) {
	if m.cursor < 0 || m.cursor >= len(m.products) {
		return domain.Product{}, false
	}
	return m.products[m.cursor], true
}

// productImage returns the image reference shown for a product, falling
// back to the configured placeholder when the product has none.
func (m Model) productImage(p domain.Product) string {
	if strings.TrimSpace(p.ImageURL) == "" {
		return m.placeholderImage
	}
	return p.ImageURL
}

func (m Model) header(title string) string {
	badges := badgeStyle.Render(fmt.Sprintf("♥ %d", m.collections.FavoritesCount())) +
		" " +
		badgeStyle.Render(fmt.Sprintf("🛒 %d", m.collections.TotalItemCount()))
	name := ""
	if sess := m.session.Current(); sess.IsAuthenticated() {
		name = faintStyle.Render("  " + sess.User.Name)
	}
	return titleStyle.Render("SU PERFUME") + "  " +
		headerStyle.Render(title) + name + "  " + badges
}

func (m Model) renderProductRow(p domain.Product, selected bool) string {
	marks := "  "
	if m.collections.IsFavorite(p.ID) {
		marks = "♥ "
	}
	cart := "   "
	if q := m.cartQuantity(p.ID); q > 0 {
		cart = fmt.Sprintf("×%d ", q)
	}
	line := fmt.Sprintf("%s%-28s %-14s %s %s",
		marks, truncate(p.Name, 28), truncate(p.Brand, 14),
		priceStyle.Render(fmt.Sprintf("$%8.2f", p.CostValue())), cart)
	if selected {
		return selectedStyle.Render("> " + line)
	}
	return rowStyle.Render("  " + line)
}

func (m Model) cartQuantity(id string) int {
	for _, l := range m.collections.Cart() {
		if l.Product.ID == id {
			return l.Quantity
		}
	}
	return 0
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (m Model) renderControls() string {
	var b strings.Builder
	b.WriteString("Search: " + m.searchInput.View())
	b.WriteString("   Sort: " + sortLabels[m.filter.Sort])
	b.WriteString("   Brand: " + m.filter.Brand)
	if m.showFilters {
		b.WriteString("\nPrice:  " + m.minInput.View() + " - " + m.maxInput.View())
	}
	return boxStyle.Render(b.String())
}

func (m Model) renderCatalog() string {
	var b strings.Builder
	b.WriteString(m.header("Products"))
	b.WriteString("\n")
	b.WriteString(m.renderControls())
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(faintStyle.Render("Loading products..."))
	case m.errMsg != "":
		b.WriteString(errorStyle.Render(m.errMsg))
	case len(m.products) == 0:
		b.WriteString(faintStyle.Render("No products found."))
	default:
		b.WriteString(faintStyle.Render(fmt.Sprintf("Found: %d", len(m.products))))
		b.WriteString("\n")
		for i, p := range m.products {
			b.WriteString(m.renderProductRow(p, m.catFocus == focusList && i == m.cursor))
			b.WriteString("\n")
		}
		if p, ok := m.selectedProduct(); ok {
			b.WriteString(faintStyle.Render(truncate(p.Description, 76)))
			b.WriteString("\n")
			b.WriteString(faintStyle.Render("img: " + truncate(m.productImage(p), 60)))
			b.WriteString("\n")
		}
	}

	if m.statusMsg != "" {
		b.WriteString("\n" + statusStyle.Render(m.statusMsg))
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render(
		"/ search   s sort   b brand   f price   r reset   R reload\n" +
			"space ♥   enter add to cart   v favorites   c cart   l logout   q quit"))
	return b.String()
}

func (m Model) updateFavorites(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	favs := m.collections.Favorites()
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.favCursor > 0 {
			m.favCursor--
		}
	case "down", "j":
		if m.favCursor < len(favs)-1 {
			m.favCursor++
		}
	case " ":
		if m.favCursor < len(favs) {
			m.collections.ToggleFavorite(favs[m.favCursor].Product)
			if m.favCursor >= m.collections.FavoritesCount() && m.favCursor > 0 {
				m.favCursor--
			}
		}
	case "enter", "a":
		if m.favCursor < len(favs) {
			p := favs[m.favCursor].Product
			m.collections.AddToCart(p)
			m.statusMsg = fmt.Sprintf("%q added to cart", p.Name)
		}
	case "c":
		m.state = screenCart
		m.cartCursor = 0
	case "g", "esc":
		m.state = screenCatalog
	case "l":
		m.logout()
	}
	return m, nil
}

func (m Model) renderFavorites() string {
	var b strings.Builder
	b.WriteString(m.header("Favorites"))
	b.WriteString("\n\n")
	favs := m.collections.Favorites()
	if len(favs) == 0 {
		b.WriteString(faintStyle.Render("Nothing here yet. Press space on a product to keep it."))
	} else {
		for i, f := range favs {
			b.WriteString(m.renderProductRow(f.Product, i == m.favCursor))
			b.WriteString("\n")
		}
	}
	if m.statusMsg != "" {
		b.WriteString("\n" + statusStyle.Render(m.statusMsg))
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("space remove   enter add to cart   g back   c cart   q quit"))
	return b.String()
}
