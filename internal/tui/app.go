// Package tui contains the storefront view components: the login form,
// the catalog grid with its filter controls, the favorites grid, the cart
// with the order form, and the admin panel. It follows The Elm
// Architecture: one root Model, messages for every async result, and
// pure View rendering.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/su-perfume/storefront/internal/core/domain"
	"github.com/su-perfume/storefront/internal/core/port"
	"github.com/su-perfume/storefront/internal/core/service"
)

// screen represents which view is active.
type screen int

const (
	screenLogin screen = iota
	screenCatalog
	screenFavorites
	screenCart
	screenOrderForm
	screenAdmin
)

// Async result messages.

type (
	catalogMsg struct{ err error }

	authMsg struct {
		sess domain.Session
		mode authMode
		err  error
	}

	orderMsg struct{ err error }

	adminMsg struct {
		info    string
		refresh bool
		err     error
	}
)

// Model is the root application model holding all view state.
type Model struct {
	ctx context.Context

	catalog     port.CatalogViewer
	collections port.CollectionsKeeper
	orders      port.OrderSubmitter
	session     port.SessionManager
	admin       port.AdminManager

	placeholderImage string

	state  screen
	width  int
	height int

	loading   bool
	errMsg    string
	statusMsg string

	// Catalog view state.
	filter      domain.FilterState
	products    []domain.Product
	cursor      int
	catFocus    catalogFocus
	showFilters bool
	searchInput textinput.Model
	minInput    textinput.Model
	maxInput    textinput.Model
	brandIdx    int

	// Other screens.
	favCursor  int
	cartCursor int
	login      loginForm
	order      orderForm
	adminPanel adminPanel
}

func New(
	ctx context.Context,
	catalog port.CatalogViewer,
	collections port.CollectionsKeeper,
	orders port.OrderSubmitter,
	session port.SessionManager,
	admin port.AdminManager,
	placeholderImage string,
) Model {
	search := textinput.New()
	search.Placeholder = "Name or brand..."

	minIn := textinput.New()
	minIn.Placeholder = "min $"
	minIn.CharLimit = 12

	maxIn := textinput.New()
	maxIn.Placeholder = "max $"
	maxIn.CharLimit = 12

	m := Model{
		ctx:              ctx,
		catalog:          catalog,
		collections:      collections,
		orders:           orders,
		session:          session,
		admin:            admin,
		placeholderImage: placeholderImage,
		filter:           domain.NewFilterState(),
		searchInput:      search,
		minInput:         minIn,
		maxInput:         maxIn,
		login:            newLoginForm(),
		order:            newOrderForm(),
		adminPanel:       newAdminPanel(),
	}

	if sess := session.Current(); sess.IsAuthenticated() {
		m.state = m.homeScreen(sess)
		m.loading = true
	} else {
		m.state = screenLogin
	}
	return m
}

func (m Model) homeScreen(sess domain.Session) screen {
	if sess.IsAdmin() {
		return screenAdmin
	}
	return screenCatalog
}

func (m Model) Init() tea.Cmd {
	if m.state == screenLogin {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.fetchCatalog())
}

// fetchCatalog loads the product list in the background; the result comes
// back as a catalogMsg.
func (m Model) fetchCatalog() tea.Cmd {
	return func() tea.Msg {
		return catalogMsg{err: m.catalog.Refresh(m.ctx)}
	}
}

func (m Model) submitAuth() tea.Cmd {
	f := m.login
	return func() tea.Msg {
		if f.mode == modeSignIn {
			sess, err := m.session.Login(m.ctx, f.email(), f.password())
			return authMsg{sess: sess, mode: f.mode, err: err}
		}
		sess, err := m.session.Register(m.ctx, f.name(), f.email(), f.password(), f.confirm())
		return authMsg{sess: sess, mode: f.mode, err: err}
	}
}

func (m Model) submitOrder() tea.Cmd {
	contact := m.order.contact()
	return func() tea.Msg {
		return orderMsg{err: m.orders.Submit(m.ctx, contact)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case catalogMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = "Failed to load products. Press R to reload."
			return m, nil
		}
		m.errMsg = ""
		m.applyFilter()
		return m, nil

	case authMsg:
		m.login.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		if msg.mode == modeSignUp && !msg.sess.IsAuthenticated() {
			// Registration-only response: back to sign-in.
			m.login.toggleMode()
			m.statusMsg = "Registered. Sign in to continue."
			return m, nil
		}
		m.state = m.homeScreen(msg.sess)
		m.loading = true
		return m, m.fetchCatalog()

	case orderMsg:
		m.order.submitting = false
		if msg.err != nil {
			switch {
			case errors.Is(msg.err, service.ErrInvalidContact):
				m.errMsg = "Please fill in your name, phone and address."
			case errors.Is(msg.err, service.ErrEmptyCart):
				m.errMsg = "Your cart is empty."
			default:
				m.errMsg = "Could not send the order. Please try again."
			}
			return m, nil
		}
		m.order.reset()
		m.errMsg = ""
		m.statusMsg = "Order sent! We will contact you."
		m.state = screenCart
		m.cartCursor = 0
		return m, nil

	case adminMsg:
		m.adminPanel.submitting = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.statusMsg = msg.info
		m.adminPanel.resetProductForm()
		m.adminPanel.resetAdminForm()
		m.adminPanel.setSection(sectionProducts)
		if msg.refresh {
			m.loading = true
			return m, m.fetchCatalog()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.state {
	case screenLogin:
		return m.updateLogin(msg)
	case screenCatalog:
		return m.updateCatalog(msg)
	case screenFavorites:
		return m.updateFavorites(msg)
	case screenCart:
		return m.updateCart(msg)
	case screenOrderForm:
		return m.updateOrderForm(msg)
	case screenAdmin:
		return m.updateAdmin(msg)
	}
	return m, nil
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+t":
			m.login.toggleMode()
			m.errMsg = ""
			return m, nil
		case "tab", "down":
			m.login.focusNext(false)
			return m, nil
		case "shift+tab", "up":
			m.login.focusNext(true)
			return m, nil
		case "enter":
			if m.login.submitting {
				return m, nil
			}
			m.login.submitting = true
			m.statusMsg = ""
			return m, m.submitAuth()
		}
	}
	cmd := m.login.updateInputs(msg)
	return m, cmd
}

func (m *Model) logout() {
	m.session.Logout()
	m.state = screenLogin
	m.login.reset()
	m.statusMsg = ""
	m.errMsg = ""
}

func (m Model) View() string {
	switch m.state {
	case screenLogin:
		return m.renderLogin()
	case screenCatalog:
		return m.renderCatalog()
	case screenFavorites:
		return m.renderFavorites()
	case screenCart:
		return m.renderCart()
	case screenOrderForm:
		return m.renderOrderForm()
	case screenAdmin:
		return m.renderAdmin()
	}
	return ""
}
