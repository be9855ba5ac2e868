package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type authMode int

const (
	modeSignIn authMode = iota
	modeSignUp
)

// Field order inside loginForm.inputs.
const (
	loginFieldName = iota
	loginFieldEmail
	loginFieldPassword
	loginFieldConfirm
	loginFieldCount
)

type loginForm struct {
	mode       authMode
	inputs     []textinput.Model
	focus      int
	submitting bool
}

func newLoginForm() loginForm {
	inputs := make([]textinput.Model, loginFieldCount)

	name := textinput.New()
	name.Placeholder = "Enter your name..."
	inputs[loginFieldName] = name

	email := textinput.New()
	email.Placeholder = "Enter your email..."
	inputs[loginFieldEmail] = email

	password := textinput.New()
	password.Placeholder = "Enter your password..."
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	inputs[loginFieldPassword] = password

	confirm := textinput.New()
	confirm.Placeholder = "Confirm password..."
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '•'
	inputs[loginFieldConfirm] = confirm

	f := loginForm{mode: modeSignIn, inputs: inputs, focus: loginFieldEmail}
	f.inputs[f.focus].Focus()
	return f
}

// visibleFields lists the input indices shown for the current mode.
func (f loginForm) visibleFields() []int {
	if f.mode == modeSignUp {
		return []int{loginFieldName, loginFieldEmail, loginFieldPassword, loginFieldConfirm}
	}
	return []int{loginFieldEmail, loginFieldPassword}
}

func (f *loginForm) toggleMode() {
	if f.mode == modeSignIn {
		f.mode = modeSignUp
	} else {
		f.mode = modeSignIn
	}
	f.inputs[loginFieldPassword].SetValue("")
	f.inputs[loginFieldConfirm].SetValue("")
	f.setFocus(f.visibleFields()[0])
}

func (f *loginForm) setFocus(idx int) {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.focus = idx
	f.inputs[idx].Focus()
}

func (f *loginForm) focusNext(backwards bool) {
	fields := f.visibleFields()
	pos := 0
	for i, idx := range fields {
		if idx == f.focus {
			pos = i
			break
		}
	}
	if backwards {
		pos = (pos - 1 + len(fields)) % len(fields)
	} else {
		pos = (pos + 1) % len(fields)
	}
	f.setFocus(fields[pos])
}

func (f *loginForm) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(f.inputs))
	for i := range f.inputs {
		var cmd tea.Cmd
		f.inputs[i], cmd = f.inputs[i].Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (f loginForm) name() string     { return strings.TrimSpace(f.inputs[loginFieldName].Value()) }
func (f loginForm) email() string    { return strings.TrimSpace(f.inputs[loginFieldEmail].Value()) }
func (f loginForm) password() string { return f.inputs[loginFieldPassword].Value() }
func (f loginForm) confirm() string  { return f.inputs[loginFieldConfirm].Value() }

func (f *loginForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.submitting = false
	f.setFocus(f.visibleFields()[0])
}

func (m Model) renderLogin() string {
	f := m.login

	heading := "Sign in"
	hint := "Ctrl+T → sign up    Tab → next field    Enter → continue"
	if f.mode == modeSignUp {
		heading = "Sign up"
		hint = "Ctrl+T → sign in    Tab → next field    Enter → register"
	}

	labels := map[int]string{
		loginFieldName:     "Name",
		loginFieldEmail:    "Email",
		loginFieldPassword: "Password",
		loginFieldConfirm:  "Confirm password",
	}

	var rows []string
	for _, idx := range f.visibleFields() {
		rows = append(rows, faintStyle.Render(labels[idx]), f.inputs[idx].View())
	}

	if f.mode == modeSignUp && f.confirm() != "" && f.confirm() != f.password() {
		rows = append(rows, errorStyle.Render("Passwords do not match."))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if f.submitting {
		body = lipgloss.JoinVertical(lipgloss.Left, body, faintStyle.Render("Signing in..."))
	}

	card := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render(heading), "", body))

	sections := []string{titleStyle.Render("SU PERFUME"), card}
	if m.errMsg != "" {
		sections = append(sections, errorStyle.Render(m.errMsg))
	}
	if m.statusMsg != "" {
		sections = append(sections, statusStyle.Render(m.statusMsg))
	}
	sections = append(sections, faintStyle.Render(hint))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
