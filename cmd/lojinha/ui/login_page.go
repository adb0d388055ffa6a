package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginPageModel is the credential form. Submission is emitted as a
// LoginSubmitMsg; the outcome comes back through SetStatus.
type LoginPageModel struct {
	email    textinput.Model
	password textinput.Model
	focus    int
	status   string
	isError  bool
	styles   Styles
}

// NewLoginPageModel creates the login form.
func NewLoginPageModel(styles Styles) LoginPageModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.Width = 40
	password.EchoMode = textinput.EchoPassword

	return LoginPageModel{
		email:    email,
		password: password,
		styles:   styles,
	}
}

// Reset clears the form for a fresh visit.
func (m *LoginPageModel) Reset() {
	m.email.SetValue("")
	m.password.SetValue("")
	m.status = ""
	m.isError = false
	m.focus = 0
	m.email.Focus()
	m.password.Blur()
}

// SetStatus shows the outcome of the last attempt.
func (m *LoginPageModel) SetStatus(msg string, isError bool) {
	m.status = msg
	m.isError = isError
}

// Update handles form input.
func (m LoginPageModel) Update(msg tea.Msg) (LoginPageModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "tab", "shift+tab", "down", "up":
			m.focus = (m.focus + 1) % 2
			if m.focus == 0 {
				m.email.Focus()
				m.password.Blur()
			} else {
				m.password.Focus()
				m.email.Blur()
			}
			return m, textinput.Blink
		case "enter":
			email := strings.TrimSpace(m.email.Value())
			password := m.password.Value()
			if email == "" || password == "" {
				m.status = "Please fill out all fields with valid values."
				m.isError = true
				return m, nil
			}
			return m, func() tea.Msg {
				return LoginSubmitMsg{Email: email, Password: password}
			}
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

// View renders the form.
func (m LoginPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Login") + "\n\n")
	sb.WriteString("Email:    " + m.email.View() + "\n")
	sb.WriteString("Password: " + m.password.View() + "\n\n")
	sb.WriteString(m.styles.Muted.Render("[Enter] Submit  [Tab] Next field") + "\n")

	if m.status != "" {
		sb.WriteString("\n")
		if m.isError {
			sb.WriteString(m.styles.Error.Render(m.status))
		} else {
			sb.WriteString(m.styles.Success.Render(m.status))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
