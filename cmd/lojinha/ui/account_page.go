package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// AccountPageModel is the account-creation form.
type AccountPageModel struct {
	inputs  []textinput.Model // name, email, password
	focus   int
	status  string
	isError bool
	styles  Styles
}

// NewAccountPageModel creates the registration form.
func NewAccountPageModel(styles Styles) AccountPageModel {
	labels := []struct {
		placeholder string
		secret      bool
	}{
		{"nome", false},
		{"email", false},
		{"senha", true},
	}

	inputs := make([]textinput.Model, len(labels))
	for i, l := range labels {
		ti := textinput.New()
		ti.Placeholder = l.placeholder
		ti.CharLimit = 128
		ti.Width = 40
		if l.secret {
			ti.EchoMode = textinput.EchoPassword
		}
		inputs[i] = ti
	}
	inputs[0].Focus()

	return AccountPageModel{inputs: inputs, styles: styles}
}

// Reset clears the form.
func (m *AccountPageModel) Reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.focus = 0
	m.inputs[0].Focus()
	m.status = ""
	m.isError = false
}

// SetStatus shows the outcome of the last attempt. On success the form is
// cleared, matching the original behavior.
func (m *AccountPageModel) SetStatus(msg string, isError bool) {
	m.status = msg
	m.isError = isError
	if !isError {
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
	}
}

// Update handles form input.
func (m AccountPageModel) Update(msg tea.Msg) (AccountPageModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.inputs))
			return m, textinput.Blink
		case "shift+tab", "up":
			m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			return m, textinput.Blink
		case "enter":
			name := strings.TrimSpace(m.inputs[0].Value())
			email := strings.TrimSpace(m.inputs[1].Value())
			password := m.inputs[2].Value()
			if name == "" || email == "" || password == "" {
				m.status = "Please fill out all fields with valid values."
				m.isError = true
				return m, nil
			}
			return m, func() tea.Msg {
				return RegisterSubmitMsg{Name: name, Email: email, Password: password}
			}
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *AccountPageModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

// View renders the form.
func (m AccountPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Crie sua conta de usuário") + "\n\n")
	sb.WriteString("Nome:     " + m.inputs[0].View() + "\n")
	sb.WriteString("Email:    " + m.inputs[1].View() + "\n")
	sb.WriteString("Senha:    " + m.inputs[2].View() + "\n\n")
	sb.WriteString(m.styles.Muted.Render("[Enter] Create Account  [Tab] Next field") + "\n")

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
