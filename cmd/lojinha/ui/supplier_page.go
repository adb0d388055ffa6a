package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"lojinha/internal/api"
	"lojinha/internal/catalog"
	"lojinha/internal/types"
)

// SupplierPageModel is the supplier-directory view: an add form and an
// inline-editable table, mirroring the product manager.
type SupplierPageModel struct {
	suppliers []catalog.SupplierRow

	form      []textinput.Model // nome, cnpj, endereco, telefone
	formFocus int

	focus   productFocus
	table   EditableTable
	confirm int // supplier id pending delete confirmation; 0 = none
	status  string
	isError bool
	styles  Styles
}

var supplierColumns = []Column{
	{Title: "Name", Field: types.FieldName, Width: 18},
	{Title: "CNPJ", Field: types.FieldTaxID, Width: 16},
	{Title: "Address", Field: types.FieldAddress, Width: 24},
	{Title: "Phone", Field: types.FieldPhone, Width: 14},
}

// NewSupplierPageModel creates the supplier view.
func NewSupplierPageModel(styles Styles) SupplierPageModel {
	placeholders := []string{"nome", "cnpj", "endereco", "telefone"}
	form := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		ti := textinput.New()
		ti.Placeholder = p
		ti.CharLimit = 120
		ti.Width = 30
		form[i] = ti
	}
	form[0].Focus()

	return SupplierPageModel{
		form:   form,
		table:  NewEditableTable(supplierColumns, styles),
		styles: styles,
	}
}

// UpdateContent replaces the rendered data.
func (m *SupplierPageModel) UpdateContent(suppliers []catalog.SupplierRow) {
	m.suppliers = suppliers

	rows := make([]EditRow, len(suppliers))
	for i, s := range suppliers {
		rows[i] = EditRow{
			ID:    s.ID,
			Cells: []string{s.Name, s.TaxID, s.Address, s.Phone},
			Badge: rowBadge(s.State),
		}
	}
	m.table.SetRows(rows)
}

// SetStatus shows the outcome of the last action.
func (m *SupplierPageModel) SetStatus(msg string, isError bool) {
	m.status = msg
	m.isError = isError
}

// ClearForm empties the add form after a successful create.
func (m *SupplierPageModel) ClearForm() {
	for i := range m.form {
		m.form[i].SetValue("")
	}
	m.setFormFocus(0)
}

// ConfirmPending returns the supplier id awaiting delete confirmation.
func (m *SupplierPageModel) ConfirmPending() (int, bool) {
	return m.confirm, m.confirm != 0
}

// Update handles key input.
func (m SupplierPageModel) Update(msg tea.Msg) (SupplierPageModel, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if m.confirm != 0 && isKey {
		switch keyMsg.String() {
		case "y", "Y":
			supplierID := m.confirm
			m.confirm = 0
			return m, func() tea.Msg {
				return DeleteSupplierMsg{SupplierID: supplierID}
			}
		case "n", "N", "esc":
			m.confirm = 0
		}
		return m, nil
	}

	if m.focus == productFocusForm {
		return m.updateForm(msg)
	}
	return m.updateTable(msg)
}

func (m SupplierPageModel) updateForm(msg tea.Msg) (SupplierPageModel, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch keyMsg.String() {
		case "esc":
			m.focus = productFocusTable
			m.form[m.formFocus].Blur()
			return m, nil
		case "tab", "down":
			m.setFormFocus((m.formFocus + 1) % len(m.form))
			return m, textinput.Blink
		case "shift+tab", "up":
			m.setFormFocus((m.formFocus + len(m.form) - 1) % len(m.form))
			return m, textinput.Blink
		case "enter":
			return m.submitForm()
		}
	}

	var cmd tea.Cmd
	m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
	return m, cmd
}

func (m SupplierPageModel) submitForm() (SupplierPageModel, tea.Cmd) {
	name := strings.TrimSpace(m.form[0].Value())
	taxID := strings.TrimSpace(m.form[1].Value())
	address := strings.TrimSpace(m.form[2].Value())
	phone := strings.TrimSpace(m.form[3].Value())

	if name == "" || taxID == "" || address == "" || phone == "" {
		m.status = "Please fill out all fields with valid values."
		m.isError = true
		return m, nil
	}

	input := api.SupplierInput{
		Name:    name,
		TaxID:   taxID,
		Address: address,
		Phone:   phone,
	}
	return m, func() tea.Msg {
		return AddSupplierMsg{Input: input}
	}
}

func (m *SupplierPageModel) setFormFocus(i int) {
	m.form[m.formFocus].Blur()
	m.formFocus = i
	m.form[i].Focus()
}

func (m SupplierPageModel) updateTable(msg tea.Msg) (SupplierPageModel, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && !m.table.Editing() {
		switch keyMsg.String() {
		case "i":
			m.focus = productFocusForm
			m.setFormFocus(0)
			return m, textinput.Blink
		case "s":
			if id, ok := m.table.SelectedID(); ok {
				return m, func() tea.Msg {
					return SaveSupplierMsg{SupplierID: id}
				}
			}
			return m, nil
		case "d":
			if id, ok := m.table.SelectedID(); ok {
				m.confirm = id
			}
			return m, nil
		}
	}

	table, commit, cmd := m.table.Update(msg)
	m.table = table
	if commit != nil {
		c := *commit
		return m, func() tea.Msg {
			return EditSupplierFieldMsg{SupplierID: c.ID, Field: c.Field, Value: c.Value}
		}
	}
	return m, cmd
}

// View renders the supplier page.
func (m SupplierPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Manage Suppliers") + "\n")

	if m.status != "" {
		if m.isError {
			sb.WriteString(m.styles.Error.Render(m.status))
		} else {
			sb.WriteString(m.styles.Info.Render(m.status))
		}
		sb.WriteString("\n")
	}

	if m.confirm != 0 {
		prompt := "Are you sure you want to delete this supplier? [y/n]"
		sb.WriteString("\n" + m.styles.Warning.Render(prompt) + "\n")
		return sb.String()
	}

	var form strings.Builder
	form.WriteString(m.styles.Bold.Render("Add New Supplier") + "\n")
	labels := []string{"Name:    ", "CNPJ:    ", "Address: ", "Phone:   "}
	for i, label := range labels {
		form.WriteString(label + " " + m.form[i].View() + "\n")
	}

	formStyle := m.styles.Card
	if m.focus == productFocusForm {
		formStyle = formStyle.BorderForeground(m.styles.Theme.Primary)
	}
	sb.WriteString(formStyle.Render(form.String()) + "\n\n")

	sb.WriteString(m.table.View())

	if m.focus == productFocusForm {
		sb.WriteString("\n" + m.styles.Muted.Render("[Enter] Add Supplier  [Tab] Next field  [Esc] To table"))
	} else if m.table.Editing() {
		sb.WriteString("\n" + m.styles.Muted.Render("[Enter] Apply  [Esc] Cancel"))
	} else {
		sb.WriteString("\n" + m.styles.Muted.Render("[Enter] Edit cell  [s] Save row  [d] Delete  [i] New supplier"))
	}
	return sb.String()
}
