package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"lojinha/internal/api"
	"lojinha/internal/catalog"
	"lojinha/internal/types"
)

// productFocus selects between the add form and the table.
type productFocus int

const (
	productFocusForm productFocus = iota
	productFocusTable
)

// ProductPageModel is the catalog-management view: an add-product form and
// an inline-editable product table with save and delete actions.
type ProductPageModel struct {
	products  []catalog.ProductRow
	suppliers []catalog.SupplierRow

	// Add form: nome, descricao, preco, estoque, plus a supplier selector.
	form         []textinput.Model
	formFocus    int
	formSupplier int // index into suppliers; -1 = none selected

	focus   productFocus
	table   EditableTable
	confirm int // product id pending delete confirmation; 0 = none
	status  string
	isError bool
	styles  Styles
}

// productColumns is the editable-table layout. The supplier column is
// read-only in the grid; the supplier link is cycled with a dedicated key.
var productColumns = []Column{
	{Title: "Product Name", Field: types.FieldName, Width: 18},
	{Title: "Description", Field: types.FieldDescription, Width: 24},
	{Title: "Price", Field: types.FieldPrice, Width: 10},
	{Title: "Stock", Field: types.FieldStock, Width: 7},
	{Title: "Supplier", Field: "", Width: 16},
}

// NewProductPageModel creates the management view.
func NewProductPageModel(styles Styles) ProductPageModel {
	placeholders := []string{"nome", "descricao", "preco", "estoque"}
	form := make([]textinput.Model, len(placeholders))
	for i, p := range placeholders {
		ti := textinput.New()
		ti.Placeholder = p
		ti.CharLimit = 120
		ti.Width = 30
		form[i] = ti
	}
	form[0].Focus()

	return ProductPageModel{
		form:         form,
		formSupplier: -1,
		table:        NewEditableTable(productColumns, styles),
		styles:       styles,
	}
}

// UpdateContent replaces the rendered data.
func (m *ProductPageModel) UpdateContent(products []catalog.ProductRow, suppliers []catalog.SupplierRow) {
	m.products = products
	m.suppliers = suppliers
	if m.formSupplier >= len(suppliers) {
		m.formSupplier = -1
	}

	rows := make([]EditRow, len(products))
	for i, p := range products {
		rows[i] = EditRow{
			ID: p.ID,
			Cells: []string{
				p.Name,
				p.Description,
				p.Price,
				strconv.Itoa(p.Stock),
				m.supplierName(p.SupplierID),
			},
			Badge: rowBadge(p.State),
		}
	}
	m.table.SetRows(rows)
}

// rowBadge maps the row's edit state to a short marker.
func rowBadge(state catalog.RowState) string {
	switch state {
	case catalog.RowDirty:
		return "*"
	case catalog.RowSaving:
		return "…"
	case catalog.RowFailed:
		return "!"
	}
	return ""
}

func (m *ProductPageModel) supplierName(id int) string {
	for _, s := range m.suppliers {
		if s.ID == id {
			return s.Name
		}
	}
	return "-"
}

// SetStatus shows the outcome of the last action.
func (m *ProductPageModel) SetStatus(msg string, isError bool) {
	m.status = msg
	m.isError = isError
}

// ClearForm empties the add form after a successful create.
func (m *ProductPageModel) ClearForm() {
	for i := range m.form {
		m.form[i].SetValue("")
	}
	m.formSupplier = -1
	m.setFormFocus(0)
}

// ConfirmPending returns the product id awaiting delete confirmation.
func (m *ProductPageModel) ConfirmPending() (int, bool) {
	return m.confirm, m.confirm != 0
}

// Update handles key input.
func (m ProductPageModel) Update(msg tea.Msg) (ProductPageModel, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	// A pending confirmation prompt blocks everything else.
	if m.confirm != 0 && isKey {
		switch keyMsg.String() {
		case "y", "Y":
			productID := m.confirm
			m.confirm = 0
			return m, func() tea.Msg {
				return DeleteProductMsg{ProductID: productID}
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

func (m ProductPageModel) updateForm(msg tea.Msg) (ProductPageModel, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		// Field index len(m.form) is the supplier selector.
		switch keyMsg.String() {
		case "esc":
			m.focus = productFocusTable
			m.form[m.formFocus].Blur()
			return m, nil
		case "tab", "down":
			m.setFormFocus((m.formFocus + 1) % (len(m.form) + 1))
			return m, textinput.Blink
		case "shift+tab", "up":
			m.setFormFocus((m.formFocus + len(m.form)) % (len(m.form) + 1))
			return m, textinput.Blink
		case "left", "right":
			if m.formFocus == len(m.form) && len(m.suppliers) > 0 {
				if keyMsg.String() == "right" {
					m.formSupplier++
					if m.formSupplier >= len(m.suppliers) {
						m.formSupplier = -1
					}
				} else {
					m.formSupplier--
					if m.formSupplier < -1 {
						m.formSupplier = len(m.suppliers) - 1
					}
				}
				return m, nil
			}
		case "enter":
			return m.submitForm()
		}
	}

	if m.formFocus < len(m.form) {
		var cmd tea.Cmd
		m.form[m.formFocus], cmd = m.form[m.formFocus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ProductPageModel) submitForm() (ProductPageModel, tea.Cmd) {
	name := strings.TrimSpace(m.form[0].Value())
	description := strings.TrimSpace(m.form[1].Value())
	price := strings.TrimSpace(m.form[2].Value())
	stock, err := strconv.Atoi(strings.TrimSpace(m.form[3].Value()))
	if err != nil {
		stock = 0
	}

	if name == "" || description == "" || price == "" || stock < 1 {
		m.status = "Please fill out all fields with valid values."
		m.isError = true
		return m, nil
	}

	supplierID := 0
	if m.formSupplier >= 0 && m.formSupplier < len(m.suppliers) {
		supplierID = m.suppliers[m.formSupplier].ID
	}

	input := api.ProductInput{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		SupplierID:  supplierID,
	}
	return m, func() tea.Msg {
		return AddProductMsg{Input: input}
	}
}

func (m *ProductPageModel) setFormFocus(i int) {
	if m.formFocus < len(m.form) {
		m.form[m.formFocus].Blur()
	}
	m.formFocus = i
	if i < len(m.form) {
		m.form[i].Focus()
	}
}

func (m ProductPageModel) updateTable(msg tea.Msg) (ProductPageModel, tea.Cmd) {
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
					return SaveProductMsg{ProductID: id}
				}
			}
			return m, nil
		case "f":
			// Cycle the selected product's supplier link.
			if id, ok := m.table.SelectedID(); ok && len(m.suppliers) > 0 {
				next := m.nextSupplier(id)
				return m, func() tea.Msg {
					return SetSupplierMsg{ProductID: id, SupplierID: next}
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
			return EditProductFieldMsg{ProductID: c.ID, Field: c.Field, Value: c.Value}
		}
	}
	return m, cmd
}

// nextSupplier returns the supplier id after the product's current one,
// wrapping through "none".
func (m *ProductPageModel) nextSupplier(productID int) int {
	current := 0
	for _, p := range m.products {
		if p.ID == productID {
			current = p.SupplierID
			break
		}
	}
	for i, s := range m.suppliers {
		if s.ID == current {
			if i+1 < len(m.suppliers) {
				return m.suppliers[i+1].ID
			}
			return 0
		}
	}
	if len(m.suppliers) > 0 {
		return m.suppliers[0].ID
	}
	return 0
}

// View renders the management page.
func (m ProductPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Manage Products") + "\n")

	if m.status != "" {
		if m.isError {
			sb.WriteString(m.styles.Error.Render(m.status))
		} else {
			sb.WriteString(m.styles.Info.Render(m.status))
		}
		sb.WriteString("\n")
	}

	if m.confirm != 0 {
		prompt := "Are you sure you want to delete this product? [y/n]"
		sb.WriteString("\n" + m.styles.Warning.Render(prompt) + "\n")
		return sb.String()
	}

	// Add form
	var form strings.Builder
	form.WriteString(m.styles.Bold.Render("Add New Product") + "\n")
	labels := []string{"Product Name:", "Description: ", "Price:       ", "Stock:       "}
	for i, label := range labels {
		form.WriteString(label + " " + m.form[i].View() + "\n")
	}
	supplier := "Select a supplier"
	if m.formSupplier >= 0 && m.formSupplier < len(m.suppliers) {
		supplier = m.suppliers[m.formSupplier].Name
	}
	marker := "  "
	if m.formFocus == len(m.form) {
		marker = "> "
	}
	form.WriteString(fmt.Sprintf("Supplier:      %s%s\n", marker, supplier))

	formStyle := m.styles.Card
	if m.focus == productFocusForm {
		formStyle = formStyle.BorderForeground(m.styles.Theme.Primary)
	}
	sb.WriteString(formStyle.Render(form.String()) + "\n\n")

	// Table
	sb.WriteString(m.table.View())

	if m.focus == productFocusForm {
		sb.WriteString("\n" + m.styles.Muted.Render("[Enter] Add Product  [Tab] Next field  [Esc] To table"))
	} else if m.table.Editing() {
		sb.WriteString("\n" + m.styles.Muted.Render("[Enter] Apply  [Esc] Cancel"))
	} else {
		sb.WriteString("\n" + m.styles.Muted.Render("[Enter] Edit cell  [s] Save row  [f] Cycle supplier  [d] Delete  [i] New product"))
	}
	return sb.String()
}
