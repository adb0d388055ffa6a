package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"lojinha/internal/types"
)

// CartPageModel is the cart view: one row per server line item, with
// removal keyed by product identity. Prices come from the denormalized
// snapshot fetched with the lines.
type CartPageModel struct {
	items   []types.CartLineItem
	cursor  int
	status  string
	isError bool
	styles  Styles
}

// NewCartPageModel creates the cart view.
func NewCartPageModel(styles Styles) CartPageModel {
	return CartPageModel{styles: styles}
}

// UpdateContent replaces the rendered lines.
func (m *CartPageModel) UpdateContent(items []types.CartLineItem) {
	m.items = items
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// SetStatus shows the outcome of the last action.
func (m *CartPageModel) SetStatus(msg string, isError bool) {
	m.status = msg
	m.isError = isError
}

// Update handles key input.
func (m CartPageModel) Update(msg tea.Msg) (CartPageModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "x", "delete":
		productID := m.items[m.cursor].ProductID
		return m, func() tea.Msg {
			return RemoveFromCartMsg{ProductID: productID}
		}
	}
	return m, nil
}

// View renders the cart table.
func (m CartPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Your Cart") + "\n")

	if m.status != "" {
		if m.isError {
			sb.WriteString(m.styles.Error.Render(m.status))
		} else {
			sb.WriteString(m.styles.Info.Render(m.status))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if len(m.items) == 0 {
		sb.WriteString("Your cart is empty.\n")
		return sb.String()
	}

	table := NewSimpleTable("", []string{"", "Product", "Quantity", "Price"})
	for i, it := range m.items {
		marker := " "
		if i == m.cursor {
			marker = ">"
		}
		table.AddRow(marker, it.Product.Name, fmt.Sprintf("%d", it.Quantity), "R$ "+it.LineTotal())
	}
	sb.WriteString(table.View(m.styles))

	sb.WriteString("\n" + m.styles.Muted.Render("[↑/↓] Select  [x] Remove"))
	return sb.String()
}
