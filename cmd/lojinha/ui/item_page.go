package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"lojinha/internal/catalog"
)

// ItemPageModel is the storefront browse view: product cards with a
// quantity input and an add-to-cart action per product.
type ItemPageModel struct {
	products []catalog.ProductRow
	counts   map[int]int // productID -> locally accumulated cart quantity
	qty      map[int]int // productID -> quantity input value
	cursor   int
	status   string
	isError  bool
	styles   Styles
}

// NewItemPageModel creates the browse view.
func NewItemPageModel(styles Styles) ItemPageModel {
	return ItemPageModel{
		counts: make(map[int]int),
		qty:    make(map[int]int),
		styles: styles,
	}
}

// UpdateContent replaces the rendered data.
func (m *ItemPageModel) UpdateContent(products []catalog.ProductRow, counts map[int]int) {
	m.products = products
	if counts != nil {
		m.counts = counts
	}
	if m.cursor >= len(products) {
		m.cursor = len(products) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// SetStatus shows the outcome of the last action.
func (m *ItemPageModel) SetStatus(msg string, isError bool) {
	m.status = msg
	m.isError = isError
}

// maxQuantity bounds the quantity input so held digit keys cannot
// overflow it.
const maxQuantity = 9999

// SetQuantity sets the quantity input for a product, clamping the value
// to the [1, maxQuantity] range.
func (m *ItemPageModel) SetQuantity(productID, value int) {
	if value < 1 {
		value = 1
	}
	if value > maxQuantity {
		value = maxQuantity
	}
	m.qty[productID] = value
}

// ResetQuantity zeroes the quantity input after a successful add.
func (m *ItemPageModel) ResetQuantity(productID int) {
	m.qty[productID] = 0
}

// Quantity returns the current quantity input for a product.
func (m *ItemPageModel) Quantity(productID int) int {
	return m.qty[productID]
}

// Update handles key input.
func (m ItemPageModel) Update(msg tea.Msg) (ItemPageModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.products) == 0 {
		return m, nil
	}

	selected := m.products[m.cursor]

	switch keyMsg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case "+", "right", "l":
		m.SetQuantity(selected.ID, m.qty[selected.ID]+1)
	case "-", "left", "h":
		m.SetQuantity(selected.ID, m.qty[selected.ID]-1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9", "0":
		current := m.qty[selected.ID]
		digit := int(keyMsg.String()[0] - '0')
		m.SetQuantity(selected.ID, current*10+digit)
	case "backspace":
		m.qty[selected.ID] = 0
	case "a", "enter":
		quantity := m.qty[selected.ID]
		if quantity <= 0 {
			m.status = "Please enter a valid quantity!"
			m.isError = true
			return m, nil
		}
		productID := selected.ID
		return m, func() tea.Msg {
			return AddToCartMsg{ProductID: productID, Quantity: quantity}
		}
	}
	return m, nil
}

// View renders the product cards.
func (m ItemPageModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("Available Products") + "\n")

	if m.status != "" {
		if m.isError {
			sb.WriteString(m.styles.Error.Render(m.status))
		} else {
			sb.WriteString(m.styles.Info.Render(m.status))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	if len(m.products) == 0 {
		sb.WriteString(m.styles.Muted.Render("No products available.") + "\n")
		return sb.String()
	}

	for i, p := range m.products {
		var card strings.Builder
		card.WriteString(m.styles.Bold.Render(p.Name) + "\n")
		card.WriteString(p.Description + "\n")
		card.WriteString(fmt.Sprintf("Price: R$ %s    Stock: %d\n", p.Price, p.Stock))
		card.WriteString(fmt.Sprintf("Quantity: %d", m.qty[p.ID]))
		if n := m.counts[p.ID]; n > 0 {
			card.WriteString(m.styles.Success.Render(fmt.Sprintf("    in cart: %d", n)))
		}

		style := m.styles.Card
		if i == m.cursor {
			style = style.BorderForeground(m.styles.Theme.Primary)
		}
		sb.WriteString(style.Render(card.String()) + "\n")
	}

	sb.WriteString(m.styles.Muted.Render("[↑/↓] Select  [+/-/digits] Quantity  [a] Add to Cart"))
	return sb.String()
}
