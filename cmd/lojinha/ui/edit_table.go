package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Column describes one editable-table column. Field is the store field
// name committed on blur; an empty Field makes the column read-only.
type Column struct {
	Title string
	Field string
	Width int
}

// EditRow is one rendered row. Badge is the row-state marker shown after
// the cells (dirty/saving/failed).
type EditRow struct {
	ID    int
	Cells []string
	Badge string
}

// EditCommit is the buffered value handed to the owning store when a cell
// leaves editing. It is a local mutation only; persisting the row is a
// separate, explicit save.
type EditCommit struct {
	ID    int
	Field string
	Value string
}

// EditableTable is a table where one cell at a time can enter editing.
// A cell is either viewing (shows the last-committed value) or editing
// (holds a buffer in a textinput); leaving the cell commits the buffer,
// cancelling with esc discards it.
type EditableTable struct {
	columns   []Column
	rows      []EditRow
	cursorRow int
	cursorCol int
	editing   bool
	input     textinput.Model
	styles    Styles
}

// NewEditableTable creates an empty table with the given columns.
func NewEditableTable(columns []Column, styles Styles) EditableTable {
	ti := textinput.New()
	ti.CharLimit = 120
	return EditableTable{
		columns: columns,
		input:   ti,
		styles:  styles,
	}
}

// SetRows replaces the table data. The cursor is clamped; a cell being
// edited for a row that disappeared is dropped (the unmount case).
func (t *EditableTable) SetRows(rows []EditRow) {
	t.rows = rows
	if t.cursorRow >= len(rows) {
		t.cursorRow = len(rows) - 1
	}
	if t.cursorRow < 0 {
		t.cursorRow = 0
	}
	if t.editing {
		if _, ok := t.SelectedID(); !ok {
			t.editing = false
			t.input.Blur()
		}
	}
}

// SelectedID returns the id of the row under the cursor.
func (t *EditableTable) SelectedID() (int, bool) {
	if t.cursorRow < 0 || t.cursorRow >= len(t.rows) {
		return 0, false
	}
	return t.rows[t.cursorRow].ID, true
}

// Editing reports whether a cell currently holds an edit buffer.
func (t *EditableTable) Editing() bool { return t.editing }

// Update handles key input. A non-nil EditCommit means a cell just left
// editing with a buffered value for the owning store.
func (t EditableTable) Update(msg tea.Msg) (EditableTable, *EditCommit, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if t.editing {
			var cmd tea.Cmd
			t.input, cmd = t.input.Update(msg)
			return t, nil, cmd
		}
		return t, nil, nil
	}

	if t.editing {
		switch keyMsg.String() {
		case "esc":
			// Discard the buffer, back to viewing.
			t.editing = false
			t.input.Blur()
			return t, nil, nil
		case "enter", "tab":
			commit := t.commitBuffer()
			return t, commit, nil
		default:
			var cmd tea.Cmd
			t.input, cmd = t.input.Update(msg)
			return t, nil, cmd
		}
	}

	switch keyMsg.String() {
	case "up", "k":
		if t.cursorRow > 0 {
			t.cursorRow--
		}
	case "down", "j":
		if t.cursorRow < len(t.rows)-1 {
			t.cursorRow++
		}
	case "left", "h":
		if t.cursorCol > 0 {
			t.cursorCol--
		}
	case "right", "l":
		if t.cursorCol < len(t.columns)-1 {
			t.cursorCol++
		}
	case "enter":
		t.beginEdit()
		if t.editing {
			return t, nil, textinput.Blink
		}
	}
	return t, nil, nil
}

// beginEdit moves the selected cell into editing, seeding the buffer with
// the current value.
func (t *EditableTable) beginEdit() {
	if t.cursorRow < 0 || t.cursorRow >= len(t.rows) {
		return
	}
	col := t.columns[t.cursorCol]
	if col.Field == "" {
		return
	}
	row := t.rows[t.cursorRow]
	value := ""
	if t.cursorCol < len(row.Cells) {
		value = row.Cells[t.cursorCol]
	}
	t.input.SetValue(value)
	t.input.CursorEnd()
	t.input.Width = col.Width
	t.input.Focus()
	t.editing = true
}

// commitBuffer leaves editing and hands the buffer to the caller. Empty
// buffers still produce a commit; the store's fallback rule decides
// whether to keep the previous value.
func (t *EditableTable) commitBuffer() *EditCommit {
	t.editing = false
	t.input.Blur()
	id, ok := t.SelectedID()
	if !ok {
		return nil
	}
	return &EditCommit{
		ID:    id,
		Field: t.columns[t.cursorCol].Field,
		Value: t.input.Value(),
	}
}

// View renders the table.
func (t EditableTable) View() string {
	var sb strings.Builder

	headerStyle := t.styles.Bold.Padding(0, 1)
	cellStyle := t.styles.Body.Padding(0, 1)
	selStyle := t.styles.Selected.Padding(0, 1)
	roStyle := t.styles.Muted.Padding(0, 1)

	for _, col := range t.columns {
		sb.WriteString(headerStyle.Width(col.Width + 2).Render(col.Title))
	}
	sb.WriteString("\n")

	totalWidth := 0
	for _, col := range t.columns {
		totalWidth += col.Width + 2
	}
	sb.WriteString(t.styles.RenderDivider(totalWidth) + "\n")

	for ri, row := range t.rows {
		for ci, col := range t.columns {
			cell := ""
			if ci < len(row.Cells) {
				cell = row.Cells[ci]
			}
			selected := ri == t.cursorRow && ci == t.cursorCol
			switch {
			case selected && t.editing:
				sb.WriteString(cellStyle.Width(col.Width + 2).Render(t.input.View()))
			case selected:
				sb.WriteString(selStyle.Width(col.Width + 2).Render(cell))
			case col.Field == "":
				sb.WriteString(roStyle.Width(col.Width + 2).Render(cell))
			default:
				sb.WriteString(cellStyle.Width(col.Width + 2).Render(cell))
			}
		}
		if row.Badge != "" {
			sb.WriteString(" " + t.styles.Warning.Render(row.Badge))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
