package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"lojinha/internal/catalog"
	"lojinha/internal/types"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func drain(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func testProducts() []catalog.ProductRow {
	return []catalog.ProductRow{
		{Product: types.Product{ID: 1, Name: "Caneca", Description: "ceramica", Price: "25.00", Stock: 10}},
		{Product: types.Product{ID: 2, Name: "Camiseta", Description: "algodao", Price: "49.90", Stock: 5}},
	}
}

func testSuppliers() []catalog.SupplierRow {
	return []catalog.SupplierRow{
		{Supplier: types.Supplier{ID: 1, Name: "Acme", TaxID: "11", Address: "Rua A", Phone: "555"}},
	}
}

// --- login / account ---

func TestLoginPage_EmptyFieldsRejectedLocally(t *testing.T) {
	model := NewLoginPageModel(DefaultStyles())

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("empty form must not emit a submit")
	}
	if !strings.Contains(model.View(), "Please fill out all fields with valid values.") {
		t.Error("expected the validation message in the view")
	}
}

func TestLoginPage_SubmitEmitsIntent(t *testing.T) {
	model := NewLoginPageModel(DefaultStyles())

	for _, r := range "a@b.c" {
		model, _ = model.Update(keyRunes(string(r)))
	}
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "pw" {
		model, _ = model.Update(keyRunes(string(r)))
	}

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := drain(t, cmd)
	submit, ok := msg.(LoginSubmitMsg)
	if !ok {
		t.Fatalf("expected LoginSubmitMsg, got %T", msg)
	}
	if submit.Email != "a@b.c" || submit.Password != "pw" {
		t.Errorf("unexpected submit: %+v", submit)
	}
}

func TestAccountPage_SuccessClearsInputs(t *testing.T) {
	model := NewAccountPageModel(DefaultStyles())
	for _, r := range "Ana" {
		model, _ = model.Update(keyRunes(string(r)))
	}

	model.SetStatus("Account created successfully!", false)
	view := model.View()
	if !strings.Contains(view, "Account created successfully!") {
		t.Error("expected success message in the view")
	}
	if strings.Contains(view, "Ana") {
		t.Error("success must clear the form inputs")
	}
}

// --- item page ---

func TestItemPage_QuantityClampAndDigits(t *testing.T) {
	model := NewItemPageModel(DefaultStyles())
	model.UpdateContent(testProducts(), nil)

	model.SetQuantity(1, -5)
	if got := model.Quantity(1); got != 1 {
		t.Errorf("quantity below 1 must clamp to 1, got %d", got)
	}

	model, _ = model.Update(keyRunes("2"))
	model, _ = model.Update(keyRunes("3"))
	if got := model.Quantity(1); got != 123 {
		t.Errorf("digits must append, expected 123, got %d", got)
	}
}

func TestItemPage_QuantityCappedAtMax(t *testing.T) {
	model := NewItemPageModel(DefaultStyles())
	model.UpdateContent(testProducts(), nil)

	for i := 0; i < 8; i++ {
		model, _ = model.Update(keyRunes("9"))
	}
	if got := model.Quantity(1); got != maxQuantity {
		t.Errorf("held digits must cap at %d, got %d", maxQuantity, got)
	}

	model.SetQuantity(1, maxQuantity)
	model, _ = model.Update(keyRunes("+"))
	if got := model.Quantity(1); got != maxQuantity {
		t.Errorf("increment past the cap must stay at %d, got %d", maxQuantity, got)
	}
}

func TestItemPage_AddWithoutQuantityRejected(t *testing.T) {
	model := NewItemPageModel(DefaultStyles())
	model.UpdateContent(testProducts(), nil)

	model, cmd := model.Update(keyRunes("a"))
	if cmd != nil {
		t.Fatal("zero quantity must not emit an add")
	}
	if !strings.Contains(model.View(), "Please enter a valid quantity!") {
		t.Error("expected the quantity message in the view")
	}
}

func TestItemPage_AddEmitsIntent(t *testing.T) {
	model := NewItemPageModel(DefaultStyles())
	model.UpdateContent(testProducts(), nil)

	model, _ = model.Update(keyRunes("3"))
	model, cmd := model.Update(keyRunes("a"))
	msg := drain(t, cmd)
	add, ok := msg.(AddToCartMsg)
	if !ok {
		t.Fatalf("expected AddToCartMsg, got %T", msg)
	}
	if add.ProductID != 1 || add.Quantity != 3 {
		t.Errorf("unexpected add: %+v", add)
	}
}

func TestItemPage_ShowsCartCounter(t *testing.T) {
	model := NewItemPageModel(DefaultStyles())
	model.UpdateContent(testProducts(), map[int]int{1: 4})

	view := model.View()
	if !strings.Contains(view, "in cart: 4") {
		t.Error("expected the local counter in the view")
	}
	if !strings.Contains(view, "Caneca") || !strings.Contains(view, "Camiseta") {
		t.Error("expected product names in the view")
	}
}

// --- cart page ---

func TestCartPage_RemoveEmitsProductIdentity(t *testing.T) {
	model := NewCartPageModel(DefaultStyles())
	model.UpdateContent([]types.CartLineItem{
		{CartItemID: 10, ProductID: 7, Quantity: 2, Product: types.ProductSnapshot{Name: "Caneca", Price: "25.00"}},
	})

	model, cmd := model.Update(keyRunes("x"))
	msg := drain(t, cmd)
	remove, ok := msg.(RemoveFromCartMsg)
	if !ok {
		t.Fatalf("expected RemoveFromCartMsg, got %T", msg)
	}
	if remove.ProductID != 7 {
		t.Errorf("removal is keyed by product id, got %d", remove.ProductID)
	}
}

func TestCartPage_EmptyAndTotals(t *testing.T) {
	model := NewCartPageModel(DefaultStyles())
	if !strings.Contains(model.View(), "Your cart is empty.") {
		t.Error("expected the empty-cart message")
	}

	model.UpdateContent([]types.CartLineItem{
		{ProductID: 7, Quantity: 2, Product: types.ProductSnapshot{Name: "Caneca", Price: "25.00"}},
	})
	view := model.View()
	if !strings.Contains(view, "Caneca") || !strings.Contains(view, "50.00") {
		t.Errorf("expected line with total in the view:\n%s", view)
	}
}

// --- editable table ---

func TestEditableTable_CommitAndCancel(t *testing.T) {
	table := NewEditableTable([]Column{
		{Title: "Name", Field: types.FieldName, Width: 10},
	}, DefaultStyles())
	table.SetRows([]EditRow{{ID: 1, Cells: []string{"Caneca"}}})

	// Enter begins editing, seeded with the current value.
	table, commit, _ := table.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if commit != nil {
		t.Fatal("starting an edit must not commit")
	}
	if !table.Editing() {
		t.Fatal("expected editing mode")
	}

	// Esc cancels: no commit, back to viewing.
	table, commit, _ = table.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if commit != nil {
		t.Fatal("cancel must not commit")
	}
	if table.Editing() {
		t.Fatal("esc must leave editing mode")
	}

	// Edit again and commit with enter.
	table, _, _ = table.Update(tea.KeyMsg{Type: tea.KeyEnter})
	table, _, _ = table.Update(keyRunes("!"))
	table, commit, _ = table.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if commit == nil {
		t.Fatal("expected a commit")
	}
	if commit.ID != 1 || commit.Field != types.FieldName {
		t.Errorf("unexpected commit target: %+v", commit)
	}
	if !strings.HasSuffix(commit.Value, "!") {
		t.Errorf("expected the typed rune in the buffer, got %q", commit.Value)
	}
}

func TestEditableTable_ReadOnlyColumn(t *testing.T) {
	table := NewEditableTable([]Column{
		{Title: "Supplier", Field: "", Width: 10},
	}, DefaultStyles())
	table.SetRows([]EditRow{{ID: 1, Cells: []string{"Acme"}}})

	table, _, _ = table.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if table.Editing() {
		t.Error("read-only columns must not enter editing")
	}
}

func TestEditableTable_RowGoneDropsEdit(t *testing.T) {
	table := NewEditableTable([]Column{
		{Title: "Name", Field: types.FieldName, Width: 10},
	}, DefaultStyles())
	table.SetRows([]EditRow{{ID: 1, Cells: []string{"Caneca"}}})

	table, _, _ = table.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !table.Editing() {
		t.Fatal("expected editing mode")
	}

	table.SetRows(nil)
	if table.Editing() {
		t.Error("an edit for a removed row must be dropped")
	}
}

// --- product manager ---

func TestProductPage_DeleteNeedsConfirmation(t *testing.T) {
	model := NewProductPageModel(DefaultStyles())
	model.UpdateContent(testProducts(), testSuppliers())

	// Leave the form, then ask for a delete.
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model, cmd := model.Update(keyRunes("d"))
	if cmd != nil {
		t.Fatal("the delete key alone must not emit anything")
	}
	if _, pending := model.ConfirmPending(); !pending {
		t.Fatal("expected a pending confirmation")
	}
	if !strings.Contains(model.View(), "Are you sure") {
		t.Error("expected the confirmation prompt in the view")
	}

	// Decline: nothing emitted, prompt gone.
	model, cmd = model.Update(keyRunes("n"))
	if cmd != nil {
		t.Fatal("declining must not emit anything")
	}
	if _, pending := model.ConfirmPending(); pending {
		t.Error("declining must clear the prompt")
	}
}

func TestProductPage_DeleteConfirmedEmitsIntent(t *testing.T) {
	model := NewProductPageModel(DefaultStyles())
	model.UpdateContent(testProducts(), testSuppliers())

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model, _ = model.Update(keyRunes("d"))
	model, cmd := model.Update(keyRunes("y"))

	msg := drain(t, cmd)
	del, ok := msg.(DeleteProductMsg)
	if !ok {
		t.Fatalf("expected DeleteProductMsg, got %T", msg)
	}
	if del.ProductID != 1 {
		t.Errorf("expected product 1, got %d", del.ProductID)
	}
}

func TestProductPage_SaveEmitsIntent(t *testing.T) {
	model := NewProductPageModel(DefaultStyles())
	model.UpdateContent(testProducts(), testSuppliers())

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model, cmd := model.Update(keyRunes("s"))

	msg := drain(t, cmd)
	save, ok := msg.(SaveProductMsg)
	if !ok {
		t.Fatalf("expected SaveProductMsg, got %T", msg)
	}
	if save.ProductID != 1 {
		t.Errorf("expected product 1, got %d", save.ProductID)
	}
}

func TestProductPage_InlineEditEmitsFieldIntent(t *testing.T) {
	model := NewProductPageModel(DefaultStyles())
	model.UpdateContent(testProducts(), testSuppliers())

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter}) // begin edit
	model, _ = model.Update(keyRunes("X"))
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter}) // commit

	msg := drain(t, cmd)
	edit, ok := msg.(EditProductFieldMsg)
	if !ok {
		t.Fatalf("expected EditProductFieldMsg, got %T", msg)
	}
	if edit.ProductID != 1 || edit.Field != types.FieldName {
		t.Errorf("unexpected edit target: %+v", edit)
	}
}

func TestProductPage_DirtyBadgeRendered(t *testing.T) {
	products := testProducts()
	products[0].State = catalog.RowDirty
	products[1].State = catalog.RowFailed

	model := NewProductPageModel(DefaultStyles())
	model.UpdateContent(products, testSuppliers())
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})

	view := model.View()
	if !strings.Contains(view, "*") {
		t.Error("expected the dirty marker in the view")
	}
	if !strings.Contains(view, "!") {
		t.Error("expected the failed marker in the view")
	}
}

func TestProductPage_FormValidation(t *testing.T) {
	model := NewProductPageModel(DefaultStyles())
	model.UpdateContent(nil, nil)

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("empty form must not emit an add")
	}
	if !strings.Contains(model.View(), "Please fill out all fields with valid values.") {
		t.Error("expected the validation message in the view")
	}
}

// --- supplier page ---

func TestSupplierPage_AddFormEmitsIntent(t *testing.T) {
	model := NewSupplierPageModel(DefaultStyles())

	fields := []string{"Acme", "11222333000144", "Rua A 10", "555-0101"}
	for i, value := range fields {
		for _, r := range value {
			model, _ = model.Update(keyRunes(string(r)))
		}
		if i < len(fields)-1 {
			model, _ = model.Update(tea.KeyMsg{Type: tea.KeyTab})
		}
	}

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := drain(t, cmd)
	add, ok := msg.(AddSupplierMsg)
	if !ok {
		t.Fatalf("expected AddSupplierMsg, got %T", msg)
	}
	if add.Input.Name != "Acme" || add.Input.Phone != "555-0101" {
		t.Errorf("unexpected input: %+v", add.Input)
	}
}

func TestSupplierPage_DeleteConfirmCancel(t *testing.T) {
	model := NewSupplierPageModel(DefaultStyles())
	model.UpdateContent(testSuppliers())

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model, _ = model.Update(keyRunes("d"))
	if _, pending := model.ConfirmPending(); !pending {
		t.Fatal("expected a pending confirmation")
	}

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Fatal("cancelling must not emit anything")
	}
	if _, pending := model.ConfirmPending(); pending {
		t.Error("esc must clear the prompt")
	}
}

func TestSupplierPage_EditCommitEmitsIntent(t *testing.T) {
	model := NewSupplierPageModel(DefaultStyles())
	model.UpdateContent(testSuppliers())

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, _ = model.Update(keyRunes("2"))
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	msg := drain(t, cmd)
	edit, ok := msg.(EditSupplierFieldMsg)
	if !ok {
		t.Fatalf("expected EditSupplierFieldMsg, got %T", msg)
	}
	if edit.SupplierID != 1 || edit.Field != types.FieldName {
		t.Errorf("unexpected edit target: %+v", edit)
	}
}
