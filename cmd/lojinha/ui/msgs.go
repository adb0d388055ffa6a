package ui

import "lojinha/internal/api"

// Intent messages emitted by page models. Pages never touch the network;
// the app model translates these into store calls running off the update
// loop.

// LoginSubmitMsg asks for a login attempt.
type LoginSubmitMsg struct {
	Email    string
	Password string
}

// RegisterSubmitMsg asks for an account creation.
type RegisterSubmitMsg struct {
	Name     string
	Email    string
	Password string
}

// AddToCartMsg asks to add a product to the cart.
type AddToCartMsg struct {
	ProductID int
	Quantity  int
}

// RemoveFromCartMsg asks to remove every cart line for a product.
type RemoveFromCartMsg struct {
	ProductID int
}

// AddProductMsg asks to create a product.
type AddProductMsg struct {
	Input api.ProductInput
}

// EditProductFieldMsg carries a committed inline-edit buffer. Applying it
// is a local mutation only.
type EditProductFieldMsg struct {
	ProductID int
	Field     string
	Value     string
}

// EditSupplierFieldMsg carries a committed supplier inline edit.
type EditSupplierFieldMsg struct {
	SupplierID int
	Field      string
	Value      string
}

// SaveProductMsg asks to persist a (possibly dirty) product row.
type SaveProductMsg struct {
	ProductID int
}

// DeleteProductMsg asks to delete a product. Emitted only after the user
// confirmed the deletion prompt.
type DeleteProductMsg struct {
	ProductID int
}

// SetSupplierMsg asks to change a product's supplier link locally.
type SetSupplierMsg struct {
	ProductID  int
	SupplierID int
}

// AddSupplierMsg asks to create a supplier.
type AddSupplierMsg struct {
	Input api.SupplierInput
}

// SaveSupplierMsg asks to persist a supplier row.
type SaveSupplierMsg struct {
	SupplierID int
}

// DeleteSupplierMsg asks to delete a supplier, post-confirmation.
type DeleteSupplierMsg struct {
	SupplierID int
}
