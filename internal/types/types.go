// Package types provides the wire-level entities shared by the api client,
// the stores, and the view layer. The backend speaks the original catalog
// schema, so JSON tags keep its Portuguese field names while the Go side
// uses English identifiers.
package types

import (
	"fmt"
	"strconv"
)

// Product is a catalog entry. ID is server-assigned and immutable.
// Price travels as a decimal string; the backend owns price validation.
type Product struct {
	ID          int    `json:"productId"`
	Name        string `json:"nome"`
	Description string `json:"descricao"`
	Price       string `json:"preco"`
	Stock       int    `json:"estoque"`
	SupplierID  int    `json:"supplierId,omitempty"`
}

// Supplier is a supplier-directory entry.
type Supplier struct {
	ID      int    `json:"supplierId"`
	Name    string `json:"nome"`
	TaxID   string `json:"cnpj"`
	Address string `json:"endereco"`
	Phone   string `json:"telefone"`
}

// ProductSnapshot is the denormalized product copy embedded in a cart line.
// It reflects the product at the time of the last cart fetch and is never
// synchronized with the catalog afterwards.
type ProductSnapshot struct {
	ID    int    `json:"productId"`
	Name  string `json:"nome"`
	Price string `json:"preco"`
	Stock int    `json:"estoque"`
}

// CartLineItem is one server-owned cart line. ProductID is a weak reference
// into the catalog; Product is the snapshot used for display.
type CartLineItem struct {
	CartItemID int             `json:"cartItemId"`
	CartID     int             `json:"cartId"`
	ProductID  int             `json:"productId"`
	Quantity   int             `json:"quantity"`
	Product    ProductSnapshot `json:"product"`
}

// LineTotal computes quantity times snapshot price for display. An
// unparseable price renders as 0.00 rather than failing the cart view.
func (c CartLineItem) LineTotal() string {
	price, err := strconv.ParseFloat(c.Product.Price, 64)
	if err != nil {
		price = 0
	}
	return fmt.Sprintf("%.2f", price*float64(c.Quantity))
}

// Editable product field names accepted by the catalog store.
const (
	FieldName        = "nome"
	FieldDescription = "descricao"
	FieldPrice       = "preco"
	FieldStock       = "estoque"
)

// Editable supplier field names (FieldName is shared).
const (
	FieldTaxID   = "cnpj"
	FieldAddress = "endereco"
	FieldPhone   = "telefone"
)
