package catalog

import (
	"context"
	"strconv"
	"strings"

	"lojinha/internal/api"
	"lojinha/internal/logging"
	"lojinha/internal/types"
)

// ProductRow is a product plus its local edit state.
type ProductRow struct {
	types.Product
	State RowState
}

// LoadProducts refreshes the product snapshot from the backend. The list
// is public, no credential is attached. On failure the previous snapshot
// (or the empty list on first load) is kept.
func (s *Store) LoadProducts(ctx context.Context) error {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		logging.CatalogError("load products: %v", err)
		return err
	}

	rows := make([]ProductRow, len(products))
	for i, p := range products {
		rows[i] = ProductRow{Product: p, State: RowClean}
	}

	s.mu.Lock()
	s.products = rows
	s.mu.Unlock()
	logging.Catalog("loaded %d products", len(rows))
	return nil
}

// Products returns a copy of the current product snapshot.
func (s *Store) Products() []ProductRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ProductRow, len(s.products))
	copy(out, s.products)
	return out
}

// Product returns the row for the given id, if present.
func (s *Store) Product(id int) (ProductRow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.products {
		if row.ID == id {
			return row, true
		}
	}
	return ProductRow{}, false
}

// AddProduct creates a product. Preconditions are checked before any
// network call: name, description and price non-empty, stock at least 1,
// and an authenticated session. On success the server-returned product is
// appended and a list refresh is attempted.
func (s *Store) AddProduct(ctx context.Context, in api.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.Price) == "" || in.Stock < 1 {
		return api.NewValidationError("Please fill out all fields with valid values.")
	}

	token, ok := s.gate.Token()
	if !ok {
		return api.NewAuthError("You must be logged in to add a product.")
	}

	created, err := s.client.CreateProduct(ctx, token, in)
	if err != nil {
		logging.CatalogError("add product: %v", err)
		return err
	}

	s.mu.Lock()
	s.products = append(s.products, ProductRow{Product: created, State: RowClean})
	s.mu.Unlock()

	// Follow-up refresh adopts the server's view of the whole list. A
	// refresh failure keeps the appended row.
	if err := s.LoadProducts(ctx); err != nil {
		logging.CatalogError("refresh after add: %v", err)
	}
	return nil
}

// EditField applies an inline edit to the local copy only. The row turns
// dirty; nothing is sent until SaveProduct. An empty buffer falls back to
// the previous value, and the stock field falls back on parse failure.
func (s *Store) EditField(productID int, field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID != productID {
			continue
		}
		switch field {
		case types.FieldName:
			s.products[i].Name = value
		case types.FieldDescription:
			s.products[i].Description = value
		case types.FieldPrice:
			s.products[i].Price = value
		case types.FieldStock:
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return
			}
			s.products[i].Stock = n
		default:
			return
		}
		s.products[i].State = RowDirty
		return
	}
}

// SetProductSupplier changes the supplier link locally; like any inline
// edit it needs an explicit save to persist.
func (s *Store) SetProductSupplier(productID, supplierID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == productID {
			s.products[i].SupplierID = supplierID
			s.products[i].State = RowDirty
			return
		}
	}
}

// SaveProduct sends the full current (possibly dirty) product as an
// update. Success reconciles the row to clean without a re-fetch; failure
// keeps the dirty value and marks the row failed.
func (s *Store) SaveProduct(ctx context.Context, productID int) error {
	s.mu.Lock()
	var product types.Product
	found := false
	for i := range s.products {
		if s.products[i].ID == productID {
			s.products[i].State = RowSaving
			product = s.products[i].Product
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return api.NewValidationError("Product not found.")
	}

	err := s.client.UpdateProduct(ctx, product)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID != productID {
			continue
		}
		if err != nil {
			s.products[i].State = RowFailed
		} else {
			s.products[i].State = RowClean
		}
		break
	}
	if err != nil {
		logging.CatalogError("save product %d: %v", productID, err)
		return err
	}
	logging.Catalog("saved product %d", productID)
	return nil
}

// DeleteProduct removes a product. The caller is responsible for the
// confirmation step; this method goes straight to the network.
func (s *Store) DeleteProduct(ctx context.Context, productID int) error {
	if err := s.client.DeleteProduct(ctx, productID); err != nil {
		logging.CatalogError("delete product %d: %v", productID, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.products[:0]
	for _, row := range s.products {
		if row.ID != productID {
			kept = append(kept, row)
		}
	}
	s.products = kept
	logging.Catalog("deleted product %d", productID)
	return nil
}
