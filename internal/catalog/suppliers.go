package catalog

import (
	"context"
	"strings"

	"lojinha/internal/api"
	"lojinha/internal/logging"
	"lojinha/internal/types"
)

// SupplierRow is a supplier plus its local edit state.
type SupplierRow struct {
	types.Supplier
	State RowState
}

// LoadSuppliers refreshes the supplier snapshot. Used by the supplier view
// and by the product form's supplier selector. On failure the previous
// snapshot is kept.
func (s *Store) LoadSuppliers(ctx context.Context) error {
	suppliers, err := s.client.ListSuppliers(ctx)
	if err != nil {
		logging.CatalogError("load suppliers: %v", err)
		return err
	}

	rows := make([]SupplierRow, len(suppliers))
	for i, sup := range suppliers {
		rows[i] = SupplierRow{Supplier: sup, State: RowClean}
	}

	s.mu.Lock()
	s.suppliers = rows
	s.mu.Unlock()
	logging.Catalog("loaded %d suppliers", len(rows))
	return nil
}

// Suppliers returns a copy of the current supplier snapshot.
func (s *Store) Suppliers() []SupplierRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SupplierRow, len(s.suppliers))
	copy(out, s.suppliers)
	return out
}

// Supplier returns the row for the given id, if present.
func (s *Store) Supplier(id int) (SupplierRow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.suppliers {
		if row.ID == id {
			return row, true
		}
	}
	return SupplierRow{}, false
}

// AddSupplier creates a supplier. All four fields must be non-empty. The
// backend accepts supplier mutations without a credential; the create is
// awaited before the follow-up list refresh.
func (s *Store) AddSupplier(ctx context.Context, in api.SupplierInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.TaxID) == "" ||
		strings.TrimSpace(in.Address) == "" || strings.TrimSpace(in.Phone) == "" {
		return api.NewValidationError("Please fill out all fields with valid values.")
	}

	if _, err := s.client.CreateSupplier(ctx, in); err != nil {
		logging.CatalogError("add supplier: %v", err)
		return err
	}

	if err := s.LoadSuppliers(ctx); err != nil {
		logging.CatalogError("refresh after add supplier: %v", err)
	}
	return nil
}

// EditSupplierField applies an inline edit to the local copy only. An
// empty buffer falls back to the previous value.
func (s *Store) EditSupplierField(supplierID int, field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.suppliers {
		if s.suppliers[i].ID != supplierID {
			continue
		}
		switch field {
		case types.FieldName:
			s.suppliers[i].Name = value
		case types.FieldTaxID:
			s.suppliers[i].TaxID = value
		case types.FieldAddress:
			s.suppliers[i].Address = value
		case types.FieldPhone:
			s.suppliers[i].Phone = value
		default:
			return
		}
		s.suppliers[i].State = RowDirty
		return
	}
}

// SaveSupplier sends the full current supplier as an update.
func (s *Store) SaveSupplier(ctx context.Context, supplierID int) error {
	s.mu.Lock()
	var supplier types.Supplier
	found := false
	for i := range s.suppliers {
		if s.suppliers[i].ID == supplierID {
			s.suppliers[i].State = RowSaving
			supplier = s.suppliers[i].Supplier
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return api.NewValidationError("Supplier not found.")
	}

	err := s.client.UpdateSupplier(ctx, supplier)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.suppliers {
		if s.suppliers[i].ID != supplierID {
			continue
		}
		if err != nil {
			s.suppliers[i].State = RowFailed
		} else {
			s.suppliers[i].State = RowClean
		}
		break
	}
	if err != nil {
		logging.CatalogError("save supplier %d: %v", supplierID, err)
		return err
	}
	logging.Catalog("saved supplier %d", supplierID)
	return nil
}

// DeleteSupplier removes a supplier. Confirmation is the caller's job.
func (s *Store) DeleteSupplier(ctx context.Context, supplierID int) error {
	if err := s.client.DeleteSupplier(ctx, supplierID); err != nil {
		logging.CatalogError("delete supplier %d: %v", supplierID, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.suppliers[:0]
	for _, row := range s.suppliers {
		if row.ID != supplierID {
			kept = append(kept, row)
		}
	}
	s.suppliers = kept
	logging.Catalog("deleted supplier %d", supplierID)
	return nil
}
