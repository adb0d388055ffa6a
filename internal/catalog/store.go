// Package catalog holds the client-side copies of the product catalog and
// the supplier directory, and the rules for editing them. Edits are
// optimistic: an inline edit mutates the local copy immediately and marks
// the row dirty; only an explicit save sends the row to the backend. There
// is no rollback — a failed save keeps the dirty value and reports why.
package catalog

import (
	"sync"

	"lojinha/internal/api"
	"lojinha/internal/session"
)

// RowState tracks where a row stands between the local copy and the
// backend.
type RowState int

const (
	// RowClean matches the last server-confirmed value.
	RowClean RowState = iota
	// RowDirty has uncommitted local edits.
	RowDirty
	// RowSaving has an update in flight.
	RowSaving
	// RowFailed kept its dirty value after a rejected save.
	RowFailed
)

func (s RowState) String() string {
	switch s {
	case RowClean:
		return "clean"
	case RowDirty:
		return "dirty"
	case RowSaving:
		return "saving"
	case RowFailed:
		return "failed"
	}
	return "unknown"
}

// Store owns the product and supplier collections. Methods are safe for
// concurrent use; the TUI runs network work off the update loop.
type Store struct {
	mu        sync.Mutex
	client    *api.Client
	gate      *session.Gate
	products  []ProductRow
	suppliers []SupplierRow
}

// NewStore creates an empty store bound to a backend client and session.
func NewStore(client *api.Client, gate *session.Gate) *Store {
	return &Store{client: client, gate: gate}
}
