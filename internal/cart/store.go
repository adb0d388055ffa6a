// Package cart holds the client-side view of the shopping cart: the
// server-owned line items from the last fetch, and a local additive
// counter of quantities added this session. The server performs the
// authoritative merge-or-create of lines; the counter is only the
// optimistic running total shown between fetches. Line prices come from
// the denormalized product snapshot and reflect the last fetch, not the
// current catalog — that staleness is by contract.
package cart

import (
	"context"
	"sync"

	"lojinha/internal/api"
	"lojinha/internal/logging"
	"lojinha/internal/session"
	"lojinha/internal/types"
)

// Messages shown when cart operations are attempted without a session.
const (
	MsgLoginToView   = "You must be logged in to view your cart."
	MsgLoginToAdd    = "You must be logged in to add items to the cart."
	MsgLoginToRemove = "You must be logged in to remove items."
)

// Store owns the cart line items. Safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	client *api.Client
	gate   *session.Gate
	items  []types.CartLineItem
	counts map[int]int // productID -> locally accumulated quantity
}

// NewStore creates an empty cart store.
func NewStore(client *api.Client, gate *session.Gate) *Store {
	return &Store{client: client, gate: gate, counts: make(map[int]int)}
}

// LoadItems fetches the cart from the backend. Without a token no network
// call is made and the snapshot is emptied. A successful fetch adopts the
// server's lines as truth and rebuilds the local counter from them.
func (s *Store) LoadItems(ctx context.Context) error {
	token, ok := s.gate.Token()
	if !ok {
		s.mu.Lock()
		s.items = nil
		s.counts = make(map[int]int)
		s.mu.Unlock()
		return api.NewAuthError(MsgLoginToView)
	}

	items, err := s.client.CartItems(ctx, token)
	if err != nil {
		logging.Get(logging.CategoryCart).Error("load items: %v", err)
		return err
	}

	counts := make(map[int]int)
	for _, it := range items {
		counts[it.ProductID] += it.Quantity
	}

	s.mu.Lock()
	s.items = items
	s.counts = counts
	s.mu.Unlock()
	logging.Cart("loaded %d cart lines", len(items))
	return nil
}

// Items returns a copy of the current line-item snapshot.
func (s *Store) Items() []types.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Quantity returns the locally accumulated quantity for a product.
func (s *Store) Quantity(productID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[productID]
}

// AddItem adds quantity of a product to the cart. Any quantity below 1 is
// clamped to 1 before submission. Without a token no network call is
// made. On success the local counter for the product is incremented; the
// server-assigned line identity is only learned on the next LoadItems.
func (s *Store) AddItem(ctx context.Context, productID, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	token, ok := s.gate.Token()
	if !ok {
		return api.NewAuthError(MsgLoginToAdd)
	}

	if err := s.client.CartAdd(ctx, token, productID, quantity); err != nil {
		logging.Get(logging.CategoryCart).Error("add item %d: %v", productID, err)
		return err
	}

	s.mu.Lock()
	s.counts[productID] += quantity
	s.mu.Unlock()
	logging.Cart("added %d x product %d", quantity, productID)
	return nil
}

// RemoveItem removes every line for the given product. Removal is keyed by
// product identity, not line-item identity. Without a token no network
// call is made. Partial-quantity removal is unsupported.
func (s *Store) RemoveItem(ctx context.Context, productID int) error {
	token, ok := s.gate.Token()
	if !ok {
		return api.NewAuthError(MsgLoginToRemove)
	}

	if err := s.client.CartRemove(ctx, token, productID); err != nil {
		logging.Get(logging.CategoryCart).Error("remove item %d: %v", productID, err)
		return err
	}

	s.mu.Lock()
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	s.items = kept
	delete(s.counts, productID)
	s.mu.Unlock()
	logging.Cart("removed product %d", productID)
	return nil
}
