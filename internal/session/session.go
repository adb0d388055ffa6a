// Package session owns the authentication state: the bearer token and the
// authenticated flag derived from it. The flag and the token are never
// allowed to disagree; everything else in the client reads them through
// the Gate.
package session

import (
	"context"
	"strings"
	"sync"

	"lojinha/internal/api"
	"lojinha/internal/logging"
)

// Gate holds the session state. The token is written only on login and
// logout; readers always see either the current token or none.
type Gate struct {
	mu     sync.RWMutex
	client *api.Client
	store  TokenStore
	token  string
}

// NewGate creates a gate with no active session.
func NewGate(client *api.Client, store TokenStore) *Gate {
	return &Gate{client: client, store: store}
}

// Login exchanges credentials for a token. On success the token is stored
// and the session becomes authenticated; on failure state is unchanged and
// the returned error carries a user-visible message.
func (g *Gate) Login(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return api.NewValidationError("Please fill out all fields with valid values.")
	}

	token, err := g.client.Login(ctx, email, password)
	if err != nil {
		logging.Session("login failed: %v", err)
		return err
	}

	g.mu.Lock()
	g.token = token
	g.mu.Unlock()

	// Persistence is best-effort; the in-memory session is authoritative
	// for this process.
	if err := g.store.Set(token); err != nil {
		logging.Get(logging.CategorySession).Warn("could not persist token: %v", err)
	}
	logging.Session("login ok")
	return nil
}

// Register creates a new user account. Registration does not log the user
// in; the original flow sends them to the login page afterwards.
func (g *Gate) Register(ctx context.Context, name, email, password string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return api.NewValidationError("Please fill out all fields with valid values.")
	}
	return g.client.Register(ctx, name, email, password)
}

// Logout clears the token. Always succeeds; there is no network effect.
func (g *Gate) Logout() {
	g.mu.Lock()
	g.token = ""
	g.mu.Unlock()

	if err := g.store.Clear(); err != nil {
		logging.Get(logging.CategorySession).Warn("could not clear stored token: %v", err)
	}
	logging.Session("logout")
}

// Restore loads a previously stored token, if present. Returns whether a
// token was found, so the router can land on the authenticated view.
// Invoked once at process start.
func (g *Gate) Restore() bool {
	token, ok := g.store.Get()
	if !ok {
		return false
	}
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
	logging.Session("session restored from storage")
	return true
}

// Token returns the current bearer token and whether one is present.
func (g *Gate) Token() (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token, g.token != ""
}

// Authenticated reports whether a session is active. By construction this
// is exactly "a token is present".
func (g *Gate) Authenticated() bool {
	_, ok := g.Token()
	return ok
}
