package main

import (
	"testing"
	"time"

	"lojinha/internal/api"
	"lojinha/internal/config"
	"lojinha/internal/session"
)

func newTestApp(t *testing.T, loggedIn bool) *App {
	t.Helper()

	client := api.NewWithConfig(api.Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	store := session.NewMemoryStore()
	if loggedIn {
		if err := store.Set("token"); err != nil {
			t.Fatalf("seed token: %v", err)
		}
	}
	return NewApp(config.Default(), client, session.NewGate(client, store))
}

func TestInit_LoadingTracksLoadCommands(t *testing.T) {
	// The spinner tick must not count towards the in-flight total.
	app := newTestApp(t, false)
	app.Init()
	if app.loading != 2 {
		t.Errorf("anonymous start loads products and suppliers, expected 2 in flight, got %d", app.loading)
	}

	app = newTestApp(t, true)
	app.Init()
	if app.loading != 3 {
		t.Errorf("restored session also loads the cart, expected 3 in flight, got %d", app.loading)
	}

	app.Update(productsLoadedMsg{})
	app.Update(suppliersLoadedMsg{})
	app.Update(cartLoadedMsg{})
	if app.loading != 0 {
		t.Errorf("every load result must settle the counter, got %d", app.loading)
	}
}
