package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"lojinha/internal/api"
)

func newTestGate(t *testing.T, handler http.HandlerFunc) (*Gate, *httptest.Server, *int32) {
	t.Helper()
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := api.NewWithConfig(api.Config{BaseURL: server.URL, Timeout: 2 * time.Second})
	return NewGate(client, NewMemoryStore()), server, &requests
}

func TestLogin_SetsTokenAndAuthenticates(t *testing.T) {
	gate, _, _ := newTestGate(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Token": "tok-9"}`))
	})

	if gate.Authenticated() {
		t.Fatal("fresh gate must not be authenticated")
	}

	if err := gate.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	token, ok := gate.Token()
	if !ok || token != "tok-9" {
		t.Errorf("expected tok-9, got %q (present=%v)", token, ok)
	}
	if !gate.Authenticated() {
		t.Error("authenticated must follow token presence")
	}
}

func TestLogin_EmptyFieldsSkipNetwork(t *testing.T) {
	gate, _, requests := newTestGate(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Token": "tok"}`))
	})

	for _, pair := range [][2]string{{"", "pw"}, {"a@b.c", ""}, {"  ", "pw"}} {
		err := gate.Login(context.Background(), pair[0], pair[1])
		if err == nil {
			t.Fatalf("expected validation error for %q/%q", pair[0], pair[1])
		}
		if !api.IsValidation(err) {
			t.Errorf("expected validation kind, got %v", api.KindOf(err))
		}
	}

	if n := atomic.LoadInt32(requests); n != 0 {
		t.Errorf("expected no network calls, got %d", n)
	}
	if gate.Authenticated() {
		t.Error("failed login must not authenticate")
	}
}

func TestLogin_FailureLeavesStateUnchanged(t *testing.T) {
	gate, _, _ := newTestGate(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "bad credentials"}`))
	})

	if err := gate.Login(context.Background(), "a@b.c", "wrong"); err == nil {
		t.Fatal("expected an error")
	}
	if gate.Authenticated() {
		t.Error("rejected login must not authenticate")
	}
}

func TestRegister_DoesNotLogIn(t *testing.T) {
	gate, _, _ := newTestGate(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	if err := gate.Register(context.Background(), "Ana", "ana@b.c", "pw"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if gate.Authenticated() {
		t.Error("registration must not create a session")
	}
}

func TestRegister_EmptyFieldsSkipNetwork(t *testing.T) {
	gate, _, requests := newTestGate(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	for _, triple := range [][3]string{
		{"", "a@b.c", "pw"},
		{"Ana", "", "pw"},
		{"Ana", "a@b.c", ""},
	} {
		err := gate.Register(context.Background(), triple[0], triple[1], triple[2])
		if !api.IsValidation(err) {
			t.Errorf("input %v: expected validation error, got %v", triple, err)
		}
	}
	if n := atomic.LoadInt32(requests); n != 0 {
		t.Errorf("expected no network calls, got %d", n)
	}
}

func TestLogout_ClearsTokenWithoutNetwork(t *testing.T) {
	gate, _, requests := newTestGate(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Token": "tok"}`))
	})

	if err := gate.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	before := atomic.LoadInt32(requests)

	gate.Logout()

	if gate.Authenticated() {
		t.Error("logout must clear the session")
	}
	if _, ok := gate.Token(); ok {
		t.Error("logout must clear the token")
	}
	if atomic.LoadInt32(requests) != before {
		t.Error("logout must not touch the network")
	}
}

func TestRestore_LoadsStoredToken(t *testing.T) {
	store := NewMemoryStore()
	store.Set("stored-tok")

	client := api.New()
	gate := NewGate(client, store)

	if !gate.Restore() {
		t.Fatal("expected restore to find the stored token")
	}
	token, ok := gate.Token()
	if !ok || token != "stored-tok" {
		t.Errorf("expected stored-tok, got %q", token)
	}
}

func TestRestore_NoStoredToken(t *testing.T) {
	gate := NewGate(api.New(), NewMemoryStore())
	if gate.Restore() {
		t.Fatal("restore must report absence")
	}
	if gate.Authenticated() {
		t.Error("nothing restored, nothing authenticated")
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	if _, ok := store.Get(); ok {
		t.Fatal("empty dir must hold no token")
	}
	if err := store.Set("tok-file"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	token, ok := NewFileStore(dir).Get()
	if !ok || token != "tok-file" {
		t.Errorf("expected tok-file, got %q", token)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := store.Get(); ok {
		t.Error("cleared store must hold no token")
	}
	// Clearing again is not an error.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}
