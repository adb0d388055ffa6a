package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lojinha/internal/types"
)

func testClient(url string) *Client {
	return NewWithConfig(Config{BaseURL: url, Timeout: 2 * time.Second})
}

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/users/login" {
			t.Errorf("expected /users/login, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login must not carry a credential")
		}

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@b.c" || body["password"] != "secret" {
			t.Errorf("unexpected body: %v", body)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Token": "tok-123"}`))
	}))
	defer server.Close()

	token, err := testClient(server.URL).Login(context.Background(), "a@b.c", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token != "tok-123" {
		t.Errorf("expected tok-123, got %q", token)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "invalid credentials"}`))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Login(context.Background(), "a@b.c", "wrong")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !IsAuth(err) {
		t.Errorf("expected auth kind, got %v", KindOf(err))
	}
	if err.Error() != "invalid credentials" {
		t.Errorf("expected server message, got %q", err.Error())
	}
}

func TestRegister_PostsToNovouser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/novouser" {
			t.Errorf("expected /users/novouser, got %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["name"] != "Ana" || body["email"] != "ana@b.c" || body["password"] != "pw" {
			t.Errorf("unexpected body: %v", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	if err := testClient(server.URL).Register(context.Background(), "Ana", "ana@b.c", "pw"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
}

func TestConnectivityError(t *testing.T) {
	// Point at a server that is already closed.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := testClient(server.URL).ListProducts(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if KindOf(err) != KindConnectivity {
		t.Errorf("expected connectivity kind, got %v", KindOf(err))
	}
	if err.Error() != ErrConnect {
		t.Errorf("expected %q, got %q", ErrConnect, err.Error())
	}
}

// The credential matrix is deliberate: product creation and cart calls
// carry the bearer token; product update/delete and all supplier
// mutations go out bare.
func TestCredentialMatrix(t *testing.T) {
	var gotAuth map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth[r.Method+" "+r.URL.Path] = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/products" && r.Method == http.MethodGet:
			w.Write([]byte(`[]`))
		case r.URL.Path == "/supplier" && r.Method == http.MethodGet:
			w.Write([]byte(`[]`))
		case r.URL.Path == "/cart/getItems":
			w.Write([]byte(`[]`))
		default:
			w.Write([]byte(`{}`))
		}
	}))
	defer server.Close()

	gotAuth = make(map[string]string)
	client := testClient(server.URL)
	ctx := context.Background()
	const token = "tok-1"

	client.ListProducts(ctx)
	client.CreateProduct(ctx, token, ProductInput{Name: "p", Description: "d", Price: "1.00", Stock: 1})
	client.UpdateProduct(ctx, types.Product{ID: 7, Name: "p", Price: "1.00", Stock: 1})
	client.DeleteProduct(ctx, 7)
	client.CreateSupplier(ctx, SupplierInput{Name: "s", TaxID: "1", Address: "a", Phone: "2"})
	client.CartItems(ctx, token)
	client.CartAdd(ctx, token, 7, 2)
	client.CartRemove(ctx, token, 7)

	withBearer := []string{
		"POST /products",
		"GET /cart/getItems",
		"POST /cart/addItem",
		"DELETE /cart/remove/7",
	}
	for _, key := range withBearer {
		if gotAuth[key] != "Bearer "+token {
			t.Errorf("%s: expected bearer token, got %q", key, gotAuth[key])
		}
	}

	bare := []string{
		"GET /products",
		"PUT /products/7",
		"DELETE /products/7",
		"POST /supplier",
	}
	for _, key := range bare {
		if gotAuth[key] != "" {
			t.Errorf("%s: expected no credential, got %q", key, gotAuth[key])
		}
	}
}

func TestListSuppliers_BareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"supplierId": 1, "nome": "Acme", "cnpj": "11", "endereco": "Rua A", "telefone": "555"}]`))
	}))
	defer server.Close()

	suppliers, err := testClient(server.URL).ListSuppliers(context.Background())
	if err != nil {
		t.Fatalf("ListSuppliers failed: %v", err)
	}
	if len(suppliers) != 1 || suppliers[0].Name != "Acme" {
		t.Errorf("unexpected suppliers: %+v", suppliers)
	}
}

func TestListSuppliers_WrappedObject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"suppliers": [{"supplierId": 2, "nome": "Beta", "cnpj": "22", "endereco": "Rua B", "telefone": "556"}]}`))
	}))
	defer server.Close()

	suppliers, err := testClient(server.URL).ListSuppliers(context.Background())
	if err != nil {
		t.Fatalf("ListSuppliers failed: %v", err)
	}
	if len(suppliers) != 1 || suppliers[0].ID != 2 {
		t.Errorf("unexpected suppliers: %+v", suppliers)
	}
}

func TestStatusErrorKinds(t *testing.T) {
	cases := []struct {
		status int
		kind   Kind
	}{
		{http.StatusUnauthorized, KindAuth},
		{http.StatusForbidden, KindAuth},
		{http.StatusNotFound, KindNotFound},
		{http.StatusInternalServerError, KindServer},
	}

	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		_, err := testClient(server.URL).ListProducts(context.Background())
		server.Close()
		if err == nil {
			t.Fatalf("status %d: expected an error", tc.status)
		}
		if KindOf(err) != tc.kind {
			t.Errorf("status %d: expected kind %v, got %v", tc.status, tc.kind, KindOf(err))
		}
	}
}

func TestLineTotal(t *testing.T) {
	line := types.CartLineItem{
		Quantity: 3,
		Product:  types.ProductSnapshot{Price: "10.50"},
	}
	if got := line.LineTotal(); got != "31.50" {
		t.Errorf("expected 31.50, got %q", got)
	}

	bad := types.CartLineItem{Quantity: 2, Product: types.ProductSnapshot{Price: "n/a"}}
	if got := bad.LineTotal(); got != "0.00" {
		t.Errorf("unparseable price should render 0.00, got %q", got)
	}
}
