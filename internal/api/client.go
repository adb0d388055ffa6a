// Package api implements the typed REST client for the storefront backend.
// The endpoint matrix mirrors the backend contract exactly, including which
// calls carry a bearer credential: product creation and all cart calls do;
// product update/delete and every supplier call do not.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"lojinha/internal/logging"
	"lojinha/internal/types"
)

// Config holds client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for a local backend.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8080",
		Timeout: 15 * time.Second,
	}
}

// Client talks to the storefront backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client with default config.
func New() *Client {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a client with custom config.
func NewWithConfig(cfg Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// errorPayload is the backend's error body shape.
type errorPayload struct {
	Message string `json:"message"`
}

// do issues one JSON request. token is attached as a bearer credential when
// non-empty. out may be nil for endpoints with empty success payloads.
// fallback is the user-visible message used when the server sends no
// message body.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}, fallback string) error {
	reqLog := logging.WithRequestID(logging.CategoryAPI, uuid.NewString()[:8])

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	reqLog.Debug("%s %s (auth=%v)", method, path, token != "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		reqLog.Error("%s %s: %v", method, path, err)
		return connectivityError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		reqLog.Error("%s %s: read body: %v", method, path, err)
		return connectivityError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload errorPayload
		_ = json.Unmarshal(raw, &payload)
		reqLog.Debug("%s %s: status %d", method, path, resp.StatusCode)
		return statusError(resp.StatusCode, payload.Message, fallback)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			reqLog.Error("%s %s: decode: %v", method, path, err)
			return &Error{
				Kind:    KindServer,
				Status:  resp.StatusCode,
				Message: fallback,
				cause:   fmt.Errorf("failed to parse response: %w", err),
			}
		}
	}
	return nil
}

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	return c.do(ctx, http.MethodPost, "/users/novouser", "", body, nil, "Error creating account.")
}

// loginResponse is the backend's login payload; the token key is
// capitalized on the wire.
type loginResponse struct {
	Token string `json:"Token"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}
	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", "", body, &resp, "Error logging in."); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ListProducts fetches the catalog. No credential required.
func (c *Client) ListProducts(ctx context.Context) ([]types.Product, error) {
	var products []types.Product
	if err := c.do(ctx, http.MethodGet, "/products", "", nil, &products, "Error fetching products."); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductInput carries the fields for product creation (no id).
type ProductInput struct {
	Name        string `json:"nome"`
	Description string `json:"descricao"`
	Price       string `json:"preco"`
	Stock       int    `json:"estoque"`
	SupplierID  int    `json:"supplierId,omitempty"`
}

// CreateProduct adds a product to the catalog. Requires a credential.
func (c *Client) CreateProduct(ctx context.Context, token string, in ProductInput) (types.Product, error) {
	var created types.Product
	err := c.do(ctx, http.MethodPost, "/products", token, in, &created, "Failed to add product.")
	return created, err
}

// UpdateProduct sends the full product as an update. The backend accepts
// this call without a credential.
func (c *Client) UpdateProduct(ctx context.Context, p types.Product) error {
	path := fmt.Sprintf("/products/%d", p.ID)
	return c.do(ctx, http.MethodPut, path, "", p, nil, "Failed to update product.")
}

// DeleteProduct removes a product. The backend accepts this call without a
// credential.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	path := fmt.Sprintf("/products/%d", id)
	return c.do(ctx, http.MethodDelete, path, "", nil, nil, "Failed to delete product.")
}

// supplierListPayload covers the wrapped supplier list shape.
type supplierListPayload struct {
	Suppliers []types.Supplier `json:"suppliers"`
}

// ListSuppliers fetches the supplier directory. The backend has returned
// both a bare array and a {"suppliers": [...]} wrapper; both decode.
func (c *Client) ListSuppliers(ctx context.Context) ([]types.Supplier, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/supplier", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, connectivityError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, connectivityError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload errorPayload
		_ = json.Unmarshal(raw, &payload)
		return nil, statusError(resp.StatusCode, payload.Message, "Error fetching suppliers.")
	}

	var suppliers []types.Supplier
	if err := json.Unmarshal(raw, &suppliers); err == nil {
		return suppliers, nil
	}
	var wrapped supplierListPayload
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Suppliers != nil {
		return wrapped.Suppliers, nil
	}
	return nil, &Error{
		Kind:    KindServer,
		Status:  resp.StatusCode,
		Message: "Error fetching suppliers.",
		cause:   fmt.Errorf("supplier payload in unexpected format"),
	}
}

// SupplierInput carries the fields for supplier creation (no id).
type SupplierInput struct {
	Name    string `json:"nome"`
	TaxID   string `json:"cnpj"`
	Address string `json:"endereco"`
	Phone   string `json:"telefone"`
}

// CreateSupplier adds a supplier. The backend accepts supplier mutations
// without a credential.
func (c *Client) CreateSupplier(ctx context.Context, in SupplierInput) (types.Supplier, error) {
	var created types.Supplier
	err := c.do(ctx, http.MethodPost, "/supplier", "", in, &created, "Failed to add supplier.")
	return created, err
}

// UpdateSupplier sends the full supplier as an update.
func (c *Client) UpdateSupplier(ctx context.Context, s types.Supplier) error {
	path := fmt.Sprintf("/supplier/%d", s.ID)
	return c.do(ctx, http.MethodPut, path, "", s, nil, "Failed to update supplier.")
}

// DeleteSupplier removes a supplier.
func (c *Client) DeleteSupplier(ctx context.Context, id int) error {
	path := fmt.Sprintf("/supplier/%d", id)
	return c.do(ctx, http.MethodDelete, path, "", nil, nil, "Failed to delete supplier.")
}

// CartItems fetches the authenticated user's cart lines.
func (c *Client) CartItems(ctx context.Context, token string) ([]types.CartLineItem, error) {
	var items []types.CartLineItem
	if err := c.do(ctx, http.MethodGet, "/cart/getItems", token, nil, &items, "Failed to fetch cart items."); err != nil {
		return nil, err
	}
	return items, nil
}

// cartAddRequest is the add-to-cart body.
type cartAddRequest struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// CartAdd adds quantity of a product to the cart. The server merges with an
// existing line for the same product or creates a new one.
func (c *Client) CartAdd(ctx context.Context, token string, productID, quantity int) error {
	body := cartAddRequest{ProductID: productID, Quantity: quantity}
	return c.do(ctx, http.MethodPost, "/cart/addItem", token, body, nil, "Failed to add to cart.")
}

// CartRemove deletes every cart line for the given product.
func (c *Client) CartRemove(ctx context.Context, token string, productID int) error {
	path := fmt.Sprintf("/cart/remove/%d", productID)
	return c.do(ctx, http.MethodDelete, path, token, nil, nil, "Failed to remove product from cart.")
}
