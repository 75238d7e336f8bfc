// Package storeclient is a Go client for the TechStore API. It mirrors the
// server-side cart into a local cache: every successful mutation invalidates
// the cache, and the next read refetches, so the local view is always a
// confirmed server state rather than an optimistic guess.
package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/techstore/techstore-go/internal/model"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Client talks to a TechStore API server on behalf of one shopper.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu        sync.Mutex
	token     string
	cart      []model.CartItemWithProduct
	cartValid bool
}

// New creates a Client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Register creates an account and stores the returned token for later calls.
func (c *Client) Register(ctx context.Context, name, email, password string) (model.UserResponse, error) {
	var resp model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", model.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return model.UserResponse{}, err
	}

	c.setToken(resp.Token)
	return resp.User, nil
}

// Login authenticates and stores the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (model.UserResponse, error) {
	var resp model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", model.LoginRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return model.UserResponse{}, err
	}

	c.setToken(resp.Token)
	return resp.User, nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (model.UserResponse, error) {
	var resp model.UserResponse
	err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp)
	return resp, err
}

// Products lists the catalog, optionally filtered by category or search query.
func (c *Client) Products(ctx context.Context, category, search string) ([]model.Product, error) {
	path := "/api/products"
	sep := "?"
	if category != "" {
		path += sep + "category=" + category
		sep = "&"
	}
	if search != "" {
		path += sep + "search=" + search
	}

	var products []model.Product
	err := c.do(ctx, http.MethodGet, path, nil, &products)
	return products, err
}

// Product returns a single product by ID.
func (c *Client) Product(ctx context.Context, id int64) (model.Product, error) {
	var product model.Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil, &product)
	return product, err
}

// Cart returns the shopper's cart, served from the local cache when it still
// reflects the last confirmed server state.
func (c *Client) Cart(ctx context.Context) ([]model.CartItemWithProduct, error) {
	c.mu.Lock()
	if c.cartValid {
		cached := c.cart
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	var items []model.CartItemWithProduct
	if err := c.do(ctx, http.MethodGet, "/api/cart", nil, &items); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cart = items
	c.cartValid = true
	c.mu.Unlock()

	return items, nil
}

// AddToCart adds quantity units of a product. On success the cached cart is
// invalidated; the next Cart call refetches.
func (c *Client) AddToCart(ctx context.Context, productID int64, quantity int) (model.CartItem, error) {
	var item model.CartItem
	err := c.do(ctx, http.MethodPost, "/api/cart/add", model.AddToCartRequest{
		ProductID: productID,
		Quantity:  quantity,
	}, &item)
	if err != nil {
		return model.CartItem{}, err
	}

	c.invalidateCart()
	return item, nil
}

// SetQuantity sets a line item's quantity; zero or less removes it.
func (c *Client) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/cart/%d", productID), model.UpdateQuantityRequest{
		Quantity: quantity,
	}, nil)
	if err != nil {
		return err
	}

	c.invalidateCart()
	return nil
}

// RemoveFromCart removes a line item.
func (c *Client) RemoveFromCart(ctx context.Context, productID int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/cart/%d", productID), nil, nil); err != nil {
		return err
	}

	c.invalidateCart()
	return nil
}

// Checkout clears the server-side cart. Local cart state is dropped only
// after the server confirms the clear; on failure the cached state is kept so
// the shopper never sees a false success.
func (c *Client) Checkout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/api/cart", nil, nil); err != nil {
		return err
	}

	c.mu.Lock()
	c.cart = nil
	c.cartValid = true
	c.mu.Unlock()

	return nil
}

func (c *Client) invalidateCart() {
	c.mu.Lock()
	c.cartValid = false
	c.mu.Unlock()
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	c.cartValid = false
	c.mu.Unlock()
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
