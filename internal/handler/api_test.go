package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/techstore/techstore-go/internal/model"
	"github.com/techstore/techstore-go/internal/repository"
	"github.com/techstore/techstore-go/internal/service"
)

const testJWTSecret = "test-secret"

// countingCartStore wraps a CartStore and counts every call, so tests can
// assert the store was never touched on rejected requests.
type countingCartStore struct {
	inner service.CartStore
	calls int
}

func (c *countingCartStore) AddItem(ctx context.Context, userID, productID int64, quantity int) (model.CartItem, error) {
	c.calls++
	return c.inner.AddItem(ctx, userID, productID, quantity)
}

func (c *countingCartStore) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	c.calls++
	return c.inner.SetQuantity(ctx, userID, productID, quantity)
}

func (c *countingCartStore) RemoveItem(ctx context.Context, userID, productID int64) error {
	c.calls++
	return c.inner.RemoveItem(ctx, userID, productID)
}

func (c *countingCartStore) ClearCart(ctx context.Context, userID int64) error {
	c.calls++
	return c.inner.ClearCart(ctx, userID)
}

func (c *countingCartStore) ListItems(ctx context.Context, userID int64) ([]model.CartItemWithProduct, error) {
	c.calls++
	return c.inner.ListItems(ctx, userID)
}

func newTestAPI(t *testing.T) (http.Handler, *countingCartStore) {
	t.Helper()

	store := repository.NewMemoryStore()
	for _, p := range repository.StarterCatalog {
		store.InsertProduct(p)
	}
	cartStore := &countingCartStore{inner: store}

	authService := service.NewAuthService(store, testJWTSecret, time.Hour)
	catalogService := service.NewCatalogService(store)
	cartService := service.NewCartService(cartStore, store)

	router := NewRouter(
		NewAuthHandler(authService),
		NewCatalogHandler(catalogService),
		NewCartHandler(cartService),
		RouterConfig{JWTSecret: testJWTSecret, AuthRateLimit: 1000, AuthBurst: 1000},
	)

	return router, cartStore
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func registerShopper(t *testing.T, router http.Handler, email string) string {
	t.Helper()

	rr := doJSON(t, router, http.MethodPost, "/api/auth/register", "", model.RegisterRequest{
		Name:     "Shopper",
		Email:    email,
		Password: "long-enough-password",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", rr.Code, rr.Body.String())
	}

	var resp model.AuthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding register response: %v", err)
	}
	return resp.Token
}

func TestCartEndpointsRejectMissingToken(t *testing.T) {
	router, cartStore := newTestAPI(t)

	requests := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/cart"},
		{http.MethodPost, "/api/cart/add"},
		{http.MethodPut, "/api/cart/1"},
		{http.MethodDelete, "/api/cart/1"},
		{http.MethodDelete, "/api/cart"},
	}

	for _, tc := range requests {
		rr := doJSON(t, router, tc.method, tc.path, "", nil)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want %d", tc.method, tc.path, rr.Code, http.StatusUnauthorized)
		}
	}

	if cartStore.calls != 0 {
		t.Errorf("cart store touched %d times by unauthenticated requests, want 0", cartStore.calls)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	router, _ := newTestAPI(t)

	registerShopper(t, router, "shopper@example.com")

	rr := doJSON(t, router, http.MethodPost, "/api/auth/register", "", model.RegisterRequest{
		Name:     "Shopper Again",
		Email:    "shopper@example.com",
		Password: "another-long-password",
	})
	if rr.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want %d", rr.Code, http.StatusConflict)
	}
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	router, _ := newTestAPI(t)

	registerShopper(t, router, "shopper@example.com")

	rr := doJSON(t, router, http.MethodPost, "/api/auth/login", "", model.LoginRequest{
		Email:    "shopper@example.com",
		Password: "not-the-password",
	})
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("wrong-password login status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestMeReturnsIdentity(t *testing.T) {
	router, _ := newTestAPI(t)

	token := registerShopper(t, router, "shopper@example.com")

	rr := doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("me status = %d: %s", rr.Code, rr.Body.String())
	}

	var me model.UserResponse
	if err := json.NewDecoder(rr.Body).Decode(&me); err != nil {
		t.Fatalf("decoding me response: %v", err)
	}
	if me.Email != "shopper@example.com" {
		t.Errorf("me email = %s, want shopper@example.com", me.Email)
	}
}

func TestGetProductNotFound(t *testing.T) {
	router, _ := newTestAPI(t)

	rr := doJSON(t, router, http.MethodGet, "/api/products/999", "", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestAddUnknownProductNotFound(t *testing.T) {
	router, _ := newTestAPI(t)

	token := registerShopper(t, router, "shopper@example.com")

	rr := doJSON(t, router, http.MethodPost, "/api/cart/add", token, model.AddToCartRequest{
		ProductID: 999,
		Quantity:  1,
	})
	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestCartFlowTotals(t *testing.T) {
	router, _ := newTestAPI(t)

	token := registerShopper(t, router, "shopper@example.com")

	// Two distinct products: quantity 2 of the first, 3 of the second.
	adds := []model.AddToCartRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	}
	for _, add := range adds {
		rr := doJSON(t, router, http.MethodPost, "/api/cart/add", token, add)
		if rr.Code != http.StatusOK {
			t.Fatalf("add product %d returned %d: %s", add.ProductID, rr.Code, rr.Body.String())
		}
	}

	rr := doJSON(t, router, http.MethodGet, "/api/cart", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get cart returned %d: %s", rr.Code, rr.Body.String())
	}

	var items []model.CartItemWithProduct
	if err := json.NewDecoder(rr.Body).Decode(&items); err != nil {
		t.Fatalf("decoding cart: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(items))
	}

	totalItems := 0
	totalCents := int64(0)
	for _, item := range items {
		totalItems += item.Quantity
		totalCents += priceCents(t, item.Product.Price) * int64(item.Quantity)
	}

	if totalItems != 5 {
		t.Errorf("total items = %d, want 5", totalItems)
	}

	wantCents := priceCents(t, repository.StarterCatalog[0].Price)*2 +
		priceCents(t, repository.StarterCatalog[1].Price)*3
	if totalCents != wantCents {
		t.Errorf("total price = %d cents, want %d", totalCents, wantCents)
	}
}

func TestClearCartEmptiesAndAcks(t *testing.T) {
	router, _ := newTestAPI(t)

	token := registerShopper(t, router, "shopper@example.com")

	rr := doJSON(t, router, http.MethodPost, "/api/cart/add", token, model.AddToCartRequest{ProductID: 1, Quantity: 2})
	if rr.Code != http.StatusOK {
		t.Fatalf("add returned %d", rr.Code)
	}

	rr = doJSON(t, router, http.MethodDelete, "/api/cart", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("clear returned %d: %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, router, http.MethodGet, "/api/cart", token, nil)
	var items []model.CartItemWithProduct
	if err := json.NewDecoder(rr.Body).Decode(&items); err != nil {
		t.Fatalf("decoding cart: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("cart not empty after clear: %+v", items)
	}
}

func TestUpdateQuantityEndpoint(t *testing.T) {
	router, _ := newTestAPI(t)

	token := registerShopper(t, router, "shopper@example.com")

	rr := doJSON(t, router, http.MethodPost, "/api/cart/add", token, model.AddToCartRequest{ProductID: 1, Quantity: 2})
	if rr.Code != http.StatusOK {
		t.Fatalf("add returned %d", rr.Code)
	}

	rr = doJSON(t, router, http.MethodPut, "/api/cart/1", token, model.UpdateQuantityRequest{Quantity: 9})
	if rr.Code != http.StatusOK {
		t.Fatalf("update returned %d: %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, router, http.MethodGet, "/api/cart", token, nil)
	var items []model.CartItemWithProduct
	if err := json.NewDecoder(rr.Body).Decode(&items); err != nil {
		t.Fatalf("decoding cart: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 9 {
		t.Errorf("expected one line item with quantity 9, got %+v", items)
	}
}

func TestProductListingFilters(t *testing.T) {
	router, _ := newTestAPI(t)

	rr := doJSON(t, router, http.MethodGet, "/api/products?category="+model.CategoryPeripherals, "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list returned %d", rr.Code)
	}
	var products []model.Product
	if err := json.NewDecoder(rr.Body).Decode(&products); err != nil {
		t.Fatalf("decoding products: %v", err)
	}
	for _, p := range products {
		if p.Category != model.CategoryPeripherals {
			t.Errorf("product %q has category %q", p.Name, p.Category)
		}
	}

	rr = doJSON(t, router, http.MethodGet, "/api/products?search=monitor", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("search returned %d", rr.Code)
	}
	products = nil
	if err := json.NewDecoder(rr.Body).Decode(&products); err != nil {
		t.Fatalf("decoding products: %v", err)
	}
	if len(products) != 1 || !strings.Contains(strings.ToLower(products[0].Name), "monitor") {
		t.Errorf("search=monitor returned %+v", products)
	}
}

// priceCents parses a decimal price string into integer cents.
func priceCents(t *testing.T, price string) int64 {
	t.Helper()

	parts := strings.SplitN(price, ".", 2)
	whole, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		t.Fatalf("parsing price %q: %v", price, err)
	}
	cents := int64(0)
	if len(parts) == 2 {
		frac := fmt.Sprintf("%-2s", parts[1])[:2]
		cents, err = strconv.ParseInt(strings.ReplaceAll(frac, " ", "0"), 10, 64)
		if err != nil {
			t.Fatalf("parsing price %q: %v", price, err)
		}
	}
	return whole*100 + cents
}
