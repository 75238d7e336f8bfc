package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/techstore/techstore-go/internal/model"
)

// MemoryStore is an in-memory implementation of the user, product and cart
// stores, behind the same interfaces as the MySQL repositories. It backs
// tests and exists so no code depends on ambient global state.
type MemoryStore struct {
	mu          sync.Mutex
	users       map[int64]model.User
	products    map[int64]model.Product
	items       map[int64]model.CartItem
	nextUser    int64
	nextItem    int64
	nextProduct int64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[int64]model.User),
		products:    make(map[int64]model.Product),
		items:       make(map[int64]model.CartItem),
		nextUser:    1,
		nextItem:    1,
		nextProduct: 1,
	}
}

// InsertProduct adds a product to the catalog, assigning an ID if unset.
func (s *MemoryStore) InsertProduct(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == 0 {
		p.ID = s.nextProduct
		s.nextProduct++
	} else if p.ID >= s.nextProduct {
		s.nextProduct = p.ID + 1
	}
	s.products[p.ID] = p
	return p
}

// CreateUser stores a new user, enforcing email uniqueness.
func (s *MemoryStore) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	user.ID = s.nextUser
	s.nextUser++
	s.users[user.ID] = *user
	return nil
}

// GetUserByEmail retrieves a user by email address.
func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// GetUserByID retrieves a user by ID.
func (s *MemoryStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

// GetProduct retrieves a product by ID.
func (s *MemoryStore) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return model.Product{}, ErrProductNotFound
	}
	return p, nil
}

// ListProducts retrieves the whole catalog ordered by ID.
func (s *MemoryStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collectProducts(func(model.Product) bool { return true }), nil
}

// ListProductsByCategory retrieves all products in the given category.
func (s *MemoryStore) ListProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collectProducts(func(p model.Product) bool { return p.Category == category }), nil
}

// SearchProducts retrieves products whose name or description contains the
// query, case-insensitively.
func (s *MemoryStore) SearchProducts(ctx context.Context, search string) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	term := strings.ToLower(search)
	return s.collectProducts(func(p model.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term)
	}), nil
}

func (s *MemoryStore) collectProducts(match func(model.Product) bool) []model.Product {
	var out []model.Product
	for _, p := range s.products {
		if match(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddItem merges an add into the existing line item for (userID, productID),
// or creates one. The whole merge runs under the store lock, matching the
// atomicity of the SQL upsert.
func (s *MemoryStore) AddItem(ctx context.Context, userID, productID int64, quantity int) (model.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item, ok := s.findItem(userID, productID); ok {
		item.Quantity += quantity
		s.items[item.ID] = item
		return item, nil
	}

	item := model.CartItem{
		ID:        s.nextItem,
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	s.nextItem++
	s.items[item.ID] = item
	return item, nil
}

// SetQuantity sets the quantity of an existing line item; zero or less
// deletes it, and an absent pair is a no-op.
func (s *MemoryStore) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.findItem(userID, productID)
	if !ok {
		return nil
	}

	if quantity <= 0 {
		delete(s.items, item.ID)
		return nil
	}

	item.Quantity = quantity
	s.items[item.ID] = item
	return nil
}

// RemoveItem deletes the line item for (userID, productID) if present.
func (s *MemoryStore) RemoveItem(ctx context.Context, userID, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item, ok := s.findItem(userID, productID); ok {
		delete(s.items, item.ID)
	}
	return nil
}

// ClearCart deletes all line items for the user.
func (s *MemoryStore) ClearCart(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.items {
		if item.UserID == userID {
			delete(s.items, id)
		}
	}
	return nil
}

// ListItems retrieves the user's line items hydrated with their products,
// ordered by insertion. Lines whose product is gone are omitted, matching
// the inner-join policy of the MySQL store.
func (s *MemoryStore) ListItems(ctx context.Context, userID int64) ([]model.CartItemWithProduct, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.CartItemWithProduct
	for _, item := range s.items {
		if item.UserID != userID {
			continue
		}
		product, ok := s.products[item.ProductID]
		if !ok {
			continue
		}
		out = append(out, model.CartItemWithProduct{CartItem: item, Product: product})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) findItem(userID, productID int64) (model.CartItem, bool) {
	for _, item := range s.items {
		if item.UserID == userID && item.ProductID == productID {
			return item, true
		}
	}
	return model.CartItem{}, false
}
