package service

import (
	"context"
	"errors"

	"github.com/techstore/techstore-go/internal/model"
	"github.com/techstore/techstore-go/internal/repository"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// CartService owns the per-user line item set. Each (userID, productID) pair
// is either absent or present with quantity >= 1; the store's atomic merge
// keeps that invariant under concurrent adds.
type CartService struct {
	cart     CartStore
	products ProductStore
}

// NewCartService creates a new CartService.
func NewCartService(cart CartStore, products ProductStore) *CartService {
	return &CartService{cart: cart, products: products}
}

// Add puts quantity units of a product into the user's cart, merging into an
// existing line item if one exists. A zero quantity defaults to one; negative
// quantities are rejected. The product must exist in the catalog, checked
// before any mutation so failures are atomic no-ops.
func (s *CartService) Add(ctx context.Context, userID, productID int64, quantity int) (model.CartItem, error) {
	if quantity < 0 {
		return model.CartItem{}, ErrInvalidQuantity
	}
	if quantity == 0 {
		quantity = 1
	}

	if _, err := s.products.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return model.CartItem{}, ErrProductNotFound
		}
		return model.CartItem{}, err
	}

	return s.cart.AddItem(ctx, userID, productID, quantity)
}

// SetQuantity sets a line item's quantity. Zero or negative removes the line
// item. Setting a quantity for a product not in the cart is a no-op: Add is
// the canonical entry path for new line items.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	return s.cart.SetQuantity(ctx, userID, productID, quantity)
}

// Remove deletes a line item. Removing an absent pair is a no-op.
func (s *CartService) Remove(ctx context.Context, userID, productID int64) error {
	return s.cart.RemoveItem(ctx, userID, productID)
}

// ClearAll empties the user's cart. Idempotent.
func (s *CartService) ClearAll(ctx context.Context, userID int64) error {
	return s.cart.ClearCart(ctx, userID)
}

// List returns the user's line items hydrated with product data.
func (s *CartService) List(ctx context.Context, userID int64) ([]model.CartItemWithProduct, error) {
	items, err := s.cart.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.CartItemWithProduct{}
	}
	return items, nil
}
