package service

import (
	"context"

	"github.com/techstore/techstore-go/internal/model"
)

// UserStore persists user records.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

// ProductStore reads the product catalog.
type ProductStore interface {
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]model.Product, error)
	SearchProducts(ctx context.Context, search string) ([]model.Product, error)
}

// CartStore persists cart line items keyed by (userID, productID). AddItem
// must merge concurrent adds for the same pair atomically.
type CartStore interface {
	AddItem(ctx context.Context, userID, productID int64, quantity int) (model.CartItem, error)
	SetQuantity(ctx context.Context, userID, productID int64, quantity int) error
	RemoveItem(ctx context.Context, userID, productID int64) error
	ClearCart(ctx context.Context, userID int64) error
	ListItems(ctx context.Context, userID int64) ([]model.CartItemWithProduct, error)
}
