package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/techstore/techstore-go/internal/model"
)

var ErrCartItemNotFound = errors.New("cart item not found")

// CartRepository handles cart line item persistence. At most one row exists
// per (user_id, product_id) pair, enforced by a unique key.
type CartRepository struct {
	db *sql.DB
}

// NewCartRepository creates a new CartRepository.
func NewCartRepository(db *sql.DB) *CartRepository {
	return &CartRepository{db: db}
}

// addQuery merges concurrent adds for the same pair into a single row.
// The unique key on (user_id, product_id) makes the increment atomic: two
// racing adds can never both insert, and neither increment is lost.
const addQuery = `
	INSERT INTO cart_items (user_id, product_id, quantity)
	VALUES (?, ?, ?)
	ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)`

// AddItem inserts a line item for (userID, productID) or increments the
// existing row's quantity, then returns the resulting line item.
func (r *CartRepository) AddItem(ctx context.Context, userID, productID int64, quantity int) (model.CartItem, error) {
	if _, err := r.db.ExecContext(ctx, addQuery, userID, productID, quantity); err != nil {
		return model.CartItem{}, err
	}

	return r.getItem(ctx, userID, productID)
}

// SetQuantity sets the quantity of an existing line item. A quantity of zero
// or less deletes the row. Setting a quantity on an absent pair is a no-op;
// AddItem is the only path that creates rows.
func (r *CartRepository) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity <= 0 {
		return r.RemoveItem(ctx, userID, productID)
	}

	query := `UPDATE cart_items SET quantity = ? WHERE user_id = ? AND product_id = ?`
	_, err := r.db.ExecContext(ctx, query, quantity, userID, productID)
	return err
}

// RemoveItem deletes the line item for (userID, productID). Removing an
// absent pair is a no-op.
func (r *CartRepository) RemoveItem(ctx context.Context, userID, productID int64) error {
	query := `DELETE FROM cart_items WHERE user_id = ? AND product_id = ?`
	_, err := r.db.ExecContext(ctx, query, userID, productID)
	return err
}

// ClearCart deletes all line items for the user. Idempotent.
func (r *CartRepository) ClearCart(ctx context.Context, userID int64) error {
	query := `DELETE FROM cart_items WHERE user_id = ?`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

// ListItems retrieves all line items for the user, each hydrated with its
// product. The inner join omits lines whose product no longer exists; the
// cascade on products makes that case unreachable in practice.
func (r *CartRepository) ListItems(ctx context.Context, userID int64) ([]model.CartItemWithProduct, error) {
	query := `SELECT c.id, c.user_id, c.product_id, c.quantity,
			p.id, p.name, p.description, p.price, p.image, p.category, p.specifications, p.in_stock
		FROM cart_items c
		INNER JOIN products p ON p.id = c.product_id
		WHERE c.user_id = ?
		ORDER BY c.id`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.CartItemWithProduct
	for rows.Next() {
		var item model.CartItemWithProduct
		var specs []byte
		err := rows.Scan(
			&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
			&item.Product.ID, &item.Product.Name, &item.Product.Description, &item.Product.Price,
			&item.Product.Image, &item.Product.Category, &specs, &item.Product.InStock,
		)
		if err != nil {
			return nil, err
		}
		if err := unmarshalSpecs(specs, &item.Product); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *CartRepository) getItem(ctx context.Context, userID, productID int64) (model.CartItem, error) {
	query := `SELECT id, user_id, product_id, quantity FROM cart_items
		WHERE user_id = ? AND product_id = ?`

	var item model.CartItem
	err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.CartItem{}, ErrCartItemNotFound
		}
		return model.CartItem{}, err
	}

	return item, nil
}
