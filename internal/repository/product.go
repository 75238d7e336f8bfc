package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/techstore/techstore-go/internal/model"
)

var ErrProductNotFound = errors.New("product not found")

const productColumns = `id, name, description, price, image, category, specifications, in_stock`

// ProductRepository handles catalog persistence operations. The catalog is
// read-only at runtime; writes happen only through seeding.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetProduct retrieves a product by its ID.
func (r *ProductRepository) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Product{}, ErrProductNotFound
		}
		return model.Product{}, err
	}

	return p, nil
}

// ListProducts retrieves the whole catalog ordered by ID.
func (r *ProductRepository) ListProducts(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	return r.queryProducts(ctx, query)
}

// ListProductsByCategory retrieves all products in the given category.
func (r *ProductRepository) ListProductsByCategory(ctx context.Context, category string) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category = ? ORDER BY id`
	return r.queryProducts(ctx, query, category)
}

// SearchProducts retrieves products whose name or description contains the
// query, case-insensitively.
func (r *ProductRepository) SearchProducts(ctx context.Context, search string) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) ORDER BY id`
	pattern := "%" + search + "%"
	return r.queryProducts(ctx, query, pattern, pattern)
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct reads one product row, decoding the specifications JSON column.
func scanProduct(row rowScanner) (model.Product, error) {
	var p model.Product
	var specs []byte
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price,
		&p.Image, &p.Category, &specs, &p.InStock,
	)
	if err != nil {
		return model.Product{}, err
	}

	if err := unmarshalSpecs(specs, &p); err != nil {
		return model.Product{}, err
	}

	return p, nil
}

// unmarshalSpecs decodes the specifications JSON column onto the product.
func unmarshalSpecs(data []byte, p *model.Product) error {
	if len(data) == 0 {
		p.Specifications = nil
		return nil
	}
	return json.Unmarshal(data, &p.Specifications)
}
