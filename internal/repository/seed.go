package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/techstore/techstore-go/internal/model"
)

// StarterCatalog is the initial product set inserted into an empty store.
var StarterCatalog = []model.Product{
	{
		Name:        "RGB Pro Gaming Desktop",
		Description: "Intel i7, 16GB RAM, RTX 4070, 1TB SSD",
		Price:       "3499.00",
		Image:       "https://images.unsplash.com/photo-1587831990711-23ca6441447b?auto=format&fit=crop&w=600&h=400",
		Category:    model.CategoryComputers,
		Specifications: []string{
			"Intel Core i7-12700F", "16GB DDR4 3200MHz", "NVIDIA RTX 4070 8GB",
			"1TB NVMe SSD", "650W 80+ Bronze PSU", "Mid tower case with RGB",
		},
		InStock: true,
	},
	{
		Name:        "Dell Inspiron 15 Laptop",
		Description: "Intel i5, 8GB RAM, 256GB SSD, 15.6\" display",
		Price:       "2299.00",
		Image:       "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?auto=format&fit=crop&w=600&h=400",
		Category:    model.CategoryLaptops,
		Specifications: []string{
			"Intel Core i5-1135G7", "8GB DDR4", "256GB SSD",
			"15.6\" Full HD display", "Windows 11", "3-cell battery",
		},
		InStock: true,
	},
	{
		Name:        "RGB Mechanical Gaming Keyboard",
		Description: "Blue switches, RGB LED, full layout",
		Price:       "349.00",
		Image:       "https://images.unsplash.com/photo-1541140532154-b024d705b90a?auto=format&fit=crop&w=600&h=400",
		Category:    model.CategoryPeripherals,
		Specifications: []string{
			"Mechanical blue switches", "Customizable RGB LED", "Full ANSI layout",
			"Anti-ghosting", "Detachable USB cable",
		},
		InStock: true,
	},
	{
		Name:        "27\" 144Hz Gaming Monitor",
		Description: "Full HD, 1ms, FreeSync, curved",
		Price:       "899.00",
		Image:       "https://images.unsplash.com/photo-1527443224154-c4a3942d3acf?auto=format&fit=crop&w=600&h=400",
		Category:    model.CategoryPeripherals,
		Specifications: []string{
			"27 inch panel", "1920x1080 Full HD", "144Hz refresh rate",
			"1ms response time", "AMD FreeSync", "1500R curvature",
		},
		InStock: true,
	},
	{
		Name:        "RGB Pro Gaming Mouse",
		Description: "16000 DPI, 7 buttons, customizable RGB",
		Price:       "199.00",
		Image:       "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?auto=format&fit=crop&w=600&h=400",
		Category:    model.CategoryPeripherals,
		Specifications: []string{
			"16000 DPI optical sensor", "7 programmable buttons", "Customizable RGB LED",
			"Right-handed ergonomics", "1.8m braided cable",
		},
		InStock: true,
	},
	{
		Name:        "Surround Gaming Headset",
		Description: "Virtual 7.1, noise-cancelling microphone",
		Price:       "299.00",
		Image:       "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?auto=format&fit=crop&w=600&h=400",
		Category:    model.CategoryPeripherals,
		Specifications: []string{
			"Virtual 7.1 surround sound", "Noise-cancelling microphone", "50mm drivers",
			"Leatherette ear cushions", "PC and console compatible",
		},
		InStock: true,
	},
}

// SeedProducts inserts the starter catalog when the products table is empty.
// Running against an already seeded store is a no-op.
func SeedProducts(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("counting products: %w", err)
	}
	if count > 0 {
		return nil
	}

	slog.Info("seeding product catalog", "products", len(StarterCatalog))

	query := `INSERT INTO products (name, description, price, image, category, specifications, in_stock)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	for _, p := range StarterCatalog {
		specs, err := json.Marshal(p.Specifications)
		if err != nil {
			return fmt.Errorf("encoding specifications for %q: %w", p.Name, err)
		}
		if _, err := db.ExecContext(ctx, query,
			p.Name, p.Description, p.Price, p.Image, p.Category, specs, p.InStock,
		); err != nil {
			return fmt.Errorf("inserting %q: %w", p.Name, err)
		}
	}

	return nil
}
