package service

import (
	"context"
	"errors"
	"strings"

	"github.com/techstore/techstore-go/internal/model"
	"github.com/techstore/techstore-go/internal/repository"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogService handles product browsing: listing, category filtering,
// substring search and single-product lookup.
type CatalogService struct {
	store ProductStore
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store ProductStore) *CatalogService {
	return &CatalogService{store: store}
}

// ListProducts returns the catalog, optionally narrowed by search query or
// category. Search takes precedence over category, matching the storefront's
// browse behavior.
func (s *CatalogService) ListProducts(ctx context.Context, category, search string) ([]model.Product, error) {
	var products []model.Product
	var err error

	switch {
	case strings.TrimSpace(search) != "":
		products, err = s.store.SearchProducts(ctx, strings.TrimSpace(search))
	case category != "":
		products, err = s.store.ListProductsByCategory(ctx, category)
	default:
		products, err = s.store.ListProducts(ctx)
	}
	if err != nil {
		return nil, err
	}

	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// GetProduct retrieves a single product by ID.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return model.Product{}, ErrProductNotFound
		}
		return model.Product{}, err
	}
	return product, nil
}
