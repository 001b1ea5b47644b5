package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrNegativePrice = errors.New("price cannot be negative")
	ErrNegativeStock = errors.New("stock cannot be negative")
)

// Store holds the product collection. Mutations replace the whole collection,
// which both updates in-memory state and persists it.
type Store interface {
	Products() []Product
	ReplaceProducts(ctx context.Context, products []Product) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type CreateParams struct {
	Name        string
	Price       int64
	Stock       int
	Description string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (Product, error) {
	if params.Price < 0 {
		return Product{}, ErrNegativePrice
	}

	if params.Stock < 0 {
		return Product{}, ErrNegativeStock
	}

	product := Product{
		ID:          uuid.New(),
		Name:        params.Name,
		Price:       params.Price,
		Stock:       params.Stock,
		Description: params.Description,
	}

	products := append(s.store.Products(), product)
	if err := s.store.ReplaceProducts(ctx, products); err != nil {
		return Product{}, err
	}

	return product, nil
}

// UpdateParams carries a partial update; nil fields are left unchanged.
type UpdateParams struct {
	Name        *string
	Price       *int64
	Stock       *int
	Description *string
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) error {
	if params.Price != nil && *params.Price < 0 {
		return ErrNegativePrice
	}

	if params.Stock != nil && *params.Stock < 0 {
		return ErrNegativeStock
	}

	products := s.store.Products()

	found := false

	for i := range products {
		if products[i].ID != id {
			continue
		}

		if params.Name != nil {
			products[i].Name = *params.Name
		}

		if params.Price != nil {
			products[i].Price = *params.Price
		}

		if params.Stock != nil {
			products[i].Stock = *params.Stock
		}

		if params.Description != nil {
			products[i].Description = *params.Description
		}

		found = true

		break
	}

	if !found {
		return ErrNotFound
	}

	return s.store.ReplaceProducts(ctx, products)
}

// Delete removes the product with the given id. Deleting an id that is not
// in the catalog is a no-op; historical sales keep their own snapshot of the
// product data.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	products := s.store.Products()

	kept := products[:0]
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	if len(kept) == len(products) {
		return nil
	}

	return s.store.ReplaceProducts(ctx, kept)
}

func (s *Service) Get(id uuid.UUID) (Product, error) {
	for _, p := range s.store.Products() {
		if p.ID == id {
			return p, nil
		}
	}

	return Product{}, ErrNotFound
}

func (s *Service) List() []Product {
	return s.store.Products()
}

// Search returns products whose name contains the term, case-insensitively.
// An empty term returns the full catalog.
func (s *Service) Search(term string) []Product {
	products := s.store.Products()
	if term == "" {
		return products
	}

	term = strings.ToLower(term)

	var matched []Product

	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), term) {
			matched = append(matched, p)
		}
	}

	return matched
}
