package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/foodhub/ordering-system/internal/core/domain"
)

type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	CategoryID  string
	Stock       int
}

type UpdateProductInput struct {
	Name        domain.Optional[string]
	Description domain.Optional[string]
	Price       domain.Optional[decimal.Decimal]
	CategoryID  domain.Optional[string]
	Stock       domain.Optional[int]
}

type ListProductsInput struct {
	Page       domain.Page
	CategoryID string
}

type ProductList struct {
	Products    []*domain.Product
	Total       int64
	Page        domain.Page
	TotalPages  int
	HasNextPage bool
}

type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	SoftDelete(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, input ListProductsInput) (*ProductList, error)
	Get(ctx context.Context, id, categoryID string) (*domain.Product, error)
}
