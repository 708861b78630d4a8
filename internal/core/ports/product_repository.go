package ports

import (
	"context"
	"time"

	"github.com/foodhub/ordering-system/internal/core/domain"
)

// ProductFilter narrows ListActive. An empty CategoryID lists every category.
type ProductFilter struct {
	CategoryID string
	Skip       int64
	Limit      int
}

// ProductRepository persists products. Reads populate the category name.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// FindActive looks up id, constrained to categoryID when non-empty.
	FindActive(ctx context.Context, id, categoryID string) (*domain.Product, error)
	ExistsActiveByName(ctx context.Context, name, categoryID, excludeID string) (bool, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
	ListActive(ctx context.Context, filter ProductFilter) ([]*domain.Product, int64, error)
}
