package ports

import (
	"context"
	"time"

	"github.com/foodhub/ordering-system/internal/core/domain"
)

// CategoryRepository persists the category tree. All Find/Exists methods
// consider active categories only.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	FindActiveByID(ctx context.Context, id string) (*domain.Category, error)
	ExistsActiveByName(ctx context.Context, name, excludeID string) (bool, error)
	HasActiveChildren(ctx context.Context, id string) (bool, error)
	Update(ctx context.Context, category *domain.Category) (*domain.Category, error)
	SoftDelete(ctx context.Context, id string, at time.Time) error
	// ListActive returns a page sorted by name with parents populated.
	ListActive(ctx context.Context, skip int64, limit int) ([]*domain.Category, int64, error)
}
