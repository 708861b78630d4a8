package ports

import (
	"context"

	"github.com/foodhub/ordering-system/internal/core/domain"
)

type CreateCategoryInput struct {
	Name        string
	Description string
	ParentID    *string
}

// UpdateCategoryInput uses presence markers; an explicit null ParentID
// detaches the category to the root.
type UpdateCategoryInput struct {
	Name        domain.Optional[string]
	Description domain.Optional[string]
	ParentID    domain.Optional[string]
}

type CategoryList struct {
	Categories []*domain.Category
	Total      int64
	Page       domain.Page
	HasNext    bool
}

type CategoryService interface {
	Create(ctx context.Context, input CreateCategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id string, input UpdateCategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, page domain.Page) (*CategoryList, error)
}
