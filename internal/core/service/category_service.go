package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodhub/ordering-system/internal/core/domain"
	"github.com/foodhub/ordering-system/internal/core/ports"
)

// maxCategoryDepth bounds the ancestor walk so a pre-existing corrupt chain
// cannot loop forever.
const maxCategoryDepth = 64

type CategoryService struct {
	repo   ports.CategoryRepository
	logger zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, logger zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, logger: logger}
}

// Create inserts an active category. The parent id is format-checked only.
func (s *CategoryService) Create(ctx context.Context, input ports.CreateCategoryInput) (*domain.Category, error) {
	category := &domain.Category{
		Name:        domain.NormalizeName(input.Name),
		Description: strings.TrimSpace(input.Description),
		IsActive:    true,
	}
	if err := category.Validate(); err != nil {
		return nil, err
	}

	// A blank parent is the same as none.
	if input.ParentID != nil && strings.TrimSpace(*input.ParentID) != "" {
		parentID := strings.TrimSpace(*input.ParentID)
		if !domain.ValidID(parentID) {
			return nil, domain.ErrInvalidParentID
		}
		category.ParentID = &parentID
	}

	exists, err := s.repo.ExistsActiveByName(ctx, category.Name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrCategoryNameExists
	}

	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	created, err := s.repo.Create(ctx, category)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("category_id", created.ID).Str("name", created.Name).Msg("category created")
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, input ports.UpdateCategoryInput) (*domain.Category, error) {
	category, err := s.loadActive(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name.Set {
		name := domain.NormalizeName(input.Name.Value)
		if name != category.Name {
			exists, err := s.repo.ExistsActiveByName(ctx, name, category.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrCategoryNameExists
			}
			category.Name = name
		}
	}

	if input.Description.Set {
		category.Description = strings.TrimSpace(input.Description.Value)
	}

	// null detaches to the root; a blank string leaves the parent as is.
	if input.ParentID.Set {
		parentID := strings.TrimSpace(input.ParentID.Value)
		switch {
		case input.ParentID.Null:
			category.ParentID = nil
			category.Parent = nil
		case parentID != "":
			if err := s.checkParent(ctx, category.ID, parentID); err != nil {
				return nil, err
			}
			category.ParentID = &parentID
		}
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}
	category.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("category_id", updated.ID).Msg("category updated")
	return updated, nil
}

// Delete soft-deletes a category that no active category uses as parent.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	category, err := s.loadActive(ctx, id)
	if err != nil {
		return err
	}

	hasChildren, err := s.repo.HasActiveChildren(ctx, category.ID)
	if err != nil {
		return err
	}
	if hasChildren {
		return domain.ErrCannotDeleteParent
	}

	if err := s.repo.SoftDelete(ctx, category.ID, time.Now().UTC()); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrProductCategoryNotFound
		}
		return err
	}

	s.logger.Info().Str("category_id", category.ID).Msg("category deleted")
	return nil
}

func (s *CategoryService) List(ctx context.Context, page domain.Page) (*ports.CategoryList, error) {
	categories, total, err := s.repo.ListActive(ctx, page.Skip(), page.Limit)
	if err != nil {
		return nil, err
	}

	return &ports.CategoryList{
		Categories: categories,
		Total:      total,
		Page:       page,
		HasNext:    total > int64(page.Page)*int64(page.Limit),
	}, nil
}

func (s *CategoryService) loadActive(ctx context.Context, id string) (*domain.Category, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrInvalidID
	}

	category, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrProductCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// checkParent validates a new parent for categoryID: well-formed, active,
// not the category itself and not one of its descendants.
func (s *CategoryService) checkParent(ctx context.Context, categoryID, parentID string) error {
	if !domain.ValidID(parentID) {
		return domain.ErrInvalidParentID
	}

	parent, err := s.repo.FindActiveByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrParentCategoryNotFound
		}
		return err
	}
	if parent.ID == categoryID {
		return domain.ErrCategorySelfParent
	}

	seen := map[string]struct{}{parent.ID: {}}
	next := parent.ParentID
	for depth := 0; next != nil && depth < maxCategoryDepth; depth++ {
		if *next == categoryID {
			return domain.ErrCategoryCycle
		}
		if _, ok := seen[*next]; ok {
			return domain.ErrCategoryCycle
		}
		seen[*next] = struct{}{}

		ancestor, err := s.repo.FindActiveByID(ctx, *next)
		if err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		next = ancestor.ParentID
	}
	return nil
}
