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

type ProductService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	logger     zerolog.Logger
}

func NewProductService(products ports.ProductRepository, categories ports.CategoryRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{products: products, categories: categories, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	categoryID := strings.TrimSpace(input.CategoryID)
	category, err := s.activeCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	product := &domain.Product{
		Name:        domain.NormalizeName(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Stock:       input.Stock,
		CategoryID:  category.ID,
		IsActive:    true,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.products.ExistsActiveByName(ctx, product.Name, category.ID, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateProductName
	}

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	created.Category = &domain.CategoryRef{ID: category.ID, Name: category.Name}

	s.logger.Info().Str("product_id", created.ID).Str("category_id", category.ID).Msg("product created")
	return created, nil
}

// Update applies only the fields present in input. Name uniqueness is checked
// within the product's resulting category, matching Create.
func (s *ProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.loadActive(ctx, id, "")
	if err != nil {
		return nil, err
	}

	nameChanged, categoryChanged := false, false

	if input.CategoryID.Set {
		if input.CategoryID.Null {
			return nil, domain.ErrCategoryIDRequired
		}
		category, err := s.activeCategory(ctx, strings.TrimSpace(input.CategoryID.Value))
		if err != nil {
			return nil, err
		}
		if category.ID != product.CategoryID {
			product.CategoryID = category.ID
			product.Category = &domain.CategoryRef{ID: category.ID, Name: category.Name}
			categoryChanged = true
		}
	}
	if input.Name.Set {
		name := domain.NormalizeName(input.Name.Value)
		if name != product.Name {
			product.Name = name
			nameChanged = true
		}
	}
	if input.Description.Set {
		product.Description = strings.TrimSpace(input.Description.Value)
	}
	if input.Price.Set {
		if input.Price.Null {
			return nil, domain.ErrPriceRequired
		}
		product.Price = input.Price.Value
	}
	if input.Stock.Set {
		if input.Stock.Null {
			return nil, domain.ErrStockRequired
		}
		product.Stock = input.Stock.Value
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if nameChanged || categoryChanged {
		exists, err := s.products.ExistsActiveByName(ctx, product.Name, product.CategoryID, product.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateProductName
		}
	}
	product.UpdatedAt = time.Now().UTC()

	updated, err := s.products.Update(ctx, product)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", updated.ID).Msg("product updated")
	return updated, nil
}

func (s *ProductService) SoftDelete(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.loadActive(ctx, id, "")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.products.SoftDelete(ctx, product.ID, now); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	product.IsActive = false
	product.DeletedAt = &now
	product.UpdatedAt = now

	s.logger.Info().Str("product_id", product.ID).Msg("product deleted")
	return product, nil
}

// List pages through active products, newest first. A category-scoped list
// with no results reports ErrProductNotFound.
func (s *ProductService) List(ctx context.Context, input ports.ListProductsInput) (*ports.ProductList, error) {
	categoryID := strings.TrimSpace(input.CategoryID)
	if categoryID != "" && !domain.ValidID(categoryID) {
		return nil, domain.ErrInvalidID
	}

	products, total, err := s.products.ListActive(ctx, ports.ProductFilter{
		CategoryID: categoryID,
		Skip:       input.Page.Skip(),
		Limit:      input.Page.Limit,
	})
	if err != nil {
		return nil, err
	}
	if categoryID != "" && total == 0 {
		return nil, domain.ErrProductNotFound
	}

	return &ports.ProductList{
		Products:    products,
		Total:       total,
		Page:        input.Page,
		TotalPages:  input.Page.TotalPages(total),
		HasNextPage: input.Page.Skip()+int64(len(products)) < total,
	}, nil
}

func (s *ProductService) Get(ctx context.Context, id, categoryID string) (*domain.Product, error) {
	categoryID = strings.TrimSpace(categoryID)
	if categoryID != "" && !domain.ValidID(categoryID) {
		return nil, domain.ErrInvalidID
	}
	return s.loadActive(ctx, id, categoryID)
}

func (s *ProductService) loadActive(ctx context.Context, id, categoryID string) (*domain.Product, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrInvalidID
	}

	product, err := s.products.FindActive(ctx, id, categoryID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) activeCategory(ctx context.Context, id string) (*domain.Category, error) {
	if id == "" {
		return nil, domain.ErrCategoryIDRequired
	}
	if !domain.ValidID(id) {
		return nil, domain.ErrInvalidID
	}

	category, err := s.categories.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}
