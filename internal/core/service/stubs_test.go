package service

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/foodhub/ordering-system/internal/core/domain"
	"github.com/foodhub/ordering-system/internal/core/ports"
)

func newID() string { return primitive.NewObjectID().Hex() }

// --- users ---

type stubUserRepo struct {
	users map[string]*domain.User
	order []string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailExists
		}
		if user.UserName != "" && u.UserName == user.UserName {
			return nil, domain.ErrUsernameExists
		}
		if user.PhoneNumber != "" && u.PhoneNumber == user.PhoneNumber {
			return nil, domain.ErrPhoneNumberExists
		}
	}
	copy := cloneUser(user)
	copy.ID = newID()
	r.users[copy.ID] = copy
	r.order = append(r.order, copy.ID)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r *stubUserRepo) FindByIDAndRole(_ context.Context, id string, role domain.Role, activeOnly bool) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.IsAdmin != role.IsAdmin() || (activeOnly && !u.IsActive) {
		return nil, domain.ErrRecordNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email, excludeID string) (bool, error) {
	for id, u := range r.users {
		if u.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrRecordNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Promote(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || u.IsAdmin {
		return nil, domain.ErrRecordNotFound
	}
	u.IsAdmin = true
	return cloneUser(u), nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.Role, skip int64, limit int) ([]*domain.User, int64, error) {
	var matched []*domain.User
	for _, id := range r.order {
		if u := r.users[id]; u.IsAdmin == role.IsAdmin() {
			matched = append(matched, cloneUser(u))
		}
	}
	return window(matched, skip, limit), int64(len(matched)), nil
}

func (r *stubUserRepo) AdminExists(_ context.Context) (bool, error) {
	for _, u := range r.users {
		if u.IsAdmin {
			return true, nil
		}
	}
	return false, nil
}

// --- categories ---

type stubCategoryRepo struct {
	categories map[string]*domain.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[string]*domain.Category)}
}

func cloneCategory(c *domain.Category) *domain.Category {
	clone := *c
	if c.ParentID != nil {
		parent := *c.ParentID
		clone.ParentID = &parent
	}
	return &clone
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	copy := cloneCategory(c)
	copy.ID = newID()
	r.categories[copy.ID] = copy
	return cloneCategory(copy), nil
}

func (r *stubCategoryRepo) FindActiveByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok || !c.IsActive {
		return nil, domain.ErrRecordNotFound
	}
	return cloneCategory(c), nil
}

func (r *stubCategoryRepo) ExistsActiveByName(_ context.Context, name, excludeID string) (bool, error) {
	for id, c := range r.categories {
		if c.IsActive && c.Name == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCategoryRepo) HasActiveChildren(_ context.Context, id string) (bool, error) {
	for _, c := range r.categories {
		if c.IsActive && c.ParentID != nil && *c.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *domain.Category) (*domain.Category, error) {
	if _, ok := r.categories[c.ID]; !ok {
		return nil, domain.ErrRecordNotFound
	}
	r.categories[c.ID] = cloneCategory(c)
	return cloneCategory(c), nil
}

func (r *stubCategoryRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	c, ok := r.categories[id]
	if !ok || !c.IsActive {
		return domain.ErrRecordNotFound
	}
	c.IsActive = false
	c.DeletedAt = &at
	return nil
}

func (r *stubCategoryRepo) ListActive(_ context.Context, skip int64, limit int) ([]*domain.Category, int64, error) {
	var active []*domain.Category
	for _, c := range r.categories {
		if c.IsActive {
			active = append(active, cloneCategory(c))
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Name < active[j].Name })
	return window(active, skip, limit), int64(len(active)), nil
}

// --- products ---

type stubProductRepo struct {
	products map[string]*domain.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	return &clone
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	copy := cloneProduct(p)
	copy.ID = newID()
	r.products[copy.ID] = copy
	return cloneProduct(copy), nil
}

func (r *stubProductRepo) FindActive(_ context.Context, id, categoryID string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok || !p.IsActive || (categoryID != "" && p.CategoryID != categoryID) {
		return nil, domain.ErrRecordNotFound
	}
	return cloneProduct(p), nil
}

func (r *stubProductRepo) ExistsActiveByName(_ context.Context, name, categoryID, excludeID string) (bool, error) {
	for id, p := range r.products {
		if p.IsActive && p.Name == name && p.CategoryID == categoryID && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if _, ok := r.products[p.ID]; !ok {
		return nil, domain.ErrRecordNotFound
	}
	r.products[p.ID] = cloneProduct(p)
	return cloneProduct(p), nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	p, ok := r.products[id]
	if !ok || !p.IsActive {
		return domain.ErrRecordNotFound
	}
	p.IsActive = false
	p.DeletedAt = &at
	return nil
}

func (r *stubProductRepo) ListActive(_ context.Context, f ports.ProductFilter) ([]*domain.Product, int64, error) {
	var active []*domain.Product
	for _, p := range r.products {
		if p.IsActive && (f.CategoryID == "" || p.CategoryID == f.CategoryID) {
			active = append(active, cloneProduct(p))
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].CreatedAt.After(active[j].CreatedAt) })
	return window(active, f.Skip, f.Limit), int64(len(active)), nil
}

func window[T any](items []T, skip int64, limit int) []T {
	if skip >= int64(len(items)) {
		return nil
	}
	end := skip + int64(limit)
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[skip:end]
}
