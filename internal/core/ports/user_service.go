package ports

import (
	"context"

	"github.com/foodhub/ordering-system/internal/core/domain"
)

// UpdateProfileInput carries only the fields the caller sent.
type UpdateProfileInput struct {
	Email       domain.Optional[string]
	UserName    domain.Optional[string]
	PhoneNumber domain.Optional[string]
}

type BootstrapAdminInput struct {
	Email       string
	Password    string
	UserName    string
	PhoneNumber string
}

type UserList struct {
	Users       []*domain.User
	Total       int64
	Page        domain.Page
	TotalPages  int
	HasNextPage bool
}

type UserService interface {
	UpdateProfile(ctx context.Context, principalID string, input UpdateProfileInput) (*domain.User, error)
	ListUsers(ctx context.Context, page domain.Page) (*UserList, error)
	PromoteUser(ctx context.Context, id string) (*domain.User, error)
	// BootstrapAdmin creates the first admin; created is false when one exists.
	BootstrapAdmin(ctx context.Context, input BootstrapAdminInput) (user *domain.User, created bool, err error)
}
