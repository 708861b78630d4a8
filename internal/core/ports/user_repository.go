package ports

import (
	"context"

	"github.com/foodhub/ordering-system/internal/core/domain"
)

// UserRepository persists accounts. Lookups that match nothing return
// domain.ErrRecordNotFound; unique-key violations return the matching coded
// conflict (email, username or phone).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIDAndRole matches on isAdmin; activeOnly additionally requires isActive.
	FindByIDAndRole(ctx context.Context, id string, role domain.Role, activeOnly bool) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// Promote flips isAdmin false→true atomically.
	Promote(ctx context.Context, id string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role, skip int64, limit int) ([]*domain.User, int64, error)
	AdminExists(ctx context.Context) (bool, error)
}
