package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodhub/ordering-system/internal/core/domain"
	"github.com/foodhub/ordering-system/internal/core/ports"
)

// ErrAdminCredentialsMissing is returned by BootstrapAdmin when no admin
// exists and none can be created from configuration.
var ErrAdminCredentialsMissing = errors.New("admin email and password must be configured")

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// UpdateProfile edits the caller's own account. Changing the email makes
// outstanding tokens fail the email cross-check.
func (s *UserService) UpdateProfile(ctx context.Context, principalID string, input ports.UpdateProfileInput) (*domain.User, error) {
	if !domain.ValidID(principalID) {
		return nil, domain.ErrInvalidID
	}

	user, err := s.repo.FindByIDAndRole(ctx, principalID, domain.RoleUser, true)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if input.Email.Present() {
		email := domain.NormalizeEmail(input.Email.Value)
		if email == "" {
			return nil, domain.ErrEmailRequired
		}
		if email != user.Email {
			exists, err := s.repo.ExistsByEmail(ctx, email, user.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, domain.ErrEmailExists
			}
			user.Email = email
		}
	}
	if input.UserName.Set {
		user.UserName = strings.ToLower(strings.TrimSpace(input.UserName.Value))
	}
	if input.PhoneNumber.Set {
		user.PhoneNumber = strings.TrimSpace(input.PhoneNumber.Value)
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", updated.ID).Msg("profile updated")
	return updated, nil
}

func (s *UserService) ListUsers(ctx context.Context, page domain.Page) (*ports.UserList, error) {
	users, total, err := s.repo.ListByRole(ctx, domain.RoleUser, page.Skip(), page.Limit)
	if err != nil {
		return nil, err
	}

	totalPages := page.TotalPages(total)
	return &ports.UserList{
		Users:       users,
		Total:       total,
		Page:        page,
		TotalPages:  totalPages,
		HasNextPage: page.Page < totalPages,
	}, nil
}

// PromoteUser grants the admin role. There is no reverse transition; a
// second promotion of the same id reports ErrUserNotFound.
func (s *UserService) PromoteUser(ctx context.Context, id string) (*domain.User, error) {
	if !domain.ValidID(id) {
		return nil, domain.ErrInvalidID
	}

	user, err := s.repo.Promote(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user promoted to admin")
	return user, nil
}

func (s *UserService) BootstrapAdmin(ctx context.Context, input ports.BootstrapAdminInput) (*domain.User, bool, error) {
	exists, err := s.repo.AdminExists(ctx)
	if err != nil {
		return nil, false, err
	}
	if exists {
		return nil, false, nil
	}

	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, false, ErrAdminCredentialsMissing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	admin, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		UserName:     strings.ToLower(strings.TrimSpace(input.UserName)),
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		PasswordHash: string(hash),
		IsAdmin:      true,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, false, err
	}

	s.logger.Info().Str("user_id", admin.ID).Str("email", admin.Email).Msg("bootstrap admin created")
	return admin, true, nil
}
