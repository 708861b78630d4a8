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

// AuthService implements login, token refresh, registration and principal
// resolution for both roles.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (*ports.Session, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.ErrEmailOrPasswordRequired
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrUnauthorisedAccess
		}
		return nil, err
	}
	if user.Role() != input.Role || !user.IsActive {
		return nil, domain.ErrUnauthorisedAccess
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, domain.ErrIncorrectPassword
	}

	tokens, err := s.tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", input.Role.String()).Msg("login succeeded")
	return &ports.Session{User: user, Tokens: tokens}, nil
}

// Refresh exchanges a refresh token for a new pair. The account is
// re-resolved so deactivation or an email change invalidates old tokens.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, role domain.Role) (*ports.Session, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, domain.ErrRefreshTokenRequired
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.resolveUser(ctx, claims, role)
	if err != nil {
		return nil, err
	}

	tokens, err := s.tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &ports.Session{User: user, Tokens: tokens}, nil
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, domain.ErrEmailOrPasswordRequired
	}

	exists, err := s.repo.ExistsByEmail(ctx, email, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		UserName:     strings.ToLower(strings.TrimSpace(input.UserName)),
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		PasswordHash: string(hash),
		IsAdmin:      false,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *AuthService) ResolvePrincipal(ctx context.Context, claims *domain.TokenClaims, role domain.Role) (*domain.Principal, error) {
	user, err := s.resolveUser(ctx, claims, role)
	if err != nil {
		return nil, err
	}
	return user.Principal(), nil
}

// resolveUser requires a well-formed subject, an active account of the
// requested role, and an email that still matches the token. Role mismatch
// is reported exactly like a missing account.
func (s *AuthService) resolveUser(ctx context.Context, claims *domain.TokenClaims, role domain.Role) (*domain.User, error) {
	if claims == nil || !domain.ValidID(claims.SubjectID) {
		return nil, domain.ErrInvalidID
	}

	user, err := s.repo.FindByIDAndRole(ctx, claims.SubjectID, role, true)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	if user.Email != claims.Email {
		return nil, domain.ErrInvalidToken
	}
	return user, nil
}
