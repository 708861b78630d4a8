package ports

import (
	"context"

	"github.com/foodhub/ordering-system/internal/core/domain"
)

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	IssuePair(subjectID, email string) (*domain.TokenPair, error)
	Verify(token string) (*domain.TokenClaims, error)
	VerifyRefresh(token string) (*domain.TokenClaims, error)
}

type LoginInput struct {
	Email    string
	Password string
	Role     domain.Role
}

type RegisterInput struct {
	Email       string
	UserName    string
	PhoneNumber string
	Password    string
}

// Session is the result of a successful login or refresh.
type Session struct {
	User   *domain.User
	Tokens *domain.TokenPair
}

type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*Session, error)
	Refresh(ctx context.Context, refreshToken string, role domain.Role) (*Session, error)
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// ResolvePrincipal maps verified claims to an active account of role.
	ResolvePrincipal(ctx context.Context, claims *domain.TokenClaims, role domain.Role) (*domain.Principal, error)
}
