package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/foodhub/ordering-system/internal/core/domain"
)

const (
	defaultAccessTTL  = 60 * time.Minute
	defaultRefreshTTL = 24 * time.Hour
)

// TokenConfig holds signing material. Access and refresh tokens use
// different secrets so one cannot be presented as the other.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenService issues HS256 tokens carrying subject id and email.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

type tokenClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func NewTokenService(cfg TokenConfig) *TokenService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}
}

func (s *TokenService) IssueAccessToken(subjectID, email string) (string, error) {
	return s.sign(subjectID, email, s.accessSecret, s.accessTTL)
}

func (s *TokenService) IssueRefreshToken(subjectID, email string) (string, error) {
	return s.sign(subjectID, email, s.refreshSecret, s.refreshTTL)
}

func (s *TokenService) IssuePair(subjectID, email string) (*domain.TokenPair, error) {
	access, err := s.IssueAccessToken(subjectID, email)
	if err != nil {
		return nil, err
	}
	refresh, err := s.IssueRefreshToken(subjectID, email)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify checks an access token. Expiry is reported as domain.ErrTokenExpired,
// every other failure as domain.ErrInvalidToken.
func (s *TokenService) Verify(token string) (*domain.TokenClaims, error) {
	return s.parse(token, s.accessSecret)
}

func (s *TokenService) VerifyRefresh(token string) (*domain.TokenClaims, error) {
	return s.parse(token, s.refreshSecret)
}

func (s *TokenService) sign(subjectID, email string, secret []byte, ttl time.Duration) (string, error) {
	now := s.now()
	claims := tokenClaims{
		ID:    subjectID,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) parse(token string, secret []byte) (*domain.TokenClaims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	return &domain.TokenClaims{SubjectID: claims.ID, Email: claims.Email}, nil
}
