package domain

import (
	"strings"
	"time"
)

// Role selects which side of the API a principal may act on.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

func (r Role) IsAdmin() bool { return r == RoleAdmin }

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "user"
}

// User is a stored account. PasswordHash never leaves the process.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	UserName     string    `json:"userName,omitempty"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Role reports the account's role.
func (u *User) Role() Role {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Principal returns the request-scoped view of u.
func (u *User) Principal() *Principal {
	return &Principal{
		ID:        u.ID,
		Email:     u.Email,
		UserName:  u.UserName,
		Role:      u.Role(),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Principal is the authenticated actor attached to a request.
type Principal struct {
	ID        string
	Email     string
	UserName  string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TokenClaims is what a verified token asserts about its bearer.
type TokenClaims struct {
	SubjectID string
	Email     string
}

// TokenPair is issued on login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
