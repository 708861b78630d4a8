package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/foodhub/ordering-system/internal/core/domain"
	"github.com/foodhub/ordering-system/internal/core/ports"
)

func TestAuthHandler_AdminLogin_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, input ports.LoginInput) (*ports.Session, error) {
			if input.Email != "admin@example.com" || input.Password != "Secret1!" || input.Role != domain.RoleAdmin {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.Session{
				User:   &domain.User{ID: testObjectID, Email: input.Email, PasswordHash: "hash", IsAdmin: true, IsActive: true},
				Tokens: &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
			}, nil
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	c, rec := newContext(http.MethodPost, "/admin/login", strings.NewReader(`{"email":"admin@example.com","password":"Secret1!"}`))
	if err := handler.AdminLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := expectOK(t, rec)
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data in response")
	}
	if data["accessToken"] != "access" || data["refreshToken"] != "refresh" {
		t.Fatalf("unexpected tokens: %+v", data)
	}
	user, ok := data["user"].(map[string]any)
	if !ok || user["id"] != testObjectID {
		t.Fatalf("unexpected user payload: %+v", data["user"])
	}
	if strings.Contains(rec.Body.String(), "hash") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_UserLogin_PassesUserRole(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, input ports.LoginInput) (*ports.Session, error) {
			if input.Role != domain.RoleUser {
				t.Fatalf("expected user role, got %v", input.Role)
			}
			return nil, domain.ErrUnauthorisedAccess
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	c, rec := newContext(http.MethodPost, "/user/login", strings.NewReader(`{"email":"a@b.com","password":"x"}`))
	_ = handler.UserLogin(c)

	expectError(t, rec, http.StatusForbidden, "UNAUTHORISED_ACCESS")
}

func TestAuthHandler_Login_IncorrectPassword(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, input ports.LoginInput) (*ports.Session, error) {
			return nil, domain.ErrIncorrectPassword
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	c, rec := newContext(http.MethodPost, "/admin/login", strings.NewReader(`{"email":"admin@example.com","password":"bad"}`))
	_ = handler.AdminLogin(c)

	expectError(t, rec, http.StatusUnauthorized, "INCORRECT_PASSWORD")
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, input ports.LoginInput) (*ports.Session, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	c, rec := newContext(http.MethodPost, "/admin/login", strings.NewReader("{"))
	_ = handler.AdminLogin(c)

	expectError(t, rec, http.StatusBadRequest, "BAD_REQUEST")
}

func TestAuthHandler_Refresh(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, token string, role domain.Role) (*ports.Session, error) {
			if token != "refresh-token" || role != domain.RoleAdmin {
				t.Fatalf("unexpected args: %s %v", token, role)
			}
			return &ports.Session{
				User:   &domain.User{ID: testObjectID},
				Tokens: &domain.TokenPair{AccessToken: "a2", RefreshToken: "r2"},
			}, nil
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	c, rec := newContext(http.MethodPost, "/admin/refreshToken", strings.NewReader(`{"refreshToken":"refresh-token"}`))
	if err := handler.AdminRefresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	data := expectOK(t, rec)["data"].(map[string]any)
	if data["accessToken"] != "a2" {
		t.Fatalf("unexpected data: %+v", data)
	}
}

func TestAuthHandler_Refresh_Expired(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, token string, role domain.Role) (*ports.Session, error) {
			return nil, domain.ErrTokenExpired
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	c, rec := newContext(http.MethodPost, "/user/refreshToken", strings.NewReader(`{"refreshToken":"old"}`))
	_ = handler.UserRefresh(c)

	expectError(t, rec, http.StatusUnauthorized, "TOKEN_EXPIRED")
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
			if input.Email != "a@b.com" || input.UserName != "alice1" || input.Password != "Abcdef1!" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: testObjectID, Email: input.Email, UserName: input.UserName, IsActive: true}, nil
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	c, rec := newContext(http.MethodPost, "/user/userRegister",
		strings.NewReader(`{"email":"a@b.com","userName":"alice1","password":"Abcdef1!"}`))
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	user := expectOK(t, rec)["data"].(map[string]any)
	if user["isAdmin"] != false || user["isActive"] != true || user["userName"] != "alice1" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Register_ValidationCodes(t *testing.T) {
	cases := []struct {
		name string
		body string
		code string
	}{
		{"missing email", `{"password":"Abcdef1!"}`, "EMAIL_IS_REQUIRED"},
		{"bad email", `{"email":"not-an-email","password":"Abcdef1!"}`, "INVALID_EMAIL"},
		{"short username", `{"email":"a@b.com","userName":"al","password":"Abcdef1!"}`, "USERNAME_LENGTH"},
		{"bad phone", `{"email":"a@b.com","phoneNumber":"0123","password":"Abcdef1!"}`, "INVALID_PHONENUMBER"},
		{"missing password", `{"email":"a@b.com"}`, "PASSWORD_IS_REQUIRED"},
		{"short password", `{"email":"a@b.com","password":"Ab1!"}`, "PASSWORD_LENGTH"},
		{"weak password", `{"email":"a@b.com","password":"abcdefgh1"}`, "PASSWORD_COMPLEXITY"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAuthService{
				registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
					t.Fatalf("should not be called")
					return nil, nil
				},
			}
			handler := NewAuthHandler(stub, zerolog.Nop())

			c, rec := newContext(http.MethodPost, "/user/userRegister", strings.NewReader(tc.body))
			_ = handler.Register(c)

			expectError(t, rec, http.StatusBadRequest, tc.code)
		})
	}
}

func TestAuthHandler_Register_EmailExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrEmailExists
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	c, rec := newContext(http.MethodPost, "/user/userRegister", strings.NewReader(`{"email":"a@b.com","password":"Abcdef1!"}`))
	_ = handler.Register(c)

	expectError(t, rec, http.StatusBadRequest, "EMAIL_ALREADY_EXISTS")
}

func TestAuthHandler_Register_UsernameConflict(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUsernameExists
		},
	}
	handler := NewAuthHandler(stub, zerolog.Nop())

	c, rec := newContext(http.MethodPost, "/user/userRegister",
		strings.NewReader(`{"email":"a@b.com","userName":"alice1","password":"Abcdef1!"}`))
	_ = handler.Register(c)

	expectError(t, rec, http.StatusConflict, "USERNAME_ALREADY_EXIST")
}
