package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/foodhub/ordering-system/internal/api/middleware"
	"github.com/foodhub/ordering-system/internal/core/domain"
	"github.com/foodhub/ordering-system/internal/core/ports"
)

const testObjectID = "65f0c1d2e3a4b5c6d7e8f901"

type stubAuthService struct {
	loginFn    func(ctx context.Context, input ports.LoginInput) (*ports.Session, error)
	refreshFn  func(ctx context.Context, token string, role domain.Role) (*ports.Session, error)
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, input ports.LoginInput) (*ports.Session, error) {
	return s.loginFn(ctx, input)
}

func (s *stubAuthService) Refresh(ctx context.Context, token string, role domain.Role) (*ports.Session, error) {
	return s.refreshFn(ctx, token, role)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) ResolvePrincipal(context.Context, *domain.TokenClaims, domain.Role) (*domain.Principal, error) {
	return nil, domain.ErrInvalidToken
}

type stubUserService struct {
	updateFn  func(ctx context.Context, principalID string, input ports.UpdateProfileInput) (*domain.User, error)
	listFn    func(ctx context.Context, page domain.Page) (*ports.UserList, error)
	promoteFn func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, principalID string, input ports.UpdateProfileInput) (*domain.User, error) {
	return s.updateFn(ctx, principalID, input)
}

func (s *stubUserService) ListUsers(ctx context.Context, page domain.Page) (*ports.UserList, error) {
	return s.listFn(ctx, page)
}

func (s *stubUserService) PromoteUser(ctx context.Context, id string) (*domain.User, error) {
	return s.promoteFn(ctx, id)
}

func (s *stubUserService) BootstrapAdmin(context.Context, ports.BootstrapAdminInput) (*domain.User, bool, error) {
	return nil, false, nil
}

type stubCategoryService struct {
	createFn func(ctx context.Context, input ports.CreateCategoryInput) (*domain.Category, error)
	updateFn func(ctx context.Context, id string, input ports.UpdateCategoryInput) (*domain.Category, error)
	deleteFn func(ctx context.Context, id string) error
	listFn   func(ctx context.Context, page domain.Page) (*ports.CategoryList, error)
}

func (s *stubCategoryService) Create(ctx context.Context, input ports.CreateCategoryInput) (*domain.Category, error) {
	return s.createFn(ctx, input)
}

func (s *stubCategoryService) Update(ctx context.Context, id string, input ports.UpdateCategoryInput) (*domain.Category, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubCategoryService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubCategoryService) List(ctx context.Context, page domain.Page) (*ports.CategoryList, error) {
	return s.listFn(ctx, page)
}

type stubProductService struct {
	createFn func(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error)
	updateFn func(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error)
	deleteFn func(ctx context.Context, id string) (*domain.Product, error)
	listFn   func(ctx context.Context, input ports.ListProductsInput) (*ports.ProductList, error)
	getFn    func(ctx context.Context, id, categoryID string) (*domain.Product, error)
}

func (s *stubProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	return s.createFn(ctx, input)
}

func (s *stubProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubProductService) SoftDelete(ctx context.Context, id string) (*domain.Product, error) {
	return s.deleteFn(ctx, id)
}

func (s *stubProductService) List(ctx context.Context, input ports.ListProductsInput) (*ports.ProductList, error) {
	return s.listFn(ctx, input)
}

func (s *stubProductService) Get(ctx context.Context, id, categoryID string) (*domain.Product, error) {
	return s.getFn(ctx, id, categoryID)
}

// newContext builds an echo context with the validator installed and a JSON
// body when body is non-nil.
func newContext(method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withPrincipal(c echo.Context, id string, role domain.Role) {
	c.Set(middleware.PrincipalKey, &domain.Principal{ID: id, Email: "alice@example.com", Role: role, IsActive: true})
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d (%s)", status, rec.Code, rec.Body.String())
	}
	resp := decode(t, rec)
	if resp["success"] != false {
		t.Fatalf("expected success=false, got %v", resp["success"])
	}
	if resp["errorCode"] != code {
		t.Fatalf("expected errorCode %s, got %v", code, resp["errorCode"])
	}
}

func expectOK(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	resp := decode(t, rec)
	if resp["success"] != true {
		t.Fatalf("expected success=true, got %v", resp["success"])
	}
	return resp
}
