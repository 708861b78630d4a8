package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/foodhub/ordering-system/internal/core/domain"
	"github.com/foodhub/ordering-system/internal/core/ports"
)

func TestUserService_PromoteTwice(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	user := seedUser(t, repo, "user@example.com", "Secret1!", false)

	promoted, err := svc.PromoteUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if !promoted.IsAdmin || !repo.users[user.ID].IsAdmin {
		t.Fatalf("expected isAdmin=true after promotion")
	}

	if _, err := svc.PromoteUser(context.Background(), user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("second promotion: expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.PromoteUser(context.Background(), "bad-id"); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestUserService_ListUsers_ExcludesAdmins(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	seedUser(t, repo, "admin@example.com", "Secret1!", true)
	for i := 0; i < 7; i++ {
		seedUser(t, repo, fmt.Sprintf("user%d@example.com", i), "Secret1!", false)
	}

	list, err := svc.ListUsers(context.Background(), domain.Page{Page: 1, Limit: 5})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.Total != 7 || len(list.Users) != 5 || list.TotalPages != 2 || !list.HasNextPage {
		t.Fatalf("unexpected page 1: total=%d len=%d pages=%d next=%v", list.Total, len(list.Users), list.TotalPages, list.HasNextPage)
	}
	for _, u := range list.Users {
		if u.IsAdmin {
			t.Fatalf("admin leaked into user list")
		}
	}

	list, err = svc.ListUsers(context.Background(), domain.Page{Page: 2, Limit: 5})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Users) != 2 || list.HasNextPage {
		t.Fatalf("unexpected page 2: len=%d next=%v", len(list.Users), list.HasNextPage)
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	user := seedUser(t, repo, "user@example.com", "Secret1!", false)
	seedUser(t, repo, "taken@example.com", "Secret1!", false)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, user.ID, ports.UpdateProfileInput{Email: domain.Some("TAKEN@example.com")})
	if !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, user.ID, ports.UpdateProfileInput{
		Email:    domain.Some("new@example.com"),
		UserName: domain.Some("NewName1"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Email != "new@example.com" || updated.UserName != "newname1" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	admin := seedUser(t, repo, "admin@example.com", "Secret1!", true)
	if _, err := svc.UpdateProfile(ctx, admin.ID, ports.UpdateProfileInput{}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("admin profile via user route: expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_BootstrapAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	ctx := context.Background()

	if _, _, err := svc.BootstrapAdmin(ctx, ports.BootstrapAdminInput{}); !errors.Is(err, ErrAdminCredentialsMissing) {
		t.Fatalf("expected ErrAdminCredentialsMissing, got %v", err)
	}

	admin, created, err := svc.BootstrapAdmin(ctx, ports.BootstrapAdminInput{Email: "Root@Example.com", Password: "Secret1!", UserName: "ADMIN@123"})
	if err != nil || !created {
		t.Fatalf("bootstrap: created=%v err=%v", created, err)
	}
	if !admin.IsAdmin || admin.Email != "root@example.com" || admin.UserName != "admin@123" {
		t.Fatalf("unexpected admin: %+v", admin)
	}

	_, created, err = svc.BootstrapAdmin(ctx, ports.BootstrapAdminInput{Email: "other@example.com", Password: "x"})
	if err != nil || created {
		t.Fatalf("second bootstrap should be a no-op: created=%v err=%v", created, err)
	}
}
