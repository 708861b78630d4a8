package config

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"ACCESS_TOKEN_SECRET":  "a",
		"REFRESH_TOKEN_SECRET": "r",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("port: got %q", cfg.Port)
	}
	if cfg.Auth.AccessTokenTTL != 60*time.Minute || cfg.Auth.RefreshTokenTTL != 24*time.Hour {
		t.Errorf("token ttl: got access=%s refresh=%s", cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	}
	if cfg.RateLimit.Requests != 100 || cfg.RateLimit.Window != time.Minute {
		t.Errorf("rate limit: got %d per %s", cfg.RateLimit.Requests, cfg.RateLimit.Window)
	}
	if !slices.Equal(cfg.CORS.AllowOrigins, []string{"http://localhost:3000"}) {
		t.Errorf("cors: got %v", cfg.CORS.AllowOrigins)
	}
	if cfg.Admin.UserName != "admin@123" {
		t.Errorf("admin user name: got %q", cfg.Admin.UserName)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("redis addr: expected empty, got %q", cfg.Redis.Addr)
	}
	if cfg.IsProduction() {
		t.Errorf("expected non-production by default")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"ACCESS_TOKEN_SECRET":    "a",
		"REFRESH_TOKEN_SECRET":   "r",
		"ENV":                    "production",
		"REDIS_ADDR":             "cache:6379",
		"RATE_LIMIT_REQUESTS":    "20",
		"CORS_ALLOW_ORIGINS":     "https://a.example,https://b.example",
		"MONGODB_CONNECTION_URL": "mongodb://db:27017",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !cfg.IsProduction() {
		t.Errorf("expected production")
	}
	if cfg.Redis.Addr != "cache:6379" {
		t.Errorf("redis addr: got %q", cfg.Redis.Addr)
	}
	if cfg.RateLimit.Requests != 20 {
		t.Errorf("rate limit: got %d", cfg.RateLimit.Requests)
	}
	if !slices.Equal(cfg.CORS.AllowOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Errorf("cors: got %v", cfg.CORS.AllowOrigins)
	}
	if cfg.Mongo.URI != "mongodb://db:27017" {
		t.Errorf("mongo uri: got %q", cfg.Mongo.URI)
	}
}

func TestLoadWith_MissingSecrets(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected an error without token secrets")
	}
}

func TestLoadWith_RejectsZeroRateLimit(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"ACCESS_TOKEN_SECRET":  "a",
		"REFRESH_TOKEN_SECRET": "r",
		"RATE_LIMIT_REQUESTS":  "0",
	}))
	if err == nil {
		t.Fatalf("expected an error for a zero request ceiling")
	}
}
