package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/foodhub/ordering-system/internal/api/metrics"
	"github.com/foodhub/ordering-system/internal/core/ports"
	"github.com/foodhub/ordering-system/internal/infrastructure/ratelimit"
)

type failingStore struct{}

func (failingStore) Hit(context.Context, string, time.Duration) (ports.RateLimitWindow, error) {
	return ports.RateLimitWindow{}, errors.New("store down")
}

func (failingStore) Restrict(context.Context, string) (bool, error) {
	return false, errors.New("store down")
}

func (failingStore) Restricted(context.Context) ([]string, error) {
	return nil, errors.New("store down")
}

func newLimitedEcho(store ports.RateLimitStore, requests int) *echo.Echo {
	e := echo.New()
	e.Use(RateLimit(store, RateLimitConfig{Requests: requests, Window: time.Minute}, zerolog.Nop()))
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e
}

func hit(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":12345"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_AllowsUpToLimitThenRejects(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	e := newLimitedEcho(store, 100)

	for i := 1; i <= 100; i++ {
		if rec := hit(e, "10.0.0.1"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}

	rec := hit(e, "10.0.0.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "TOO_MANY_REQUESTS") {
		t.Fatalf("expected TOO_MANY_REQUESTS body, got %s", rec.Body.String())
	}
	if got := rec.Header().Get(HeaderRateLimitLimit); got != "100" {
		t.Fatalf("expected limit header 100, got %q", got)
	}
	if got := rec.Header().Get(HeaderRateLimitRemaining); got != "0" {
		t.Fatalf("expected remaining header 0, got %q", got)
	}

	ips, err := store.Restricted(context.Background())
	if err != nil || !slices.Contains(ips, "10.0.0.1") {
		t.Fatalf("expected 10.0.0.1 to be restricted, got %v %v", ips, err)
	}
}

func TestRateLimit_RestrictedClientsGauge(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	e := newLimitedEcho(store, 1)

	for _, ip := range []string{"10.0.1.1", "10.0.1.2"} {
		hit(e, ip)
		hit(e, ip)
	}
	// A repeat offender is already in the set and leaves the gauge alone.
	hit(e, "10.0.1.1")

	if got := testutil.ToFloat64(metrics.RestrictedClients); got != 2 {
		t.Fatalf("expected gauge 2, got %v", got)
	}
}

func TestRateLimit_Headers(t *testing.T) {
	e := newLimitedEcho(ratelimit.NewMemoryStore(), 3)

	rec := hit(e, "10.0.0.2")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	h := rec.Header()
	if h.Get(HeaderRateLimitLimit) != "3" || h.Get(HeaderRateLimitRemaining) != "2" || h.Get(HeaderRateLimitReset) != "60" {
		t.Fatalf("unexpected headers: limit=%q remaining=%q reset=%q",
			h.Get(HeaderRateLimitLimit), h.Get(HeaderRateLimitRemaining), h.Get(HeaderRateLimitReset))
	}
}

func TestRateLimit_ClientsAreIndependent(t *testing.T) {
	e := newLimitedEcho(ratelimit.NewMemoryStore(), 1)

	if code := hit(e, "10.0.0.3").Code; code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if code := hit(e, "10.0.0.3").Code; code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
	if code := hit(e, "10.0.0.4").Code; code != http.StatusOK {
		t.Fatalf("expected other client to pass, got %d", code)
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	e := newLimitedEcho(failingStore{}, 1)

	for i := 0; i < 3; i++ {
		if code := hit(e, "10.0.0.5").Code; code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, code)
		}
	}
}

func TestRateLimit_Skipper(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(ratelimit.NewMemoryStore(), RateLimitConfig{
		Requests: 1,
		Skipper:  func(c echo.Context) bool { return c.Path() == "/health" },
	}, zerolog.Nop()))
	e.GET("/health", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
}
