package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/foodhub/ordering-system/internal/core/domain"
)

func TestLoginResult(t *testing.T) {
	if got := LoginResult(nil); got != "success" {
		t.Fatalf("expected success, got %s", got)
	}
	if got := LoginResult(domain.ErrIncorrectPassword); got != "INCORRECT_PASSWORD" {
		t.Fatalf("expected INCORRECT_PASSWORD, got %s", got)
	}
	if got := LoginResult(errors.New("boom")); got != "error" {
		t.Fatalf("expected error, got %s", got)
	}
}

func TestAuthFailuresTotal_CountsPerCode(t *testing.T) {
	c := AuthFailuresTotal.WithLabelValues("TEST_CODE")
	before := testutil.ToFloat64(c)
	c.Inc()
	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("expected %v, got %v", before+1, got)
	}
}
