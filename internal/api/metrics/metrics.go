// Package metrics defines the custom Prometheus metrics of the ordering API.
// It is the single source of truth for metric names, labels and help strings.
//
// Metrics are registered with the default registry at package init through
// promauto and exposed by the /metrics route together with the per-route HTTP
// metrics collected by echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/foodhub/ordering-system/internal/core/domain"
)

const namespace = "food_ordering"

// ── Perimeter metrics ─────────────────────────────────────────────────────────

// AuthFailuresTotal counts requests rejected by the authorization middleware.
// Label:
//   - code: the error code returned (e.g. "TOKEN_EXPIRED", "INVALID_TOKEN")
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by authorization, by error code.",
	},
	[]string{"code"},
)

// RateLimitedTotal counts requests refused with 429.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests refused by the rate limiter.",
	},
)

// RestrictedClients is the size of the restricted-client set, refreshed each
// time a new client is added.
var RestrictedClients = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "restricted_clients",
		Help:      "Number of client IPs restricted after exceeding the rate limit.",
	},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - role: "admin" or "user"
//   - result: "success" or the error code
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by role and result.",
	},
	[]string{"role", "result"},
)

// UsersRegisteredTotal counts successful registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered.",
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// CatalogMutationsTotal counts successful catalog writes.
// Labels:
//   - entity: "category" or "product"
//   - action: "create", "update" or "delete"
var CatalogMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_mutations_total",
		Help:      "Total number of catalog mutations, by entity and action.",
	},
	[]string{"entity", "action"},
)

// LoginResult is the result label for a login outcome.
func LoginResult(err error) string {
	if err == nil {
		return "success"
	}
	if de, ok := domain.AsError(err); ok {
		return de.Code
	}
	return "error"
}
