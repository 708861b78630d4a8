package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	statusOK        = "ok"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
	statusDisabled  = "disabled"

	checkTimeout = 3 * time.Second
)

var errNotConfigured = errors.New("not configured")

// HealthHandler serves liveness on GET /health.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": statusOK})
}

// dependencyCheck pings one backing service. A nil ping marks an optional dependency
// that is switched off.
type dependencyCheck struct {
	name     string
	required bool
	ping     func(ctx context.Context) error
}

// HealthDependenciesHandler serves readiness on GET /health/ready.
// MongoDB is required; Redis is reported only when the shared rate-limit
// store is in use.
type HealthDependenciesHandler struct {
	checks []dependencyCheck
}

func NewHealthDependenciesHandler(db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	mongoCheck := dependencyCheck{name: "mongodb", required: true, ping: func(context.Context) error { return errNotConfigured }}
	if db != nil {
		mongoCheck.ping = func(ctx context.Context) error {
			return db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
		}
	}

	redisCheck := dependencyCheck{name: "redis"}
	if rdb != nil {
		redisCheck.required = true
		redisCheck.ping = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	return &HealthDependenciesHandler{checks: []dependencyCheck{mongoCheck, redisCheck}}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
	defer cancel()

	res := readinessResponse{Status: statusOK, Dependencies: make(map[string]dependencyStatus, len(h.checks))}
	for _, dc := range h.checks {
		if dc.ping == nil {
			res.Dependencies[dc.name] = dependencyStatus{Status: statusDisabled}
			continue
		}
		if err := dc.ping(ctx); err != nil {
			res.Dependencies[dc.name] = dependencyStatus{Status: statusUnhealthy, Error: err.Error()}
			if dc.required {
				res.Status = statusDegraded
			}
			continue
		}
		res.Dependencies[dc.name] = dependencyStatus{Status: statusOK}
	}

	code := http.StatusOK
	if res.Status != statusOK {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, res)
}
