package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/foodhub/ordering-system/internal/api/metrics"
	"github.com/foodhub/ordering-system/internal/api/response"
	"github.com/foodhub/ordering-system/internal/core/domain"
	"github.com/foodhub/ordering-system/internal/core/ports"
)

const (
	HeaderRateLimitLimit     = "RateLimit-Limit"
	HeaderRateLimitRemaining = "RateLimit-Remaining"
	HeaderRateLimitReset     = "RateLimit-Reset"
)

type RateLimitConfig struct {
	Skipper  echomiddleware.Skipper
	Requests int
	Window   time.Duration
}

// RateLimit allows cfg.Requests per client IP in each fixed window. Clients
// over the ceiling get 429 and are added to the store's restricted set. Store
// failures let the request through.
func RateLimit(store ports.RateLimitStore, cfg RateLimitConfig, log zerolog.Logger) echo.MiddlewareFunc {
	if cfg.Skipper == nil {
		cfg.Skipper = echomiddleware.DefaultSkipper
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	limit := int64(cfg.Requests)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}

			ctx := c.Request().Context()
			ip := c.RealIP()

			w, err := store.Hit(ctx, ip, cfg.Window)
			if err != nil {
				log.Warn().Err(err).Str("ip", ip).Msg("rate limit store unavailable, allowing request")
				return next(c)
			}

			h := c.Response().Header()
			h.Set(HeaderRateLimitLimit, strconv.FormatInt(limit, 10))
			h.Set(HeaderRateLimitRemaining, strconv.FormatInt(max(limit-w.Count, 0), 10))
			h.Set(HeaderRateLimitReset, strconv.FormatInt(int64(math.Ceil(w.ResetIn.Seconds())), 10))

			if w.Count <= limit {
				return next(c)
			}

			metrics.RateLimitedTotal.Inc()
			added, err := store.Restrict(ctx, ip)
			switch {
			case err != nil:
				log.Warn().Err(err).Str("ip", ip).Msg("failed to record restricted ip")
			case added:
				ev := log.Warn().Str("ip", ip).Int64("count", w.Count)
				if ips, err := store.Restricted(ctx); err == nil {
					metrics.RestrictedClients.Set(float64(len(ips)))
					ev = ev.Strs("restricted_ips", ips)
				}
				ev.Msg("client restricted after exceeding rate limit")
			}
			return response.Fail(c, log, domain.ErrTooManyRequests)
		}
	}
}
