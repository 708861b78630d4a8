package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodhub/ordering-system/internal/api/metrics"
	"github.com/foodhub/ordering-system/internal/api/response"
	"github.com/foodhub/ordering-system/internal/core/domain"
)

// PrincipalKey is the echo context key holding the *domain.Principal.
const PrincipalKey = "principal"

// TokenVerifier checks an access token.
type TokenVerifier interface {
	Verify(token string) (*domain.TokenClaims, error)
}

// PrincipalResolver maps verified claims to an active account of a role.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, claims *domain.TokenClaims, role domain.Role) (*domain.Principal, error)
}

// Authorize validates the access token and injects the principal into the
// context. Only accounts of the given role pass; a mismatch is reported as an
// invalid token.
func Authorize(verifier TokenVerifier, resolver PrincipalResolver, role domain.Role, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return reject(c, log, domain.ErrAuthHeaderMissing)
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				return reject(c, log, err)
			}

			principal, err := resolver.ResolvePrincipal(c.Request().Context(), claims, role)
			if err != nil {
				return reject(c, log, err)
			}

			c.Set(PrincipalKey, principal)
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal set by Authorize, or nil.
func PrincipalFrom(c echo.Context) *domain.Principal {
	p, _ := c.Get(PrincipalKey).(*domain.Principal)
	return p
}

// bearerToken accepts both "Bearer <token>" and a bare token.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	scheme, rest, found := strings.Cut(header, " ")
	if found && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(rest)
	}
	if strings.EqualFold(header, "bearer") {
		return ""
	}
	return header
}

func reject(c echo.Context, log zerolog.Logger, err error) error {
	code := domain.ErrUnexpected.Code
	if de, ok := domain.AsError(err); ok {
		code = de.Code
	}
	metrics.AuthFailuresTotal.WithLabelValues(code).Inc()
	return response.Fail(c, log, err)
}
