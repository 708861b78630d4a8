package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodhub/ordering-system/internal/api/response"
	"github.com/foodhub/ordering-system/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders echo's own errors (unknown route, bad method, recovered
//     panics) in the same envelope as handler failures.
//   - Maps coded domain errors to their HTTP status.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
			_ = response.Error(c, he.Code, statusCode(he.Code), fmt.Sprintf("%v", he.Message))
			return
		}

		if _, ok := domain.AsError(err); !ok && he != nil && he.Internal != nil {
			err = he.Internal
		}
		_ = response.Fail(c, log, err)
	}
}

// statusCode turns an HTTP status into an error code, e.g. 404 → NOT_FOUND.
func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "BAD_REQUEST"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
