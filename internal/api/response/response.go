// Package response renders the JSON envelopes shared by handlers, middleware
// and the router's error handler.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodhub/ordering-system/internal/core/domain"
)

// Envelope is the success body. Listing endpoints embed it and add their own
// pagination fields.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorEnvelope is the failure body.
type ErrorEnvelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

func OK(c echo.Context, message string, data any) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Status maps a coded error to its HTTP status.
func Status(e *domain.Error) int {
	switch e.Kind {
	case domain.KindBadRequest:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Fail writes err as an error envelope. Errors without a code are logged and
// replaced by the generic UNEXPECTED_ERROR body.
func Fail(c echo.Context, log zerolog.Logger, err error) error {
	de, ok := domain.AsError(err)
	if !ok {
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Msg("unhandled error")
		de = domain.ErrUnexpected
	}
	return Error(c, Status(de), de.Code, de.Message)
}

func Error(c echo.Context, status int, code, message string) error {
	return c.JSON(status, ErrorEnvelope{Success: false, Message: message, ErrorCode: code})
}
