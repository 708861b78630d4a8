package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/foodhub/ordering-system/internal/api/middleware"
	"github.com/foodhub/ordering-system/internal/core/domain"
)

// ctxPrincipal returns the principal injected by the Authorize middleware.
// Its absence means the route was registered without it.
func ctxPrincipal(c echo.Context) (*domain.Principal, error) {
	p := middleware.PrincipalFrom(c)
	if p == nil {
		return nil, domain.ErrAuthHeaderMissing
	}
	return p, nil
}

// pageParams reads ?page= and ?limit=. Missing values take the defaults;
// anything present must be an integer of at least 1.
func pageParams(c echo.Context) (domain.Page, error) {
	page, err := intQuery(c, "page", domain.DefaultPage)
	if err != nil {
		return domain.Page{}, err
	}
	limit, err := intQuery(c, "limit", domain.DefaultLimit)
	if err != nil {
		return domain.Page{}, err
	}
	return domain.NewPage(page, limit)
}

func intQuery(c echo.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ErrInvalidPagination
	}
	return v, nil
}

// bindBody decodes the JSON body; decode failures become a 400.
func bindBody(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return domain.NewValidationError("invalid request payload")
	}
	return nil
}
