package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodhub/ordering-system/internal/api/response"
	"github.com/foodhub/ordering-system/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
	log     zerolog.Logger
}

func NewUserHandler(service ports.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{service: service, log: log}
}

// UpdateProfile edits the caller's own email, username or phone number.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  response.Envelope{data=domain.User}
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      401   {object}  response.ErrorEnvelope
// @Failure      409   {object}  response.ErrorEnvelope
// @Router       /user/updateProfile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	var req updateProfileRequest
	if err := bindBody(c, &req); err != nil {
		return response.Fail(c, h.log, err)
	}
	fields := req.fields()
	if err := c.Validate(&fields); err != nil {
		return response.Fail(c, h.log, err)
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), principal.ID, ports.UpdateProfileInput{
		Email:       req.Email,
		UserName:    req.UserName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	return response.OK(c, "Profile updated successfully.", user)
}

// ListUsers pages through regular (non-admin) users, newest first.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"  default(1)
// @Param        limit  query     int  false  "Page size"    default(10)
// @Success      200    {object}  userListResponse{data=[]domain.User}
// @Failure      400    {object}  response.ErrorEnvelope
// @Failure      401    {object}  response.ErrorEnvelope
// @Router       /admin/getUsers [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	list, err := h.service.ListUsers(c.Request().Context(), page)
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	return c.JSON(http.StatusOK, userListResponse{
		Envelope:    response.Envelope{Success: true, Message: "Users retrieved successfully.", Data: list.Users},
		TotalUsers:  list.Total,
		CurrentPage: list.Page.Page,
		TotalPages:  list.TotalPages,
		HasNextPage: list.HasNextPage,
	})
}

// PromoteUser grants the admin role to a regular user.
//
// @Summary      Promote user to admin
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Envelope{data=domain.User}
// @Failure      400  {object}  response.ErrorEnvelope
// @Failure      401  {object}  response.ErrorEnvelope
// @Router       /admin/promoteUser/{id} [put]
func (h *UserHandler) PromoteUser(c echo.Context) error {
	user, err := h.service.PromoteUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	return response.OK(c, "User promoted to admin successfully", user)
}
