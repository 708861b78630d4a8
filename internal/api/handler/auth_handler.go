package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/foodhub/ordering-system/internal/api/metrics"
	"github.com/foodhub/ordering-system/internal/api/response"
	"github.com/foodhub/ordering-system/internal/core/domain"
	"github.com/foodhub/ordering-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// AdminLogin authenticates an admin and returns a token pair.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response.Envelope{data=loginResponse}
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      401   {object}  response.ErrorEnvelope
// @Failure      403   {object}  response.ErrorEnvelope
// @Router       /admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, domain.RoleAdmin)
}

// UserLogin authenticates a regular user and returns a token pair.
//
// @Summary      User login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  response.Envelope{data=loginResponse}
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      401   {object}  response.ErrorEnvelope
// @Failure      403   {object}  response.ErrorEnvelope
// @Router       /user/login [post]
func (h *AuthHandler) UserLogin(c echo.Context) error {
	return h.login(c, domain.RoleUser)
}

func (h *AuthHandler) login(c echo.Context, role domain.Role) error {
	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		return response.Fail(c, h.log, err)
	}

	session, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	metrics.LoginsTotal.WithLabelValues(role.String(), metrics.LoginResult(err)).Inc()
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	return response.OK(c, "Login successful.", loginResponse{User: session.User, TokenPair: *session.Tokens})
}

// AdminRefresh exchanges an admin refresh token for a new pair.
//
// @Summary      Refresh admin tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  response.Envelope{data=loginResponse}
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      401   {object}  response.ErrorEnvelope
// @Router       /admin/refreshToken [post]
func (h *AuthHandler) AdminRefresh(c echo.Context) error {
	return h.refresh(c, domain.RoleAdmin)
}

// UserRefresh exchanges a user refresh token for a new pair.
//
// @Summary      Refresh user tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Refresh token"
// @Success      200   {object}  response.Envelope{data=loginResponse}
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      401   {object}  response.ErrorEnvelope
// @Router       /user/refreshToken [post]
func (h *AuthHandler) UserRefresh(c echo.Context) error {
	return h.refresh(c, domain.RoleUser)
}

func (h *AuthHandler) refresh(c echo.Context, role domain.Role) error {
	var req refreshRequest
	if err := bindBody(c, &req); err != nil {
		return response.Fail(c, h.log, err)
	}

	session, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken, role)
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	return response.OK(c, "Token refreshed successfully.", loginResponse{User: session.User, TokenPair: *session.Tokens})
}

// Register creates a regular user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  response.Envelope{data=domain.User}
// @Failure      400   {object}  response.ErrorEnvelope
// @Failure      409   {object}  response.ErrorEnvelope
// @Failure      500   {object}  response.ErrorEnvelope
// @Router       /user/userRegister [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindBody(c, &req); err != nil {
		return response.Fail(c, h.log, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Fail(c, h.log, err)
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:       req.Email,
		UserName:    req.UserName,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return response.Fail(c, h.log, err)
	}

	metrics.UsersRegisteredTotal.Inc()
	return response.OK(c, "User registered successfully.", user)
}
