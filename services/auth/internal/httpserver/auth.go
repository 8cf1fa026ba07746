package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_portal/pkg/logging"
	"github.com/Skotchmaster/job_portal/pkg/tokens"
	pkgtransport "github.com/Skotchmaster/job_portal/pkg/transport"
	"github.com/Skotchmaster/job_portal/services/auth/internal/service"
	"github.com/Skotchmaster/job_portal/services/auth/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Register(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("register_error", "status", 400, "reason", err.Error())
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUsernameTaken):
			l.Warn("register_error", "status", 409, "reason", "username taken")
			return echo.NewHTTPError(http.StatusConflict, "username already taken")
		default:
			l.Error("register_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot register user")
		}
	}

	l.Info("register_successful")
	return c.JSON(http.StatusOK, transport.AuthResponse{Token: res.AccessToken, RefreshToken: res.RefreshToken})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401, "reason", "invalid credentials")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot log in")
	}

	l.Info("login_successful")
	return c.JSON(http.StatusOK, transport.AuthResponse{Token: res.AccessToken, RefreshToken: res.RefreshToken})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_refresh")

	var req transport.RefreshRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		l.Warn("refresh_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "refreshToken is required")
	}

	res, err := h.Svc.Refresh(ctx, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenNotFound):
			l.Warn("refresh_error", "status", 400, "reason", "refresh token not found")
			return echo.NewHTTPError(http.StatusBadRequest, "refresh token not found")
		case errors.Is(err, service.ErrTokenExpired):
			l.Warn("refresh_error", "status", 400, "reason", "refresh token expired")
			return echo.NewHTTPError(http.StatusBadRequest, "refresh token expired, please log in again")
		default:
			l.Error("refresh_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot refresh token")
		}
	}

	return c.JSON(http.StatusOK, transport.AuthResponse{Token: res.AccessToken, RefreshToken: res.RefreshToken})
}

// Validate always answers 200; the verdict is in the body.
func (h *AuthHTTP) Validate(c echo.Context) error {
	ctx := c.Request().Context()
	res := h.Svc.Validate(ctx, c.Request().Header.Get(echo.HeaderAuthorization))
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_logout")

	var req transport.RefreshRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("logout_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	access, _ := tokens.FromBearer(c.Request().Header.Get(echo.HeaderAuthorization))
	if err := h.Svc.Logout(ctx, access, req.RefreshToken); err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}
		l.Error("logout_failed", "status", 500, "reason", "cannot revoke refresh token", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot log out")
	}

	l.Info("successful_logout")
	return c.JSON(http.StatusOK, pkgtransport.OK("logged out"))
}
