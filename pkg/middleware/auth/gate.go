package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_portal/pkg/logging"
)

// RequireAuthenticated rejects anonymous requests with 401.
func RequireAuthenticated() echo.MiddlewareFunc {
	return RequireRole()
}

// RequireRole rejects anonymous requests with 401 and callers whose role is
// not listed with 403. With no roles it only checks authentication.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			if len(roles) > 0 && !slices.Contains(roles, p.Role) {
				logging.FromContext(c.Request().Context()).Warn("access_denied", "status", 403, "role", p.Role, "required", roles)
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}
