package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/job_portal/pkg/middleware/auth"
	"github.com/Skotchmaster/job_portal/pkg/transport"
)

type Deps struct {
	AuthHandler *AuthHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	// The authority validates its own callers in-process.
	local := middleware.ValidatorFunc(func(ctx context.Context, header string) (transport.ValidationResponse, error) {
		return d.AuthHandler.Svc.Validate(ctx, header), nil
	})
	authMW := middleware.NewInterceptor(local, 0)

	g := e.Group("/api/v1/auth")
	g.POST("/register", d.AuthHandler.Register)
	g.POST("/login", d.AuthHandler.Login)
	g.POST("/refresh", d.AuthHandler.Refresh)
	g.GET("/validate", d.AuthHandler.Validate)

	g.POST("/logout", d.AuthHandler.Logout, authMW.Authenticate, middleware.RequireAuthenticated())
}
