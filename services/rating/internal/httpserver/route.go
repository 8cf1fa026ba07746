package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/job_portal/pkg/middleware/auth"
	"github.com/Skotchmaster/job_portal/pkg/tokens"
)

type Deps struct {
	RatingHandler *RatingHTTP
	Auth          *middleware.Interceptor
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	admin := middleware.RequireRole(tokens.RoleAdmin)

	ratings := e.Group("/ratings", d.Auth.Authenticate, middleware.RequireAuthenticated())
	ratings.GET("", d.RatingHandler.ListRatings)
	ratings.POST("", d.RatingHandler.CreateRating)
	ratings.GET("/:id", d.RatingHandler.GetRating)
	ratings.PUT("/:id", d.RatingHandler.UpdateRating, admin)
	ratings.DELETE("/:id", d.RatingHandler.DeleteRating, admin)
}
