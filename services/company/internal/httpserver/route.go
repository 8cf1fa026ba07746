package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/job_portal/pkg/middleware/auth"
	"github.com/Skotchmaster/job_portal/pkg/tokens"
)

type Deps struct {
	CompanyHandler *CompanyHTTP
	Auth           *middleware.Interceptor
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	admin := middleware.RequireRole(tokens.RoleAdmin)

	companies := e.Group("/companies", d.Auth.Authenticate, middleware.RequireAuthenticated())
	companies.GET("", d.CompanyHandler.ListCompanies)
	companies.GET("/:id", d.CompanyHandler.GetCompany)
	companies.POST("", d.CompanyHandler.CreateCompanies, admin)
	companies.PUT("/:id", d.CompanyHandler.UpdateCompany, admin)
	companies.DELETE("/:id", d.CompanyHandler.DeleteCompany, admin)
}
