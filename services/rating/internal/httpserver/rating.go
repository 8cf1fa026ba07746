package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/job_portal/pkg/logging"
	pkgtransport "github.com/Skotchmaster/job_portal/pkg/transport"
	"github.com/Skotchmaster/job_portal/services/rating/internal/repo"
	"github.com/Skotchmaster/job_portal/services/rating/internal/service"
	"github.com/Skotchmaster/job_portal/services/rating/internal/transport"
)

type RatingHTTP struct {
	Svc *service.RatingService
}

func (h *RatingHTTP) ListRatings(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "rating.list")

	companyID := c.QueryParam("companyId")
	items, err := h.Svc.ListByCompany(ctx, companyID)
	if err != nil {
		return h.fail(l, "list_ratings_error", companyID, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *RatingHTTP) GetRating(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "rating.get")

	id := c.Param("id")
	rating, err := h.Svc.GetRating(ctx, id)
	if err != nil {
		return h.fail(l, "get_rating_error", id, err)
	}
	return c.JSON(http.StatusOK, rating)
}

func (h *RatingHTTP) CreateRating(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "rating.create")

	var req transport.CreateRatingRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_rating_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	companyID := c.QueryParam("companyId")
	rating, err := h.Svc.CreateRating(ctx, companyID, req)
	if err != nil {
		return h.fail(l, "create_rating_error", companyID, err)
	}

	l.Info("create_rating_success", "id", rating.ID, "company_id", companyID)
	return c.JSON(http.StatusCreated, pkgtransport.OK("Rating Created Successfully"))
}

func (h *RatingHTTP) UpdateRating(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "rating.update")

	var req transport.UpdateRatingRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_rating_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	id := c.Param("id")
	rating, err := h.Svc.UpdateRating(ctx, id, req)
	if err != nil {
		return h.fail(l, "update_rating_error", id, err)
	}
	return c.JSON(http.StatusOK, rating)
}

func (h *RatingHTTP) DeleteRating(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "rating.delete")

	id := c.Param("id")
	rating, err := h.Svc.DeleteRating(ctx, id)
	if err != nil {
		return h.fail(l, "delete_rating_error", id, err)
	}

	l.Info("delete_rating_success", "id", id)
	return c.JSON(http.StatusOK, pkgtransport.OK(fmt.Sprintf("Rating with Title %s is deleted successfully", rating.Title)))
}

func (h *RatingHTTP) fail(l *slog.Logger, event, id string, err error) error {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		l.Warn(event, "status", 404, "id", id)
		return echo.NewHTTPError(http.StatusNotFound, "Rating not found with id: "+id)
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "reason", err.Error())
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		l.Error(event, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
