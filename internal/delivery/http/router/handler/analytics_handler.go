package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"fieldops/internal/delivery/http/middleware"
	"fieldops/internal/delivery/http/response"
	"fieldops/internal/domain/service"
	"fieldops/internal/usecase"
)

// AnalyticsHandler holds dependencies for aggregation view handlers.
type AnalyticsHandler struct {
	uc      usecase.AnalyticsUsecase
	catalog service.CatalogService
	logger  *slog.Logger
}

// NewAnalyticsHandler is the constructor for AnalyticsHandler, injected by Fx.
func NewAnalyticsHandler(uc usecase.AnalyticsUsecase, catalog service.CatalogService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		uc:      uc,
		catalog: catalog,
		logger:  logger,
	}
}

// MyStats returns the caller's own activity summary.
func (h *AnalyticsHandler) MyStats(c echo.Context) error {
	user := middleware.CurrentUser(c)

	stats, err := h.uc.StatsForUser(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "")
}

// MyMonthlySeries returns the caller's activity bucketed by month.
func (h *AnalyticsHandler) MyMonthlySeries(c echo.Context) error {
	user := middleware.CurrentUser(c)

	series, err := h.uc.MonthlySeries(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, series, "")
}

// MyCategoryDistribution returns the caller's people-reached breakdown.
func (h *AnalyticsHandler) MyCategoryDistribution(c echo.Context) error {
	user := middleware.CurrentUser(c)

	dist, err := h.uc.CategoryDistribution(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dist, "")
}

// MyProductSales returns the caller's per-product sales rollup.
func (h *AnalyticsHandler) MyProductSales(c echo.Context) error {
	user := middleware.CurrentUser(c)

	rollups, err := h.uc.ProductSales(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rollups, "")
}

// MySampleInventory returns the caller's per-product sample rollup.
func (h *AnalyticsHandler) MySampleInventory(c echo.Context) error {
	user := middleware.CurrentUser(c)

	rollups, err := h.uc.SampleInventory(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rollups, "")
}

// Overview returns totals across every user.
func (h *AnalyticsHandler) Overview(c echo.Context) error {
	overview, err := h.uc.Overview(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, overview, "")
}

// UserStats returns another user's activity summary, for the admin views.
func (h *AnalyticsHandler) UserStats(c echo.Context) error {
	stats, err := h.uc.StatsForUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "")
}

// StateRollups returns activity grouped by state.
func (h *AnalyticsHandler) StateRollups(c echo.Context) error {
	rollups, err := h.uc.StateRollups(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rollups, "")
}

// MonthlySeries returns activity bucketed by month across every user.
func (h *AnalyticsHandler) MonthlySeries(c echo.Context) error {
	series, err := h.uc.MonthlySeries(c.Request().Context(), "")
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, series, "")
}

// CategoryDistribution returns the people-reached breakdown across every user.
func (h *AnalyticsHandler) CategoryDistribution(c echo.Context) error {
	dist, err := h.uc.CategoryDistribution(c.Request().Context(), "")
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, dist, "")
}

// ProductSales returns the per-product sales rollup across every user.
func (h *AnalyticsHandler) ProductSales(c echo.Context) error {
	rollups, err := h.uc.ProductSales(c.Request().Context(), "")
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rollups, "")
}

// SampleInventory returns the per-product sample rollup across every user.
func (h *AnalyticsHandler) SampleInventory(c echo.Context) error {
	rollups, err := h.uc.SampleInventory(c.Request().Context(), "")
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rollups, "")
}

// Catalog returns the product catalog.
func (h *AnalyticsHandler) Catalog(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.catalog.List(), "")
}
