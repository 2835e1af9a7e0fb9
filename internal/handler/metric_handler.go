package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"healthmon/internal/errors"
	"healthmon/internal/service"
)

// MetricHandler handles health metric endpoints.
type MetricHandler struct {
	svc service.MetricService
}

// NewMetricHandler creates a new metric handler.
func NewMetricHandler(svc service.MetricService) *MetricHandler {
	return &MetricHandler{svc: svc}
}

// CreateMetricRequest represents a metric submission. Date is a plain
// calendar date, not a timestamp.
type CreateMetricRequest struct {
	Date      string  `json:"date" validate:"required"`
	Steps     int     `json:"steps" validate:"min=0"`
	Calories  float64 `json:"calories" validate:"min=0"`
	HeartRate int     `json:"heart_rate"`
}

// CreateMetric godoc
// @Summary Log a health metric entry
// @Tags metrics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMetricRequest true "Metric data"
// @Success 201 {object} model.HealthMetric
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /metrics [post]
func (h *MetricHandler) CreateMetric(c echo.Context) error {
	var req CreateMetricRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	user := CurrentUser(c)
	metric, err := h.svc.CreateMetric(c.Request().Context(), user.ID, date, req.Steps, req.Calories, req.HeartRate)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, metric)
}

// ListMetrics godoc
// @Summary List the caller's metrics
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Max rows" default(100)
// @Success 200 {array} model.HealthMetric
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /metrics [get]
func (h *MetricHandler) ListMetrics(c echo.Context) error {
	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	user := CurrentUser(c)
	metrics, err := h.svc.ListMetrics(c.Request().Context(), user.ID, skip, limit)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, metrics)
}

// DeleteMetric godoc
// @Summary Delete one of the caller's metrics
// @Tags metrics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Metric ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /metrics/{id} [delete]
func (h *MetricHandler) DeleteMetric(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	user := CurrentUser(c)
	if err := h.svc.DeleteMetric(c.Request().Context(), user.ID, uint(id)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
