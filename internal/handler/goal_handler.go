package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"healthmon/internal/errors"
	"healthmon/internal/service"
)

// GoalHandler handles goal endpoints.
type GoalHandler struct {
	svc service.GoalService
}

// NewGoalHandler creates a new goal handler.
func NewGoalHandler(svc service.GoalService) *GoalHandler {
	return &GoalHandler{svc: svc}
}

// UpsertGoalRequest represents a goal create-or-update request. A zero
// target is legal; progress then reports 0% instead of dividing by zero.
type UpsertGoalRequest struct {
	MetricType  string `json:"metric_type" validate:"required"`
	TargetValue int    `json:"target_value" validate:"gte=0"`
}

// UpsertGoal godoc
// @Summary Create or update the caller's goal for a metric type
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpsertGoalRequest true "Goal data"
// @Success 200 {object} model.Goal
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /goals [post]
func (h *GoalHandler) UpsertGoal(c echo.Context) error {
	var req UpsertGoalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := CurrentUser(c)
	goal, err := h.svc.UpsertGoal(c.Request().Context(), user.ID, req.MetricType, req.TargetValue)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, goal)
}

// Progress godoc
// @Summary Today's progress toward each of the caller's goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.GoalProgress
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /goals/progress [get]
func (h *GoalHandler) Progress(c echo.Context) error {
	user := CurrentUser(c)
	progress, err := h.svc.Progress(c.Request().Context(), user.ID, time.Now())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, progress)
}
