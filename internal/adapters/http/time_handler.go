package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskboard/core/internal/application/services"
	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// TimeHandler handles time tracking requests
type TimeHandler struct {
	timeService *services.TimeTrackingService
	logger      *logger.Logger
}

// NewTimeHandler creates a new time handler
func NewTimeHandler(timeService *services.TimeTrackingService, logger *logger.Logger) *TimeHandler {
	return &TimeHandler{
		timeService: timeService,
		logger:      logger,
	}
}

// StartTracking godoc
// @Summary Start time tracking for a task
// @Tags time-tracking
// @Accept json
// @Produce json
// @Param taskId path string true "Task ID"
// @Param request body ports.StartTrackingRequest true "Client time zone"
// @Success 201 {object} entities.TimeInterval
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /time-trackers/tasks/{taskId}/start [post]
func (h *TimeHandler) StartTracking(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid task id"})
	}

	var req ports.StartTrackingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid request format"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: err.Error()})
	}

	interval, err := h.timeService.Start(c.Request().Context(), taskID, req)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrAlreadyTracking):
			return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: entities.ErrAlreadyTracking.Error()})
		case errors.Is(err, entities.ErrTaskNotFound):
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrTaskNotFound.Error()})
		default:
			h.logger.Error("Start tracking failed", "error", err, "task_id", taskID)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to start tracking")
		}
	}

	return c.JSON(http.StatusCreated, interval)
}

// StopTracking godoc
// @Summary Stop time tracking for a task
// @Tags time-tracking
// @Produce json
// @Param taskId path string true "Task ID"
// @Success 200 {object} entities.TimeInterval
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /time-trackers/tasks/{taskId}/stop [post]
func (h *TimeHandler) StopTracking(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid task id"})
	}

	interval, err := h.timeService.Stop(c.Request().Context(), taskID)
	if err != nil {
		if errors.Is(err, entities.ErrNoActiveTracking) {
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrNoActiveTracking.Error()})
		}
		h.logger.Error("Stop tracking failed", "error", err, "task_id", taskID)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to stop tracking")
	}

	return c.JSON(http.StatusOK, interval)
}

// GetHistory godoc
// @Summary Get closed tracking intervals for a task, newest first
// @Tags time-tracking
// @Produce json
// @Param taskId path string true "Task ID"
// @Success 200 {array} entities.TimeInterval
// @Failure 400 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /time-trackers/tasks/{taskId} [get]
func (h *TimeHandler) GetHistory(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid task id"})
	}

	intervals, err := h.timeService.History(c.Request().Context(), taskID)
	if err != nil {
		h.logger.Error("Get tracking history failed", "error", err, "task_id", taskID)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load tracking history")
	}

	return c.JSON(http.StatusOK, intervals)
}

// GetActiveStatus godoc
// @Summary Check whether a task is currently being tracked
// @Tags time-tracking
// @Produce json
// @Param taskId path string true "Task ID"
// @Success 200 {object} ports.TrackingStatus
// @Failure 400 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /time-trackers/tasks/{taskId}/active [get]
func (h *TimeHandler) GetActiveStatus(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid task id"})
	}

	status, err := h.timeService.ActiveStatus(c.Request().Context(), taskID)
	if err != nil {
		h.logger.Error("Get active status failed", "error", err, "task_id", taskID)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load tracking status")
	}

	return c.JSON(http.StatusOK, status)
}

// GetSummary godoc
// @Summary Get daily and monthly tracked totals
// @Tags time-tracking
// @Produce json
// @Success 200 {object} ports.TrackingSummary
// @Security BearerAuth
// @Router /time-trackers/summary [get]
func (h *TimeHandler) GetSummary(c echo.Context) error {
	summary, err := h.timeService.Summary(c.Request().Context())
	if err != nil {
		h.logger.Error("Get tracking summary failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to compute summary")
	}

	return c.JSON(http.StatusOK, summary)
}
