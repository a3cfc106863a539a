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

// TaskHandler handles task management requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body ports.CreateTaskRequest true "Task"
// @Success 201 {object} entities.Task
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid request format"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: err.Error()})
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: entities.ErrInvalidStatus.Error()})
		case errors.Is(err, entities.ErrProjectNotFound):
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrProjectNotFound.Error()})
		case errors.Is(err, entities.ErrCollaboratorNotFound):
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrCollaboratorNotFound.Error()})
		default:
			h.logger.Error("Create task failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to create task")
		}
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask godoc
// @Summary Get a task by id
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} entities.Task
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid task id"})
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrTaskNotFound.Error()})
		}
		h.logger.Error("Get task failed", "error", err, "task_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load task")
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTask godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} entities.Task
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid task id"})
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid request format"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: err.Error()})
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrTaskNotFound):
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrTaskNotFound.Error()})
		case errors.Is(err, entities.ErrProjectNotFound):
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrProjectNotFound.Error()})
		case errors.Is(err, entities.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: entities.ErrInvalidStatus.Error()})
		default:
			h.logger.Error("Update task failed", "error", err, "task_id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update task")
		}
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus godoc
// @Summary Move a task between board columns
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.UpdateTaskStatusRequest true "New status"
// @Success 200 {object} entities.Task
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateTaskStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid task id"})
	}

	var req ports.UpdateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid request format"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: err.Error()})
	}

	task, err := h.taskService.UpdateTaskStatus(c.Request().Context(), id, entities.TaskStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrTaskNotFound):
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrTaskNotFound.Error()})
		case errors.Is(err, entities.ErrInvalidStatus):
			return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: entities.ErrInvalidStatus.Error()})
		default:
			h.logger.Error("Update task status failed", "error", err, "task_id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update task status")
		}
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task and its tracked intervals
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} ports.MessageResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid task id"})
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrTaskNotFound.Error()})
		}
		h.logger.Error("Delete task failed", "error", err, "task_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete task")
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "task deleted"})
}

// ListTasks godoc
// @Summary List all tasks
// @Tags tasks
// @Produce json
// @Success 200 {array} entities.Task
// @Security BearerAuth
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	tasks, err := h.taskService.ListTasks(c.Request().Context())
	if err != nil {
		h.logger.Error("List tasks failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list tasks")
	}

	return c.JSON(http.StatusOK, tasks)
}

// AssignCollaborators godoc
// @Summary Add collaborators to a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.AssignCollaboratorsRequest true "Collaborator ids"
// @Success 200 {object} entities.Task
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/collaborators [post]
func (h *TaskHandler) AssignCollaborators(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid task id"})
	}

	var req ports.AssignCollaboratorsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid request format"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: err.Error()})
	}

	task, err := h.taskService.AssignCollaborators(c.Request().Context(), id, req.CollaboratorIDs)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrTaskNotFound):
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrTaskNotFound.Error()})
		case errors.Is(err, entities.ErrCollaboratorNotFound):
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrCollaboratorNotFound.Error()})
		default:
			h.logger.Error("Assign collaborators failed", "error", err, "task_id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to assign collaborators")
		}
	}

	return c.JSON(http.StatusOK, task)
}

// RemoveCollaborator godoc
// @Summary Remove a collaborator from a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Param collaboratorId path string true "Collaborator ID"
// @Success 200 {object} entities.Task
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/collaborators/{collaboratorId} [delete]
func (h *TaskHandler) RemoveCollaborator(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid task id"})
	}

	collaboratorID, err := uuid.Parse(c.Param("collaboratorId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid collaborator id"})
	}

	task, err := h.taskService.RemoveCollaborator(c.Request().Context(), id, collaboratorID)
	if err != nil {
		if errors.Is(err, entities.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrTaskNotFound.Error()})
		}
		h.logger.Error("Remove collaborator failed", "error", err, "task_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to remove collaborator")
	}

	return c.JSON(http.StatusOK, task)
}
