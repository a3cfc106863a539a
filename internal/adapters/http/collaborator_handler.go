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

// CollaboratorHandler handles collaborator management requests
type CollaboratorHandler struct {
	collaboratorService *services.CollaboratorService
	logger              *logger.Logger
}

// NewCollaboratorHandler creates a new collaborator handler
func NewCollaboratorHandler(collaboratorService *services.CollaboratorService, logger *logger.Logger) *CollaboratorHandler {
	return &CollaboratorHandler{
		collaboratorService: collaboratorService,
		logger:              logger,
	}
}

// CreateCollaborator godoc
// @Summary Create a collaborator linked to a user account
// @Tags collaborators
// @Accept json
// @Produce json
// @Param request body ports.CreateCollaboratorRequest true "Collaborator"
// @Success 201 {object} entities.Collaborator
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /collaborators [post]
func (h *CollaboratorHandler) CreateCollaborator(c echo.Context) error {
	var req ports.CreateCollaboratorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid request format"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: err.Error()})
	}

	collaborator, err := h.collaboratorService.CreateCollaborator(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrUserNotFound.Error()})
		}
		h.logger.Error("Create collaborator failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create collaborator")
	}

	return c.JSON(http.StatusCreated, collaborator)
}

// ListCollaborators godoc
// @Summary List all collaborators with their user accounts
// @Tags collaborators
// @Produce json
// @Success 200 {array} entities.Collaborator
// @Security BearerAuth
// @Router /collaborators [get]
func (h *CollaboratorHandler) ListCollaborators(c echo.Context) error {
	collaborators, err := h.collaboratorService.ListCollaborators(c.Request().Context())
	if err != nil {
		h.logger.Error("List collaborators failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list collaborators")
	}

	return c.JSON(http.StatusOK, collaborators)
}

// GetCollaboratorTasks godoc
// @Summary List the tasks a collaborator is assigned to
// @Tags collaborators
// @Produce json
// @Param id path string true "Collaborator ID"
// @Success 200 {array} entities.Task
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /collaborators/{id}/tasks [get]
func (h *CollaboratorHandler) GetCollaboratorTasks(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid collaborator id"})
	}

	tasks, err := h.collaboratorService.GetCollaboratorTasks(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrCollaboratorNotFound) {
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrCollaboratorNotFound.Error()})
		}
		h.logger.Error("Get collaborator tasks failed", "error", err, "collaborator_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load collaborator tasks")
	}

	return c.JSON(http.StatusOK, tasks)
}
