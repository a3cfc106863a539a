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

// ProjectHandler handles project management requests
type ProjectHandler struct {
	projectService *services.ProjectService
	logger         *logger.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *services.ProjectService, logger *logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// CreateProject godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param request body ports.CreateProjectRequest true "Project"
// @Success 201 {object} entities.Project
// @Failure 400 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var req ports.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid request format"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: err.Error()})
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Create project failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create project")
	}

	return c.JSON(http.StatusCreated, project)
}

// GetProject godoc
// @Summary Get a project by id
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} entities.Project
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid project id"})
	}

	project, err := h.projectService.GetProject(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrProjectNotFound) {
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrProjectNotFound.Error()})
		}
		h.logger.Error("Get project failed", "error", err, "project_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load project")
	}

	return c.JSON(http.StatusOK, project)
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body ports.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} entities.Project
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid project id"})
	}

	var req ports.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid request format"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: err.Error()})
	}

	project, err := h.projectService.UpdateProject(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, entities.ErrProjectNotFound) {
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrProjectNotFound.Error()})
		}
		h.logger.Error("Update project failed", "error", err, "project_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update project")
	}

	return c.JSON(http.StatusOK, project)
}

// DeleteProject godoc
// @Summary Delete a project and its tasks
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} ports.MessageResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid project id"})
	}

	if err := h.projectService.DeleteProject(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrProjectNotFound) {
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrProjectNotFound.Error()})
		}
		h.logger.Error("Delete project failed", "error", err, "project_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete project")
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "project deleted"})
}

// ListProjects godoc
// @Summary List all projects
// @Tags projects
// @Produce json
// @Success 200 {array} entities.Project
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	projects, err := h.projectService.ListProjects(c.Request().Context())
	if err != nil {
		h.logger.Error("List projects failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list projects")
	}

	return c.JSON(http.StatusOK, projects)
}

// GetProjectTasks godoc
// @Summary List the tasks of a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} entities.Task
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/tasks [get]
func (h *ProjectHandler) GetProjectTasks(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ports.ErrorResponse{Error: "invalid project id"})
	}

	tasks, err := h.projectService.GetProjectTasks(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrProjectNotFound) {
			return c.JSON(http.StatusNotFound, ports.ErrorResponse{Error: entities.ErrProjectNotFound.Error()})
		}
		h.logger.Error("Get project tasks failed", "error", err, "project_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load project tasks")
	}

	return c.JSON(http.StatusOK, tasks)
}
