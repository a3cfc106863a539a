package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// ProjectService handles project operations
type ProjectService struct {
	projectRepo ports.ProjectRepository
	taskRepo    ports.TaskRepository
	logger      *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo ports.ProjectRepository, taskRepo ports.TaskRepository, logger *logger.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		logger:      logger,
	}
}

// CreateProject creates a new project
func (s *ProjectService) CreateProject(ctx context.Context, req ports.CreateProjectRequest) (*entities.Project, error) {
	project := &entities.Project{
		ID:   uuid.New(),
		Name: req.Name,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.logger.Info("Project created", "project_id", project.ID, "name", project.Name)

	return project, nil
}

// GetProject retrieves a project by ID
func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	return project, nil
}

// UpdateProject updates a project's information
func (s *ProjectService) UpdateProject(ctx context.Context, id uuid.UUID, req ports.UpdateProjectRequest) (*entities.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	if req.Name != nil {
		project.Name = *req.Name
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	s.logger.Info("Project updated", "project_id", project.ID)

	return project, nil
}

// DeleteProject removes a project and all tasks that belong to it
func (s *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get project: %w", err)
	}

	// Tasks go first so the board never shows orphaned cards
	if err := s.taskRepo.DeleteByProject(ctx, id); err != nil {
		return fmt.Errorf("delete project tasks: %w", err)
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.logger.Info("Project deleted", "project_id", id)

	return nil
}

// ListProjects returns all projects
func (s *ProjectService) ListProjects(ctx context.Context) ([]*entities.Project, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}

// GetProjectTasks returns the tasks attached to a project
func (s *ProjectService) GetProjectTasks(ctx context.Context, id uuid.UUID) ([]*entities.Task, error) {
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	tasks, err := s.taskRepo.ListByProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list project tasks: %w", err)
	}

	return tasks, nil
}
