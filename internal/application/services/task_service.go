package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// TaskService handles board task operations
type TaskService struct {
	taskRepo         ports.TaskRepository
	projectRepo      ports.ProjectRepository
	collaboratorRepo ports.CollaboratorRepository
	intervalRepo     ports.TimeIntervalRepository
	logger           *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, projectRepo ports.ProjectRepository, collaboratorRepo ports.CollaboratorRepository, intervalRepo ports.TimeIntervalRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:         taskRepo,
		projectRepo:      projectRepo,
		collaboratorRepo: collaboratorRepo,
		intervalRepo:     intervalRepo,
		logger:           logger,
	}
}

// CreateTask creates a new task, defaulting to the todo column
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest) (*entities.Task, error) {
	status := entities.TaskStatusTodo
	if req.Status != nil {
		status = entities.TaskStatus(*req.Status)
		if !status.IsValid() {
			return nil, entities.ErrInvalidStatus
		}
	}

	if req.ProjectID != nil {
		if _, err := s.projectRepo.GetByID(ctx, *req.ProjectID); err != nil {
			return nil, fmt.Errorf("project lookup: %w", err)
		}
	}

	task := &entities.Task{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		ProjectID:   req.ProjectID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	if len(req.Collaborators) > 0 {
		if err := s.taskRepo.AddCollaborators(ctx, task.ID, req.Collaborators); err != nil {
			return nil, fmt.Errorf("assign collaborators: %w", err)
		}
	}

	s.logger.Info("Task created", "task_id", task.ID, "title", task.Title)

	return s.taskRepo.GetByID(ctx, task.ID)
}

// GetTask retrieves a task with its collaborators populated
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	return task, nil
}

// UpdateTask updates a task's mutable fields
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		status := entities.TaskStatus(*req.Status)
		if !status.IsValid() {
			return nil, entities.ErrInvalidStatus
		}
		task.Status = status
	}
	if req.ProjectID != nil {
		if _, err := s.projectRepo.GetByID(ctx, *req.ProjectID); err != nil {
			return nil, fmt.Errorf("project lookup: %w", err)
		}
		task.ProjectID = req.ProjectID
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.logger.Info("Task updated", "task_id", task.ID)

	return s.taskRepo.GetByID(ctx, task.ID)
}

// UpdateTaskStatus moves a task to another board column
func (s *TaskService) UpdateTaskStatus(ctx context.Context, id uuid.UUID, status entities.TaskStatus) (*entities.Task, error) {
	if !status.IsValid() {
		return nil, entities.ErrInvalidStatus
	}

	if err := s.taskRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}

	s.logger.Info("Task status updated", "task_id", id, "status", status)

	return s.taskRepo.GetByID(ctx, id)
}

// DeleteTask removes a task along with its tracking intervals
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if _, err := s.taskRepo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("get task: %w", err)
	}

	if err := s.intervalRepo.DeleteByTask(ctx, id); err != nil {
		return fmt.Errorf("delete task intervals: %w", err)
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.logger.Info("Task deleted", "task_id", id)

	return nil
}

// ListTasks returns all tasks with collaborators populated
func (s *TaskService) ListTasks(ctx context.Context) ([]*entities.Task, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

// AssignCollaborators adds collaborators to a task with set semantics:
// already-assigned ids are ignored, never duplicated.
func (s *TaskService) AssignCollaborators(ctx context.Context, taskID uuid.UUID, collaboratorIDs []uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	toAdd := make([]uuid.UUID, 0, len(collaboratorIDs))
	seen := make(map[uuid.UUID]bool)
	for _, id := range collaboratorIDs {
		if seen[id] || task.HasCollaborator(id) {
			continue
		}
		if _, err := s.collaboratorRepo.GetByID(ctx, id); err != nil {
			return nil, fmt.Errorf("collaborator lookup: %w", err)
		}
		seen[id] = true
		toAdd = append(toAdd, id)
	}

	if len(toAdd) > 0 {
		if err := s.taskRepo.AddCollaborators(ctx, taskID, toAdd); err != nil {
			return nil, fmt.Errorf("assign collaborators: %w", err)
		}
	}

	s.logger.Info("Collaborators assigned", "task_id", taskID, "added", len(toAdd))

	return s.taskRepo.GetByID(ctx, taskID)
}

// RemoveCollaborator detaches a collaborator from a task
func (s *TaskService) RemoveCollaborator(ctx context.Context, taskID, collaboratorID uuid.UUID) (*entities.Task, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}

	if err := s.taskRepo.RemoveCollaborator(ctx, taskID, collaboratorID); err != nil {
		return nil, fmt.Errorf("remove collaborator: %w", err)
	}

	s.logger.Info("Collaborator removed", "task_id", taskID, "collaborator_id", collaboratorID)

	return s.taskRepo.GetByID(ctx, taskID)
}
