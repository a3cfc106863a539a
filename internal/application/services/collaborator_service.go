package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/infrastructure/logger"
	"github.com/taskboard/core/internal/ports"
)

// CollaboratorService handles collaborator operations
type CollaboratorService struct {
	collaboratorRepo ports.CollaboratorRepository
	taskRepo         ports.TaskRepository
	userRepo         ports.UserRepository
	logger           *logger.Logger
}

// NewCollaboratorService creates a new collaborator service
func NewCollaboratorService(collaboratorRepo ports.CollaboratorRepository, taskRepo ports.TaskRepository, userRepo ports.UserRepository, logger *logger.Logger) *CollaboratorService {
	return &CollaboratorService{
		collaboratorRepo: collaboratorRepo,
		taskRepo:         taskRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// CreateCollaborator creates a collaborator backed by an existing user.
// The user reference is unique: one collaborator per account.
func (s *CollaboratorService) CreateCollaborator(ctx context.Context, req ports.CreateCollaboratorRequest) (*entities.Collaborator, error) {
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}

	collaborator := &entities.Collaborator{
		ID:     uuid.New(),
		Name:   req.Name,
		UserID: req.UserID,
	}

	if err := s.collaboratorRepo.Create(ctx, collaborator); err != nil {
		return nil, fmt.Errorf("create collaborator: %w", err)
	}

	s.logger.Info("Collaborator created", "collaborator_id", collaborator.ID, "name", collaborator.Name)

	return collaborator, nil
}

// ListCollaborators returns all collaborators with their user populated
func (s *CollaboratorService) ListCollaborators(ctx context.Context) ([]*entities.Collaborator, error) {
	collaborators, err := s.collaboratorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collaborators: %w", err)
	}

	return collaborators, nil
}

// GetCollaboratorTasks returns the tasks a collaborator is assigned to
func (s *CollaboratorService) GetCollaboratorTasks(ctx context.Context, id uuid.UUID) ([]*entities.Task, error) {
	if _, err := s.collaboratorRepo.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("get collaborator: %w", err)
	}

	tasks, err := s.taskRepo.ListByCollaborator(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list collaborator tasks: %w", err)
	}

	return tasks, nil
}
