package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/taskboard/core/internal/domain/entities"
)

// AuthService interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ValidateToken(tokenString string) (*Claims, error)
}

// ProjectService interface for project management operations
type ProjectService interface {
	CreateProject(ctx context.Context, req CreateProjectRequest) (*entities.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	UpdateProject(ctx context.Context, id uuid.UUID, req UpdateProjectRequest) (*entities.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error
	ListProjects(ctx context.Context) ([]*entities.Project, error)
	GetProjectTasks(ctx context.Context, id uuid.UUID) ([]*entities.Task, error)
}

// TaskService interface for task management operations
type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*entities.Task, error)
	GetTask(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, req UpdateTaskRequest) (*entities.Task, error)
	UpdateTaskStatus(ctx context.Context, id uuid.UUID, status entities.TaskStatus) (*entities.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) error
	ListTasks(ctx context.Context) ([]*entities.Task, error)
	AssignCollaborators(ctx context.Context, taskID uuid.UUID, collaboratorIDs []uuid.UUID) (*entities.Task, error)
	RemoveCollaborator(ctx context.Context, taskID, collaboratorID uuid.UUID) (*entities.Task, error)
}

// CollaboratorService interface for collaborator management operations
type CollaboratorService interface {
	CreateCollaborator(ctx context.Context, req CreateCollaboratorRequest) (*entities.Collaborator, error)
	ListCollaborators(ctx context.Context) ([]*entities.Collaborator, error)
	GetCollaboratorTasks(ctx context.Context, id uuid.UUID) ([]*entities.Task, error)
}

// TimeTrackingService interface for the tracking interval lifecycle
type TimeTrackingService interface {
	Start(ctx context.Context, taskID uuid.UUID, req StartTrackingRequest) (*entities.TimeInterval, error)
	Stop(ctx context.Context, taskID uuid.UUID) (*entities.TimeInterval, error)
	History(ctx context.Context, taskID uuid.UUID) ([]*entities.TimeInterval, error)
	ActiveStatus(ctx context.Context, taskID uuid.UUID) (*TrackingStatus, error)
	Summary(ctx context.Context) (*TrackingSummary, error)
}

// Request/Response Types

// Auth related types
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string         `json:"token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	User         *entities.User `json:"user"`
}

type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Project related types
type CreateProjectRequest struct {
	Name string `json:"name" validate:"required,max=250"`
}

type UpdateProjectRequest struct {
	Name *string `json:"name" validate:"omitempty,max=250"`
}

// Task related types
type CreateTaskRequest struct {
	Title         string     `json:"title" validate:"required,max=250"`
	Description   string     `json:"description" validate:"required"`
	Status        *string    `json:"status" validate:"omitempty,oneof=todo inprogress done"`
	ProjectID     *uuid.UUID `json:"project"`
	Collaborators []uuid.UUID `json:"collaborators"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=250"`
	Description *string    `json:"description" validate:"omitempty"`
	Status      *string    `json:"status" validate:"omitempty,oneof=todo inprogress done"`
	ProjectID   *uuid.UUID `json:"project"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=todo inprogress done"`
}

type AssignCollaboratorsRequest struct {
	CollaboratorIDs []uuid.UUID `json:"collaboratorIds" validate:"required,min=1"`
}

// Collaborator related types
type CreateCollaboratorRequest struct {
	Name   string    `json:"name" validate:"required,max=250"`
	UserID uuid.UUID `json:"user" validate:"required"`
}

// Time tracking related types
type StartTrackingRequest struct {
	TimeZone string `json:"timeZone" validate:"required"`
}

// TrackingStatus reports whether a task has an open interval
type TrackingStatus struct {
	IsActive     bool                   `json:"isActive"`
	TrackingData *entities.TimeInterval `json:"trackingData"`
}

// TrackingSummary carries the recomputed daily and monthly totals,
// rendered as zero-padded HH:MM
type TrackingSummary struct {
	DailyTotal   string `json:"dailyTotal"`
	MonthlyTotal string `json:"monthlyTotal"`
}

// Response types for common structures
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
