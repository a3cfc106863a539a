package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskboard/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
}

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	Update(ctx context.Context, project *entities.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*entities.Project, error)
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*entities.Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Task, error)
	ListByCollaborator(ctx context.Context, collaboratorID uuid.UUID) ([]*entities.Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TaskStatus) error
	AddCollaborators(ctx context.Context, taskID uuid.UUID, collaboratorIDs []uuid.UUID) error
	RemoveCollaborator(ctx context.Context, taskID, collaboratorID uuid.UUID) error
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
}

// CollaboratorRepository defines the interface for collaborator data operations
type CollaboratorRepository interface {
	Create(ctx context.Context, collaborator *entities.Collaborator) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Collaborator, error)
	List(ctx context.Context) ([]*entities.Collaborator, error)
}

// TimeIntervalRepository defines the interface for tracking interval storage.
//
// The store guards the "one open interval per task" slot with a partial
// unique index, so a concurrent Create for the same task surfaces as
// entities.ErrAlreadyTracking rather than a duplicate row. CloseOpen is a
// single conditional update and is therefore atomic with respect to
// concurrent stop requests.
type TimeIntervalRepository interface {
	Create(ctx context.Context, interval *entities.TimeInterval) error
	GetOpenByTask(ctx context.Context, taskID uuid.UUID) (*entities.TimeInterval, error)
	CloseOpen(ctx context.Context, taskID uuid.UUID, endedAt time.Time) (*entities.TimeInterval, error)
	ListClosedByTask(ctx context.Context, taskID uuid.UUID) ([]*entities.TimeInterval, error)
	ListClosedSince(ctx context.Context, since time.Time) ([]*entities.TimeInterval, error)
	DeleteByTask(ctx context.Context, taskID uuid.UUID) error
}

// AuthRepository defines the interface for refresh token persistence
type AuthRepository interface {
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
	CleanupExpiredTokens(ctx context.Context) error
}

// RefreshToken represents a refresh token record
type RefreshToken struct {
	ID        int        `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	TokenHash string     `json:"token_hash" db:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	RevokedAt *time.Time `json:"revoked_at" db:"revoked_at"`
}

// IsExpired checks if the refresh token is expired
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// IsRevoked checks if the refresh token is revoked
func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

// IsValid checks if the refresh token is valid
func (rt *RefreshToken) IsValid() bool {
	return !rt.IsExpired() && !rt.IsRevoked()
}
