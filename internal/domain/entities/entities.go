package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrUsernameTaken        = errors.New("username already in use")
	ErrCollaboratorNotFound = errors.New("collaborator not found")
	ErrIntervalNotFound     = errors.New("time interval not found")
	ErrAlreadyTracking      = errors.New("already tracking time for this task")
	ErrNoActiveTracking     = errors.New("no active time tracking found")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidInterval      = errors.New("end date must be after start date")
	ErrIntervalClosed       = errors.New("time interval is already closed")
	ErrUnauthorized         = errors.New("unauthorized")
)

// TaskStatus is the board column a task sits in
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "inprogress"
	TaskStatusDone       TaskStatus = "done"
)

// User represents an account that can authenticate against the API
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Project groups tasks on a board
type Project struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Collaborator is a named participant that can be assigned to tasks.
// Each collaborator is backed by exactly one user account.
type Collaborator struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	User      *User     `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Task represents a card on the board
type Task struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	Title         string         `json:"title" db:"title"`
	Description   string         `json:"description" db:"description"`
	Status        TaskStatus     `json:"status" db:"status"`
	ProjectID     *uuid.UUID     `json:"project" db:"project_id"`
	Collaborators []Collaborator `json:"collaborators"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// TimeInterval represents one contiguous tracking span for a task.
// An interval with no end date is open, meaning tracking is in progress.
type TimeInterval struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	TaskID    uuid.UUID  `json:"task" db:"task_id"`
	StartDate time.Time  `json:"startDate" db:"start_date"`
	EndDate   *time.Time `json:"endDate,omitempty" db:"end_date"`
	TimeZone  string     `json:"timeZone" db:"time_zone"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// Business logic methods for Task

// HasCollaborator reports whether the collaborator is already assigned.
func (t *Task) HasCollaborator(collaboratorID uuid.UUID) bool {
	for _, c := range t.Collaborators {
		if c.ID == collaboratorID {
			return true
		}
	}
	return false
}

// CollaboratorIDs returns the assigned collaborator ids in board order.
func (t *Task) CollaboratorIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(t.Collaborators))
	for _, c := range t.Collaborators {
		ids = append(ids, c.ID)
	}
	return ids
}

// Business logic methods for TimeInterval

func (ti *TimeInterval) IsOpen() bool {
	return ti.EndDate == nil
}

// Close stamps the end date, transitioning the interval to closed.
// Closed intervals are immutable; closing twice is an error.
func (ti *TimeInterval) Close(endedAt time.Time) error {
	if ti.EndDate != nil {
		return ErrIntervalClosed
	}
	if !endedAt.After(ti.StartDate) {
		return ErrInvalidInterval
	}
	ti.EndDate = &endedAt
	return nil
}

// Duration returns the tracked span. Open intervals report zero; their
// elapsed time is only meaningful against a caller-supplied clock.
func (ti *TimeInterval) Duration() time.Duration {
	if ti.EndDate == nil {
		return 0
	}
	return ti.EndDate.Sub(ti.StartDate)
}

func (ti *TimeInterval) IsValid() bool {
	if ti.EndDate != nil && !ti.EndDate.After(ti.StartDate) {
		return false
	}
	return ti.TimeZone != ""
}

// Utility methods

func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	default:
		return false
	}
}
