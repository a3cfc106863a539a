package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, status, project_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.ProjectID,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	query := `
		SELECT id, title, description, status, project_id, created_at, updated_at
		FROM tasks
		WHERE id = $1`

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	if err := r.attachCollaborators(ctx, []*entities.Task{&task}); err != nil {
		return nil, err
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, project_id = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Title, task.Description, task.Status, task.ProjectID,
	).Scan(&task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrTaskNotFound
		}
		return fmt.Errorf("update task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.TaskStatus) error {
	query := `
		UPDATE tasks
		SET status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context) ([]*entities.Task, error) {
	query := `
		SELECT id, title, description, status, project_id, created_at, updated_at
		FROM tasks
		ORDER BY created_at DESC`

	tasks := []*entities.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	if err := r.attachCollaborators(ctx, tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Task, error) {
	query := `
		SELECT id, title, description, status, project_id, created_at, updated_at
		FROM tasks
		WHERE project_id = $1
		ORDER BY created_at DESC`

	tasks := []*entities.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, projectID); err != nil {
		return nil, fmt.Errorf("list tasks by project: %w", err)
	}

	if err := r.attachCollaborators(ctx, tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) ListByCollaborator(ctx context.Context, collaboratorID uuid.UUID) ([]*entities.Task, error) {
	query := `
		SELECT t.id, t.title, t.description, t.status, t.project_id, t.created_at, t.updated_at
		FROM tasks t
		JOIN task_collaborators tc ON tc.task_id = t.id
		WHERE tc.collaborator_id = $1
		ORDER BY t.created_at DESC`

	tasks := []*entities.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, collaboratorID); err != nil {
		return nil, fmt.Errorf("list tasks by collaborator: %w", err)
	}

	if err := r.attachCollaborators(ctx, tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) AddCollaborators(ctx context.Context, taskID uuid.UUID, collaboratorIDs []uuid.UUID) error {
	// ON CONFLICT DO NOTHING gives the join table set semantics
	query := `
		INSERT INTO task_collaborators (task_id, collaborator_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT (task_id, collaborator_id) DO NOTHING`

	ids := make([]string, len(collaboratorIDs))
	for i, id := range collaboratorIDs {
		ids[i] = id.String()
	}

	if _, err := r.db.ExecContext(ctx, query, taskID, pq.Array(ids)); err != nil {
		return fmt.Errorf("add task collaborators: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) RemoveCollaborator(ctx context.Context, taskID, collaboratorID uuid.UUID) error {
	query := `DELETE FROM task_collaborators WHERE task_id = $1 AND collaborator_id = $2`

	if _, err := r.db.ExecContext(ctx, query, taskID, collaboratorID); err != nil {
		return fmt.Errorf("remove task collaborator: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	query := `DELETE FROM tasks WHERE project_id = $1`

	if _, err := r.db.ExecContext(ctx, query, projectID); err != nil {
		return fmt.Errorf("delete tasks by project: %w", err)
	}

	return nil
}

// attachCollaborators populates the collaborator sets for a batch of tasks
// with a single join query.
func (r *TaskRepositoryImpl) attachCollaborators(ctx context.Context, tasks []*entities.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	taskIDs := make([]string, len(tasks))
	byID := make(map[uuid.UUID]*entities.Task, len(tasks))
	for i, t := range tasks {
		taskIDs[i] = t.ID.String()
		t.Collaborators = []entities.Collaborator{}
		byID[t.ID] = t
	}

	query := `
		SELECT tc.task_id, c.id, c.name, c.user_id, c.created_at, c.updated_at
		FROM task_collaborators tc
		JOIN collaborators c ON c.id = tc.collaborator_id
		WHERE tc.task_id = ANY($1::uuid[])
		ORDER BY c.name`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(taskIDs))
	if err != nil {
		return fmt.Errorf("load task collaborators: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var taskID uuid.UUID
		var c entities.Collaborator
		if err := rows.Scan(&taskID, &c.ID, &c.Name, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return fmt.Errorf("scan task collaborator: %w", err)
		}
		if task, ok := byID[taskID]; ok {
			task.Collaborators = append(task.Collaborators, c)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate task collaborators: %w", err)
	}

	return nil
}
