package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taskboard/core/internal/domain/entities"
	"github.com/taskboard/core/internal/ports"
)

// ProjectRepositoryImpl implements the ProjectRepository interface
type ProjectRepositoryImpl struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sqlx.DB) ports.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *entities.Project) error {
	query := `
		INSERT INTO projects (id, name)
		VALUES ($1, $2)
		RETURNING created_at, updated_at`

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query, project.ID, project.Name).
		Scan(&project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM projects
		WHERE id = $1`

	var project entities.Project
	err := r.db.GetContext(ctx, &project, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project by id: %w", err)
	}

	return &project, nil
}

func (r *ProjectRepositoryImpl) Update(ctx context.Context, project *entities.Project) error {
	query := `
		UPDATE projects
		SET name = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, project.ID, project.Name).Scan(&project.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrProjectNotFound
		}
		return fmt.Errorf("update project: %w", err)
	}

	return nil
}

func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM projects WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrProjectNotFound
	}

	return nil
}

func (r *ProjectRepositoryImpl) List(ctx context.Context) ([]*entities.Project, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM projects
		ORDER BY created_at DESC`

	projects := []*entities.Project{}
	if err := r.db.SelectContext(ctx, &projects, query); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}
