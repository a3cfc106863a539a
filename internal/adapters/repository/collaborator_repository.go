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

// CollaboratorRepositoryImpl implements the CollaboratorRepository interface
type CollaboratorRepositoryImpl struct {
	db *sqlx.DB
}

// NewCollaboratorRepository creates a new collaborator repository
func NewCollaboratorRepository(db *sqlx.DB) ports.CollaboratorRepository {
	return &CollaboratorRepositoryImpl{db: db}
}

func (r *CollaboratorRepositoryImpl) Create(ctx context.Context, collaborator *entities.Collaborator) error {
	query := `
		INSERT INTO collaborators (id, name, user_id)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at`

	if collaborator.ID == uuid.Nil {
		collaborator.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		collaborator.ID, collaborator.Name, collaborator.UserID,
	).Scan(&collaborator.CreatedAt, &collaborator.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create collaborator: %w", err)
	}

	return nil
}

func (r *CollaboratorRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Collaborator, error) {
	query := `
		SELECT id, name, user_id, created_at, updated_at
		FROM collaborators
		WHERE id = $1`

	var collaborator entities.Collaborator
	err := r.db.GetContext(ctx, &collaborator, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrCollaboratorNotFound
		}
		return nil, fmt.Errorf("get collaborator by id: %w", err)
	}

	return &collaborator, nil
}

func (r *CollaboratorRepositoryImpl) List(ctx context.Context) ([]*entities.Collaborator, error) {
	query := `
		SELECT c.id, c.name, c.user_id, c.created_at, c.updated_at,
			u.id AS user_uid, u.username, u.created_at AS user_created_at, u.updated_at AS user_updated_at
		FROM collaborators c
		JOIN users u ON u.id = c.user_id
		ORDER BY c.name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list collaborators: %w", err)
	}
	defer rows.Close()

	collaborators := []*entities.Collaborator{}
	for rows.Next() {
		var c entities.Collaborator
		var u entities.User
		if err := rows.Scan(
			&c.ID, &c.Name, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
			&u.ID, &u.Username, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan collaborator: %w", err)
		}
		c.User = &u
		collaborators = append(collaborators, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collaborators: %w", err)
	}

	return collaborators, nil
}
