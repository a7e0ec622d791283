package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"smartnotes/internal/domain"
	"smartnotes/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxNoteRepository implements domain.NoteRepository using sqlx.
type sqlxNoteRepository struct {
	db *sqlx.DB
}

// NewSQLXNoteRepository creates a new instance of sqlxNoteRepository.
func NewSQLXNoteRepository(db *sqlx.DB) domain.NoteRepository {
	return &sqlxNoteRepository{db: db}
}

// Save inserts a new note record.
func (r *sqlxNoteRepository) Save(ctx context.Context, note *domain.Note) error {
	model := models.NoteFromDomain(note)
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now()
	}

	query := `INSERT INTO notes (id, title, content, original_text, created_at)
	          VALUES (:id, :title, :content, :original_text, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to save note: %w", err)
	}
	return nil
}

// GetByID retrieves a note by its ID. Returns nil, nil when not found so
// services can decide how to report it.
func (r *sqlxNoteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	var model models.Note
	query := `SELECT id, title, content, original_text, created_at FROM notes WHERE id = :id`

	stmt, err := r.db.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare query for GetByID: %w", err)
	}
	defer stmt.Close()

	args := map[string]interface{}{"id": id}
	if err := stmt.GetContext(ctx, &model, args); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get note by id: %w", err)
	}
	return model.ToDomain(), nil
}
