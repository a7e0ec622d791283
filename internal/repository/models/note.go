package models

import (
	"time"

	"smartnotes/internal/domain"
)

// Note is the database representation of a stored summary record.
type Note struct {
	ID           string    `db:"id"`
	Title        string    `db:"title"`
	Content      string    `db:"content"`
	OriginalText string    `db:"original_text"`
	CreatedAt    time.Time `db:"created_at"`
}

// ToDomain converts the database model to the domain entity.
func (n *Note) ToDomain() *domain.Note {
	return &domain.Note{
		ID:           n.ID,
		Title:        n.Title,
		Content:      n.Content,
		OriginalText: n.OriginalText,
		CreatedAt:    n.CreatedAt,
	}
}

// NoteFromDomain converts a domain entity to the database model.
func NoteFromDomain(n *domain.Note) *Note {
	return &Note{
		ID:           n.ID,
		Title:        n.Title,
		Content:      n.Content,
		OriginalText: n.OriginalText,
		CreatedAt:    n.CreatedAt,
	}
}
