package domain

import (
	"context"
	"time"
)

// Note is the record handed to persistence after a summary is generated:
// a title, the summary content, and the text it was derived from.
type Note struct {
	ID           string
	Title        string
	Content      string
	OriginalText string
	CreatedAt    time.Time
}

// NoteRepository is the persistence port for generated summaries. The core
// only produces the Note shape; storage schema is the adapter's concern.
type NoteRepository interface {
	Save(ctx context.Context, note *Note) error
	GetByID(ctx context.Context, id string) (*Note, error)
}
