package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lingokit/lingo-api/internal/domain"
)

// VocabStore defines the interface for persisting vocabulary annotations.
type VocabStore interface {
	// Create saves a new vocab entry.
	// Returns ErrInvalidEntity if the owning message does not exist.
	Create(ctx context.Context, v *domain.Vocab) error

	// UpdateAnnotations writes the annotation fields (part of speech,
	// definition, root, conjugation, detail) of an existing entry.
	// Returns ErrVocabNotFound if the entry does not exist.
	UpdateAnnotations(ctx context.Context, v *domain.Vocab) error

	// ListByMessage retrieves the vocab entries extracted from a message,
	// ordered by creation time.
	ListByMessage(ctx context.Context, messageID uuid.UUID) ([]*domain.Vocab, error)

	// ListByTranscript retrieves the vocab entries for every message of a
	// transcript, ordered by creation time.
	ListByTranscript(ctx context.Context, transcriptID uuid.UUID) ([]*domain.Vocab, error)

	// WithTx returns a VocabStore bound to the given transaction.
	WithTx(tx *sql.Tx) VocabStore
}
