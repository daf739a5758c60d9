package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lingokit/lingo-api/internal/domain"
)

// TranscriptStore defines the interface for transcript and message
// persistence. Messages belong to exactly one transcript.
type TranscriptStore interface {
	// Create saves a new transcript.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, tr *domain.Transcript) error

	// GetByID retrieves a transcript without its messages.
	// Returns ErrTranscriptNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transcript, error)

	// GetWithMessages retrieves a transcript with its messages ordered by
	// creation time. Returns ErrTranscriptNotFound if it does not exist.
	GetWithMessages(ctx context.Context, id uuid.UUID) (*domain.Transcript, error)

	// AppendMessage saves a message to its transcript and bumps the
	// transcript's updated_at. Returns ErrInvalidEntity if the transcript
	// does not exist.
	AppendMessage(ctx context.Context, msg *domain.Message) error

	// GetMessage retrieves a single message by ID.
	// Returns ErrMessageNotFound if it does not exist.
	GetMessage(ctx context.Context, id uuid.UUID) (*domain.Message, error)

	// WithTx returns a TranscriptStore bound to the given transaction.
	WithTx(tx *sql.Tx) TranscriptStore
}
