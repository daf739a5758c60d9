package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/lingokit/lingo-api/internal/domain"
	"github.com/lingokit/lingo-api/internal/store"
	"github.com/lingokit/lingo-api/internal/task"
)

// transcriptReaderAdapter adapts a store.TranscriptStore to the
// task.MessageReader interface used by extraction tasks.
type transcriptReaderAdapter struct {
	store store.TranscriptStore
}

var _ task.MessageReader = (*transcriptReaderAdapter)(nil)

// NewTranscriptReaderAdapter wraps a TranscriptStore for use by the task
// package.
func NewTranscriptReaderAdapter(s store.TranscriptStore) task.MessageReader {
	return &transcriptReaderAdapter{store: s}
}

func (a *transcriptReaderAdapter) GetMessage(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	return a.store.GetMessage(ctx, id)
}

func (a *transcriptReaderAdapter) GetTranscript(ctx context.Context, id uuid.UUID) (*domain.Transcript, error) {
	return a.store.GetByID(ctx, id)
}
