package task

import (
	"log/slog"

	"github.com/google/uuid"
)

// VocabExtractionTaskFactory creates VocabExtractionTask instances
type VocabExtractionTaskFactory struct {
	reader    MessageReader
	annotator Annotator
	vocab     VocabWriter
	detail    bool
	logger    *slog.Logger
}

// NewVocabExtractionTaskFactory creates a new factory for
// VocabExtractionTasks. When detail is true, created tasks also run the
// per-term long-form explanation pass.
func NewVocabExtractionTaskFactory(
	reader MessageReader,
	annotator Annotator,
	vocab VocabWriter,
	detail bool,
	logger *slog.Logger,
) *VocabExtractionTaskFactory {
	return &VocabExtractionTaskFactory{
		reader:    reader,
		annotator: annotator,
		vocab:     vocab,
		detail:    detail,
		logger:    logger.With("component", "vocab_extraction_task_factory"),
	}
}

// CreateTask creates a new VocabExtractionTask for the specified message
func (f *VocabExtractionTaskFactory) CreateTask(messageID uuid.UUID) (Task, error) {
	t, err := NewVocabExtractionTask(
		messageID,
		f.reader,
		f.annotator,
		f.vocab,
		f.logger,
	)
	if err != nil {
		return nil, err
	}
	t.detail = f.detail
	return t, nil
}
