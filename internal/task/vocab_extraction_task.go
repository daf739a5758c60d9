package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingokit/lingo-api/internal/domain"
	"github.com/lingokit/lingo-api/internal/generation"
)

// Common errors
var (
	ErrNilMessageReader = errors.New("message reader cannot be nil")
	ErrNilAnnotator     = errors.New("annotator cannot be nil")
	ErrNilVocabWriter   = errors.New("vocab writer cannot be nil")
	ErrNilLogger        = errors.New("logger cannot be nil")
	ErrEmptyMessageID   = errors.New("message ID cannot be empty")
	ErrNotLearnerMsg    = errors.New("vocabulary is only extracted from learner messages")
)

// MessageReader defines the lookups the extraction task needs to resolve
// a message and the language of its transcript
type MessageReader interface {
	// GetMessage retrieves a message by its ID
	GetMessage(ctx context.Context, id uuid.UUID) (*domain.Message, error)

	// GetTranscript retrieves the transcript a message belongs to
	GetTranscript(ctx context.Context, id uuid.UUID) (*domain.Transcript, error)
}

// Annotator defines the model-backed operations used during extraction
type Annotator interface {
	// TagTerms splits an utterance into terms with part-of-speech labels
	TagTerms(ctx context.Context, msg string) ([]generation.TaggedTerm, error)

	// DefineTerms returns a definition per term, written in lang
	DefineTerms(ctx context.Context, msg string, terms []string, lang domain.Language) (map[string]string, error)

	// AnalyzeVerbs returns root and conjugation info per verb
	AnalyzeVerbs(ctx context.Context, msg string, verbs []string, lang domain.Language) (map[string]generation.VerbInfo, error)

	// DetailTerm returns a long-form explanation of a term, written in lang
	DetailTerm(ctx context.Context, term string, lang domain.Language) (string, error)
}

// VocabWriter defines the persistence operations used during extraction
type VocabWriter interface {
	// Create saves a new vocab entry
	Create(ctx context.Context, v *domain.Vocab) error

	// UpdateAnnotations writes the annotation fields of an existing entry
	UpdateAnnotations(ctx context.Context, v *domain.Vocab) error
}

// vocabExtractionPayload represents the serialized data stored in the task
type vocabExtractionPayload struct {
	MessageID uuid.UUID `json:"message_id"`
}

// VocabExtractionTask implements the Task interface for extracting and
// annotating the vocabulary of a learner message
type VocabExtractionTask struct {
	id        uuid.UUID
	messageID uuid.UUID
	reader    MessageReader
	annotator Annotator
	vocab     VocabWriter
	logger    *slog.Logger
	status    TaskStatus

	// detail enables the per-term long-form explanation pass, one extra
	// model call per term. Off unless the factory turns it on.
	detail bool
}

// NewVocabExtractionTask creates a new vocabulary extraction task
func NewVocabExtractionTask(
	messageID uuid.UUID,
	reader MessageReader,
	annotator Annotator,
	vocab VocabWriter,
	logger *slog.Logger,
) (*VocabExtractionTask, error) {
	if reader == nil {
		return nil, ErrNilMessageReader
	}
	if annotator == nil {
		return nil, ErrNilAnnotator
	}
	if vocab == nil {
		return nil, ErrNilVocabWriter
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if messageID == uuid.Nil {
		return nil, ErrEmptyMessageID
	}

	return &VocabExtractionTask{
		id:        uuid.New(),
		messageID: messageID,
		reader:    reader,
		annotator: annotator,
		vocab:     vocab,
		logger:    logger.With("task_type", TaskTypeVocabExtraction, "message_id", messageID),
		status:    TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *VocabExtractionTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *VocabExtractionTask) Type() string {
	return TaskTypeVocabExtraction
}

// Payload returns the task data as a byte slice
func (t *VocabExtractionTask) Payload() []byte {
	payload := vocabExtractionPayload{
		MessageID: t.messageID,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}

	return data
}

// Status returns the current task status
func (t *VocabExtractionTask) Status() TaskStatus {
	return t.status
}

// Execute runs the extraction in stages: tag the utterance into terms,
// persist one vocab entry per term with its part of speech, then request
// definitions, then verb roots and conjugations, then (when enabled)
// long-form details, writing annotations back after each stage. Entries
// created before a later stage fails keep whatever annotations earlier
// stages produced.
func (t *VocabExtractionTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.Info("starting vocab extraction task")

	if err := ctx.Err(); err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	msg, err := t.reader.GetMessage(ctx, t.messageID)
	if err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("failed to retrieve message", "error", err)
		return fmt.Errorf("failed to retrieve message: %w", err)
	}
	if msg.Speaker != domain.SpeakerUsr {
		t.status = TaskStatusFailed
		return fmt.Errorf("%w: got speaker %q", ErrNotLearnerMsg, msg.Speaker)
	}

	tr, err := t.reader.GetTranscript(ctx, msg.TranscriptID)
	if err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("failed to retrieve transcript", "error", err)
		return fmt.Errorf("failed to retrieve transcript: %w", err)
	}

	lang, err := domain.ParseLanguage(tr.BCP47)
	if err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("transcript has invalid language %q: %w", tr.BCP47, err)
	}

	tagged, err := t.annotator.TagTerms(ctx, msg.Body)
	if err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("failed to tag terms", "error", err)
		return fmt.Errorf("failed to tag terms: %w", err)
	}
	if len(tagged) == 0 {
		t.logger.Warn("no terms found in message")
		t.status = TaskStatusCompleted
		return nil
	}

	entries := make([]*domain.Vocab, 0, len(tagged))
	terms := make([]string, 0, len(tagged))
	for _, tt := range tagged {
		v, err := domain.NewVocab(msg.ID, tt.Term, tr.BCP47)
		if err != nil {
			t.status = TaskStatusFailed
			return fmt.Errorf("failed to build vocab entry for %q: %w", tt.Term, err)
		}
		v.PartOfSpeech = tt.PartOfSpeech

		if err := t.vocab.Create(ctx, v); err != nil {
			t.status = TaskStatusFailed
			t.logger.Error("failed to save vocab entry", "error", err, "term", tt.Term)
			return fmt.Errorf("failed to save vocab entry: %w", err)
		}

		entries = append(entries, v)
		terms = append(terms, tt.Term)
	}
	t.logger.Info("vocab entries created", "count", len(entries))

	defs, err := t.annotator.DefineTerms(ctx, msg.Body, terms, lang)
	if err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("failed to define terms", "error", err)
		return fmt.Errorf("failed to define terms: %w", err)
	}

	for _, v := range entries {
		v.Definition = defs[v.Term]
		if err := t.vocab.UpdateAnnotations(ctx, v); err != nil {
			t.status = TaskStatusFailed
			t.logger.Error("failed to save definition", "error", err, "term", v.Term)
			return fmt.Errorf("failed to save definition: %w", err)
		}
	}

	if err := t.annotateVerbs(ctx, msg.Body, entries, lang); err != nil {
		t.status = TaskStatusFailed
		return err
	}

	if t.detail {
		if err := t.annotateDetails(ctx, entries, lang); err != nil {
			t.status = TaskStatusFailed
			return err
		}
	}

	t.status = TaskStatusCompleted
	t.logger.Info("vocab extraction task completed", "terms_annotated", len(entries))
	return nil
}

// annotateVerbs fills in root and conjugation for the verb entries. A
// message with no verbs is not an error.
func (t *VocabExtractionTask) annotateVerbs(
	ctx context.Context,
	body string,
	entries []*domain.Vocab,
	lang domain.Language,
) error {
	verbs := make([]*domain.Vocab, 0, len(entries))
	terms := make([]string, 0, len(entries))
	for _, v := range entries {
		if v.IsVerb() {
			verbs = append(verbs, v)
			terms = append(terms, v.Term)
		}
	}
	if len(verbs) == 0 {
		return nil
	}

	info, err := t.annotator.AnalyzeVerbs(ctx, body, terms, lang)
	if err != nil {
		t.logger.Error("failed to analyze verbs", "error", err)
		return fmt.Errorf("failed to analyze verbs: %w", err)
	}

	for _, v := range verbs {
		v.Root = info[v.Term].Root
		v.Conjugation = info[v.Term].Conjugation
		if err := t.vocab.UpdateAnnotations(ctx, v); err != nil {
			t.logger.Error("failed to save verb analysis", "error", err, "term", v.Term)
			return fmt.Errorf("failed to save verb analysis: %w", err)
		}
	}
	return nil
}

// annotateDetails fills in the long-form explanation for every entry, one
// model call per term.
func (t *VocabExtractionTask) annotateDetails(
	ctx context.Context,
	entries []*domain.Vocab,
	lang domain.Language,
) error {
	for _, v := range entries {
		detail, err := t.annotator.DetailTerm(ctx, v.Term, lang)
		if err != nil {
			t.logger.Error("failed to detail term", "error", err, "term", v.Term)
			return fmt.Errorf("failed to detail term %q: %w", v.Term, err)
		}
		v.Detail = detail
		if err := t.vocab.UpdateAnnotations(ctx, v); err != nil {
			t.logger.Error("failed to save detail", "error", err, "term", v.Term)
			return fmt.Errorf("failed to save detail: %w", err)
		}
	}
	return nil
}
