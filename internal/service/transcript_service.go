package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingokit/lingo-api/internal/domain"
	"github.com/lingokit/lingo-api/internal/generation"
	"github.com/lingokit/lingo-api/internal/store"
	"github.com/lingokit/lingo-api/internal/task"
)

// TaskEnqueuer defines the interface for submitting background tasks.
// Satisfied by *task.TaskQueue.
type TaskEnqueuer interface {
	// Enqueue adds a task to the processing queue
	Enqueue(t task.Task) error
}

// ExtractionTaskFactory creates vocabulary extraction tasks
type ExtractionTaskFactory interface {
	// CreateTask creates a new extraction task for the specified message
	CreateTask(messageID uuid.UUID) (task.Task, error)
}

// ConversationInsights defines the model-backed operations used to
// summarize a transcript. Satisfied by the generation.Generator
// implementations.
type ConversationInsights interface {
	generation.Summarizer
	generation.TopicExtractor
}

// Summary length and topic count requested from the model.
const (
	summaryWords  = 20
	summaryTopics = 5
)

// TranscriptSummary is a condensed view of a practice conversation.
type TranscriptSummary struct {
	// Summary is a short natural-language recap written in the
	// transcript's language.
	Summary string `json:"summary"`
	// Topics lists what the conversation covered.
	Topics []string `json:"topics"`
}

// TranscriptService provides transcript-related operations
type TranscriptService interface {
	// CreateTranscript starts a new practice transcript for the user in the
	// given language
	CreateTranscript(ctx context.Context, userID uuid.UUID, bcp47 string) (*domain.Transcript, error)

	// GetTranscript retrieves a transcript with its messages.
	// Returns ErrNotOwned if the transcript belongs to another user.
	GetTranscript(ctx context.Context, userID, transcriptID uuid.UUID) (*domain.Transcript, error)

	// AppendMessage adds an utterance to a transcript. Learner messages are
	// additionally enqueued for vocabulary extraction.
	AppendMessage(
		ctx context.Context,
		userID, transcriptID uuid.UUID,
		speaker domain.Speaker,
		body string,
	) (*domain.Message, error)

	// ListVocab retrieves the vocabulary extracted from a transcript
	ListVocab(ctx context.Context, userID, transcriptID uuid.UUID) ([]*domain.Vocab, error)

	// Summarize condenses the transcript into a short summary and topic
	// list, written in the transcript's language. Returns
	// generation.ErrEmptyInput for a transcript with no messages.
	Summarize(ctx context.Context, userID, transcriptID uuid.UUID) (*TranscriptSummary, error)
}

// TranscriptServiceError wraps errors from the transcript service with
// context.
type TranscriptServiceError struct {
	// Operation is the operation that failed (e.g., "create_transcript")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TranscriptServiceError.
func (e *TranscriptServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transcript service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("transcript service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TranscriptServiceError) Unwrap() error {
	return e.Err
}

type transcriptServiceImpl struct {
	transcripts store.TranscriptStore
	vocab       store.VocabStore
	factory     ExtractionTaskFactory
	enqueuer    TaskEnqueuer
	insights    ConversationInsights
	logger      *slog.Logger
}

// NewTranscriptService creates a new TranscriptService.
// It returns an error if any of the required dependencies are nil.
func NewTranscriptService(
	transcripts store.TranscriptStore,
	vocab store.VocabStore,
	factory ExtractionTaskFactory,
	enqueuer TaskEnqueuer,
	insights ConversationInsights,
	logger *slog.Logger,
) (TranscriptService, error) {
	if transcripts == nil {
		return nil, &TranscriptServiceError{
			Operation: "create_service",
			Message:   "transcript store cannot be nil",
		}
	}
	if vocab == nil {
		return nil, &TranscriptServiceError{
			Operation: "create_service",
			Message:   "vocab store cannot be nil",
		}
	}
	if factory == nil {
		return nil, &TranscriptServiceError{
			Operation: "create_service",
			Message:   "task factory cannot be nil",
		}
	}
	if enqueuer == nil {
		return nil, &TranscriptServiceError{
			Operation: "create_service",
			Message:   "task enqueuer cannot be nil",
		}
	}
	if insights == nil {
		return nil, &TranscriptServiceError{
			Operation: "create_service",
			Message:   "conversation insights cannot be nil",
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &transcriptServiceImpl{
		transcripts: transcripts,
		vocab:       vocab,
		factory:     factory,
		enqueuer:    enqueuer,
		insights:    insights,
		logger:      logger.With("component", "transcript_service"),
	}, nil
}

// CreateTranscript starts a new practice transcript for the user.
func (s *transcriptServiceImpl) CreateTranscript(
	ctx context.Context,
	userID uuid.UUID,
	bcp47 string,
) (*domain.Transcript, error) {
	tr, err := domain.NewTranscript(userID, bcp47)
	if err != nil {
		s.logger.Warn("failed to create transcript object",
			"error", err,
			"user_id", userID,
			"bcp47", bcp47)
		return nil, err
	}

	if err := s.transcripts.Create(ctx, tr); err != nil {
		s.logger.Error("failed to save transcript",
			"error", err,
			"transcript_id", tr.ID)
		return nil, &TranscriptServiceError{
			Operation: "create_transcript",
			Message:   "failed to save transcript",
			Err:       err,
		}
	}

	s.logger.Info("transcript created",
		"transcript_id", tr.ID,
		"user_id", userID,
		"bcp47", bcp47)
	return tr, nil
}

// GetTranscript retrieves a transcript with its messages.
func (s *transcriptServiceImpl) GetTranscript(
	ctx context.Context,
	userID, transcriptID uuid.UUID,
) (*domain.Transcript, error) {
	tr, err := s.transcripts.GetWithMessages(ctx, transcriptID)
	if err != nil {
		if errors.Is(err, store.ErrTranscriptNotFound) {
			return nil, ErrTranscriptNotFound
		}
		return nil, &TranscriptServiceError{
			Operation: "get_transcript",
			Message:   "failed to retrieve transcript",
			Err:       err,
		}
	}
	if tr.UserID != userID {
		return nil, ErrNotOwned
	}

	return tr, nil
}

// AppendMessage adds an utterance to a transcript. Learner messages are
// enqueued for vocabulary extraction after the message is saved; a full
// extraction queue degrades to a plain append rather than failing the
// request.
func (s *transcriptServiceImpl) AppendMessage(
	ctx context.Context,
	userID, transcriptID uuid.UUID,
	speaker domain.Speaker,
	body string,
) (*domain.Message, error) {
	tr, err := s.transcripts.GetByID(ctx, transcriptID)
	if err != nil {
		if errors.Is(err, store.ErrTranscriptNotFound) {
			return nil, ErrTranscriptNotFound
		}
		return nil, &TranscriptServiceError{
			Operation: "append_message",
			Message:   "failed to retrieve transcript",
			Err:       err,
		}
	}
	if tr.UserID != userID {
		return nil, ErrNotOwned
	}

	msg, err := domain.NewMessage(transcriptID, speaker, body)
	if err != nil {
		s.logger.Warn("failed to create message object",
			"error", err,
			"transcript_id", transcriptID)
		return nil, err
	}

	if err := s.transcripts.AppendMessage(ctx, msg); err != nil {
		s.logger.Error("failed to save message",
			"error", err,
			"message_id", msg.ID,
			"transcript_id", transcriptID)
		return nil, &TranscriptServiceError{
			Operation: "append_message",
			Message:   "failed to save message",
			Err:       err,
		}
	}

	if speaker == domain.SpeakerUsr {
		s.enqueueExtraction(msg)
	}

	s.logger.Info("message appended",
		"message_id", msg.ID,
		"transcript_id", transcriptID,
		"speaker", speaker)
	return msg, nil
}

// enqueueExtraction submits a vocabulary extraction task for a learner
// message. Failures are logged, not propagated: the message is already
// saved.
func (s *transcriptServiceImpl) enqueueExtraction(msg *domain.Message) {
	t, err := s.factory.CreateTask(msg.ID)
	if err != nil {
		s.logger.Error("failed to create extraction task",
			"error", err,
			"message_id", msg.ID)
		return
	}

	if err := s.enqueuer.Enqueue(t); err != nil {
		s.logger.Warn("failed to enqueue extraction task",
			"error", err,
			"message_id", msg.ID,
			"task_id", t.ID())
		return
	}

	s.logger.Debug("extraction task enqueued",
		"message_id", msg.ID,
		"task_id", t.ID())
}

// Summarize condenses the transcript into a short summary plus the topics
// it covered, both produced by the model in the transcript's language.
func (s *transcriptServiceImpl) Summarize(
	ctx context.Context,
	userID, transcriptID uuid.UUID,
) (*TranscriptSummary, error) {
	tr, err := s.transcripts.GetWithMessages(ctx, transcriptID)
	if err != nil {
		if errors.Is(err, store.ErrTranscriptNotFound) {
			return nil, ErrTranscriptNotFound
		}
		return nil, &TranscriptServiceError{
			Operation: "summarize",
			Message:   "failed to retrieve transcript",
			Err:       err,
		}
	}
	if tr.UserID != userID {
		return nil, ErrNotOwned
	}

	lang, err := domain.ParseLanguage(tr.BCP47)
	if err != nil {
		return nil, err
	}

	summary, err := s.insights.Summarize(ctx, tr.Messages, summaryWords, lang)
	if err != nil {
		s.logger.Error("failed to summarize transcript",
			"error", err,
			"transcript_id", transcriptID)
		return nil, err
	}

	topics, err := s.insights.ExtractTopics(ctx, tr.Messages, summaryTopics)
	if err != nil {
		s.logger.Error("failed to extract topics",
			"error", err,
			"transcript_id", transcriptID)
		return nil, err
	}

	return &TranscriptSummary{Summary: summary, Topics: topics}, nil
}

// ListVocab retrieves the vocabulary extracted from a transcript.
func (s *transcriptServiceImpl) ListVocab(
	ctx context.Context,
	userID, transcriptID uuid.UUID,
) ([]*domain.Vocab, error) {
	tr, err := s.transcripts.GetByID(ctx, transcriptID)
	if err != nil {
		if errors.Is(err, store.ErrTranscriptNotFound) {
			return nil, ErrTranscriptNotFound
		}
		return nil, &TranscriptServiceError{
			Operation: "list_vocab",
			Message:   "failed to retrieve transcript",
			Err:       err,
		}
	}
	if tr.UserID != userID {
		return nil, ErrNotOwned
	}

	entries, err := s.vocab.ListByTranscript(ctx, transcriptID)
	if err != nil {
		return nil, &TranscriptServiceError{
			Operation: "list_vocab",
			Message:   "failed to list vocab entries",
			Err:       err,
		}
	}

	return entries, nil
}
