package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingokit/lingo-api/internal/domain"
	"github.com/lingokit/lingo-api/internal/store"
	"github.com/lingokit/lingo-api/internal/task"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockTranscriptStore implements store.TranscriptStore for testing
type mockTranscriptStore struct {
	transcripts map[uuid.UUID]*domain.Transcript
	messages    map[uuid.UUID]*domain.Message
	createErr   error
	appendErr   error
}

var _ store.TranscriptStore = (*mockTranscriptStore)(nil)

func newMockTranscriptStore() *mockTranscriptStore {
	return &mockTranscriptStore{
		transcripts: make(map[uuid.UUID]*domain.Transcript),
		messages:    make(map[uuid.UUID]*domain.Message),
	}
}

func (m *mockTranscriptStore) Create(ctx context.Context, tr *domain.Transcript) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.transcripts[tr.ID] = tr
	return nil
}

func (m *mockTranscriptStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transcript, error) {
	tr, ok := m.transcripts[id]
	if !ok {
		return nil, store.ErrTranscriptNotFound
	}
	return tr, nil
}

func (m *mockTranscriptStore) GetWithMessages(ctx context.Context, id uuid.UUID) (*domain.Transcript, error) {
	tr, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	copied := *tr
	for _, msg := range m.messages {
		if msg.TranscriptID == id {
			copied.Messages = append(copied.Messages, *msg)
		}
	}
	return &copied, nil
}

func (m *mockTranscriptStore) AppendMessage(ctx context.Context, msg *domain.Message) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.messages[msg.ID] = msg
	return nil
}

func (m *mockTranscriptStore) GetMessage(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	msg, ok := m.messages[id]
	if !ok {
		return nil, store.ErrMessageNotFound
	}
	return msg, nil
}

func (m *mockTranscriptStore) WithTx(tx *sql.Tx) store.TranscriptStore {
	return m
}

// mockVocabStore implements store.VocabStore for testing
type mockVocabStore struct {
	entries []*domain.Vocab
	listErr error
}

var _ store.VocabStore = (*mockVocabStore)(nil)

func (m *mockVocabStore) Create(ctx context.Context, v *domain.Vocab) error {
	m.entries = append(m.entries, v)
	return nil
}

func (m *mockVocabStore) UpdateAnnotations(ctx context.Context, v *domain.Vocab) error {
	return nil
}

func (m *mockVocabStore) ListByMessage(ctx context.Context, messageID uuid.UUID) ([]*domain.Vocab, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.entries, nil
}

func (m *mockVocabStore) ListByTranscript(ctx context.Context, transcriptID uuid.UUID) ([]*domain.Vocab, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.entries, nil
}

func (m *mockVocabStore) WithTx(tx *sql.Tx) store.VocabStore {
	return m
}

// mockInsights implements ConversationInsights for testing
type mockInsights struct {
	summary      string
	summarizeErr error
	topics       []string
	topicsErr    error
	gotLang      domain.Language
	gotMsgCount  int
}

func (m *mockInsights) Summarize(
	ctx context.Context,
	msgs []domain.Message,
	nwords int,
	lang domain.Language,
) (string, error) {
	m.gotLang = lang
	m.gotMsgCount = len(msgs)
	return m.summary, m.summarizeErr
}

func (m *mockInsights) ExtractTopics(
	ctx context.Context,
	msgs []domain.Message,
	maxTopics int,
) ([]string, error) {
	return m.topics, m.topicsErr
}

// mockEnqueuer implements TaskEnqueuer for testing
type mockEnqueuer struct {
	enqueued []task.Task
	err      error
}

func (m *mockEnqueuer) Enqueue(t task.Task) error {
	if m.err != nil {
		return m.err
	}
	m.enqueued = append(m.enqueued, t)
	return nil
}

// mockFactory implements ExtractionTaskFactory for testing
type mockFactory struct {
	err error
}

func (m *mockFactory) CreateTask(messageID uuid.UUID) (task.Task, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &stubTask{id: uuid.New()}, nil
}

// stubTask is a minimal Task for factory output
type stubTask struct {
	id uuid.UUID
}

func (t *stubTask) ID() uuid.UUID                     { return t.id }
func (t *stubTask) Type() string                      { return task.TaskTypeVocabExtraction }
func (t *stubTask) Payload() []byte                   { return nil }
func (t *stubTask) Status() task.TaskStatus           { return task.TaskStatusPending }
func (t *stubTask) Execute(ctx context.Context) error { return nil }
