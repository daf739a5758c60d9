package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingokit/lingo-api/internal/domain"
	"github.com/lingokit/lingo-api/internal/generation"
)

func newTestService(t *testing.T) (TranscriptService, *mockTranscriptStore, *mockVocabStore, *mockEnqueuer) {
	svc, transcripts, vocab, enqueuer, _ := newTestServiceWithInsights(t)
	return svc, transcripts, vocab, enqueuer
}

func newTestServiceWithInsights(t *testing.T) (TranscriptService, *mockTranscriptStore, *mockVocabStore, *mockEnqueuer, *mockInsights) {
	t.Helper()

	transcripts := newMockTranscriptStore()
	vocab := &mockVocabStore{}
	enqueuer := &mockEnqueuer{}
	insights := &mockInsights{}

	svc, err := NewTranscriptService(transcripts, vocab, &mockFactory{}, enqueuer, insights, testLogger())
	require.NoError(t, err)

	return svc, transcripts, vocab, enqueuer, insights
}

func TestNewTranscriptServiceValidation(t *testing.T) {
	t.Parallel()

	transcripts := newMockTranscriptStore()
	vocab := &mockVocabStore{}
	factory := &mockFactory{}
	enqueuer := &mockEnqueuer{}
	insights := &mockInsights{}

	_, err := NewTranscriptService(nil, vocab, factory, enqueuer, insights, testLogger())
	assert.Error(t, err)

	_, err = NewTranscriptService(transcripts, nil, factory, enqueuer, insights, testLogger())
	assert.Error(t, err)

	_, err = NewTranscriptService(transcripts, vocab, nil, enqueuer, insights, testLogger())
	assert.Error(t, err)

	_, err = NewTranscriptService(transcripts, vocab, factory, nil, insights, testLogger())
	assert.Error(t, err)

	_, err = NewTranscriptService(transcripts, vocab, factory, enqueuer, nil, testLogger())
	assert.Error(t, err)

	_, err = NewTranscriptService(transcripts, vocab, factory, enqueuer, insights, nil)
	assert.NoError(t, err)
}

func TestCreateTranscript(t *testing.T) {
	t.Parallel()

	svc, transcripts, _, _ := newTestService(t)
	userID := uuid.New()

	tr, err := svc.CreateTranscript(context.Background(), userID, "es-MX")
	require.NoError(t, err)
	assert.Equal(t, userID, tr.UserID)
	assert.Equal(t, "es-MX", tr.BCP47)
	assert.Contains(t, transcripts.transcripts, tr.ID)
}

func TestCreateTranscriptInvalidLanguage(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(t)

	_, err := svc.CreateTranscript(context.Background(), uuid.New(), "not a tag")
	assert.ErrorIs(t, err, domain.ErrInvalidLanguage)
}

func TestAppendLearnerMessageEnqueuesExtraction(t *testing.T) {
	t.Parallel()

	svc, _, _, enqueuer := newTestService(t)
	userID := uuid.New()

	tr, err := svc.CreateTranscript(context.Background(), userID, "es")
	require.NoError(t, err)

	msg, err := svc.AppendMessage(context.Background(), userID, tr.ID, domain.SpeakerUsr, "Hola, soy de Mexico")
	require.NoError(t, err)
	assert.Equal(t, domain.SpeakerUsr, msg.Speaker)
	assert.Len(t, enqueuer.enqueued, 1)
}

func TestAppendTutorMessageSkipsExtraction(t *testing.T) {
	t.Parallel()

	svc, _, _, enqueuer := newTestService(t)
	userID := uuid.New()

	tr, err := svc.CreateTranscript(context.Background(), userID, "es")
	require.NoError(t, err)

	_, err = svc.AppendMessage(context.Background(), userID, tr.ID, domain.SpeakerAst, "Mucho gusto")
	require.NoError(t, err)
	assert.Empty(t, enqueuer.enqueued)
}

func TestAppendMessageFullQueueStillSaves(t *testing.T) {
	t.Parallel()

	svc, transcripts, _, enqueuer := newTestService(t)
	enqueuer.err = errors.New("queue full")
	userID := uuid.New()

	tr, err := svc.CreateTranscript(context.Background(), userID, "es")
	require.NoError(t, err)

	msg, err := svc.AppendMessage(context.Background(), userID, tr.ID, domain.SpeakerUsr, "Hola")
	require.NoError(t, err)
	assert.Contains(t, transcripts.messages, msg.ID)
}

func TestAppendMessageWrongOwner(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(t)

	tr, err := svc.CreateTranscript(context.Background(), uuid.New(), "es")
	require.NoError(t, err)

	_, err = svc.AppendMessage(context.Background(), uuid.New(), tr.ID, domain.SpeakerUsr, "Hola")
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestAppendMessageUnknownTranscript(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(t)

	_, err := svc.AppendMessage(context.Background(), uuid.New(), uuid.New(), domain.SpeakerUsr, "Hola")
	assert.ErrorIs(t, err, ErrTranscriptNotFound)
}

func TestGetTranscriptWithMessages(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(t)
	userID := uuid.New()

	tr, err := svc.CreateTranscript(context.Background(), userID, "es")
	require.NoError(t, err)

	_, err = svc.AppendMessage(context.Background(), userID, tr.ID, domain.SpeakerUsr, "Hola")
	require.NoError(t, err)

	got, err := svc.GetTranscript(context.Background(), userID, tr.ID)
	require.NoError(t, err)
	assert.Len(t, got.Messages, 1)

	_, err = svc.GetTranscript(context.Background(), uuid.New(), tr.ID)
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestSummarizeTranscript(t *testing.T) {
	t.Parallel()

	svc, _, _, _, insights := newTestServiceWithInsights(t)
	insights.summary = "El estudiante se presento y hablo de su origen."
	insights.topics = []string{"greetings", "origins"}
	userID := uuid.New()

	tr, err := svc.CreateTranscript(context.Background(), userID, "es-MX")
	require.NoError(t, err)

	_, err = svc.AppendMessage(context.Background(), userID, tr.ID, domain.SpeakerUsr, "Hola, soy de Mexico")
	require.NoError(t, err)

	summary, err := svc.Summarize(context.Background(), userID, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, "El estudiante se presento y hablo de su origen.", summary.Summary)
	assert.Equal(t, []string{"greetings", "origins"}, summary.Topics)
	assert.Equal(t, "es-MX", insights.gotLang.BCP47())
	assert.Equal(t, 1, insights.gotMsgCount)
}

func TestSummarizeTranscriptAccessChecks(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(t)
	userID := uuid.New()

	tr, err := svc.CreateTranscript(context.Background(), userID, "es")
	require.NoError(t, err)

	_, err = svc.Summarize(context.Background(), uuid.New(), tr.ID)
	assert.ErrorIs(t, err, ErrNotOwned)

	_, err = svc.Summarize(context.Background(), userID, uuid.New())
	assert.ErrorIs(t, err, ErrTranscriptNotFound)
}

func TestSummarizeTranscriptModelFailure(t *testing.T) {
	t.Parallel()

	svc, _, _, _, insights := newTestServiceWithInsights(t)
	insights.summarizeErr = generation.ErrTransientFailure
	userID := uuid.New()

	tr, err := svc.CreateTranscript(context.Background(), userID, "es")
	require.NoError(t, err)

	_, err = svc.Summarize(context.Background(), userID, tr.ID)
	assert.ErrorIs(t, err, generation.ErrTransientFailure)
}

func TestListVocab(t *testing.T) {
	t.Parallel()

	svc, _, vocab, _ := newTestService(t)
	userID := uuid.New()

	tr, err := svc.CreateTranscript(context.Background(), userID, "es")
	require.NoError(t, err)

	v, err := domain.NewVocab(uuid.New(), "Hola", "es")
	require.NoError(t, err)
	vocab.entries = append(vocab.entries, v)

	entries, err := svc.ListVocab(context.Background(), userID, tr.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = svc.ListVocab(context.Background(), uuid.New(), tr.ID)
	assert.ErrorIs(t, err, ErrNotOwned)

	_, err = svc.ListVocab(context.Background(), userID, uuid.New())
	assert.ErrorIs(t, err, ErrTranscriptNotFound)
}
