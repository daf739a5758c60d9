package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingokit/lingo-api/internal/domain"
	"github.com/lingokit/lingo-api/internal/platform/logger"
	"github.com/lingokit/lingo-api/internal/store"
)

// TranscriptStore implements store.TranscriptStore on PostgreSQL.
type TranscriptStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.TranscriptStore = (*TranscriptStore)(nil)

// NewTranscriptStore creates a PostgreSQL-backed TranscriptStore.
func NewTranscriptStore(db store.DBTX, log *slog.Logger) *TranscriptStore {
	if db == nil {
		// ALLOW-PANIC: constructor contract violation
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &TranscriptStore{
		db:     db,
		logger: log.With(slog.String("component", "transcript_store")),
	}
}

// Create implements store.TranscriptStore.Create.
func (s *TranscriptStore) Create(ctx context.Context, tr *domain.Transcript) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tr.Validate(); err != nil {
		log.Warn("transcript validation failed during create",
			slog.String("error", err.Error()),
			slog.String("transcript_id", tr.ID.String()))
		return err
	}

	query := `
		INSERT INTO transcripts (id, user_id, bcp47, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		tr.ID, tr.UserID, tr.BCP47, tr.CreatedAt, tr.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, tr.UserID)
		}
		log.Error("failed to create transcript",
			slog.String("error", err.Error()),
			slog.String("transcript_id", tr.ID.String()))
		return err
	}

	log.Info("transcript created",
		slog.String("transcript_id", tr.ID.String()),
		slog.String("user_id", tr.UserID.String()),
		slog.String("bcp47", tr.BCP47))
	return nil
}

// GetByID implements store.TranscriptStore.GetByID.
func (s *TranscriptStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transcript, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, bcp47, created_at, updated_at
		FROM transcripts
		WHERE id = $1
	`
	var tr domain.Transcript
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&tr.ID, &tr.UserID, &tr.BCP47, &tr.CreatedAt, &tr.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTranscriptNotFound
		}
		log.Error("failed to get transcript",
			slog.String("error", err.Error()),
			slog.String("transcript_id", id.String()))
		return nil, err
	}

	return &tr, nil
}

// GetWithMessages implements store.TranscriptStore.GetWithMessages.
func (s *TranscriptStore) GetWithMessages(ctx context.Context, id uuid.UUID) (*domain.Transcript, error) {
	tr, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, transcript_id, speaker, body, translation, created_at
		FROM messages
		WHERE transcript_id = $1
		ORDER BY created_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var msg domain.Message
		var translation sql.NullString
		if err := rows.Scan(
			&msg.ID, &msg.TranscriptID, &msg.Speaker,
			&msg.Body, &translation, &msg.CreatedAt,
		); err != nil {
			return nil, err
		}
		msg.Translation = translation.String
		tr.Messages = append(tr.Messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tr, nil
}

// AppendMessage implements store.TranscriptStore.AppendMessage.
// The message insert and the transcript touch must land together, so when
// the store is bound to a connection pool the two statements run inside a
// transaction.
func (s *TranscriptStore) AppendMessage(ctx context.Context, msg *domain.Message) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := msg.Validate(); err != nil {
		log.Warn("message validation failed during append",
			slog.String("error", err.Error()),
			slog.String("message_id", msg.ID.String()))
		return err
	}

	if db, ok := s.db.(*sql.DB); ok {
		return store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
			return s.WithTx(tx).AppendMessage(ctx, msg)
		})
	}

	query := `
		INSERT INTO messages (id, transcript_id, speaker, body, translation, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
	`
	_, err := s.db.ExecContext(ctx, query,
		msg.ID, msg.TranscriptID, msg.Speaker, msg.Body, msg.Translation, msg.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: transcript with ID %s not found",
				store.ErrInvalidEntity, msg.TranscriptID)
		}
		log.Error("failed to append message",
			slog.String("error", err.Error()),
			slog.String("message_id", msg.ID.String()))
		return err
	}

	touch := `UPDATE transcripts SET updated_at = $1 WHERE id = $2`
	if _, err := s.db.ExecContext(ctx, touch, time.Now().UTC(), msg.TranscriptID); err != nil {
		log.Error("failed to touch transcript",
			slog.String("error", err.Error()),
			slog.String("transcript_id", msg.TranscriptID.String()))
		return err
	}

	return nil
}

// GetMessage implements store.TranscriptStore.GetMessage.
func (s *TranscriptStore) GetMessage(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, transcript_id, speaker, body, translation, created_at
		FROM messages
		WHERE id = $1
	`
	var msg domain.Message
	var translation sql.NullString
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&msg.ID, &msg.TranscriptID, &msg.Speaker,
		&msg.Body, &translation, &msg.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrMessageNotFound
		}
		log.Error("failed to get message",
			slog.String("error", err.Error()),
			slog.String("message_id", id.String()))
		return nil, err
	}
	msg.Translation = translation.String

	return &msg, nil
}

// WithTx implements store.TranscriptStore.WithTx.
func (s *TranscriptStore) WithTx(tx *sql.Tx) store.TranscriptStore {
	return &TranscriptStore{db: tx, logger: s.logger}
}
