package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingokit/lingo-api/internal/domain"
	"github.com/lingokit/lingo-api/internal/platform/logger"
	"github.com/lingokit/lingo-api/internal/store"
)

// VocabStore implements store.VocabStore on PostgreSQL.
type VocabStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.VocabStore = (*VocabStore)(nil)

// NewVocabStore creates a PostgreSQL-backed VocabStore.
func NewVocabStore(db store.DBTX, log *slog.Logger) *VocabStore {
	if db == nil {
		// ALLOW-PANIC: constructor contract violation
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &VocabStore{
		db:     db,
		logger: log.With(slog.String("component", "vocab_store")),
	}
}

// Create implements store.VocabStore.Create.
func (s *VocabStore) Create(ctx context.Context, v *domain.Vocab) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := v.Validate(); err != nil {
		log.Warn("vocab validation failed during create",
			slog.String("error", err.Error()),
			slog.String("vocab_id", v.ID.String()))
		return err
	}

	query := `
		INSERT INTO vocab (id, message_id, term, bcp47, part_of_speech, definition, root, conjugation, detail, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		v.ID, v.MessageID, v.Term, v.BCP47,
		v.PartOfSpeech, v.Definition, v.Root, v.Conjugation, v.Detail,
		v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: message with ID %s not found",
				store.ErrInvalidEntity, v.MessageID)
		}
		log.Error("failed to create vocab entry",
			slog.String("error", err.Error()),
			slog.String("vocab_id", v.ID.String()))
		return err
	}

	return nil
}

// UpdateAnnotations implements store.VocabStore.UpdateAnnotations.
func (s *VocabStore) UpdateAnnotations(ctx context.Context, v *domain.Vocab) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	v.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE vocab
		SET part_of_speech = $1, definition = $2, root = $3, conjugation = $4, detail = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(ctx, query,
		v.PartOfSpeech, v.Definition, v.Root, v.Conjugation, v.Detail,
		v.UpdatedAt, v.ID,
	)
	if err != nil {
		log.Error("failed to update vocab annotations",
			slog.String("error", err.Error()),
			slog.String("vocab_id", v.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrVocabNotFound
	}

	return nil
}

// ListByMessage implements store.VocabStore.ListByMessage.
func (s *VocabStore) ListByMessage(ctx context.Context, messageID uuid.UUID) ([]*domain.Vocab, error) {
	query := `
		SELECT id, message_id, term, bcp47, part_of_speech, definition, root, conjugation, detail, created_at, updated_at
		FROM vocab
		WHERE message_id = $1
		ORDER BY created_at, id
	`
	return s.list(ctx, query, messageID)
}

// ListByTranscript implements store.VocabStore.ListByTranscript.
func (s *VocabStore) ListByTranscript(ctx context.Context, transcriptID uuid.UUID) ([]*domain.Vocab, error) {
	query := `
		SELECT v.id, v.message_id, v.term, v.bcp47, v.part_of_speech, v.definition, v.root, v.conjugation, v.detail, v.created_at, v.updated_at
		FROM vocab v
		JOIN messages m ON m.id = v.message_id
		WHERE m.transcript_id = $1
		ORDER BY v.created_at, v.id
	`
	return s.list(ctx, query, transcriptID)
}

func (s *VocabStore) list(ctx context.Context, query string, arg any) ([]*domain.Vocab, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		log.Error("failed to list vocab entries", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []*domain.Vocab
	for rows.Next() {
		var v domain.Vocab
		if err := rows.Scan(
			&v.ID, &v.MessageID, &v.Term, &v.BCP47,
			&v.PartOfSpeech, &v.Definition, &v.Root, &v.Conjugation, &v.Detail,
			&v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// WithTx implements store.VocabStore.WithTx.
func (s *VocabStore) WithTx(tx *sql.Tx) store.VocabStore {
	return &VocabStore{db: tx, logger: s.logger}
}
