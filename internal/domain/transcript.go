package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Transcript-specific validation errors
var (
	ErrTranscriptIDEmpty       = errors.New("transcript ID cannot be empty")
	ErrTranscriptUserIDEmpty   = errors.New("transcript user ID cannot be empty")
	ErrTranscriptLanguageEmpty = errors.New("transcript language cannot be empty")
)

// Transcript is one practice session: an ordered sequence of messages
// exchanged between the learner and the tutor in a single language.
// Messages are stored separately; the slice here is populated on demand.
type Transcript struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	BCP47     string    `json:"bcp47"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []Message `json:"messages,omitempty"`
}

// NewTranscript creates a new Transcript for the given user and practice
// language. Returns an error if validation fails.
func NewTranscript(userID uuid.UUID, bcp47 string) (*Transcript, error) {
	if _, err := ParseLanguage(bcp47); err != nil {
		return nil, err
	}

	tr := &Transcript{
		ID:        uuid.New(),
		UserID:    userID,
		BCP47:     bcp47,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := tr.Validate(); err != nil {
		return nil, err
	}

	return tr, nil
}

// Validate checks if the Transcript has valid data.
func (t *Transcript) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTranscriptIDEmpty
	}
	if t.UserID == uuid.Nil {
		return ErrTranscriptUserIDEmpty
	}
	if t.BCP47 == "" {
		return ErrTranscriptLanguageEmpty
	}
	return nil
}

// Language returns the transcript's practice language.
func (t *Transcript) Language() (Language, error) {
	return ParseLanguage(t.BCP47)
}

// LearnerUtterances returns the bodies of the learner's messages in order.
// These are the utterances vocabulary extraction operates on.
func (t *Transcript) LearnerUtterances() []string {
	var out []string
	for _, msg := range t.Messages {
		if msg.Speaker == SpeakerUsr {
			out = append(out, msg.Body)
		}
	}
	return out
}
