package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Vocab-specific validation errors
var (
	ErrVocabIDEmpty        = errors.New("vocab ID cannot be empty")
	ErrVocabMessageIDEmpty = errors.New("vocab message ID cannot be empty")
	ErrVocabTermEmpty      = errors.New("vocab term cannot be empty")
	ErrVocabLanguageEmpty  = errors.New("vocab language cannot be empty")
)

// Vocab is a single vocabulary term observed in a learner utterance,
// annotated by the language model. Only Term and BCP47 are known at
// creation; the remaining fields are filled in as extraction progresses.
type Vocab struct {
	ID        uuid.UUID `json:"id"`
	MessageID uuid.UUID `json:"message_id"`
	Term      string    `json:"term"`
	BCP47     string    `json:"bcp47"`

	// Annotations produced by extraction. Empty until populated.
	PartOfSpeech string `json:"part_of_speech,omitempty"`
	Definition   string `json:"definition,omitempty"`
	Root         string `json:"root,omitempty"`        // verbs only
	Conjugation  string `json:"conjugation,omitempty"` // verbs only
	Detail       string `json:"detail,omitempty"`      // long-form explanation

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewVocab creates a new Vocab for a term found in the given message.
// Returns an error if validation fails.
func NewVocab(messageID uuid.UUID, term, bcp47 string) (*Vocab, error) {
	v := &Vocab{
		ID:        uuid.New(),
		MessageID: messageID,
		Term:      term,
		BCP47:     bcp47,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}

	return v, nil
}

// Validate checks if the Vocab has valid data.
func (v *Vocab) Validate() error {
	if v.ID == uuid.Nil {
		return ErrVocabIDEmpty
	}
	if v.MessageID == uuid.Nil {
		return ErrVocabMessageIDEmpty
	}
	if v.Term == "" {
		return ErrVocabTermEmpty
	}
	if v.BCP47 == "" {
		return ErrVocabLanguageEmpty
	}
	return nil
}

// IsVerb reports whether the term was tagged as a verb. Root and
// conjugation extraction only apply to verbs.
func (v *Vocab) IsVerb() bool {
	return v.PartOfSpeech == "verb"
}
