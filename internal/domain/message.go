package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Speaker identifies who produced a message in a practice session.
type Speaker string

// Possible speaker values. The short forms are what we persist; the
// provider role names are what LLM APIs expect.
const (
	SpeakerSys Speaker = "sys" // instruction text, never shown to the user
	SpeakerUsr Speaker = "usr" // the learner
	SpeakerAst Speaker = "ast" // the tutor (model)
)

// providerRoles maps speakers to the role names used by chat-completion
// style APIs.
var providerRoles = map[Speaker]string{
	SpeakerSys: "system",
	SpeakerUsr: "user",
	SpeakerAst: "assistant",
}

// Message-specific validation errors
var (
	ErrMessageIDEmpty           = errors.New("message ID cannot be empty")
	ErrMessageTranscriptIDEmpty = errors.New("message transcript ID cannot be empty")
	ErrMessageBodyEmpty         = errors.New("message body cannot be empty")
	ErrMessageSpeakerInvalid    = errors.New("invalid message speaker")
)

// Message is a single utterance in a transcript.
type Message struct {
	ID           uuid.UUID `json:"id"`
	TranscriptID uuid.UUID `json:"transcript_id"`
	Speaker      Speaker   `json:"speaker"`
	Body         string    `json:"body"`
	Translation  string    `json:"translation,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewMessage creates a new Message in the given transcript.
// Returns an error if validation fails.
func NewMessage(transcriptID uuid.UUID, speaker Speaker, body string) (*Message, error) {
	msg := &Message{
		ID:           uuid.New(),
		TranscriptID: transcriptID,
		Speaker:      speaker,
		Body:         body,
		CreatedAt:    time.Now().UTC(),
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}

	return msg, nil
}

// Validate checks if the Message has valid data.
func (m *Message) Validate() error {
	if m.ID == uuid.Nil {
		return ErrMessageIDEmpty
	}
	if m.TranscriptID == uuid.Nil {
		return ErrMessageTranscriptIDEmpty
	}
	if !m.Speaker.Valid() {
		return ErrMessageSpeakerInvalid
	}
	if m.Body == "" {
		return ErrMessageBodyEmpty
	}
	return nil
}

// Valid reports whether s is a known speaker.
func (s Speaker) Valid() bool {
	_, ok := providerRoles[s]
	return ok
}

// ProviderRole returns the chat-API role name for the speaker,
// e.g. "assistant" for SpeakerAst. Unknown speakers map to "user".
func (s Speaker) ProviderRole() string {
	if role, ok := providerRoles[s]; ok {
		return role
	}
	return "user"
}

// SpeakerFromProviderRole converts a chat-API role name back to a Speaker.
func SpeakerFromProviderRole(role string) (Speaker, error) {
	for s, r := range providerRoles {
		if r == role {
			return s, nil
		}
	}
	return "", ErrMessageSpeakerInvalid
}
