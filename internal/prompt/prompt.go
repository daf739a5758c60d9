package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/lingokit/lingo-api/internal/domain"
)

// Errors returned by the prompt package.
var (
	// ErrEmptyPrompt is returned when a prompt has no messages.
	ErrEmptyPrompt = errors.New("prompt has no messages")

	// ErrUnknownRole is returned when a prompt line carries an unknown role tag.
	ErrUnknownRole = errors.New("unknown prompt role")
)

// Message is a single role-tagged line of a prompt. Unlike domain.Message
// it belongs to no transcript; it exists only for the duration of one
// model call.
type Message struct {
	Speaker domain.Speaker
	Body    string
}

// Prompt is an ordered list of messages plus the model that should
// complete them.
type Prompt struct {
	Model    string
	Messages []Message
}

// Append adds a message to the end of the prompt.
func (p *Prompt) Append(speaker domain.Speaker, body string) {
	p.Messages = append(p.Messages, Message{Speaker: speaker, Body: body})
}

// Substitute executes each message body as a text/template against vars.
// Unknown placeholders are an error rather than silently rendering empty,
// since a half-substituted instruction is worse than no instruction.
func (p *Prompt) Substitute(vars map[string]string) error {
	for i, msg := range p.Messages {
		if !strings.Contains(msg.Body, "{{") {
			continue
		}
		tmpl, err := template.New("prompt").Option("missingkey=error").Parse(msg.Body)
		if err != nil {
			return fmt.Errorf("failed to parse prompt template: %w", err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, vars); err != nil {
			return fmt.Errorf("failed to substitute prompt template: %w", err)
		}
		p.Messages[i].Body = buf.String()
	}
	return nil
}

// Text flattens the prompt into a single string for APIs that take one
// text block rather than a message list. Messages are joined in order,
// separated by blank lines.
func (p *Prompt) Text() string {
	bodies := make([]string, 0, len(p.Messages))
	for _, msg := range p.Messages {
		bodies = append(bodies, msg.Body)
	}
	return strings.Join(bodies, "\n\n")
}

// Validate checks that the prompt is sendable.
func (p *Prompt) Validate() error {
	if len(p.Messages) == 0 {
		return ErrEmptyPrompt
	}
	for _, msg := range p.Messages {
		if !msg.Speaker.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownRole, msg.Speaker)
		}
		if msg.Body == "" {
			return domain.ErrEmptyContent
		}
	}
	return nil
}

// Clone returns a deep copy. Loaded templates are shared; callers mutate
// copies so that substitution on one request never leaks into another.
func (p *Prompt) Clone() *Prompt {
	out := &Prompt{Model: p.Model}
	out.Messages = append(out.Messages, p.Messages...)
	return out
}
