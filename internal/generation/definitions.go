package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lingokit/lingo-api/internal/domain"
	"github.com/lingokit/lingo-api/internal/prompt"
)

// DefinitionRequest names an utterance and the terms within it to define.
// It is the JSON payload placed in the user message of the definition
// prompt. Term order is the caller's; the responder attaches no meaning
// to it.
type DefinitionRequest struct {
	Msg   string   `json:"msg"`
	Terms []string `json:"terms"`
}

// NewDefinitionRequest validates and builds a DefinitionRequest.
//
// Returns ErrEmptyInput if msg is empty or terms is empty, and
// ErrTermNotInUtterance if any term is not a substring of msg.
func NewDefinitionRequest(msg string, terms []string) (DefinitionRequest, error) {
	if msg == "" {
		return DefinitionRequest{}, fmt.Errorf("%w: utterance is empty", ErrEmptyInput)
	}
	if len(terms) == 0 {
		return DefinitionRequest{}, fmt.Errorf("%w: no terms to define", ErrEmptyInput)
	}
	for _, term := range terms {
		if term == "" {
			return DefinitionRequest{}, fmt.Errorf("%w: blank term", ErrEmptyInput)
		}
		if !strings.Contains(msg, term) {
			return DefinitionRequest{}, fmt.Errorf("%w: %q", ErrTermNotInUtterance, term)
		}
	}
	return DefinitionRequest{Msg: msg, Terms: terms}, nil
}

// BuildDefinitionPrompt renders the full instruction set for a definition
// request: the embedded template with the target language name substituted,
// followed by a user message carrying the JSON-encoded request.
//
// The function is pure: identical inputs produce byte-identical prompts.
func BuildDefinitionPrompt(msg string, terms []string, lang domain.Language) (*prompt.Prompt, error) {
	req, err := NewDefinitionRequest(msg, terms)
	if err != nil {
		return nil, err
	}

	tmpl, err := prompt.Load(prompt.TemplateDefineTerms)
	if err != nil {
		return nil, err
	}
	return buildDefinitionPrompt(tmpl, req, lang)
}

// BuildDefinitionPromptFromTemplate is BuildDefinitionPrompt with a
// caller-supplied instruction template (e.g. an operator override loaded
// from disk). The template is cloned, never mutated.
func BuildDefinitionPromptFromTemplate(tmpl *prompt.Prompt, msg string, terms []string, lang domain.Language) (*prompt.Prompt, error) {
	req, err := NewDefinitionRequest(msg, terms)
	if err != nil {
		return nil, err
	}
	return buildDefinitionPrompt(tmpl, req, lang)
}

func buildDefinitionPrompt(tmpl *prompt.Prompt, req DefinitionRequest, lang domain.Language) (*prompt.Prompt, error) {
	p := tmpl.Clone()
	if err := p.Substitute(map[string]string{"LANGNAME": lang.Name()}); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode definition request: %w", err)
	}
	p.Append(domain.SpeakerUsr, string(payload))

	return p, nil
}

// ParseDefinitionResponse validates a raw model reply against the request's
// terms. The reply must be a single JSON object whose key set equals the
// term set exactly; values are the definitions.
//
// Returns ErrMalformedResponse if raw is not a JSON string-to-string
// object, and ErrKeySetMismatch if keys and terms differ.
func ParseDefinitionResponse(raw string, terms []string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty reply", ErrMalformedResponse)
	}

	var defs map[string]string
	if err := json.Unmarshal([]byte(raw), &defs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	want := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		want[term] = struct{}{}
	}

	for key := range defs {
		if _, ok := want[key]; !ok {
			return nil, fmt.Errorf("%w: unexpected key %q", ErrKeySetMismatch, key)
		}
	}
	for term := range want {
		if _, ok := defs[term]; !ok {
			return nil, fmt.Errorf("%w: missing term %q", ErrKeySetMismatch, term)
		}
	}

	return defs, nil
}
