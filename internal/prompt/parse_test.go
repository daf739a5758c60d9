package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/lingokit/lingo-api/internal/domain"
)

func TestParse(t *testing.T) {
	t.Parallel()
	in := `
# tutor bootstrap prompt
model: gemini-2.0-flash
sys: You are a patient tutor.
sys: Keep replies short.
usr: Hola: ¿cómo estás?
`
	p, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: unexpected error %v", err)
	}

	if p.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q, want %q", p.Model, "gemini-2.0-flash")
	}
	if len(p.Messages) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(p.Messages))
	}
	if p.Messages[0].Speaker != domain.SpeakerSys {
		t.Errorf("Message 0 speaker = %q, want sys", p.Messages[0].Speaker)
	}
	// A colon inside the body must survive parsing.
	if p.Messages[2].Body != "Hola: ¿cómo estás?" {
		t.Errorf("Message 2 body = %q", p.Messages[2].Body)
	}
}

func TestParseRejectsUnknownRole(t *testing.T) {
	t.Parallel()
	_, err := Parse(strings.NewReader("bot: hi there"))
	if !errors.Is(err, ErrUnknownRole) {
		t.Errorf("Expected ErrUnknownRole, got %v", err)
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	t.Parallel()
	_, err := Parse(strings.NewReader("# nothing but comments\n\n"))
	if !errors.Is(err, ErrEmptyPrompt) {
		t.Errorf("Expected ErrEmptyPrompt, got %v", err)
	}
}

func TestLoadBuiltinTemplates(t *testing.T) {
	t.Parallel()
	names := []string{
		TemplateDefineTerms,
		TemplateTagPOS,
		TemplateExplainGrammar,
		TemplateSummarize,
		TemplateExtractTopics,
	}
	for _, name := range names {
		p, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): unexpected error %v", name, err)
		}
		if len(p.Messages) == 0 {
			t.Errorf("Load(%q): expected messages", name)
		}
		if p.Model == "" {
			t.Errorf("Load(%q): expected a model line", name)
		}
	}
}
