package prompt

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lingokit/lingo-api/internal/domain"
)

//go:embed templates/*.txt
var templates embed.FS

// Built-in template names, relative to the embedded templates directory.
const (
	TemplateDefineTerms    = "define_terms.txt"
	TemplateTagPOS         = "tag_pos.txt"
	TemplateAnalyzeVerbs   = "analyze_verbs.txt"
	TemplateExplainGrammar = "explain_grammar.txt"
	TemplateSummarize      = "summarize.txt"
	TemplateExtractTopics  = "extract_topics.txt"
)

// Load parses one of the built-in embedded templates by name.
func Load(name string) (*Prompt, error) {
	f, err := templates.Open("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to open prompt template %q: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template %q: %w", name, err)
	}
	return p, nil
}

// MustLoad is Load for the built-in templates; panics on error.
// The embedded set is fixed at compile time, so a failure here is a bug.
func MustLoad(name string) *Prompt {
	p, err := Load(name)
	if err != nil {
		// ALLOW-PANIC: embedded templates are compile-time constants
		panic(err)
	}
	return p
}

// ParseFile parses a prompt file from disk. Used for operator-supplied
// template overrides.
func ParseFile(path string) (*Prompt, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open prompt file %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse reads the line-oriented prompt format. Lines starting with '#' and
// blank lines are skipped. A "model:" line selects the completion model;
// every other line must be "<role>: <text>" with role sys, usr, or ast.
func Parse(r io.Reader) (*Prompt, error) {
	p := &Prompt{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tag, rest, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("line %d: missing role tag: %q", lineNo, line)
		}
		tag = strings.TrimSpace(strings.ToLower(tag))
		rest = strings.TrimSpace(rest)

		if tag == "model" {
			p.Model = rest
			continue
		}

		speaker := domain.Speaker(tag)
		if !speaker.Valid() {
			return nil, fmt.Errorf("line %d: %w: %q", lineNo, ErrUnknownRole, tag)
		}
		if rest == "" {
			return nil, fmt.Errorf("line %d: empty message body", lineNo)
		}
		p.Append(speaker, rest)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prompt: %w", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
