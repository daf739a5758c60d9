package generation

import (
	"context"

	"github.com/lingokit/lingo-api/internal/domain"
)

// TaggedTerm is one vocabulary term of an utterance with its
// part-of-speech label, in order of appearance.
type TaggedTerm struct {
	Term         string `json:"term"`
	PartOfSpeech string `json:"part_of_speech"`
}

// Definer produces per-term definitions for terms found in an utterance.
type Definer interface {
	// DefineTerms returns a definition for each term, written in lang,
	// using msg to disambiguate the sense of each term. The returned map's
	// key set equals terms exactly.
	//
	// Returns ErrEmptyInput if msg or terms is empty,
	// ErrTermNotInUtterance if a term is not a substring of msg,
	// ErrMalformedResponse or ErrKeySetMismatch on contract violations by
	// the model, and ErrTransientFailure when retries are exhausted.
	DefineTerms(ctx context.Context, msg string, terms []string, lang domain.Language) (map[string]string, error)
}

// PartOfSpeechTagger splits an utterance into vocabulary terms and labels
// each with its part of speech.
type PartOfSpeechTagger interface {
	TagTerms(ctx context.Context, msg string) ([]TaggedTerm, error)
}

// VerbInfo holds the annotations that only apply to verb terms.
type VerbInfo struct {
	// Root is the dictionary form of the verb.
	Root string `json:"root"`
	// Conjugation names the form the verb appears in within the utterance.
	Conjugation string `json:"conjugation"`
}

// VerbAnalyzer produces root and conjugation annotations for the verbs of
// an utterance.
type VerbAnalyzer interface {
	// AnalyzeVerbs returns a VerbInfo per verb, using msg to resolve the
	// form each verb appears in. The returned map's key set equals verbs
	// exactly. Returns ErrEmptyInput if msg or verbs is empty.
	AnalyzeVerbs(ctx context.Context, msg string, verbs []string, lang domain.Language) (map[string]VerbInfo, error)
}

// TermDetailer produces a long-form explanation of a single term.
type TermDetailer interface {
	// DetailTerm returns an extended prose explanation of term, written in
	// lang. Returns ErrEmptyInput if term is empty.
	DetailTerm(ctx context.Context, term string, lang domain.Language) (string, error)
}

// GrammarExplainer explains the grammatical structure of an utterance in
// the given language.
type GrammarExplainer interface {
	ExplainGrammar(ctx context.Context, msg string, lang domain.Language) (string, error)
}

// Summarizer condenses a conversation into a short natural-language
// summary of at most nwords words, written in lang.
type Summarizer interface {
	Summarize(ctx context.Context, msgs []domain.Message, nwords int, lang domain.Language) (string, error)
}

// TopicExtractor lists the topics a conversation covered.
type TopicExtractor interface {
	ExtractTopics(ctx context.Context, msgs []domain.Message, maxTopics int) ([]string, error)
}

// Generator bundles every model-backed operation the application uses.
// Implementations live under internal/platform.
type Generator interface {
	Definer
	PartOfSpeechTagger
	VerbAnalyzer
	TermDetailer
	GrammarExplainer
	Summarizer
	TopicExtractor
}
