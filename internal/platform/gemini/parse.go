package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lingokit/lingo-api/internal/generation"
)

// parseTaggedTerms decodes the tag_pos reply: a JSON array of
// {"term", "part_of_speech"} objects in order of appearance.
func parseTaggedTerms(raw string) ([]generation.TaggedTerm, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty reply", generation.ErrMalformedResponse)
	}

	var terms []generation.TaggedTerm
	if err := json.Unmarshal([]byte(raw), &terms); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrMalformedResponse, err)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: no terms in reply", generation.ErrMalformedResponse)
	}
	for i, term := range terms {
		if term.Term == "" || term.PartOfSpeech == "" {
			return nil, fmt.Errorf("%w: incomplete term at index %d", generation.ErrMalformedResponse, i)
		}
	}
	return terms, nil
}

// parseVerbInfo decodes the analyze_verbs reply: a JSON object keyed by
// verb, each value carrying "root" and "conjugation". The key set must
// equal verbs exactly.
func parseVerbInfo(raw string, verbs []string) (map[string]generation.VerbInfo, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty reply", generation.ErrMalformedResponse)
	}

	var info map[string]generation.VerbInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrMalformedResponse, err)
	}

	if len(info) != len(verbs) {
		return nil, fmt.Errorf("%w: got %d entries for %d verbs",
			generation.ErrKeySetMismatch, len(info), len(verbs))
	}
	for _, verb := range verbs {
		entry, ok := info[verb]
		if !ok {
			return nil, fmt.Errorf("%w: missing verb %q", generation.ErrKeySetMismatch, verb)
		}
		if entry.Root == "" || entry.Conjugation == "" {
			return nil, fmt.Errorf("%w: incomplete analysis for %q",
				generation.ErrMalformedResponse, verb)
		}
	}
	return info, nil
}

// parseTopics decodes the extract_topics reply: a JSON array of strings.
// Replies longer than maxTopics are truncated rather than rejected; the
// cap is advisory for the model.
func parseTopics(raw string, maxTopics int) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty reply", generation.ErrMalformedResponse)
	}

	var topics []string
	if err := json.Unmarshal([]byte(raw), &topics); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrMalformedResponse, err)
	}
	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	return topics, nil
}
