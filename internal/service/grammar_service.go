package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lingokit/lingo-api/internal/domain"
	"github.com/lingokit/lingo-api/internal/generation"
)

// GrammarService explains the grammatical structure of learner utterances
// on demand. Like DefinitionService this is synchronous: the caller waits
// for the model.
type GrammarService interface {
	// ExplainGrammar returns a prose explanation of the utterance's
	// grammar, written in the language identified by bcp47.
	ExplainGrammar(ctx context.Context, msg, bcp47 string) (string, error)
}

type grammarServiceImpl struct {
	explainer generation.GrammarExplainer
	logger    *slog.Logger
}

// NewGrammarService creates a new GrammarService.
func NewGrammarService(explainer generation.GrammarExplainer, logger *slog.Logger) (GrammarService, error) {
	if explainer == nil {
		return nil, fmt.Errorf("grammar explainer cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &grammarServiceImpl{
		explainer: explainer,
		logger:    logger.With("component", "grammar_service"),
	}, nil
}

// ExplainGrammar parses the language tag and delegates to the explainer.
func (s *grammarServiceImpl) ExplainGrammar(ctx context.Context, msg, bcp47 string) (string, error) {
	lang, err := domain.ParseLanguage(bcp47)
	if err != nil {
		s.logger.Warn("rejected grammar request with invalid language",
			"error", err,
			"bcp47", bcp47)
		return "", err
	}

	explanation, err := s.explainer.ExplainGrammar(ctx, msg, lang)
	if err != nil {
		s.logger.Error("failed to explain grammar",
			"error", err,
			"bcp47", bcp47)
		return "", err
	}

	return explanation, nil
}
