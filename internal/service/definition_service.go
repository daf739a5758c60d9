package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lingokit/lingo-api/internal/domain"
	"github.com/lingokit/lingo-api/internal/generation"
)

// DefinitionService produces on-demand term definitions for an utterance.
// Unlike background extraction, this is synchronous: the caller waits for
// the model.
type DefinitionService interface {
	// DefineTerms returns a definition for each term of the utterance,
	// written in the language identified by bcp47. The returned map's key
	// set equals terms exactly.
	DefineTerms(ctx context.Context, msg string, terms []string, bcp47 string) (map[string]string, error)
}

type definitionServiceImpl struct {
	definer generation.Definer
	logger  *slog.Logger
}

// NewDefinitionService creates a new DefinitionService.
func NewDefinitionService(definer generation.Definer, logger *slog.Logger) (DefinitionService, error) {
	if definer == nil {
		return nil, fmt.Errorf("definer cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &definitionServiceImpl{
		definer: definer,
		logger:  logger.With("component", "definition_service"),
	}, nil
}

// DefineTerms parses the language tag and delegates to the definer.
func (s *definitionServiceImpl) DefineTerms(
	ctx context.Context,
	msg string,
	terms []string,
	bcp47 string,
) (map[string]string, error) {
	lang, err := domain.ParseLanguage(bcp47)
	if err != nil {
		s.logger.Warn("rejected definition request with invalid language",
			"error", err,
			"bcp47", bcp47)
		return nil, err
	}

	defs, err := s.definer.DefineTerms(ctx, msg, terms, lang)
	if err != nil {
		s.logger.Error("failed to define terms",
			"error", err,
			"bcp47", bcp47,
			"term_count", len(terms))
		return nil, err
	}

	return defs, nil
}
