package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/lingokit/lingo-api/internal/config"
	"github.com/lingokit/lingo-api/internal/domain"
	"github.com/lingokit/lingo-api/internal/generation"
	"github.com/lingokit/lingo-api/internal/platform/logger"
	"github.com/lingokit/lingo-api/internal/prompt"
)

// templateNames are the instruction templates the generator needs.
var templateNames = []string{
	prompt.TemplateDefineTerms,
	prompt.TemplateTagPOS,
	prompt.TemplateAnalyzeVerbs,
	prompt.TemplateExplainGrammar,
	prompt.TemplateSummarize,
	prompt.TemplateExtractTopics,
}

// Generator implements generation.Generator against the Gemini API.
type Generator struct {
	logger    *slog.Logger
	cfg       config.LLMConfig
	client    *genai.Client
	model     string
	templates map[string]*prompt.Prompt
}

// Compile-time interface check.
var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Generator from the LLM configuration. Instruction
// templates come from the embedded set unless cfg.PromptDir overrides them.
func NewGenerator(ctx context.Context, log *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	templates := make(map[string]*prompt.Prompt, len(templateNames))
	for _, name := range templateNames {
		p, err := loadTemplate(cfg.PromptDir, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", generation.ErrInvalidConfig, err)
		}
		templates[name] = p
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:    log.With(slog.String("component", "gemini_generator")),
		cfg:       cfg,
		client:    client,
		model:     cfg.ModelName,
		templates: templates,
	}, nil
}

// loadTemplate reads a named template from dir when set, falling back to
// the embedded copy.
func loadTemplate(dir, name string) (*prompt.Prompt, error) {
	if dir == "" {
		return prompt.Load(name)
	}
	return prompt.ParseFile(filepath.Join(dir, name))
}

// DefineTerms implements generation.Definer.
func (g *Generator) DefineTerms(
	ctx context.Context,
	msg string,
	terms []string,
	lang domain.Language,
) (map[string]string, error) {
	p, err := generation.BuildDefinitionPromptFromTemplate(
		g.templates[prompt.TemplateDefineTerms], msg, terms, lang)
	if err != nil {
		return nil, err
	}

	raw, err := g.generateWithRetry(ctx, p, true)
	if err != nil {
		return nil, err
	}

	defs, err := generation.ParseDefinitionResponse(raw, terms)
	if err != nil {
		log := logger.FromContextOrDefault(ctx, g.logger)
		log.Warn("definition response violated the contract",
			slog.String("error", err.Error()),
			slog.Int("term_count", len(terms)))
		return nil, err
	}
	return defs, nil
}

// TagTerms implements generation.PartOfSpeechTagger.
func (g *Generator) TagTerms(ctx context.Context, msg string) ([]generation.TaggedTerm, error) {
	if msg == "" {
		return nil, fmt.Errorf("%w: utterance is empty", generation.ErrEmptyInput)
	}

	p := g.templates[prompt.TemplateTagPOS].Clone()
	p.Append(domain.SpeakerUsr, msg)

	raw, err := g.generateWithRetry(ctx, p, true)
	if err != nil {
		return nil, err
	}

	terms, err := parseTaggedTerms(raw)
	if err != nil {
		return nil, err
	}
	return terms, nil
}

// AnalyzeVerbs implements generation.VerbAnalyzer.
func (g *Generator) AnalyzeVerbs(
	ctx context.Context,
	msg string,
	verbs []string,
	lang domain.Language,
) (map[string]generation.VerbInfo, error) {
	if msg == "" {
		return nil, fmt.Errorf("%w: utterance is empty", generation.ErrEmptyInput)
	}
	if len(verbs) == 0 {
		return nil, fmt.Errorf("%w: no verbs to analyze", generation.ErrEmptyInput)
	}

	verbList, err := json.Marshal(verbs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode verb list: %w", err)
	}

	p := g.templates[prompt.TemplateAnalyzeVerbs].Clone()
	if err := p.Substitute(map[string]string{"LANGNAME": lang.Name()}); err != nil {
		return nil, err
	}
	p.Append(domain.SpeakerUsr, msg+"\n"+string(verbList))

	raw, err := g.generateWithRetry(ctx, p, true)
	if err != nil {
		return nil, err
	}

	info, err := parseVerbInfo(raw, verbs)
	if err != nil {
		log := logger.FromContextOrDefault(ctx, g.logger)
		log.Warn("verb analysis response violated the contract",
			slog.String("error", err.Error()),
			slog.Int("verb_count", len(verbs)))
		return nil, err
	}
	return info, nil
}

// DetailTerm implements generation.TermDetailer. The prompt is built
// inline; unlike the other operations there is no instruction template to
// override.
func (g *Generator) DetailTerm(ctx context.Context, term string, lang domain.Language) (string, error) {
	if term == "" {
		return "", fmt.Errorf("%w: term is empty", generation.ErrEmptyInput)
	}

	p := &prompt.Prompt{}
	p.Append(domain.SpeakerSys, fmt.Sprintf("Define the term %q.", term))
	p.Append(domain.SpeakerSys, fmt.Sprintf("Respond in %s.", lang.Name()))

	detail, err := g.generateWithRetry(ctx, p, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(detail), nil
}

// ExplainGrammar implements generation.GrammarExplainer.
func (g *Generator) ExplainGrammar(ctx context.Context, msg string, lang domain.Language) (string, error) {
	if msg == "" {
		return "", fmt.Errorf("%w: utterance is empty", generation.ErrEmptyInput)
	}

	p := g.templates[prompt.TemplateExplainGrammar].Clone()
	if err := p.Substitute(map[string]string{"LANGNAME": lang.Name()}); err != nil {
		return "", err
	}
	p.Append(domain.SpeakerUsr, msg)

	return g.generateWithRetry(ctx, p, false)
}

// Summarize implements generation.Summarizer.
func (g *Generator) Summarize(
	ctx context.Context,
	msgs []domain.Message,
	nwords int,
	lang domain.Language,
) (string, error) {
	if len(msgs) == 0 {
		return "", fmt.Errorf("%w: no messages to summarize", generation.ErrEmptyInput)
	}
	if nwords <= 0 {
		nwords = 5
	}

	p := g.templates[prompt.TemplateSummarize].Clone()
	if err := p.Substitute(map[string]string{
		"NWORDS":   fmt.Sprintf("%d", nwords),
		"LANGNAME": lang.Name(),
	}); err != nil {
		return "", err
	}
	p.Append(domain.SpeakerUsr, renderConversation(msgs))

	summary, err := g.generateWithRetry(ctx, p, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}

// ExtractTopics implements generation.TopicExtractor.
func (g *Generator) ExtractTopics(ctx context.Context, msgs []domain.Message, maxTopics int) ([]string, error) {
	if len(msgs) == 0 {
		return nil, fmt.Errorf("%w: no messages", generation.ErrEmptyInput)
	}
	if maxTopics <= 0 {
		maxTopics = 5
	}

	p := g.templates[prompt.TemplateExtractTopics].Clone()
	if err := p.Substitute(map[string]string{
		"MAXTOPICS": fmt.Sprintf("%d", maxTopics),
	}); err != nil {
		return nil, err
	}
	p.Append(domain.SpeakerUsr, renderConversation(msgs))

	raw, err := g.generateWithRetry(ctx, p, true)
	if err != nil {
		return nil, err
	}
	return parseTopics(raw, maxTopics)
}

// generateWithRetry sends the prompt, retrying transient failures with
// exponential backoff and jitter. Contract violations (blocked content,
// empty candidates) are permanent and returned immediately.
func (g *Generator) generateWithRetry(ctx context.Context, p *prompt.Prompt, jsonReply bool) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}

	log := logger.FromContextOrDefault(ctx, g.logger)

	maxRetries := g.cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 3
	}
	baseDelay := g.cfg.RetryDelaySeconds
	if baseDelay < 1 {
		baseDelay = 2
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		text, err := g.generate(ctx, p, jsonReply)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if errors.Is(err, generation.ErrContentBlocked) ||
			errors.Is(err, generation.ErrMalformedResponse) {
			return "", err
		}

		if attempt == maxRetries {
			break
		}

		// delay = baseDelay * 2^attempt * jitter, jitter in [0.5, 1.0)
		backoff := float64(baseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5) * float64(time.Second))

		log.Warn("Gemini call failed, retrying",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", maxRetries+1),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}

	return "", fmt.Errorf("%w: exceeded %d attempts: %v",
		generation.ErrTransientFailure, maxRetries+1, lastErr)
}

// generate performs a single Gemini call and extracts the reply text.
func (g *Generator) generate(ctx context.Context, p *prompt.Prompt, jsonReply bool) (string, error) {
	model := g.model
	if model == "" {
		model = p.Model
	}

	genCfg := &genai.GenerateContentConfig{}
	if jsonReply {
		genCfg.ResponseMIMEType = "application/json"
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(p.Text()), genCfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}
	return extractText(resp)
}

// extractText pulls the reply text out of a response, classifying the
// ways a response can be unusable.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", generation.ErrMalformedResponse)
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidate content", generation.ErrMalformedResponse)
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: no text parts in response", generation.ErrMalformedResponse)
	}
	return sb.String(), nil
}

// renderConversation flattens messages into "role: body" lines for
// templates that take a whole conversation as input.
func renderConversation(msgs []domain.Message) string {
	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		lines = append(lines, msg.Speaker.ProviderRole()+": "+msg.Body)
	}
	return strings.Join(lines, "\n")
}
