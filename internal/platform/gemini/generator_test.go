package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/lingokit/lingo-api/internal/domain"
	"github.com/lingokit/lingo-api/internal/generation"
)

func TestExtractText(t *testing.T) {
	t.Parallel()
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{{Text: `{"Hola": `}, {Text: `"a greeting"}`}},
			},
		}},
	}

	text, err := extractText(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"Hola": "a greeting"}`, text)
}

func TestExtractTextNoCandidates(t *testing.T) {
	t.Parallel()
	_, err := extractText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, generation.ErrMalformedResponse)

	_, err = extractText(nil)
	assert.ErrorIs(t, err, generation.ErrMalformedResponse)
}

func TestExtractTextBlocked(t *testing.T) {
	t.Parallel()
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			FinishReason: genai.FinishReasonSafety,
		}},
	}
	_, err := extractText(resp)
	assert.ErrorIs(t, err, generation.ErrContentBlocked)
}

func TestExtractTextEmptyContent(t *testing.T) {
	t.Parallel()
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	}
	_, err := extractText(resp)
	assert.ErrorIs(t, err, generation.ErrMalformedResponse)
}

func TestRenderConversation(t *testing.T) {
	t.Parallel()
	msgs := []domain.Message{
		{Speaker: domain.SpeakerAst, Body: "¿De dónde eres?"},
		{Speaker: domain.SpeakerUsr, Body: "Hola, soy de Mexico"},
	}
	got := renderConversation(msgs)
	assert.Equal(t, "assistant: ¿De dónde eres?\nuser: Hola, soy de Mexico", got)
}
