package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingokit/lingo-api/internal/api/shared"
	"github.com/lingokit/lingo-api/internal/domain"
	"github.com/lingokit/lingo-api/internal/generation"
	"github.com/lingokit/lingo-api/internal/service"
)

// mockGrammarService implements service.GrammarService for testing
type mockGrammarService struct {
	explanation string
	err         error
}

var _ service.GrammarService = (*mockGrammarService)(nil)

func (m *mockGrammarService) ExplainGrammar(
	ctx context.Context,
	msg, bcp47 string,
) (string, error) {
	return m.explanation, m.err
}

func grammarRequest(t *testing.T, handler *GrammarHandler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/grammar", bytes.NewReader(data))
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, uuid.New())
	w := httptest.NewRecorder()
	handler.ExplainGrammar(w, req.WithContext(ctx))
	return w
}

func TestExplainGrammarEndpoint(t *testing.T) {
	t.Parallel()

	handler := NewGrammarHandler(&mockGrammarService{
		explanation: "La frase usa el verbo ser en presente.",
	})

	w := grammarRequest(t, handler, GrammarRequest{Msg: "Hola, soy de Mexico", BCP47: "es-MX"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp GrammarResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "La frase usa el verbo ser en presente.", resp.Explanation)
}

func TestExplainGrammarUnauthenticated(t *testing.T) {
	t.Parallel()

	handler := NewGrammarHandler(&mockGrammarService{})

	data, err := json.Marshal(GrammarRequest{Msg: "Hola", BCP47: "es"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/grammar", bytes.NewReader(data))
	w := httptest.NewRecorder()
	handler.ExplainGrammar(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExplainGrammarValidation(t *testing.T) {
	t.Parallel()

	handler := NewGrammarHandler(&mockGrammarService{})

	tests := []struct {
		name string
		req  GrammarRequest
	}{
		{"missing msg", GrammarRequest{BCP47: "es"}},
		{"missing language", GrammarRequest{Msg: "Hola"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			w := grammarRequest(t, handler, tc.req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestExplainGrammarErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid language", domain.ErrInvalidLanguage, http.StatusBadRequest},
		{"empty input", generation.ErrEmptyInput, http.StatusBadRequest},
		{"content blocked", generation.ErrContentBlocked, http.StatusBadGateway},
		{"retries exhausted", generation.ErrTransientFailure, http.StatusBadGateway},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			handler := NewGrammarHandler(&mockGrammarService{err: tc.err})
			w := grammarRequest(t, handler, GrammarRequest{Msg: "Hola", BCP47: "es"})
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
