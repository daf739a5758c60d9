package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lingokit/lingo-api/internal/api/shared"
	"github.com/lingokit/lingo-api/internal/service"
)

// GrammarHandler handles synchronous grammar-explanation requests.
type GrammarHandler struct {
	grammarService service.GrammarService
	validator      *validator.Validate
}

// NewGrammarHandler creates a new GrammarHandler with the given
// dependencies.
func NewGrammarHandler(grammarService service.GrammarService) *GrammarHandler {
	return &GrammarHandler{
		grammarService: grammarService,
		validator:      validator.New(),
	}
}

// ExplainGrammar handles POST /grammar. It asks the model to explain the
// grammatical structure of the utterance.
func (h *GrammarHandler) ExplainGrammar(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserIDFromContext(r); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req GrammarRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	explanation, err := h.grammarService.ExplainGrammar(r.Context(), req.Msg, req.BCP47)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, GrammarResponse{Explanation: explanation})
}
