package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lingokit/lingo-api/internal/api/shared"
	"github.com/lingokit/lingo-api/internal/service"
)

// DefinitionHandler handles synchronous term-definition requests.
type DefinitionHandler struct {
	definitionService service.DefinitionService
	validator         *validator.Validate
}

// NewDefinitionHandler creates a new DefinitionHandler with the given
// dependencies.
func NewDefinitionHandler(definitionService service.DefinitionService) *DefinitionHandler {
	return &DefinitionHandler{
		definitionService: definitionService,
		validator:         validator.New(),
	}
}

// DefineTerms handles POST /definitions. It asks the model for a
// definition of each term as used in the message and returns the mapping.
func (h *DefinitionHandler) DefineTerms(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserIDFromContext(r); !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req DefineTermsRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	defs, err := h.definitionService.DefineTerms(r.Context(), req.Msg, req.Terms, req.BCP47)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DefineTermsResponse{Definitions: defs})
}
