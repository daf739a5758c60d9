package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/lingokit/lingo-api/internal/api/shared"
	"github.com/lingokit/lingo-api/internal/domain"
	"github.com/lingokit/lingo-api/internal/service"
)

// TranscriptHandler handles transcript and vocabulary API requests.
type TranscriptHandler struct {
	transcriptService service.TranscriptService
	validator         *validator.Validate
}

// NewTranscriptHandler creates a new TranscriptHandler with the given
// dependencies.
func NewTranscriptHandler(transcriptService service.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{
		transcriptService: transcriptService,
		validator:         validator.New(),
	}
}

// CreateTranscript handles POST /transcripts.
func (h *TranscriptHandler) CreateTranscript(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateTranscriptRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	tr, err := h.transcriptService.CreateTranscript(r.Context(), userID, req.BCP47)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, tr)
}

// GetTranscript handles GET /transcripts/{id}.
func (h *TranscriptHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	userID, transcriptID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	tr, err := h.transcriptService.GetTranscript(r.Context(), userID, transcriptID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tr)
}

// AppendMessage handles POST /transcripts/{id}/messages.
func (h *TranscriptHandler) AppendMessage(w http.ResponseWriter, r *http.Request) {
	userID, transcriptID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req AppendMessageRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	msg, err := h.transcriptService.AppendMessage(
		r.Context(), userID, transcriptID, domain.Speaker(req.Speaker), req.Body)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, msg)
}

// Summarize handles GET /transcripts/{id}/summary. The summary and topic
// list are produced by the model on demand, in the transcript's language.
func (h *TranscriptHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	userID, transcriptID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	summary, err := h.transcriptService.Summarize(r.Context(), userID, transcriptID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// ListVocab handles GET /transcripts/{id}/vocab.
func (h *TranscriptHandler) ListVocab(w http.ResponseWriter, r *http.Request) {
	userID, transcriptID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	entries, err := h.transcriptService.ListVocab(r.Context(), userID, transcriptID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if entries == nil {
		entries = []*domain.Vocab{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, entries)
}
