package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lingokit/lingo-api/internal/api"
	"github.com/lingokit/lingo-api/internal/api/middleware"
)

// setupRouter builds the HTTP routing tree: public auth endpoints and
// a token-protected group for transcripts and definitions.
func (app *application) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	transcriptHandler := api.NewTranscriptHandler(app.transcriptService)
	definitionHandler := api.NewDefinitionHandler(app.definitionService)
	grammarHandler := api.NewGrammarHandler(app.grammarService)
	authMiddleware := middleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/transcripts", transcriptHandler.CreateTranscript)
			r.Get("/transcripts/{id}", transcriptHandler.GetTranscript)
			r.Post("/transcripts/{id}/messages", transcriptHandler.AppendMessage)
			r.Get("/transcripts/{id}/vocab", transcriptHandler.ListVocab)
			r.Get("/transcripts/{id}/summary", transcriptHandler.Summarize)

			r.Post("/definitions", definitionHandler.DefineTerms)
			r.Post("/grammar", grammarHandler.ExplainGrammar)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
