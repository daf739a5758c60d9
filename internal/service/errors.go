// Package service provides application-level services for managing
// transcripts, vocabulary, and term definitions.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the
	// one making the request. API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrTranscriptNotFound indicates that the transcript does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrTranscriptNotFound = errors.New("transcript not found")
)
