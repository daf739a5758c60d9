package api

import (
	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email         string `json:"email"          validate:"required,email"`
	Password      string `json:"password"       validate:"required,min=12,max=72"`
	LearningBCP47 string `json:"learning_bcp47" validate:"required"`
	NativeBCP47   string `json:"native_bcp47"   validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateTranscriptRequest defines the payload for starting a practice
// transcript.
type CreateTranscriptRequest struct {
	// BCP47 is the language being practiced, e.g. "es-MX"
	BCP47 string `json:"bcp47" validate:"required"`
}

// AppendMessageRequest defines the payload for adding an utterance to a
// transcript.
type AppendMessageRequest struct {
	Speaker string `json:"speaker" validate:"required,oneof=sys usr ast"`
	Body    string `json:"body"    validate:"required"`
}

// DefineTermsRequest defines the payload for the synchronous definition
// endpoint.
type DefineTermsRequest struct {
	// Msg is the utterance the terms appear in
	Msg string `json:"msg" validate:"required"`

	// Terms are the terms to define; each must appear in Msg
	Terms []string `json:"terms" validate:"required,min=1,dive,required"`

	// BCP47 identifies the language definitions are written in
	BCP47 string `json:"bcp47" validate:"required"`
}

// DefineTermsResponse defines the successful response for the definition
// endpoint. Definitions has exactly one entry per requested term.
type DefineTermsResponse struct {
	Definitions map[string]string `json:"definitions"`
}

// GrammarRequest defines the payload for the synchronous grammar
// explanation endpoint.
type GrammarRequest struct {
	// Msg is the utterance to explain
	Msg string `json:"msg" validate:"required"`

	// BCP47 identifies the language the explanation is written in
	BCP47 string `json:"bcp47" validate:"required"`
}

// GrammarResponse defines the successful response for the grammar
// explanation endpoint.
type GrammarResponse struct {
	Explanation string `json:"explanation"`
}
