// Package gemini implements the generation interfaces using Google's
// Gemini API. It owns the mechanics the pure contract in
// internal/generation leaves to the caller: issuing the request, retrying
// transient failures with exponential backoff, and classifying errors.
package gemini
