package generation

import "errors"

// Common errors returned by the generation package and its implementations.
var (
	// ErrEmptyInput is returned when a request would be vacuous: empty
	// utterance, no terms, or a blank target language. Such a request must
	// not be issued at all.
	ErrEmptyInput = errors.New("empty generation input")

	// ErrTermNotInUtterance is returned when a requested term does not
	// appear in the utterance it is supposed to be defined against.
	ErrTermNotInUtterance = errors.New("term does not appear in utterance")

	// ErrMalformedResponse is returned when the model reply is not the
	// valid JSON the instructions demanded. A hard failure; callers may
	// retry with a fresh request.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrKeySetMismatch is returned when a definition response does not
	// cover exactly the requested terms: an omission or an extra key.
	ErrKeySetMismatch = errors.New("response keys do not match requested terms")

	// ErrContentBlocked is returned when the model refuses the content on
	// safety grounds. Never retried.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might
	// resolve on retry.
	ErrTransientFailure = errors.New("transient language model failure")

	// ErrInvalidConfig is returned when a generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
