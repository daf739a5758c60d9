package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()
	for _, err := range []error{
		ErrNotFound,
		ErrUserNotFound,
		ErrTranscriptNotFound,
		ErrMessageNotFound,
		ErrVocabNotFound,
		fmt.Errorf("lookup failed: %w", ErrUserNotFound),
	} {
		if !IsNotFoundError(err) {
			t.Errorf("Expected IsNotFoundError(%v) to be true", err)
		}
	}

	if IsNotFoundError(ErrDuplicate) {
		t.Error("Expected IsNotFoundError(ErrDuplicate) to be false")
	}
	if IsNotFoundError(errors.New("boom")) {
		t.Error("Expected IsNotFoundError(plain error) to be false")
	}
}

func TestIsDuplicateError(t *testing.T) {
	t.Parallel()
	if !IsDuplicateError(ErrEmailExists) {
		t.Error("Expected IsDuplicateError(ErrEmailExists) to be true")
	}
	if IsDuplicateError(ErrNotFound) {
		t.Error("Expected IsDuplicateError(ErrNotFound) to be false")
	}
}
