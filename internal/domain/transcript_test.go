package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewTranscript(t *testing.T) {
	t.Parallel()
	userID := uuid.New()

	tr, err := NewTranscript(userID, "es")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if tr.UserID != userID {
		t.Errorf("Expected user ID %s, got %s", userID, tr.UserID)
	}
	if tr.BCP47 != "es" {
		t.Errorf("Expected bcp47 %q, got %q", "es", tr.BCP47)
	}

	if _, err := NewTranscript(userID, "not a tag!!"); !errors.Is(err, ErrInvalidLanguage) {
		t.Errorf("Expected ErrInvalidLanguage, got %v", err)
	}
}

func TestTranscriptLearnerUtterances(t *testing.T) {
	t.Parallel()
	tr := Transcript{
		ID:     uuid.New(),
		UserID: uuid.New(),
		BCP47:  "es",
		Messages: []Message{
			{Speaker: SpeakerSys, Body: "You are a patient Spanish tutor."},
			{Speaker: SpeakerAst, Body: "¿De dónde eres?"},
			{Speaker: SpeakerUsr, Body: "Hola, soy de Mexico"},
			{Speaker: SpeakerAst, Body: "¡Qué bien!"},
			{Speaker: SpeakerUsr, Body: "Gracias"},
		},
	}

	got := tr.LearnerUtterances()
	want := []string{"Hola, soy de Mexico", "Gracias"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d utterances, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Utterance %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
