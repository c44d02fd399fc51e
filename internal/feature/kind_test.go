package feature

import (
	"errors"
	"testing"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/llm"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/quiz"
)

func TestKindsRoundTrip(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 10 {
		t.Fatalf("got %d kinds, want 10", len(kinds))
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		if seen[k.Slug()] {
			t.Errorf("duplicate slug %q", k.Slug())
		}
		seen[k.Slug()] = true

		got, err := ParseKind(k.Slug())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k.Slug(), err)
		}
		if got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.Slug(), got, k)
		}
	}
}

func TestKindTitles(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindHome, "Home"},
		{KindPDFQA, "PDF Q&A System"},
		{KindStudyPlan, "Study Plan Generator"},
		{KindTopicSummary, "Topic Summary Generator"},
		{Kind(42), "kind(42)"},
	}
	for _, tt := range tests {
		if got := tt.kind.Title(); got != tt.want {
			t.Errorf("Title() = %q, want %q", got, tt.want)
		}
	}
}

func TestParseKindUnknown(t *testing.T) {
	if _, err := ParseKind("flashcards"); err == nil {
		t.Error("expected error for unknown slug")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		err  error
		want string
	}{
		{"nil", KindMCQ, nil, ""},
		{"validation", KindResearch, &ValidationError{Field: "query", Message: "Please enter a research question."}, "Please enter a research question."},
		{"extraction", KindPDFQA, &ExtractionError{Source: "pdf", Message: "Could not extract text from PDF.", Err: errors.New("eof")}, "Could not extract text from PDF."},
		{"unavailable", KindTopicSummary, &llm.UnavailableError{Cause: errors.New("no key")}, UnavailableMessage},
		{"pdf failure", KindPDFQA, &llm.ProviderFailure{Message: "503"}, "Error generating Q&A from PDF: 503"},
		{"no prefix", KindHome, &llm.ProviderFailure{Message: "odd"}, "Error: odd"},
		{"stale", KindInteractiveQuiz, quiz.ErrStaleAnswer, "That answer was already submitted."},
		{"other", KindMCQ, errors.New("disk on fire"), "Unexpected error: disk on fire"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.kind, tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
