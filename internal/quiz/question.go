package quiz

import (
	"errors"
	"fmt"
	"slices"
)

// OptionsPerQuestion is the number of choices every question offers.
const OptionsPerQuestion = 4

// Question is an immutable multiple-choice question.
type Question struct {
	// Text is the question prompt.
	Text string

	// Options are the choices in display order.
	Options []string

	// Correct is the right answer. It must equal one of Options exactly.
	Correct string
}

// Validate checks the question invariants.
func (q Question) Validate() error {
	if q.Text == "" {
		return errors.New("question text is empty")
	}
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("question %q has %d options, want %d", q.Text, len(q.Options), OptionsPerQuestion)
	}
	if !slices.Contains(q.Options, q.Correct) {
		return fmt.Errorf("question %q: correct answer %q is not one of its options", q.Text, q.Correct)
	}
	return nil
}

// DefaultQuestions returns the built-in question set.
func DefaultQuestions() []Question {
	return []Question{
		{
			Text:    "What is the capital of France?",
			Options: []string{"Paris", "Berlin", "Madrid", "Rome"},
			Correct: "Paris",
		},
		{
			Text:    "Who wrote 'Hamlet'?",
			Options: []string{"Shakespeare", "Hemingway", "Tolkien", "Austen"},
			Correct: "Shakespeare",
		},
	}
}
