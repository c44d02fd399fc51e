package feature

import (
	"errors"
	"fmt"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/llm"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/quiz"
)

// ValidationError reports input the user must fix. No model call was made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ExtractionError reports an upload whose content could not be used.
type ExtractionError struct {
	Source  string // "pdf" or "csv"
	Message string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// UnavailableMessage is shown whenever the model is not configured.
const UnavailableMessage = "AI model not available. Please check API key configuration."

var failurePrefix = map[Kind]string{
	KindMCQ:          "Error generating MCQs: ",
	KindPDFQA:        "Error generating Q&A from PDF: ",
	KindResearch:     "Error with Research Bot: ",
	KindTopicSummary: "Error generating summary: ",
	KindStudyPlan:    "Could not generate detailed study plan: ",
	KindConceptMap:   "Could not generate subtopics: ",
}

// SuggestionUnavailableMessage replaces UnavailableMessage when only the
// subtopic suggestion needs the model.
const SuggestionUnavailableMessage = "AI model not available for subtopic suggestion."

// SuggestionWarning is the text shown when a SubtopicsRequest fails for a
// reason other than bad input. The user can still type subtopics.
func SuggestionWarning(err error) string {
	if errors.Is(err, llm.ErrModelUnavailable) {
		return SuggestionUnavailableMessage
	}
	return UserMessage(KindConceptMap, err) + ". Please enter manually."
}

// UserMessage maps an error returned by Route to the text shown to the
// user.
func UserMessage(kind Kind, err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	var ee *ExtractionError
	var pf *llm.ProviderFailure
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &ee):
		return ee.Message
	case errors.Is(err, llm.ErrModelUnavailable):
		return UnavailableMessage
	case errors.As(err, &pf):
		prefix, ok := failurePrefix[kind]
		if !ok {
			prefix = "Error: "
		}
		return prefix + pf.Message
	case errors.Is(err, quiz.ErrStaleAnswer):
		return "That answer was already submitted."
	case errors.Is(err, quiz.ErrQuizCompleted):
		return "Quiz completed!"
	case errors.Is(err, quiz.ErrQuizInProgress):
		return "Finish the quiz before restarting it."
	}
	return "Unexpected error: " + err.Error()
}
