package feature

import (
	"time"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/quiz"
)

// Request is one user interaction. The concrete types below are the only
// implementations.
type Request interface {
	Kind() Kind
	isRequest()
}

// Input bounds shared by every front-end.
const (
	MinMCQCount     = 1
	MaxMCQCount     = 10
	DefaultMCQCount = 5
)

type HomeRequest struct{}

type MCQRequest struct {
	Text    string
	Count   int
	Subject string
}

type PDFQARequest struct {
	Document []byte
}

// CSVRequest visualizes an uploaded table. A nil Columns selects every
// numeric column; a non-nil empty slice means the user cleared the
// selection.
type CSVRequest struct {
	Data    []byte
	Columns []string
}

type ResearchRequest struct {
	Query string
}

type QAEvaluatorRequest struct {
	Filename string
	Data     []byte
}

type StudyPlanRequest struct {
	Name     string
	Hours    int
	Subjects []string
	Deadline time.Time
}

// QuizRequest shows the current state of a quiz session.
type QuizRequest struct {
	Session *quiz.Session
}

// QuizAnswerRequest answers question Index, the one the user was shown.
type QuizAnswerRequest struct {
	Session  *quiz.Session
	Index    int
	Selected string
}

type QuizRestartRequest struct {
	Session *quiz.Session
}

// SubtopicsRequest asks the model to suggest subtopics for a concept map.
type SubtopicsRequest struct {
	Topic string
}

// ConceptMapRequest takes the raw comma-separated subtopics field.
type ConceptMapRequest struct {
	Topic     string
	Subtopics string
}

type SummaryRequest struct {
	Text string
}

func (HomeRequest) Kind() Kind        { return KindHome }
func (MCQRequest) Kind() Kind         { return KindMCQ }
func (PDFQARequest) Kind() Kind       { return KindPDFQA }
func (CSVRequest) Kind() Kind         { return KindCSVVisualization }
func (ResearchRequest) Kind() Kind    { return KindResearch }
func (QAEvaluatorRequest) Kind() Kind { return KindQAEvaluator }
func (StudyPlanRequest) Kind() Kind   { return KindStudyPlan }
func (QuizRequest) Kind() Kind        { return KindInteractiveQuiz }
func (QuizAnswerRequest) Kind() Kind  { return KindInteractiveQuiz }
func (QuizRestartRequest) Kind() Kind { return KindInteractiveQuiz }
func (SubtopicsRequest) Kind() Kind   { return KindConceptMap }
func (ConceptMapRequest) Kind() Kind  { return KindConceptMap }
func (SummaryRequest) Kind() Kind     { return KindTopicSummary }

func (HomeRequest) isRequest()        {}
func (MCQRequest) isRequest()         {}
func (PDFQARequest) isRequest()       {}
func (CSVRequest) isRequest()         {}
func (ResearchRequest) isRequest()    {}
func (QAEvaluatorRequest) isRequest() {}
func (StudyPlanRequest) isRequest()   {}
func (QuizRequest) isRequest()        {}
func (QuizAnswerRequest) isRequest()  {}
func (QuizRestartRequest) isRequest() {}
func (SubtopicsRequest) isRequest()   {}
func (ConceptMapRequest) isRequest()  {}
func (SummaryRequest) isRequest()     {}
