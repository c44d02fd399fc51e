package feature

import (
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/conceptmap"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ingest"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/quiz"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/studyplan"
)

// Result is what a front-end renders. Only the fields relevant to the
// request's feature are set.
type Result struct {
	Kind Kind

	// Heading is the subheader shown above the output.
	Heading string

	// Lines are plain text lines shown before Text.
	Lines []string

	// Text is the model output, usually markdown.
	Text string

	// Warning is a non-fatal notice, e.g. the study plan fell back to the
	// basic allocation.
	Warning string

	// Table and Columns are set for CSV visualization. Columns is the
	// selected numeric subset to chart.
	Table   *ingest.Table
	Columns []string

	// Plan is the basic allocation used when no detailed plan is
	// available.
	Plan []studyplan.Allocation

	// Graph is the concept map.
	Graph *conceptmap.Graph

	// Subtopics is the suggested comma-separated subtopics list.
	Subtopics string

	// Quiz is set for every quiz request. Feedback is set after an answer.
	Quiz     *QuizView
	Feedback *quiz.Feedback
}

// QuizView is the state of a quiz session after a request.
type QuizView struct {
	State quiz.State

	// Question is the active question, nil once completed.
	Question *quiz.Question

	// Completed lines, e.g. "Quiz completed!" and the score.
	Summary []string
}
