// Package prompt builds the instruction strings sent to the model.
//
// Builders are pure: the same Kind and Params always produce the same
// prompt. Fields are inserted verbatim, including empty ones.
package prompt

import (
	"fmt"
	"strings"
	"time"
)

// Kind selects a prompt template.
type Kind int

const (
	MCQ Kind = iota
	PDFQA
	Research
	Summary
	StudyPlan
	Subtopics
)

var kindNames = [...]string{
	MCQ:       "mcq",
	PDFQA:     "pdf-qa",
	Research:  "research",
	Summary:   "summary",
	StudyPlan: "study-plan",
	Subtopics: "subtopics",
}

// String returns the kind's label, also used as the request-log purpose.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Params carries the caller-supplied fields. Each Kind reads only the
// fields it needs.
type Params struct {
	Text     string
	Count    int
	Subject  string
	Query    string
	Name     string
	Hours    int
	Subjects []string
	Deadline time.Time
	Concept  string
}

// DateLayout is how exam deadlines appear in prompts.
const DateLayout = "2006-01-02"

// Build returns the prompt for kind. Unknown kinds yield "".
func Build(kind Kind, p Params) string {
	switch kind {
	case MCQ:
		return fmt.Sprintf("You are an expert MCQ maker. Generate %d MCQs on %s based on the following text: %s",
			p.Count, p.Subject, p.Text)
	case PDFQA:
		return "You are an expert question generator. Generate Q&A based on the following text: " + p.Text
	case Research:
		return "You are a research assistant. Answer this research question: " + p.Query
	case Summary:
		return "You are an expert summarizer. Summarize the following text concisely: " + p.Text
	case StudyPlan:
		return buildStudyPlan(p)
	case Subtopics:
		return fmt.Sprintf("Generate 5-7 key subtopics for the concept: '%s'. List them as a comma-separated string.", p.Concept)
	}
	return ""
}

func buildStudyPlan(p Params) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed study plan for %s for the next few weeks, ", p.Name)
	fmt.Fprintf(&b, "considering they can study %d hours per day, ", p.Hours)
	fmt.Fprintf(&b, "focusing on these subjects: %s. ", strings.Join(p.Subjects, ", "))
	fmt.Fprintf(&b, "The exam is on %s. ", formatDeadline(p.Deadline))
	b.WriteString("Allocate time wisely per subject.")
	return b.String()
}

func formatDeadline(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
