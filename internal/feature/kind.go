// Package feature routes a typed request for one of the ten Knowledge
// Navigator features to the prompt builder, model gateway, quiz engine or
// file parsers, and returns a presentation-neutral Result.
package feature

import "fmt"

// Kind identifies a feature. The set is closed.
type Kind int

const (
	KindHome Kind = iota
	KindMCQ
	KindPDFQA
	KindCSVVisualization
	KindResearch
	KindQAEvaluator
	KindStudyPlan
	KindInteractiveQuiz
	KindConceptMap
	KindTopicSummary
)

var kindInfo = [...]struct {
	slug  string
	title string
}{
	KindHome:             {"home", "Home"},
	KindMCQ:              {"mcq", "MCQ Generator"},
	KindPDFQA:            {"pdf-qa", "PDF Q&A System"},
	KindCSVVisualization: {"csv", "CSV Visualization"},
	KindResearch:         {"research", "Research Bot"},
	KindQAEvaluator:      {"qa-evaluator", "Q&A Evaluator"},
	KindStudyPlan:        {"study-plan", "Study Plan Generator"},
	KindInteractiveQuiz:  {"quiz", "Interactive Quiz"},
	KindConceptMap:       {"concept-map", "Concept Map Generator"},
	KindTopicSummary:     {"summary", "Topic Summary Generator"},
}

// Kinds returns every feature in menu order.
func Kinds() []Kind {
	out := make([]Kind, len(kindInfo))
	for i := range kindInfo {
		out[i] = Kind(i)
	}
	return out
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < len(kindInfo)
}

// Slug is the URL path segment and CLI name of the feature.
func (k Kind) Slug() string {
	if !k.valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindInfo[k].slug
}

// Title is the menu label.
func (k Kind) Title() string {
	if !k.valid() {
		return k.Slug()
	}
	return kindInfo[k].title
}

func (k Kind) String() string { return k.Slug() }

// ParseKind looks a feature up by slug.
func ParseKind(slug string) (Kind, error) {
	for i, info := range kindInfo {
		if info.slug == slug {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown feature %q", slug)
}
