package prompt

import (
	"strings"
	"testing"
	"time"
)

func TestBuild(t *testing.T) {
	deadline := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		kind   Kind
		params Params
		want   string
	}{
		{
			name:   "mcq",
			kind:   MCQ,
			params: Params{Text: "Plants make food from light.", Count: 5, Subject: "Biology"},
			want:   "You are an expert MCQ maker. Generate 5 MCQs on Biology based on the following text: Plants make food from light.",
		},
		{
			name:   "pdf qa",
			kind:   PDFQA,
			params: Params{Text: "Chapter 1"},
			want:   "You are an expert question generator. Generate Q&A based on the following text: Chapter 1",
		},
		{
			name:   "research",
			kind:   Research,
			params: Params{Query: "Why is the sky blue?"},
			want:   "You are a research assistant. Answer this research question: Why is the sky blue?",
		},
		{
			name:   "summary",
			kind:   Summary,
			params: Params{Text: "Long text"},
			want:   "You are an expert summarizer. Summarize the following text concisely: Long text",
		},
		{
			name: "study plan",
			kind: StudyPlan,
			params: Params{
				Name:     "Asha",
				Hours:    3,
				Subjects: []string{"Math", "Science"},
				Deadline: deadline,
			},
			want: "Create a detailed study plan for Asha for the next few weeks, considering they can study 3 hours per day, " +
				"focusing on these subjects: Math, Science. The exam is on 2025-06-03. Allocate time wisely per subject.",
		},
		{
			name:   "subtopics",
			kind:   Subtopics,
			params: Params{Concept: "Photosynthesis"},
			want:   "Generate 5-7 key subtopics for the concept: 'Photosynthesis'. List them as a comma-separated string.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(tt.kind, tt.params)
			if got != tt.want {
				t.Errorf("Build() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	p := Params{
		Text: "t", Count: 3, Subject: "s", Query: "q", Name: "n", Hours: 2,
		Subjects: []string{"Arts", "History"}, Deadline: time.Now(), Concept: "c",
	}
	for _, k := range []Kind{MCQ, PDFQA, Research, Summary, StudyPlan, Subtopics} {
		first := Build(k, p)
		for i := 0; i < 3; i++ {
			if got := Build(k, p); got != first {
				t.Fatalf("%s: Build not deterministic: %q != %q", k, got, first)
			}
		}
	}
}

func TestBuild_EmptyFieldsKeptVerbatim(t *testing.T) {
	got := Build(MCQ, Params{})
	want := "You are an expert MCQ maker. Generate 0 MCQs on  based on the following text: "
	if got != want {
		t.Errorf("Build(MCQ, empty) = %q, want %q", got, want)
	}

	plan := Build(StudyPlan, Params{})
	if !strings.Contains(plan, "The exam is on . ") {
		t.Errorf("zero deadline should render empty, got %q", plan)
	}
}

func TestBuild_UnknownKind(t *testing.T) {
	if got := Build(Kind(99), Params{Text: "x"}); got != "" {
		t.Errorf("Build(unknown) = %q, want empty", got)
	}
}

func TestKindString(t *testing.T) {
	if MCQ.String() != "mcq" || StudyPlan.String() != "study-plan" {
		t.Errorf("unexpected labels: %s, %s", MCQ, StudyPlan)
	}
	if Kind(42).String() != "kind(42)" {
		t.Errorf("unexpected label for unknown kind: %s", Kind(42))
	}
}
