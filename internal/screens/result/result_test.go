package result

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/conceptmap"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ingest"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/router"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/studyplan"
)

func TestResultScreen_Title(t *testing.T) {
	s := New(&feature.Result{Kind: feature.KindResearch})
	if s.Title() != "Result" {
		t.Errorf("Title = %q, want %q", s.Title(), "Result")
	}
}

func TestResultScreen_HomeKey(t *testing.T) {
	s := New(&feature.Result{Kind: feature.KindTopicSummary, Text: "short"})
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	if cmd == nil {
		t.Fatal("expected a command on h")
	}
	if _, ok := cmd().(router.HomeMsg); !ok {
		t.Error("expected HomeMsg")
	}
}

func TestResultScreen_EnterPops(t *testing.T) {
	s := New(&feature.Result{Kind: feature.KindTopicSummary, Text: "short"})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestRender_StudyPlanFallback(t *testing.T) {
	res := &feature.Result{
		Kind:    feature.KindStudyPlan,
		Heading: "Personalized Study Plan",
		Lines:   studyplan.Header("Ada", 2),
		Warning: feature.UnavailableMessage,
		Plan:    studyplan.EvenSplit(2, []string{"Math", "Arts"}),
	}
	out := Render(res, 100)
	for _, want := range []string{
		"Study plan for Ada generated!",
		"Study 2 hours every day:",
		"Math: 1.00 hours per day (basic allocation)",
		feature.UnavailableMessage,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestRender_ConceptMap(t *testing.T) {
	res := &feature.Result{
		Kind:  feature.KindConceptMap,
		Graph: conceptmap.Build("Cells", []string{"Nucleus", "Membrane"}),
	}
	out := Render(res, 80)
	if !strings.Contains(out, "├─ Nucleus") || !strings.Contains(out, "└─ Membrane") {
		t.Errorf("unexpected tree:\n%s", out)
	}
}

func TestRender_Table(t *testing.T) {
	tbl, err := ingest.LoadTable([]byte("name,score\nada,90\nbob,70\n"))
	if err != nil {
		t.Fatal(err)
	}
	out := Render(&feature.Result{Kind: feature.KindCSVVisualization, Table: tbl, Columns: []string{"score"}}, 80)
	if !strings.Contains(out, "ada") || !strings.Contains(out, "score") {
		t.Errorf("table missing from render:\n%s", out)
	}
}
