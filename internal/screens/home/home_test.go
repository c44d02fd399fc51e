package home

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/router"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/screens/form"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/screens/quiz"
)

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func selectItem(t *testing.T, h *HomeScreen, index int) tea.Msg {
	t.Helper()
	for range index {
		h.Update(specialKey(tea.KeyDown))
	}
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	return cmd()
}

func TestHome_ListsFeatures(t *testing.T) {
	h := New(feature.NewRouter(nil, nil), nil)
	view := h.View(100, 40)

	if !strings.Contains(view, feature.WelcomeTitle) {
		t.Error("expected welcome title")
	}
	if !strings.Contains(view, feature.UnavailableMessage) {
		t.Error("expected unavailable banner without a model")
	}
	for _, k := range feature.Kinds()[1:] {
		if !strings.Contains(view, k.Title()) {
			t.Errorf("menu missing %q", k.Title())
		}
	}
}

func TestHome_OpensForm(t *testing.T) {
	h := New(feature.NewRouter(nil, nil), nil)
	msg := selectItem(t, h, 0)

	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msg)
	}
	if _, ok := push.Screen.(*form.FormScreen); !ok {
		t.Errorf("expected form screen, got %T", push.Screen)
	}
	if push.Screen.Title() != feature.KindMCQ.Title() {
		t.Errorf("Title = %q, want %q", push.Screen.Title(), feature.KindMCQ.Title())
	}
}

func TestHome_OpensQuiz(t *testing.T) {
	h := New(feature.NewRouter(nil, nil), nil)
	msg := selectItem(t, h, int(feature.KindInteractiveQuiz)-1)

	push, ok := msg.(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", msg)
	}
	if _, ok := push.Screen.(*quiz.QuizScreen); !ok {
		t.Errorf("expected quiz screen, got %T", push.Screen)
	}
}
