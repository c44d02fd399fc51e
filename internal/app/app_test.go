package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/router"
)

func TestAppModel_EscOnHomeIsNoop(t *testing.T) {
	m := newAppModel(Options{})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("expected no command for Esc on the home screen")
	}
}

func TestAppModel_EscPopsPushedScreen(t *testing.T) {
	m := newAppModel(Options{Router: feature.NewRouter(nil, nil)})

	// Open the first feature from the home menu.
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a push command")
	}
	m.Update(cmd())
	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", m.router.Depth())
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestAppModel_ViewBeforeResize(t *testing.T) {
	m := newAppModel(Options{})
	v := m.View()
	if !v.AltScreen {
		t.Error("expected alt screen")
	}
}
