package requests

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/store"
)

func seededRepo(t *testing.T) store.LLMEventRepo {
	t.Helper()
	s, err := store.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })

	repo := s.EventRepo()
	err = repo.AppendLLMRequest(context.Background(), store.LLMRequestEventData{
		CallID:       "call-1",
		Provider:     "mock",
		Model:        "mock",
		Purpose:      "summary",
		Success:      true,
		RequestBody:  "[user]\nSummarize this",
		ResponseBody: "A summary.",
	})
	if err != nil {
		t.Fatal(err)
	}
	return repo
}

func load(t *testing.T, s *RequestsScreen) {
	t.Helper()
	msg := s.Init()()
	s.Update(msg)
}

func TestRequestsScreen_ListsEvents(t *testing.T) {
	s := New(seededRepo(t))
	if !strings.Contains(s.View(100, 30), "Loading") {
		t.Error("expected loading view before Init completes")
	}

	load(t, s)
	view := s.View(100, 30)
	if !strings.Contains(view, "summary") {
		t.Errorf("expected purpose in view:\n%s", view)
	}
	if !strings.Contains(view, "without pricing") {
		t.Error("expected unpriced note for the mock model")
	}
	if strings.Contains(view, "A summary.") {
		t.Error("details should be collapsed initially")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 30), "A summary.") {
		t.Error("expected response excerpt after expanding")
	}
}

func TestRequestsScreen_Empty(t *testing.T) {
	s, err := store.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	screen := New(s.EventRepo())
	load(t, screen)
	if !strings.Contains(screen.View(100, 30), "No model requests yet.") {
		t.Error("expected empty message")
	}
}
