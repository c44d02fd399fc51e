package requests

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/llm"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/screen"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/store"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ui/layout"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ui/theme"
)

const recentLimit = 50

type loadedMsg struct {
	Events []store.LLMEvent
	Models []store.ModelUsage
	Err    error
}

// RequestsScreen lists recent model requests with usage and cost.
type RequestsScreen struct {
	repo     store.LLMEventRepo
	events   []store.LLMEvent
	models   []store.ModelUsage
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*RequestsScreen)(nil)
var _ screen.KeyHintProvider = (*RequestsScreen)(nil)

// New creates a RequestsScreen reading from repo.
func New(repo store.LLMEventRepo) *RequestsScreen {
	return &RequestsScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *RequestsScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		ctx := context.Background()

		events, err := repo.QueryLLMEvents(ctx, store.QueryOpts{Limit: recentLimit})
		if err != nil {
			return loadedMsg{Err: err}
		}
		models, err := repo.LLMUsageByModel(ctx)
		if err != nil {
			return loadedMsg{Events: events}
		}
		return loadedMsg{Events: events, Models: models}
	}
}

func (s *RequestsScreen) Title() string {
	return "Model Requests"
}

func (s *RequestsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *RequestsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
			s.models = msg.Models
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *RequestsScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading requests...")
	}
	if len(s.events) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No model requests yet.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Label.Render("  " + s.costLine()))
	b.WriteString("\n\n")

	for i, e := range s.events {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		line := fmt.Sprintf("%s%-4d %s  %-12s %-24s %5d in %5d out %6dms %s",
			prefix, e.ID, e.Timestamp.Local().Format("15:04:05"), e.Purpose,
			truncate(e.Model, 24), e.InputTokens, e.OutputTokens, e.LatencyMs, ok)
		b.WriteString(style.Render(line))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.details(e, width-6))
		}
	}
	return b.String()
}

// costLine sums the estimated cost over all models with known pricing.
func (s *RequestsScreen) costLine() string {
	var total float64
	unpriced := 0
	for _, m := range s.models {
		c := llm.LookupCost(m.Model)
		if c == nil {
			unpriced++
			continue
		}
		total += c.Cost(m.InputTokens, m.OutputTokens)
	}
	line := fmt.Sprintf("Estimated cost: $%.4f", total)
	if unpriced > 0 {
		line += fmt.Sprintf(" (%d model(s) without pricing)", unpriced)
	}
	return line
}

func (s *RequestsScreen) details(e store.LLMEvent, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var b strings.Builder
	if e.ErrorMessage != "" {
		b.WriteString(theme.ErrorText.Render(layout.Wrap("Error: "+e.ErrorMessage, width)))
		b.WriteString("\n")
	}
	b.WriteString(dim.Render(layout.Wrap(excerpt(e.RequestBody), width)))
	b.WriteString("\n")
	if e.ResponseBody != "" {
		b.WriteString(theme.Body.Render(layout.Wrap(excerpt(e.ResponseBody), width)))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().PaddingLeft(6).Render(b.String()) + "\n"
}

func excerpt(s string) string {
	const maxLen = 400
	s = strings.TrimSpace(s)
	if len(s) > maxLen {
		return s[:maxLen] + "…"
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
