package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/router"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/screen"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/screens/form"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/screens/quiz"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/screens/requests"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/store"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ui/components"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ui/layout"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ui/theme"
)

var hints = map[feature.Kind]string{
	feature.KindMCQ:              "Generate MCQs from any text for effective revision.",
	feature.KindPDFQA:            "Upload PDFs and get automated Q&A.",
	feature.KindCSVVisualization: "Visualize CSV data files easily.",
	feature.KindResearch:         "Use the Research Bot to get answers to your academic queries.",
	feature.KindQAEvaluator:      "Evaluate answer sheets (under construction).",
	feature.KindStudyPlan:        "Create personalized study plans.",
	feature.KindInteractiveQuiz:  "Take a short interactive quiz.",
	feature.KindConceptMap:       "Map a topic to its key subtopics.",
	feature.KindTopicSummary:     "Summarize long passages.",
}

// HomeScreen shows the welcome text and the feature menu.
type HomeScreen struct {
	welcome *feature.Result
	menu    components.Menu
	banner  string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. events may be nil, which disables the
// request log entry.
func New(r *feature.Router, events store.LLMEventRepo) *HomeScreen {
	welcome, _ := r.Route(context.Background(), feature.HomeRequest{})

	var items []components.MenuItem
	for _, k := range feature.Kinds() {
		if k == feature.KindHome {
			continue
		}
		items = append(items, components.MenuItem{
			Label:  k.Title(),
			Hint:   hints[k],
			Action: open(k, r),
		})
	}
	items = append(items,
		components.MenuItem{
			Label:    "Model Requests",
			Hint:     "Recent model calls with token usage and cost.",
			Disabled: events == nil,
			Action: func() tea.Cmd {
				return push(requests.New(events))
			},
		},
		components.MenuItem{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	)

	h := &HomeScreen{welcome: welcome, menu: components.NewMenu(items)}
	if !r.Gateway().Available() {
		h.banner = feature.UnavailableMessage
	}
	return h
}

func open(k feature.Kind, r *feature.Router) func() tea.Cmd {
	return func() tea.Cmd {
		if k == feature.KindInteractiveQuiz {
			return push(quiz.New(r))
		}
		if f := form.New(k, r); f != nil {
			return push(f)
		}
		return nil
	}
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(width-4, 90)
	var sections []string

	if h.banner != "" {
		sections = append(sections, theme.ErrorText.Render(h.banner))
	}
	if h.welcome != nil {
		intro := theme.Title.Render(h.welcome.Heading) + "\n" +
			theme.Subtitle.Render(layout.Wrap(h.welcome.Text, cw))
		sections = append(sections, intro)
	}

	sections = append(sections,
		theme.Label.Render("Choose a Feature")+"\n"+h.menu.View())

	content := strings.Join(sections, "\n\n")
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
