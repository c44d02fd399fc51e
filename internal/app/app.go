package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/router"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/screen"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/screens/home"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/store"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ui/layout"
)

// Options holds the dependencies of the terminal UI.
type Options struct {
	Router *feature.Router

	// Events backs the request log screen. May be nil.
	Events store.LLMEventRepo
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	model  string
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	if opts.Router == nil {
		opts.Router = feature.NewRouter(nil, nil)
	}
	return AppModel{
		router: router.New(home.New(opts.Router, opts.Events)),
		model:  opts.Router.Gateway().ModelID(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	trail := m.router.Trail()
	if trail == "" {
		trail = active.Title()
	}
	header := layout.RenderHeader(trail, m.model, m.width)
	footer := layout.RenderFooter(m.keyHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) keyHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the terminal UI and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
