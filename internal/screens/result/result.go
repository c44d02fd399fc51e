package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/conceptmap"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ingest"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/router"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/screen"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ui/components"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ui/layout"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ui/theme"
)

const (
	previewRows = 10
	cellWidth   = 14
)

// ResultScreen shows one feature result with vertical scrolling.
type ResultScreen struct {
	res    *feature.Result
	offset int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen for res.
func New(res *feature.Result) *ResultScreen {
	return &ResultScreen{res: res}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Result"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Back"},
		{Key: "Esc", Description: "Back"},
		{Key: "h", Description: "Home"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		s.offset = max(s.offset-1, 0)
	case "down", "j":
		s.offset++
	case "pgup":
		s.offset = max(s.offset-10, 0)
	case "pgdown", " ":
		s.offset += 10
	case "enter":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "h":
		return s, func() tea.Msg { return router.HomeMsg{} }
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	lines := strings.Split(Render(s.res, width-4), "\n")
	if height <= 0 || len(lines) <= height {
		return indent(lines)
	}
	s.offset = min(s.offset, len(lines)-height)
	return indent(lines[s.offset : s.offset+height])
}

func indent(lines []string) string {
	return "  " + strings.Join(lines, "\n  ")
}

// Render formats res as terminal text wrapped to width.
func Render(res *feature.Result, width int) string {
	var b strings.Builder

	if res.Heading != "" {
		b.WriteString(theme.Title.Render(res.Heading))
		b.WriteString("\n\n")
	}
	if res.Warning != "" {
		b.WriteString(theme.WarningText.Render(layout.Wrap(res.Warning, width)))
		b.WriteString("\n\n")
	}
	for _, l := range res.Lines {
		b.WriteString(theme.Body.Render(l))
		b.WriteString("\n")
	}
	if len(res.Lines) > 0 {
		b.WriteString("\n")
	}
	for _, a := range res.Plan {
		b.WriteString(theme.Body.Render("• " + a.String()))
		b.WriteString("\n")
	}
	if res.Text != "" {
		b.WriteString(theme.Body.Render(layout.Wrap(res.Text, width)))
		b.WriteString("\n")
	}
	if res.Table != nil {
		b.WriteString(renderTable(res.Table))
		b.WriteString("\n")
		b.WriteString(renderSeries(res.Table, res.Columns, width))
	}
	if res.Graph != nil {
		b.WriteString(renderGraph(res.Graph))
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderTable(t *ingest.Table) string {
	var b strings.Builder
	header := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		header = append(header, cell(c.Name))
	}
	b.WriteString(theme.Label.Render(strings.Join(header, " ")))
	b.WriteString("\n")

	for _, row := range t.Head(previewRows) {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, cell(v))
		}
		b.WriteString(theme.Body.Render(strings.Join(cells, " ")))
		b.WriteString("\n")
	}
	if n := len(t.Rows); n > previewRows {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("… %d more rows", n-previewRows)))
		b.WriteString("\n")
	}
	return b.String()
}

func cell(s string) string {
	r := []rune(s)
	if len(r) > cellWidth {
		return string(r[:cellWidth-1]) + "…"
	}
	return s + strings.Repeat(" ", cellWidth-len(r))
}

// renderSeries draws one sparkline per selected column. Missing values
// are left blank.
func renderSeries(t *ingest.Table, columns []string, width int) string {
	var b strings.Builder
	for _, name := range columns {
		values, err := t.Series(name)
		if err != nil {
			continue
		}
		b.WriteString(theme.Label.Render(name))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(components.Sparkline(values, width)))
		b.WriteString("\n")
	}
	return b.String()
}

func renderGraph(g *conceptmap.Graph) string {
	var b strings.Builder
	b.WriteString(theme.Selected.Render(g.Topic))
	b.WriteString("\n")
	edges := g.Edges()
	for i, e := range edges {
		branch := "├─ "
		if i == len(edges)-1 {
			branch = "└─ "
		}
		b.WriteString(theme.Body.Render(branch + e.To))
		b.WriteString("\n")
	}
	return b.String()
}
