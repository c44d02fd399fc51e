package form

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/router"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/screen"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/screens/result"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ui/components"
	ui "github.com/r-sathish-02/Knowledge-Navigator-App/internal/ui/layout"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ui/theme"
)

// DefaultTimeout bounds one feature request.
const DefaultTimeout = 90 * time.Second

// routedMsg carries the outcome of a feature request back to the form.
type routedMsg struct {
	req feature.Request
	res *feature.Result
	err error
}

// FormScreen collects a feature's inputs and runs it on submit.
type FormScreen struct {
	kind    feature.Kind
	router  *feature.Router
	layout  layout
	inputs  []components.TextInput
	focus   int
	loading bool
	errMsg  string
	warning string
	notice  string
	timeout time.Duration
}

var _ screen.Screen = (*FormScreen)(nil)
var _ screen.KeyHintProvider = (*FormScreen)(nil)

// New creates the form for kind, or nil when kind has no form.
func New(kind feature.Kind, r *feature.Router) *FormScreen {
	l, ok := layoutFor(kind)
	if !ok {
		return nil
	}

	inputs := make([]components.TextInput, len(l.fields))
	for i, f := range l.fields {
		inputs[i] = components.NewTextInput(f.Label, f.Placeholder, f.Numeric, 0)
		if f.Default != "" {
			inputs[i].SetValue(f.Default)
		}
	}
	return &FormScreen{
		kind:    kind,
		router:  r,
		layout:  l,
		inputs:  inputs,
		timeout: DefaultTimeout,
	}
}

func (f *FormScreen) Init() tea.Cmd {
	return f.inputs[0].Focus()
}

func (f *FormScreen) Title() string {
	return f.kind.Title()
}

func (f *FormScreen) KeyHints() []ui.KeyHint {
	return []ui.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}

// Value returns the text in the field with key.
func (f *FormScreen) Value(key string) string {
	for i, fd := range f.layout.fields {
		if fd.Key == key {
			return f.inputs[i].Value()
		}
	}
	return ""
}

func (f *FormScreen) values() values {
	v := make(values, len(f.inputs))
	for i, fd := range f.layout.fields {
		v[fd.Key] = f.inputs[i].Value()
	}
	return v
}

func (f *FormScreen) setFocus(i int) tea.Cmd {
	f.inputs[f.focus].Blur()
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	return f.inputs[f.focus].Focus()
}

func (f *FormScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case routedMsg:
		f.loading = false
		return f, f.handleResult(msg)

	case tea.KeyMsg:
		if f.loading {
			return f, nil
		}
		switch msg.String() {
		case "tab", "down":
			return f, f.setFocus(f.focus + 1)
		case "shift+tab", "up":
			return f, f.setFocus(f.focus - 1)
		case "enter":
			if f.focus < len(f.inputs)-1 {
				return f, f.setFocus(f.focus + 1)
			}
			return f, f.submit()
		case "ctrl+s":
			return f, f.submit()
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *FormScreen) submit() tea.Cmd {
	f.errMsg, f.warning, f.notice = "", "", ""

	req, err := f.layout.build(f.values())
	if err != nil {
		f.errMsg = feature.UserMessage(f.kind, err)
		return nil
	}

	f.loading = true
	r, timeout := f.router, f.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := r.Route(ctx, req)
		return routedMsg{req: req, res: res, err: err}
	}
}

func (f *FormScreen) handleResult(msg routedMsg) tea.Cmd {
	_, suggesting := msg.req.(feature.SubtopicsRequest)

	if msg.err != nil {
		var ve *feature.ValidationError
		if suggesting && !errors.As(msg.err, &ve) {
			f.warning = feature.SuggestionWarning(msg.err)
			return nil
		}
		f.errMsg = feature.UserMessage(f.kind, msg.err)
		return nil
	}

	if suggesting {
		for i, fd := range f.layout.fields {
			if fd.Key == "subtopics" {
				f.inputs[i].SetValue(msg.res.Subtopics)
				f.notice = "Suggested Subtopics (edit if needed), then press Enter to generate."
				return f.setFocus(i)
			}
		}
		return nil
	}

	return func() tea.Msg {
		return router.PushScreenMsg{Screen: result.New(msg.res)}
	}
}

func (f *FormScreen) View(width, height int) string {
	inner := min(width-4, 100)

	var b strings.Builder
	b.WriteString("\n")
	for _, in := range f.inputs {
		b.WriteString(in.View(inner))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case f.loading:
		b.WriteString(theme.Hint.Render("Generating..."))
	case f.errMsg != "":
		b.WriteString(theme.ErrorText.Render(ui.Wrap(f.errMsg, inner)))
	case f.warning != "":
		b.WriteString(theme.WarningText.Render(ui.Wrap(f.warning, inner)))
	case f.notice != "":
		b.WriteString(theme.SuccessText.Render(f.notice))
	default:
		b.WriteString(theme.Hint.Render("Press Enter on the last field to submit."))
	}

	return indent(b.String())
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
