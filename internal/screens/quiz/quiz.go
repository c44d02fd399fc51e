package quiz

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	qz "github.com/r-sathish-02/Knowledge-Navigator-App/internal/quiz"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/screen"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ui/components"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ui/layout"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ui/theme"
)

// QuizScreen runs the interactive quiz. The screen owns the session, so
// progress lasts until the screen is closed.
type QuizScreen struct {
	router   *feature.Router
	session  *qz.Session
	view     *feature.QuizView
	choice   components.MultiChoice
	answered components.MultiChoice // shown with feedback
	feedback *qz.Feedback
	errMsg   string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a QuizScreen with a fresh session.
func New(r *feature.Router) *QuizScreen {
	s := &QuizScreen{router: r, session: &qz.Session{}}
	s.refresh(feature.QuizRequest{Session: s.session})
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return feature.KindInteractiveQuiz.Title()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.completed():
		return []layout.KeyHint{
			{Key: "R", Description: "Restart Quiz"},
			{Key: "Esc", Description: "Back"},
		}
	case s.feedback != nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next question"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Submit Answer"},
		{Key: "Esc", Description: "Back"},
	}
}

// Session returns the quiz session the screen is driving.
func (s *QuizScreen) Session() *qz.Session {
	return s.session
}

func (s *QuizScreen) completed() bool {
	return s.view != nil && s.view.State.Phase == qz.PhaseCompleted
}

// refresh routes req and rebuilds the picker from the new state.
func (s *QuizScreen) refresh(req feature.Request) *feature.Result {
	res, err := s.router.Route(context.Background(), req)
	if err != nil {
		s.errMsg = feature.UserMessage(feature.KindInteractiveQuiz, err)
		return nil
	}
	s.errMsg = ""
	s.view = res.Quiz
	if q := res.Quiz.Question; q != nil {
		label := fmt.Sprintf("Question %d: %s", res.Quiz.State.Index+1, q.Text)
		s.choice = components.NewMultiChoice(label, q.Options)
	}
	return res
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	if s.completed() && s.feedback == nil {
		if key == "r" {
			s.refresh(feature.QuizRestartRequest{Session: s.session})
		}
		return s, nil
	}

	if s.feedback != nil {
		if key == "enter" {
			s.feedback = nil
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if !s.choice.Submitted {
		return s, cmd
	}

	// refresh moves s.choice on to the next question; the answered picker
	// stays on screen until the feedback is dismissed.
	answered := s.choice
	res := s.refresh(feature.QuizAnswerRequest{
		Session:  s.session,
		Index:    s.view.State.Index,
		Selected: answered.Chosen(),
	})
	if res == nil {
		s.choice = answered
		s.choice.Submitted = false
		return s, cmd
	}
	answered.Reveal(res.Feedback.CorrectAnswer)
	s.answered = answered
	s.feedback = res.Feedback
	return s, cmd
}

func (s *QuizScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	if s.view != nil {
		st := s.view.State
		bar := components.NewProgressBar("Progress", st.Index, st.Total, min(width-4, 60))
		b.WriteString(bar.View())
		b.WriteString("\n\n")
	}

	switch {
	case s.feedback != nil:
		b.WriteString(s.answered.View())
		b.WriteString("\n")
	case !s.completed():
		b.WriteString(s.choice.View())
		b.WriteString("\n")
	}

	if s.feedback != nil {
		if s.feedback.Correct {
			b.WriteString(theme.SuccessText.Render(s.feedback.Message()))
		} else {
			b.WriteString(theme.ErrorText.Render(s.feedback.Message()))
		}
		b.WriteString("\n\n")
	}

	if s.completed() && s.feedback == nil {
		for _, line := range s.view.Summary {
			b.WriteString(theme.Title.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Press R to restart the quiz."))
	}

	if s.errMsg != "" {
		b.WriteString(theme.WarningText.Render(s.errMsg))
	}

	return "  " + strings.ReplaceAll(b.String(), "\n", "\n  ")
}
