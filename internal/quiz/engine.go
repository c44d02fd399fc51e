// Package quiz implements the interactive quiz state machine.
//
// The Engine owns the immutable question set. Progress lives in a Session
// owned by the caller and passed in by pointer on every call, so one Engine
// serves any number of users.
package quiz

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrQuizCompleted is returned when answering after the last question.
	ErrQuizCompleted = errors.New("quiz already completed")

	// ErrQuizInProgress is returned by Restart before the quiz is completed.
	ErrQuizInProgress = errors.New("quiz is still in progress")

	// ErrStaleAnswer is returned when an answer targets a question other
	// than the current one, e.g. a repeated form submission.
	ErrStaleAnswer = errors.New("answer is for a question that is no longer active")
)

// Session is one user's quiz progress.
type Session struct {
	CurrentQuestionIndex int `json:"current_question_index"`
	Score                int `json:"score"`
}

// Phase distinguishes the two quiz states.
type Phase int

const (
	PhaseActive    Phase = iota // Answering question Index
	PhaseCompleted              // Index == number of questions
)

func (p Phase) String() string {
	if p == PhaseCompleted {
		return "completed"
	}
	return "active"
}

// State is a snapshot of where a session stands.
type State struct {
	Phase Phase
	Index int
	Score int
	Total int
}

// Feedback is the correctness signal emitted by SubmitAnswer.
type Feedback struct {
	Correct       bool
	Selected      string
	CorrectAnswer string

	// Completed is true when this answer finished the quiz.
	Completed bool
}

// Message renders the feedback line shown to the user.
func (f Feedback) Message() string {
	if f.Correct {
		return "Correct!"
	}
	return "Wrong! Correct answer is " + f.CorrectAnswer
}

// Engine runs the quiz over a fixed question set.
type Engine struct {
	questions []Question
}

// NewEngine validates questions and returns an Engine over a private copy.
func NewEngine(questions []Question) (*Engine, error) {
	if len(questions) == 0 {
		return nil, errors.New("quiz needs at least one question")
	}
	qs := make([]Question, len(questions))
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		q.Options = slices.Clone(q.Options)
		qs[i] = q
	}
	return &Engine{questions: qs}, nil
}

// Default returns an Engine over DefaultQuestions.
func Default() *Engine {
	e, err := NewEngine(DefaultQuestions())
	if err != nil {
		panic(err)
	}
	return e
}

// Len returns the number of questions.
func (e *Engine) Len() int {
	return len(e.questions)
}

// Question returns a copy of question i.
func (e *Engine) Question(i int) (Question, bool) {
	if i < 0 || i >= len(e.questions) {
		return Question{}, false
	}
	q := e.questions[i]
	q.Options = slices.Clone(q.Options)
	return q, true
}

// Normalize clamps a session that was tampered with or built against a
// different question set back into the valid range.
func (e *Engine) Normalize(s *Session) {
	if s.CurrentQuestionIndex < 0 || s.CurrentQuestionIndex > len(e.questions) {
		s.CurrentQuestionIndex = 0
		s.Score = 0
	}
	if s.Score < 0 || s.Score > s.CurrentQuestionIndex {
		s.Score = 0
	}
}

// State reports the session's current state.
func (e *Engine) State(s *Session) State {
	e.Normalize(s)
	st := State{
		Index: s.CurrentQuestionIndex,
		Score: s.Score,
		Total: len(e.questions),
	}
	if s.CurrentQuestionIndex >= len(e.questions) {
		st.Phase = PhaseCompleted
	}
	return st
}

// Current returns the active question, or ErrQuizCompleted.
func (e *Engine) Current(s *Session) (Question, error) {
	if e.State(s).Phase == PhaseCompleted {
		return Question{}, ErrQuizCompleted
	}
	q, _ := e.Question(s.CurrentQuestionIndex)
	return q, nil
}

// SubmitAnswer answers question index for the session. index is the
// question the user was shown; a mismatch with the session means the
// answer was already recorded, and the session is left untouched.
func (e *Engine) SubmitAnswer(s *Session, index int, selected string) (Feedback, error) {
	st := e.State(s)
	if st.Phase == PhaseCompleted {
		return Feedback{}, ErrQuizCompleted
	}
	if index != st.Index {
		return Feedback{}, ErrStaleAnswer
	}

	q := e.questions[index]
	fb := Feedback{
		Correct:       selected == q.Correct,
		Selected:      selected,
		CorrectAnswer: q.Correct,
	}
	if fb.Correct {
		s.Score++
	}
	s.CurrentQuestionIndex++
	fb.Completed = s.CurrentQuestionIndex == len(e.questions)
	return fb, nil
}

// Restart resets a completed session to the first question.
func (e *Engine) Restart(s *Session) error {
	if e.State(s).Phase != PhaseCompleted {
		return ErrQuizInProgress
	}
	s.CurrentQuestionIndex = 0
	s.Score = 0
	return nil
}

// ScoreLine renders the final score message.
func (e *Engine) ScoreLine(s *Session) string {
	return fmt.Sprintf("Your total score: %d/%d", s.Score, len(e.questions))
}
