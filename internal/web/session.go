package web

import (
	"context"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/quiz"
)

const (
	keyQuizIndex = "quiz.current_question_index"
	keyQuizScore = "quiz.score"
	keyFlash     = "flash.message"
	keyFlashKind = "flash.kind"
	keyCSVData   = "csv.data"
	keyCSVName   = "csv.name"
)

func (s *Server) loadQuiz(ctx context.Context) *quiz.Session {
	return &quiz.Session{
		CurrentQuestionIndex: s.sessions.GetInt(ctx, keyQuizIndex),
		Score:                s.sessions.GetInt(ctx, keyQuizScore),
	}
}

func (s *Server) saveQuiz(ctx context.Context, qs *quiz.Session) {
	s.sessions.Put(ctx, keyQuizIndex, qs.CurrentQuestionIndex)
	s.sessions.Put(ctx, keyQuizScore, qs.Score)
}

// setFlash stores a one-shot message for the next page view. kind is a
// CSS class: success, error or warning.
func (s *Server) setFlash(ctx context.Context, kind, msg string) {
	s.sessions.Put(ctx, keyFlash, msg)
	s.sessions.Put(ctx, keyFlashKind, kind)
}

func (s *Server) popFlash(ctx context.Context) (kind, msg string) {
	return s.sessions.PopString(ctx, keyFlashKind), s.sessions.PopString(ctx, keyFlash)
}

func (s *Server) saveCSV(ctx context.Context, name string, data []byte) {
	s.sessions.Put(ctx, keyCSVData, data)
	s.sessions.Put(ctx, keyCSVName, name)
}

func (s *Server) loadCSV(ctx context.Context) (name string, data []byte) {
	return s.sessions.GetString(ctx, keyCSVName), s.sessions.GetBytes(ctx, keyCSVData)
}
