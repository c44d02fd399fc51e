package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/logging"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/prompt"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/quiz"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/studyplan"
)

func (s *Server) apiRoutes(r chi.Router) {
	r.Post("/mcq", s.apiMCQ)
	r.Post("/research", s.apiResearch)
	r.Post("/summary", s.apiSummary)
	r.Post("/study-plan", s.apiStudyPlan)
	r.Post("/subtopics", s.apiSubtopics)
	r.Post("/concept-map", s.apiConceptMap)
	r.Post("/pdf-qa", s.apiPDFQA)
	r.Post("/csv", s.apiCSV)
	r.Post("/qa-evaluator", s.apiQAEvaluator)
	r.Get("/quiz", s.apiQuiz)
	r.Post("/quiz/answer", s.apiQuizAnswer)
	r.Post("/quiz/restart", s.apiQuizRestart)
	r.Get("/llm/stats", s.apiLLMStats)
}

type apiError struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type apiAllocation struct {
	Subject string  `json:"subject"`
	Hours   float64 `json:"hours"`
	Line    string  `json:"line"`
}

type apiColumn struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type apiNode struct {
	Label  string `json:"label"`
	Center bool   `json:"center"`
}

type apiEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type apiQuiz struct {
	Phase     string   `json:"phase"`
	Index     int      `json:"index"`
	Score     int      `json:"score"`
	Total     int      `json:"total"`
	Question  string   `json:"question,omitempty"`
	Options   []string `json:"options,omitempty"`
	Summary   []string `json:"summary,omitempty"`
	Feedback  string   `json:"feedback,omitempty"`
	Correct   *bool    `json:"correct,omitempty"`
	Completed bool     `json:"completed"`
}

type apiResult struct {
	Feature   string          `json:"feature"`
	Heading   string          `json:"heading,omitempty"`
	Lines     []string        `json:"lines,omitempty"`
	Text      string          `json:"text,omitempty"`
	Warning   string          `json:"warning,omitempty"`
	Plan      []apiAllocation `json:"plan,omitempty"`
	Columns   []apiColumn     `json:"columns,omitempty"`
	Selected  []string        `json:"selected,omitempty"`
	Rows      [][]string      `json:"rows,omitempty"`
	Subtopics string          `json:"subtopics,omitempty"`
	Nodes     []apiNode       `json:"nodes,omitempty"`
	Edges     []apiEdge       `json:"edges,omitempty"`
	Quiz      *apiQuiz        `json:"quiz,omitempty"`
}

func toAPI(res *feature.Result) apiResult {
	out := apiResult{
		Feature:   res.Kind.Slug(),
		Heading:   res.Heading,
		Lines:     res.Lines,
		Text:      res.Text,
		Warning:   res.Warning,
		Subtopics: res.Subtopics,
	}
	for _, a := range res.Plan {
		out.Plan = append(out.Plan, apiAllocation{Subject: a.Subject, Hours: a.Hours, Line: a.String()})
	}
	if res.Table != nil {
		for _, c := range res.Table.Columns {
			out.Columns = append(out.Columns, apiColumn{Name: c.Name, Type: c.Type.String()})
		}
		out.Selected = append([]string{}, res.Columns...)
		out.Rows = res.Table.Head(previewRows)
	}
	if res.Graph != nil {
		for _, n := range res.Graph.Nodes() {
			out.Nodes = append(out.Nodes, apiNode{Label: n.Label, Center: n.Center})
		}
		for _, e := range res.Graph.Edges() {
			out.Edges = append(out.Edges, apiEdge{From: e.From, To: e.To})
		}
	}
	if res.Quiz != nil {
		q := &apiQuiz{
			Phase:     res.Quiz.State.Phase.String(),
			Index:     res.Quiz.State.Index,
			Score:     res.Quiz.State.Score,
			Total:     res.Quiz.State.Total,
			Summary:   res.Quiz.Summary,
			Completed: res.Quiz.State.Phase == quiz.PhaseCompleted,
		}
		if res.Quiz.Question != nil {
			q.Question = res.Quiz.Question.Text
			q.Options = res.Quiz.Question.Options
		}
		if res.Feedback != nil {
			correct := res.Feedback.Correct
			q.Correct = &correct
			q.Feedback = res.Feedback.Message()
		}
		out.Quiz = q
	}
	return out
}

// route runs req and writes the JSON result or error.
func (s *Server) route(w http.ResponseWriter, r *http.Request, req feature.Request) {
	res, err := s.router.Route(r.Context(), req)
	s.respond(w, r, req.Kind(), res, err)
}

func (s *Server) respond(w http.ResponseWriter, r *http.Request, kind feature.Kind, res *feature.Result, err error) {
	if err != nil {
		s.apiFail(w, r, kind, err)
		return
	}
	respondJSON(w, http.StatusOK, toAPI(res))
}

// routeQuiz runs a quiz request and stores the session before anything is
// written, since the session cookie goes out with the headers.
func (s *Server) routeQuiz(w http.ResponseWriter, r *http.Request, qs *quiz.Session, req feature.Request) {
	res, err := s.router.Route(r.Context(), req)
	s.saveQuiz(r.Context(), qs)
	s.respond(w, r, req.Kind(), res, err)
}

func (s *Server) apiFail(w http.ResponseWriter, r *http.Request, kind feature.Kind, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logging.FromContext(r.Context()).WithError(err).Error("api request failed")
	}
	respondJSON(w, status, apiError{Error: feature.UserMessage(kind, err), Kind: errorKind(err)})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, kind feature.Kind, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxUpload()))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.apiFail(w, r, kind, &feature.ValidationError{Field: "body", Message: "Invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

func (s *Server) apiMCQ(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text    string `json:"text"`
		Count   *int   `json:"count"`
		Subject string `json:"subject"`
	}
	if !s.decode(w, r, feature.KindMCQ, &body) {
		return
	}
	count := feature.DefaultMCQCount
	if body.Count != nil {
		count = *body.Count
	}
	s.route(w, r, feature.MCQRequest{Text: body.Text, Count: count, Subject: body.Subject})
}

func (s *Server) apiResearch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if !s.decode(w, r, feature.KindResearch, &body) {
		return
	}
	s.route(w, r, feature.ResearchRequest{Query: body.Query})
}

func (s *Server) apiSummary(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if !s.decode(w, r, feature.KindTopicSummary, &body) {
		return
	}
	s.route(w, r, feature.SummaryRequest{Text: body.Text})
}

func (s *Server) apiStudyPlan(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string   `json:"name"`
		Hours    *int     `json:"hours"`
		Subjects []string `json:"subjects"`
		Deadline string   `json:"deadline"`
	}
	if !s.decode(w, r, feature.KindStudyPlan, &body) {
		return
	}

	req := feature.StudyPlanRequest{Name: body.Name, Hours: studyplan.DefaultHours, Subjects: body.Subjects}
	if body.Hours != nil {
		req.Hours = *body.Hours
	}
	if body.Deadline != "" {
		t, err := time.Parse(prompt.DateLayout, body.Deadline)
		if err != nil {
			s.apiFail(w, r, feature.KindStudyPlan, &feature.ValidationError{Field: "deadline", Message: "Deadline must be a YYYY-MM-DD date."})
			return
		}
		req.Deadline = t
	}
	s.route(w, r, req)
}

func (s *Server) apiSubtopics(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Topic string `json:"topic"`
	}
	if !s.decode(w, r, feature.KindConceptMap, &body) {
		return
	}
	s.route(w, r, feature.SubtopicsRequest{Topic: body.Topic})
}

func (s *Server) apiConceptMap(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Topic     string `json:"topic"`
		Subtopics string `json:"subtopics"`
	}
	if !s.decode(w, r, feature.KindConceptMap, &body) {
		return
	}
	s.route(w, r, feature.ConceptMapRequest{Topic: body.Topic, Subtopics: body.Subtopics})
}

func (s *Server) apiPDFQA(w http.ResponseWriter, r *http.Request) {
	_, data, err := s.readUpload(w, r, "document")
	if err != nil {
		s.apiFail(w, r, feature.KindPDFQA, err)
		return
	}
	s.route(w, r, feature.PDFQARequest{Document: data})
}

// apiCSV takes a multipart upload. Repeated "columns" fields select the
// charted columns; without any, every numeric column is selected.
func (s *Server) apiCSV(w http.ResponseWriter, r *http.Request) {
	_, data, err := s.readUpload(w, r, "data")
	if err != nil {
		s.apiFail(w, r, feature.KindCSVVisualization, err)
		return
	}
	req := feature.CSVRequest{Data: data}
	if r.MultipartForm != nil {
		if cols, ok := r.MultipartForm.Value["columns"]; ok {
			req.Columns = cols
		}
	}
	s.route(w, r, req)
}

func (s *Server) apiQAEvaluator(w http.ResponseWriter, r *http.Request) {
	name, data, err := s.readUpload(w, r, "file")
	if err != nil {
		s.apiFail(w, r, feature.KindQAEvaluator, err)
		return
	}
	s.route(w, r, feature.QAEvaluatorRequest{Filename: name, Data: data})
}

func (s *Server) apiQuiz(w http.ResponseWriter, r *http.Request) {
	qs := s.loadQuiz(r.Context())
	s.routeQuiz(w, r, qs, feature.QuizRequest{Session: qs})
}

func (s *Server) apiQuizAnswer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Index  int    `json:"index"`
		Answer string `json:"answer"`
	}
	if !s.decode(w, r, feature.KindInteractiveQuiz, &body) {
		return
	}
	qs := s.loadQuiz(r.Context())
	s.routeQuiz(w, r, qs, feature.QuizAnswerRequest{Session: qs, Index: body.Index, Selected: body.Answer})
}

func (s *Server) apiQuizRestart(w http.ResponseWriter, r *http.Request) {
	qs := s.loadQuiz(r.Context())
	s.routeQuiz(w, r, qs, feature.QuizRestartRequest{Session: qs})
}

func (s *Server) apiLLMStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.llmStats(r.Context())
	if err != nil {
		s.apiFail(w, r, feature.KindHome, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
