package web

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/logging"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/prompt"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/studyplan"
)

// previewRows caps the CSV preview table.
const previewRows = 50

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	p := s.newPage(feature.KindHome)
	res, err := s.router.Route(r.Context(), feature.HomeRequest{})
	if err != nil {
		p.fail(feature.KindHome, err)
	}
	p.Result = res
	p.Extra = feature.WelcomeFooter
	s.render(w, r, http.StatusOK, "home", p)
}

// show routes req and puts the result, or the error, on p.
func (s *Server) show(w http.ResponseWriter, r *http.Request, page string, p *pageData, req feature.Request) {
	status := http.StatusOK
	res, err := s.router.Route(r.Context(), req)
	if err != nil {
		p.fail(req.Kind(), err)
		status = statusFor(err)
	} else {
		p.Result = res
		p.Warning = res.Warning
		if res.Text != "" {
			p.Output = s.markdown(res.Text)
		}
	}
	s.render(w, r, status, page, p)
}

func formInt(r *http.Request, key string, def int) int {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func (s *Server) handleMCQ(w http.ResponseWriter, r *http.Request) {
	p := s.newPage(feature.KindMCQ)
	p.Form["count"] = strconv.Itoa(feature.DefaultMCQCount)
	if r.Method != http.MethodPost {
		s.render(w, r, http.StatusOK, "mcq", p)
		return
	}

	req := feature.MCQRequest{
		Text:    r.FormValue("text"),
		Count:   formInt(r, "count", feature.DefaultMCQCount),
		Subject: r.FormValue("subject"),
	}
	p.Form["text"] = req.Text
	p.Form["subject"] = req.Subject
	p.Form["count"] = strconv.Itoa(req.Count)
	s.show(w, r, "mcq", p, req)
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	p := s.newPage(feature.KindResearch)
	if r.Method != http.MethodPost {
		s.render(w, r, http.StatusOK, "research", p)
		return
	}

	req := feature.ResearchRequest{Query: r.FormValue("query")}
	p.Form["query"] = req.Query
	s.show(w, r, "research", p, req)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	p := s.newPage(feature.KindTopicSummary)
	if r.Method != http.MethodPost {
		s.render(w, r, http.StatusOK, "summary", p)
		return
	}

	req := feature.SummaryRequest{Text: r.FormValue("text")}
	p.Form["text"] = req.Text
	s.show(w, r, "summary", p, req)
}

// readUpload returns the named multipart file. A missing file yields
// empty values and no error.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request, field string) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload())
	if err := r.ParseMultipartForm(s.maxUpload()); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return "", nil, &feature.ValidationError{
				Field:   field,
				Message: "File is too large. The limit is " + strconv.Itoa(s.cfg.MaxUploadMB) + " MB.",
			}
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return "", nil, nil
		}
		return "", nil, err
	}

	f, hdr, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return hdr.Filename, data, nil
}

func (s *Server) handlePDFQA(w http.ResponseWriter, r *http.Request) {
	p := s.newPage(feature.KindPDFQA)
	if r.Method != http.MethodPost {
		s.render(w, r, http.StatusOK, "pdf-qa", p)
		return
	}

	_, data, err := s.readUpload(w, r, "document")
	if err != nil {
		p.fail(feature.KindPDFQA, err)
		s.render(w, r, statusFor(err), "pdf-qa", p)
		return
	}
	s.show(w, r, "pdf-qa", p, feature.PDFQARequest{Document: data})
}

func (s *Server) handleQAEvaluator(w http.ResponseWriter, r *http.Request) {
	p := s.newPage(feature.KindQAEvaluator)
	if r.Method != http.MethodPost {
		s.render(w, r, http.StatusOK, "qa-evaluator", p)
		return
	}

	name, data, err := s.readUpload(w, r, "file")
	if err != nil {
		p.fail(feature.KindQAEvaluator, err)
		s.render(w, r, statusFor(err), "qa-evaluator", p)
		return
	}
	s.show(w, r, "qa-evaluator", p, feature.QAEvaluatorRequest{Filename: name, Data: data})
}

type csvView struct {
	Filename string
	Headers  []string
	Rows     [][]string
	Total    int
	Numeric  []string
}

// handleCSV accepts a new upload, or a column selection for the upload
// kept in the session.
func (s *Server) handleCSV(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := s.newPage(feature.KindCSVVisualization)
	if r.Method != http.MethodPost {
		s.render(w, r, http.StatusOK, "csv", p)
		return
	}

	name, data, err := s.readUpload(w, r, "data")
	if err != nil {
		p.fail(feature.KindCSVVisualization, err)
		s.render(w, r, statusFor(err), "csv", p)
		return
	}

	req := feature.CSVRequest{Data: data}
	if len(data) > 0 {
		s.saveCSV(ctx, name, data)
	} else {
		name, req.Data = s.loadCSV(ctx)
		if r.FormValue("select") != "" {
			req.Columns = append([]string{}, r.Form["columns"]...)
		}
	}

	res, err := s.router.Route(ctx, req)
	if err != nil {
		p.fail(feature.KindCSVVisualization, err)
		s.render(w, r, statusFor(err), "csv", p)
		return
	}

	p.Result = res
	p.Warning = res.Warning
	p.Extra = csvView{
		Filename: name,
		Headers:  res.Table.Headers(),
		Rows:     res.Table.Head(previewRows),
		Total:    len(res.Table.Rows),
		Numeric:  res.Table.NumericColumns(),
	}
	for _, c := range res.Columns {
		p.Checked[c] = true
	}
	if len(res.Columns) > 0 {
		chart, err := lineChart(res.Table, res.Columns)
		if err != nil {
			logging.FromContext(ctx).WithError(err).Error("line chart failed")
			p.Error = "Error visualizing CSV: " + err.Error()
		}
		p.Chart = chart
	}
	s.render(w, r, http.StatusOK, "csv", p)
}

type studyPlanView struct {
	Subjects []string
	MinHours int
	MaxHours int
}

func (s *Server) handleStudyPlan(w http.ResponseWriter, r *http.Request) {
	p := s.newPage(feature.KindStudyPlan)
	p.Extra = studyPlanView{Subjects: studyplan.Subjects(), MinHours: studyplan.MinHours, MaxHours: studyplan.MaxHours}
	p.Form["hours"] = strconv.Itoa(studyplan.DefaultHours)
	p.Form["deadline"] = time.Now().Format(prompt.DateLayout)
	if r.Method != http.MethodPost {
		s.render(w, r, http.StatusOK, "study-plan", p)
		return
	}

	if err := r.ParseForm(); err != nil {
		p.fail(feature.KindStudyPlan, err)
		s.render(w, r, http.StatusBadRequest, "study-plan", p)
		return
	}
	req := feature.StudyPlanRequest{
		Name:     r.FormValue("name"),
		Hours:    formInt(r, "hours", studyplan.DefaultHours),
		Subjects: r.Form["subjects"],
	}
	if d := r.FormValue("deadline"); d != "" {
		t, err := time.Parse(prompt.DateLayout, d)
		if err != nil {
			p.fail(feature.KindStudyPlan, &feature.ValidationError{Field: "deadline", Message: "Please pick a valid exam date."})
			s.render(w, r, http.StatusBadRequest, "study-plan", p)
			return
		}
		req.Deadline = t
		p.Form["deadline"] = d
	}
	p.Form["name"] = req.Name
	p.Form["hours"] = strconv.Itoa(req.Hours)
	for _, sub := range req.Subjects {
		p.Checked[sub] = true
	}
	s.show(w, r, "study-plan", p, req)
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := s.newPage(feature.KindInteractiveQuiz)
	p.FlashClass, p.Flash = s.popFlash(ctx)

	qs := s.loadQuiz(ctx)
	res, err := s.router.Route(ctx, feature.QuizRequest{Session: qs})
	if err != nil {
		p.fail(feature.KindInteractiveQuiz, err)
		s.render(w, r, statusFor(err), "quiz", p)
		return
	}
	s.saveQuiz(ctx, qs)
	p.Result = res
	s.render(w, r, http.StatusOK, "quiz", p)
}

func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	qs := s.loadQuiz(ctx)

	res, err := s.router.Route(ctx, feature.QuizAnswerRequest{
		Session:  qs,
		Index:    formInt(r, "index", -1),
		Selected: r.FormValue("answer"),
	})
	switch {
	case err != nil:
		s.setFlash(ctx, "warning", feature.UserMessage(feature.KindInteractiveQuiz, err))
	case res.Feedback.Correct:
		s.setFlash(ctx, "success", res.Feedback.Message())
	default:
		s.setFlash(ctx, "error", res.Feedback.Message())
	}
	s.saveQuiz(ctx, qs)
	http.Redirect(w, r, "/quiz", http.StatusSeeOther)
}

func (s *Server) handleQuizRestart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	qs := s.loadQuiz(ctx)

	if _, err := s.router.Route(ctx, feature.QuizRestartRequest{Session: qs}); err != nil {
		s.setFlash(ctx, "warning", feature.UserMessage(feature.KindInteractiveQuiz, err))
	}
	s.saveQuiz(ctx, qs)
	http.Redirect(w, r, "/quiz", http.StatusSeeOther)
}

// handleConceptMap runs one of two actions: "suggest" fills the
// subtopics field from the model, "generate" draws the map.
func (s *Server) handleConceptMap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := s.newPage(feature.KindConceptMap)
	if r.Method != http.MethodPost {
		s.render(w, r, http.StatusOK, "concept-map", p)
		return
	}

	topic := r.FormValue("topic")
	p.Form["topic"] = topic
	p.Form["subtopics"] = r.FormValue("subtopics")

	if r.FormValue("action") == "suggest" {
		res, err := s.router.Route(ctx, feature.SubtopicsRequest{Topic: topic})
		switch {
		case err == nil:
			p.Form["subtopics"] = res.Subtopics
			p.Form["suggested"] = "1"
		case statusFor(err) == http.StatusBadRequest:
			p.fail(feature.KindConceptMap, err)
		default:
			p.Warning = feature.SuggestionWarning(err)
		}
		s.render(w, r, http.StatusOK, "concept-map", p)
		return
	}

	res, err := s.router.Route(ctx, feature.ConceptMapRequest{Topic: topic, Subtopics: p.Form["subtopics"]})
	if err != nil {
		p.fail(feature.KindConceptMap, err)
		s.render(w, r, statusFor(err), "concept-map", p)
		return
	}
	p.Result = res
	chart, err := graphChart(res.Graph)
	if err != nil {
		logging.FromContext(ctx).WithError(err).Error("graph chart failed")
		p.Error = "Could not draw the concept map."
	}
	p.Chart = chart
	s.render(w, r, http.StatusOK, "concept-map", p)
}
