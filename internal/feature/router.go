package feature

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/conceptmap"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ingest"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/llm"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/logging"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/prompt"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/quiz"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/studyplan"
)

// WelcomeTitle and WelcomeText make up the home page.
const (
	WelcomeTitle = "Welcome to Knowledge Navigator"
	WelcomeText  = "Knowledge Navigator is your AI-powered educational assistant! It provides a range of tools for both students and teachers, " +
		"including MCQ generation, PDF-based Q&A generation, CSV data visualization, and personalized study plans."
	WelcomeFooter = "Navigate to different features using the sidebar to explore the various functionalities."
)

// WelcomeBullets lists what the home page advertises.
var WelcomeBullets = []string{
	"Generate MCQs from any text for effective revision.",
	"Upload PDFs and get automated Q&A.",
	"Visualize CSV data files easily.",
	"Use the Research Bot to get answers to your academic queries.",
	"Create personalized study plans and take interactive quizzes.",
}

// QAEvaluatorExtensions are the upload types the evaluator accepts.
var QAEvaluatorExtensions = []string{".pdf", ".jpg", ".jpeg", ".png"}

// Router dispatches feature requests. It holds no per-user state and is
// safe for concurrent use.
type Router struct {
	gateway *llm.Gateway
	quiz    *quiz.Engine
}

// NewRouter creates a Router. A nil engine uses the built-in quiz.
func NewRouter(gateway *llm.Gateway, engine *quiz.Engine) *Router {
	if gateway == nil {
		gateway = llm.UnavailableGateway(nil)
	}
	if engine == nil {
		engine = quiz.Default()
	}
	return &Router{gateway: gateway, quiz: engine}
}

// Gateway returns the model gateway the router calls.
func (r *Router) Gateway() *llm.Gateway { return r.gateway }

// Quiz returns the quiz engine.
func (r *Router) Quiz() *quiz.Engine { return r.quiz }

// Route validates req, runs the feature and returns its result.
func (r *Router) Route(ctx context.Context, req Request) (*Result, error) {
	if req == nil {
		return nil, errors.New("nil feature request")
	}

	var (
		res *Result
		err error
	)
	switch req := req.(type) {
	case HomeRequest:
		res = r.home()
	case MCQRequest:
		res, err = r.mcq(ctx, req)
	case PDFQARequest:
		res, err = r.pdfQA(ctx, req)
	case CSVRequest:
		res, err = r.csv(req)
	case ResearchRequest:
		res, err = r.research(ctx, req)
	case QAEvaluatorRequest:
		res, err = r.qaEvaluator(req)
	case StudyPlanRequest:
		res, err = r.studyPlan(ctx, req)
	case QuizRequest:
		res, err = r.quizState(req.Session)
	case QuizAnswerRequest:
		res, err = r.quizAnswer(req)
	case QuizRestartRequest:
		res, err = r.quizRestart(req)
	case SubtopicsRequest:
		res, err = r.subtopics(ctx, req)
	case ConceptMapRequest:
		res, err = r.conceptMap(req)
	case SummaryRequest:
		res, err = r.summary(ctx, req)
	default:
		return nil, fmt.Errorf("unsupported feature request %T", req)
	}

	log := logging.FromContext(ctx).WithField("feature", req.Kind().Slug())
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			log.WithField("field", ve.Field).Debug("request rejected")
		} else {
			log.WithError(err).Warn("feature failed")
		}
		return nil, err
	}
	res.Kind = req.Kind()
	log.Debug("feature served")
	return res, nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (r *Router) generate(ctx context.Context, kind prompt.Kind, p prompt.Params) (string, error) {
	ctx = llm.WithPurpose(ctx, kind.String())
	return r.gateway.Generate(ctx, prompt.Build(kind, p))
}

func (r *Router) home() *Result {
	return &Result{
		Heading: WelcomeTitle,
		Text:    WelcomeText,
		Lines:   slices.Clone(WelcomeBullets),
	}
}

func (r *Router) mcq(ctx context.Context, req MCQRequest) (*Result, error) {
	if blank(req.Text) || blank(req.Subject) {
		return nil, invalid("text", "Please enter text and subject.")
	}
	if req.Count < MinMCQCount || req.Count > MaxMCQCount {
		return nil, invalid("count", fmt.Sprintf("Number of MCQs must be between %d and %d.", MinMCQCount, MaxMCQCount))
	}

	out, err := r.generate(ctx, prompt.MCQ, prompt.Params{
		Text:    req.Text,
		Count:   req.Count,
		Subject: req.Subject,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Heading: "Generated MCQs", Text: out}, nil
}

func (r *Router) pdfQA(ctx context.Context, req PDFQARequest) (*Result, error) {
	if len(req.Document) == 0 {
		return nil, invalid("document", "Please upload a PDF file.")
	}

	text, err := ingest.ExtractText(req.Document)
	if err != nil {
		return nil, &ExtractionError{Source: "pdf", Message: "Could not extract text from PDF.", Err: err}
	}
	if blank(text) {
		return nil, &ExtractionError{Source: "pdf", Message: "Could not extract text from PDF."}
	}

	out, err := r.generate(ctx, prompt.PDFQA, prompt.Params{Text: text})
	if err != nil {
		return nil, err
	}
	return &Result{Heading: "Generated Questions and Answers", Text: out}, nil
}

func (r *Router) csv(req CSVRequest) (*Result, error) {
	if len(req.Data) == 0 {
		return nil, invalid("data", "Please upload a CSV file.")
	}

	tbl, err := ingest.LoadTable(req.Data)
	if err != nil {
		return nil, &ExtractionError{Source: "csv", Message: "Error visualizing CSV: " + err.Error(), Err: err}
	}

	numeric := tbl.NumericColumns()
	if len(numeric) == 0 {
		return nil, &ExtractionError{Source: "csv", Message: "No numerical columns found for visualization."}
	}

	res := &Result{Heading: "Data Visualization", Table: tbl}
	if req.Columns == nil {
		res.Columns = numeric
		return res, nil
	}

	selected := []string{}
	for _, c := range req.Columns {
		if slices.Contains(numeric, c) && !slices.Contains(selected, c) {
			selected = append(selected, c)
		}
	}
	res.Columns = selected
	if len(selected) == 0 {
		res.Warning = "Please select at least one numerical column."
	}
	return res, nil
}

func (r *Router) research(ctx context.Context, req ResearchRequest) (*Result, error) {
	if blank(req.Query) {
		return nil, invalid("query", "Please enter a research question.")
	}

	out, err := r.generate(ctx, prompt.Research, prompt.Params{Query: req.Query})
	if err != nil {
		return nil, err
	}
	return &Result{Heading: "Research Bot Answer", Text: out}, nil
}

func (r *Router) qaEvaluator(req QAEvaluatorRequest) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(req.Filename))
	if !slices.Contains(QAEvaluatorExtensions, ext) {
		return nil, invalid("file", "Please upload a PDF or image file.")
	}
	return &Result{Heading: "Evaluation Results", Text: "Q&A Evaluator is under construction."}, nil
}

func (r *Router) studyPlan(ctx context.Context, req StudyPlanRequest) (*Result, error) {
	if blank(req.Name) || len(req.Subjects) == 0 {
		return nil, invalid("name", "Please enter all the details!")
	}
	if req.Hours < studyplan.MinHours || req.Hours > studyplan.MaxHours {
		return nil, invalid("hours", fmt.Sprintf("Study hours must be between %d and %d.", studyplan.MinHours, studyplan.MaxHours))
	}
	for _, s := range req.Subjects {
		if !studyplan.IsSubject(s) {
			return nil, invalid("subjects", fmt.Sprintf("Unknown subject %q.", s))
		}
	}

	res := &Result{
		Heading: "Personalized Study Plan",
		Lines:   studyplan.Header(req.Name, req.Hours),
	}

	out, err := r.generate(ctx, prompt.StudyPlan, prompt.Params{
		Name:     req.Name,
		Hours:    req.Hours,
		Subjects: req.Subjects,
		Deadline: req.Deadline,
	})
	var pf *llm.ProviderFailure
	switch {
	case err == nil:
		res.Text = out
	case errors.Is(err, llm.ErrModelUnavailable), errors.As(err, &pf):
		res.Warning = UserMessage(KindStudyPlan, err)
		res.Plan = studyplan.EvenSplit(float64(req.Hours), req.Subjects)
	default:
		return nil, err
	}
	return res, nil
}

func (r *Router) quizState(s *quiz.Session) (*Result, error) {
	if s == nil {
		return nil, errors.New("quiz request without a session")
	}

	st := r.quiz.State(s)
	view := &QuizView{State: st}
	if st.Phase == quiz.PhaseCompleted {
		view.Summary = []string{"Quiz completed!", r.quiz.ScoreLine(s)}
	} else {
		q, _ := r.quiz.Current(s)
		view.Question = &q
	}
	return &Result{Heading: "Interactive Quiz", Quiz: view}, nil
}

func (r *Router) quizAnswer(req QuizAnswerRequest) (*Result, error) {
	if req.Session == nil {
		return nil, errors.New("quiz request without a session")
	}
	if req.Selected == "" {
		return nil, invalid("answer", "Please choose an answer.")
	}

	fb, err := r.quiz.SubmitAnswer(req.Session, req.Index, req.Selected)
	if err != nil {
		return nil, err
	}

	res, err := r.quizState(req.Session)
	if err != nil {
		return nil, err
	}
	res.Feedback = &fb
	return res, nil
}

func (r *Router) quizRestart(req QuizRestartRequest) (*Result, error) {
	if req.Session == nil {
		return nil, errors.New("quiz request without a session")
	}
	if err := r.quiz.Restart(req.Session); err != nil {
		return nil, err
	}
	return r.quizState(req.Session)
}

func (r *Router) subtopics(ctx context.Context, req SubtopicsRequest) (*Result, error) {
	if blank(req.Topic) {
		return nil, invalid("topic", "Please enter a topic.")
	}

	ctx = llm.WithPurpose(ctx, prompt.Subtopics.String())
	var out subtopicsOutput
	p := prompt.Build(prompt.Subtopics, prompt.Params{Concept: req.Topic})
	if err := r.gateway.GenerateStructured(ctx, p, SubtopicsSchema, &out); err != nil {
		return nil, err
	}
	return &Result{
		Heading:   "Suggested Subtopics",
		Subtopics: strings.TrimSpace(out.Subtopics),
	}, nil
}

func (r *Router) conceptMap(req ConceptMapRequest) (*Result, error) {
	topic := strings.TrimSpace(req.Topic)
	subs := conceptmap.ParseSubtopics(req.Subtopics)
	if topic == "" || len(subs) == 0 {
		return nil, invalid("subtopics", "Please enter both topic and subtopics.")
	}
	return &Result{Heading: "Concept Map", Graph: conceptmap.Build(topic, subs)}, nil
}

func (r *Router) summary(ctx context.Context, req SummaryRequest) (*Result, error) {
	if blank(req.Text) {
		return nil, invalid("text", "Please enter text to summarize.")
	}

	out, err := r.generate(ctx, prompt.Summary, prompt.Params{Text: req.Text})
	if err != nil {
		return nil, err
	}
	return &Result{Heading: "Summary", Text: out}, nil
}
