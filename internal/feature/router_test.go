package feature

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ingest/ingesttest"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/llm"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/quiz"
)

func mockRouter(responses ...llm.MockResponse) (*Router, *llm.MockProvider) {
	mock := llm.NewMockProvider(responses...)
	return NewRouter(llm.NewGateway(mock, llm.GatewayOptions{}), nil), mock
}

func TestMCQSendsPrompt(t *testing.T) {
	r, mock := mockRouter(llm.MockText("1. What is a cell?"))

	res, err := r.Route(context.Background(), MCQRequest{Text: "Cells are small.", Count: 3, Subject: "Biology"})
	require.NoError(t, err)
	assert.Equal(t, KindMCQ, res.Kind)
	assert.Equal(t, "1. What is a cell?", res.Text)

	require.Equal(t, 1, mock.CallCount())
	assert.Equal(t,
		"You are an expert MCQ maker. Generate 3 MCQs on Biology based on the following text: Cells are small.",
		mock.Calls[0].Messages[0].Content)
}

func TestMCQUnavailableMakesNoCall(t *testing.T) {
	r := NewRouter(llm.UnavailableGateway(errors.New("no key")), nil)

	_, err := r.Route(context.Background(), MCQRequest{Text: "t", Count: 5, Subject: "s"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrModelUnavailable))
	assert.Equal(t, "AI model not available. Please check API key configuration.", UserMessage(KindMCQ, err))
}

func TestMCQValidation(t *testing.T) {
	tests := []struct {
		name string
		req  MCQRequest
		want string
	}{
		{"no text", MCQRequest{Subject: "s", Count: 5}, "Please enter text and subject."},
		{"no subject", MCQRequest{Text: "t", Subject: "  ", Count: 5}, "Please enter text and subject."},
		{"zero count", MCQRequest{Text: "t", Subject: "s"}, "Number of MCQs must be between 1 and 10."},
		{"too many", MCQRequest{Text: "t", Subject: "s", Count: 11}, "Number of MCQs must be between 1 and 10."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, mock := mockRouter()
			_, err := r.Route(context.Background(), tt.req)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "err = %v", err)
			assert.Equal(t, tt.want, UserMessage(KindMCQ, err))
			assert.Zero(t, mock.CallCount())
		})
	}
}

func TestProviderFailureMessages(t *testing.T) {
	tests := []struct {
		req  Request
		want string
	}{
		{MCQRequest{Text: "t", Subject: "s", Count: 1}, "Error generating MCQs: quota exceeded"},
		{ResearchRequest{Query: "why?"}, "Error with Research Bot: quota exceeded"},
		{SummaryRequest{Text: "long text"}, "Error generating summary: quota exceeded"},
		{SubtopicsRequest{Topic: "Cells"}, "Could not generate subtopics: quota exceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.req.Kind().Slug(), func(t *testing.T) {
			r, mock := mockRouter(llm.MockResponse{Err: errors.New("quota exceeded")})

			_, err := r.Route(context.Background(), tt.req)
			var pf *llm.ProviderFailure
			require.True(t, errors.As(err, &pf), "err = %v", err)
			assert.Equal(t, tt.want, UserMessage(tt.req.Kind(), err))
			assert.Equal(t, 1, mock.CallCount())
		})
	}
}

func TestResearchAndSummary(t *testing.T) {
	r, mock := mockRouter(llm.MockText("Because."), llm.MockText("Short."))

	res, err := r.Route(context.Background(), ResearchRequest{Query: "Why is the sky blue?"})
	require.NoError(t, err)
	assert.Equal(t, "Because.", res.Text)

	res, err = r.Route(context.Background(), SummaryRequest{Text: "A long text."})
	require.NoError(t, err)
	assert.Equal(t, "Short.", res.Text)

	require.Equal(t, 2, mock.CallCount())
	assert.Equal(t, "You are a research assistant. Answer this research question: Why is the sky blue?",
		mock.Calls[0].Messages[0].Content)
	assert.Equal(t, "You are an expert summarizer. Summarize the following text concisely: A long text.",
		mock.Calls[1].Messages[0].Content)

	_, err = r.Route(context.Background(), ResearchRequest{})
	assert.Equal(t, "Please enter a research question.", UserMessage(KindResearch, err))
	_, err = r.Route(context.Background(), SummaryRequest{Text: " "})
	assert.Equal(t, "Please enter text to summarize.", UserMessage(KindTopicSummary, err))
}

func TestPDFQASendsExtractedText(t *testing.T) {
	r, mock := mockRouter(llm.MockText("Q: What does photosynthesis convert?"))

	res, err := r.Route(context.Background(), PDFQARequest{Document: ingesttest.OnePagePDF("Photosynthesis converts light")})
	require.NoError(t, err)

	assert.Equal(t, 1, mock.CallCount())
	assert.Equal(t, "You are an expert question generator. Generate Q&A based on the following text: Photosynthesis converts light", mock.LastPrompt())
	assert.Equal(t, "Generated Questions and Answers", res.Heading)
	assert.Equal(t, "Q: What does photosynthesis convert?", res.Text)
}

func TestPDFQARejectsUnreadableDocument(t *testing.T) {
	r, mock := mockRouter(llm.MockText("unused"))

	_, err := r.Route(context.Background(), PDFQARequest{Document: []byte("not a pdf")})
	var ee *ExtractionError
	require.True(t, errors.As(err, &ee), "err = %v", err)
	assert.Equal(t, "pdf", ee.Source)
	assert.Equal(t, "Could not extract text from PDF.", UserMessage(KindPDFQA, err))
	assert.Zero(t, mock.CallCount())

	_, err = r.Route(context.Background(), PDFQARequest{})
	assert.Equal(t, "Please upload a PDF file.", UserMessage(KindPDFQA, err))
}

func TestCSVSelectsNumericColumns(t *testing.T) {
	r, _ := mockRouter()
	data := []byte("name,score,age\nada,90,36\nbob,85,41\n")

	res, err := r.Route(context.Background(), CSVRequest{Data: data})
	require.NoError(t, err)
	assert.Equal(t, []string{"score", "age"}, res.Columns)
	assert.Empty(t, res.Warning)
	require.NotNil(t, res.Table)

	res, err = r.Route(context.Background(), CSVRequest{Data: data, Columns: []string{"age", "name", "bogus", "age"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"age"}, res.Columns)

	res, err = r.Route(context.Background(), CSVRequest{Data: data, Columns: []string{}})
	require.NoError(t, err)
	assert.Empty(t, res.Columns)
	assert.Equal(t, "Please select at least one numerical column.", res.Warning)
}

func TestCSVScoreColumn(t *testing.T) {
	r, _ := mockRouter()
	res, err := r.Route(context.Background(), CSVRequest{Data: []byte("name,score\nada,1\n")})
	require.NoError(t, err)
	assert.Equal(t, []string{"score"}, res.Table.NumericColumns())
}

func TestCSVWithoutNumericColumns(t *testing.T) {
	r, _ := mockRouter()
	_, err := r.Route(context.Background(), CSVRequest{Data: []byte("city\nParis\n")})

	var ee *ExtractionError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "No numerical columns found for visualization.", UserMessage(KindCSVVisualization, err))
}

func TestQAEvaluator(t *testing.T) {
	r, _ := mockRouter()

	for _, name := range []string{"answers.pdf", "scan.JPG", "photo.jpeg", "sheet.png"} {
		res, err := r.Route(context.Background(), QAEvaluatorRequest{Filename: name})
		require.NoError(t, err, name)
		assert.Equal(t, "Q&A Evaluator is under construction.", res.Text)
	}

	for _, name := range []string{"", "notes.txt", "pdf"} {
		_, err := r.Route(context.Background(), QAEvaluatorRequest{Filename: name})
		assert.Equal(t, "Please upload a PDF or image file.", UserMessage(KindQAEvaluator, err), name)
	}
}

func TestStudyPlanDetailed(t *testing.T) {
	r, mock := mockRouter(llm.MockText("## Week 1"))
	deadline := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)

	res, err := r.Route(context.Background(), StudyPlanRequest{
		Name: "Ada", Hours: 4, Subjects: []string{"Math", "Arts"}, Deadline: deadline,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Study plan for Ada generated!", "Study 4 hours every day:"}, res.Lines)
	assert.Equal(t, "## Week 1", res.Text)
	assert.Empty(t, res.Plan)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "The exam is on 2026-11-02.")
}

func TestStudyPlanFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		router  *Router
		warning string
	}{
		{
			"unavailable",
			NewRouter(llm.UnavailableGateway(nil), nil),
			"AI model not available. Please check API key configuration.",
		},
		{
			"provider failure",
			NewRouter(llm.NewGateway(llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")}), llm.GatewayOptions{}), nil),
			"Could not generate detailed study plan: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.router.Route(context.Background(), StudyPlanRequest{
				Name: "Ada", Hours: 3, Subjects: []string{"Math", "Science"},
			})
			require.NoError(t, err)
			assert.Equal(t, tt.warning, res.Warning)
			require.Len(t, res.Plan, 2)
			assert.Equal(t, "Math: 1.50 hours per day (basic allocation)", res.Plan[0].String())
			assert.Empty(t, res.Text)
		})
	}
}

func TestStudyPlanValidation(t *testing.T) {
	r, mock := mockRouter()
	tests := []struct {
		req  StudyPlanRequest
		want string
	}{
		{StudyPlanRequest{Hours: 3, Subjects: []string{"Math"}}, "Please enter all the details!"},
		{StudyPlanRequest{Name: "Ada", Hours: 3}, "Please enter all the details!"},
		{StudyPlanRequest{Name: "Ada", Hours: 0, Subjects: []string{"Math"}}, "Study hours must be between 1 and 12."},
		{StudyPlanRequest{Name: "Ada", Hours: 13, Subjects: []string{"Math"}}, "Study hours must be between 1 and 12."},
		{StudyPlanRequest{Name: "Ada", Hours: 2, Subjects: []string{"Cooking"}}, `Unknown subject "Cooking".`},
	}
	for _, tt := range tests {
		_, err := r.Route(context.Background(), tt.req)
		assert.Equal(t, tt.want, UserMessage(KindStudyPlan, err))
	}
	assert.Zero(t, mock.CallCount())
}

func TestQuizFlow(t *testing.T) {
	r, _ := mockRouter()
	s := &quiz.Session{}
	ctx := context.Background()

	res, err := r.Route(ctx, QuizRequest{Session: s})
	require.NoError(t, err)
	require.NotNil(t, res.Quiz.Question)
	assert.Equal(t, "What is the capital of France?", res.Quiz.Question.Text)

	res, err = r.Route(ctx, QuizAnswerRequest{Session: s, Index: 0, Selected: "Paris"})
	require.NoError(t, err)
	require.NotNil(t, res.Feedback)
	assert.Equal(t, "Correct!", res.Feedback.Message())
	assert.Equal(t, 1, s.Score)
	assert.Equal(t, 1, s.CurrentQuestionIndex)

	_, err = r.Route(ctx, QuizAnswerRequest{Session: s, Index: 0, Selected: "Paris"})
	assert.True(t, errors.Is(err, quiz.ErrStaleAnswer))
	assert.Equal(t, 1, s.Score)

	_, err = r.Route(ctx, QuizRestartRequest{Session: s})
	assert.True(t, errors.Is(err, quiz.ErrQuizInProgress))

	res, err = r.Route(ctx, QuizAnswerRequest{Session: s, Index: 1, Selected: "Tolkien"})
	require.NoError(t, err)
	assert.Equal(t, "Wrong! Correct answer is Shakespeare", res.Feedback.Message())
	assert.Nil(t, res.Quiz.Question)
	assert.Equal(t, []string{"Quiz completed!", "Your total score: 1/2"}, res.Quiz.Summary)

	res, err = r.Route(ctx, QuizRestartRequest{Session: s})
	require.NoError(t, err)
	assert.Equal(t, quiz.PhaseActive, res.Quiz.State.Phase)
	assert.Equal(t, quiz.Session{}, *s)
}

func TestQuizAnswerRequiresSelection(t *testing.T) {
	r, _ := mockRouter()
	_, err := r.Route(context.Background(), QuizAnswerRequest{Session: &quiz.Session{}})
	assert.Equal(t, "Please choose an answer.", UserMessage(KindInteractiveQuiz, err))

	_, err = r.Route(context.Background(), QuizRequest{})
	assert.Error(t, err)
}

func TestSubtopicsSuggestion(t *testing.T) {
	r, mock := mockRouter(llm.MockText(`{"subtopics": " Chlorophyll, Light reactions "}`))
	res, err := r.Route(context.Background(), SubtopicsRequest{Topic: "Photosynthesis"})
	require.NoError(t, err)
	assert.Equal(t, "Chlorophyll, Light reactions", res.Subtopics)

	require.Equal(t, 1, mock.CallCount())
	call := mock.Calls[0]
	assert.Equal(t, SubtopicsSchema, call.Schema)
	assert.Equal(t,
		"Generate 5-7 key subtopics for the concept: 'Photosynthesis'. List them as a comma-separated string.",
		call.Messages[0].Content)

	_, err = r.Route(context.Background(), SubtopicsRequest{})
	assert.Equal(t, "Please enter a topic.", UserMessage(KindConceptMap, err))
}

func TestConceptMap(t *testing.T) {
	r, mock := mockRouter()

	res, err := r.Route(context.Background(), ConceptMapRequest{Topic: "Cells", Subtopics: "A, B, C, A"})
	require.NoError(t, err)
	require.NotNil(t, res.Graph)
	assert.Len(t, res.Graph.Nodes(), 4)
	assert.Len(t, res.Graph.Edges(), 3)
	assert.Zero(t, mock.CallCount())

	for _, req := range []ConceptMapRequest{{Topic: "Cells"}, {Subtopics: "A"}, {Topic: "Cells", Subtopics: " , "}} {
		_, err := r.Route(context.Background(), req)
		assert.Equal(t, "Please enter both topic and subtopics.", UserMessage(KindConceptMap, err))
	}
}

func TestHome(t *testing.T) {
	r, _ := mockRouter()
	res, err := r.Route(context.Background(), HomeRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Knowledge Navigator", res.Heading)
	assert.Len(t, res.Lines, 5)
	assert.True(t, strings.HasPrefix(res.Text, "Knowledge Navigator is your AI-powered educational assistant!"))
}

func TestRouteNil(t *testing.T) {
	r, _ := mockRouter()
	_, err := r.Route(context.Background(), nil)
	assert.Error(t, err)
}

func TestSuggestionWarning(t *testing.T) {
	assert.Equal(t, "AI model not available for subtopic suggestion.", SuggestionWarning(llm.ErrModelUnavailable))
	assert.Equal(t, "Could not generate subtopics: quota. Please enter manually.",
		SuggestionWarning(&llm.ProviderFailure{Message: "quota"}))
}

func TestCSVRejectsRowsWiderThanHeader(t *testing.T) {
	r, _ := mockRouter()

	_, err := r.Route(context.Background(), CSVRequest{Data: []byte("name,score\nada,90,extra\n")})
	var ee *ExtractionError
	require.True(t, errors.As(err, &ee), "err = %v", err)
	assert.Equal(t, "Error visualizing CSV: expected 2 fields in line 2, saw 3", UserMessage(KindCSVVisualization, err))
}
