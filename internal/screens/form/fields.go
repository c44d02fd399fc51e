package form

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/conceptmap"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/prompt"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/studyplan"
)

// Field is one input on a feature form.
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Numeric     bool
	Default     string
}

// values maps field keys to the entered text.
type values map[string]string

type layout struct {
	fields []Field
	build  func(v values) (feature.Request, error)
}

// layoutFor returns the inputs for kind. Home and the quiz have no form.
func layoutFor(kind feature.Kind) (layout, bool) {
	switch kind {
	case feature.KindMCQ:
		return layout{
			fields: []Field{
				{Key: "text", Label: "Enter text for MCQ generation", Placeholder: "Paste study material..."},
				{Key: "count", Label: "Number of MCQs", Numeric: true, Default: strconv.Itoa(feature.DefaultMCQCount)},
				{Key: "subject", Label: "Enter the subject", Placeholder: "e.g. Biology"},
			},
			build: func(v values) (feature.Request, error) {
				return feature.MCQRequest{
					Text:    v["text"],
					Count:   atoi(v["count"], feature.DefaultMCQCount),
					Subject: v["subject"],
				}, nil
			},
		}, true

	case feature.KindPDFQA:
		return layout{
			fields: []Field{
				{Key: "path", Label: "Path to a PDF file", Placeholder: "notes.pdf"},
			},
			build: func(v values) (feature.Request, error) {
				_, data, err := readFile(v["path"])
				if err != nil {
					return nil, err
				}
				return feature.PDFQARequest{Document: data}, nil
			},
		}, true

	case feature.KindCSVVisualization:
		return layout{
			fields: []Field{
				{Key: "path", Label: "Path to a CSV file", Placeholder: "data.csv"},
				{Key: "columns", Label: "Columns to chart (comma-separated, blank for all numeric)"},
			},
			build: func(v values) (feature.Request, error) {
				_, data, err := readFile(v["path"])
				if err != nil {
					return nil, err
				}
				req := feature.CSVRequest{Data: data}
				if strings.TrimSpace(v["columns"]) != "" {
					req.Columns = conceptmap.ParseSubtopics(v["columns"])
				}
				return req, nil
			},
		}, true

	case feature.KindResearch:
		return layout{
			fields: []Field{
				{Key: "query", Label: "Enter your research question", Placeholder: "What causes tides?"},
			},
			build: func(v values) (feature.Request, error) {
				return feature.ResearchRequest{Query: v["query"]}, nil
			},
		}, true

	case feature.KindQAEvaluator:
		return layout{
			fields: []Field{
				{Key: "path", Label: "Path to an answer sheet (PDF or image)", Placeholder: "answers.pdf"},
			},
			build: func(v values) (feature.Request, error) {
				name, data, err := readFile(v["path"])
				if err != nil {
					return nil, err
				}
				return feature.QAEvaluatorRequest{Filename: name, Data: data}, nil
			},
		}, true

	case feature.KindStudyPlan:
		return layout{
			fields: []Field{
				{Key: "name", Label: "Your Name"},
				{Key: "hours", Label: "Study hours per day", Numeric: true, Default: strconv.Itoa(studyplan.DefaultHours)},
				{Key: "subjects", Label: "Subjects (" + strings.Join(studyplan.Subjects(), ", ") + ")", Placeholder: "Math, Science"},
				{Key: "deadline", Label: "Exam Date (YYYY-MM-DD)", Default: time.Now().Format(prompt.DateLayout)},
			},
			build: buildStudyPlan,
		}, true

	case feature.KindConceptMap:
		return layout{
			fields: []Field{
				{Key: "topic", Label: "Enter main topic", Placeholder: "Photosynthesis"},
				{Key: "subtopics", Label: "Enter Subtopics (comma-separated, blank to let AI suggest)"},
			},
			build: func(v values) (feature.Request, error) {
				if strings.TrimSpace(v["subtopics"]) == "" {
					return feature.SubtopicsRequest{Topic: v["topic"]}, nil
				}
				return feature.ConceptMapRequest{Topic: v["topic"], Subtopics: v["subtopics"]}, nil
			},
		}, true

	case feature.KindTopicSummary:
		return layout{
			fields: []Field{
				{Key: "text", Label: "Enter text for summarization", Placeholder: "Paste a long passage..."},
			},
			build: func(v values) (feature.Request, error) {
				return feature.SummaryRequest{Text: v["text"]}, nil
			},
		}, true
	}
	return layout{}, false
}

func buildStudyPlan(v values) (feature.Request, error) {
	req := feature.StudyPlanRequest{
		Name:  v["name"],
		Hours: atoi(v["hours"], studyplan.DefaultHours),
	}
	for _, s := range strings.Split(v["subjects"], ",") {
		if s = strings.TrimSpace(s); s != "" {
			req.Subjects = append(req.Subjects, s)
		}
	}
	if d := strings.TrimSpace(v["deadline"]); d != "" {
		t, err := time.Parse(prompt.DateLayout, d)
		if err != nil {
			return nil, &feature.ValidationError{Field: "deadline", Message: "Please enter the exam date as YYYY-MM-DD."}
		}
		req.Deadline = t
	}
	return req, nil
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// readFile loads the file at path. A blank path yields no data so the
// router reports the missing upload.
func readFile(path string) (string, []byte, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil, &feature.ValidationError{Field: "path", Message: "File not found: " + path}
	}
	if err != nil {
		return "", nil, &feature.ValidationError{Field: "path", Message: "Could not read file: " + err.Error()}
	}
	return filepath.Base(path), data, nil
}
