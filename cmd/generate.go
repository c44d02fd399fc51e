package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ingest"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/prompt"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/studyplan"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/ui/components"
)

var generateCmd = &cobra.Command{
	Use:   "generate <feature>",
	Short: "Run a single feature and print the result",
	Long: "Run one feature non-interactively. Features: mcq, pdf-qa, csv, research, " +
		"qa-evaluator, study-plan, concept-map, summary.\n\n" +
		"Text flags accept \"-\" to read from stdin.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := feature.ParseKind(args[0])
		if err != nil {
			return err
		}
		if kind == feature.KindHome || kind == feature.KindInteractiveQuiz {
			return fmt.Errorf("%s is interactive; use \"knav tui\" or \"knav serve\"", kind)
		}

		req, err := requestFromFlags(cmd, kind)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
			p, err := promptFor(req)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, p)
			return nil
		}

		rt, err := newRuntime(cmd, true)
		if err != nil {
			return err
		}
		defer rt.Close()

		timeout, _ := cmd.Flags().GetDuration("timeout")
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		// A concept map without subtopics asks the model for them first.
		if sub, ok := req.(feature.SubtopicsRequest); ok {
			res, err := rt.router.Route(ctx, sub)
			if err != nil {
				return errors.New(feature.UserMessage(kind, err))
			}
			fmt.Fprintf(out, "Suggested subtopics: %s\n\n", res.Subtopics)
			req = feature.ConceptMapRequest{Topic: sub.Topic, Subtopics: res.Subtopics}
		}

		res, err := rt.router.Route(ctx, req)
		if err != nil {
			return errors.New(feature.UserMessage(kind, err))
		}
		printResult(out, res)
		return nil
	},
}

// requestFromFlags builds the feature request. Input checks are left to
// the router so the CLI reports the same messages as the other
// front-ends.
func requestFromFlags(cmd *cobra.Command, kind feature.Kind) (feature.Request, error) {
	f := cmd.Flags()
	switch kind {
	case feature.KindMCQ:
		text, err := textFlag(cmd, "text")
		if err != nil {
			return nil, err
		}
		subject, _ := f.GetString("subject")
		count, _ := f.GetInt("count")
		return feature.MCQRequest{Text: text, Count: count, Subject: subject}, nil

	case feature.KindPDFQA:
		data, err := fileFlag(cmd)
		if err != nil {
			return nil, err
		}
		return feature.PDFQARequest{Document: data}, nil

	case feature.KindCSVVisualization:
		data, err := fileFlag(cmd)
		if err != nil {
			return nil, err
		}
		req := feature.CSVRequest{Data: data}
		if f.Changed("columns") {
			cols, _ := f.GetStringSlice("columns")
			req.Columns = append([]string{}, cols...)
		}
		return req, nil

	case feature.KindResearch:
		query, err := textFlag(cmd, "query")
		if err != nil {
			return nil, err
		}
		return feature.ResearchRequest{Query: query}, nil

	case feature.KindQAEvaluator:
		path, _ := f.GetString("file")
		data, err := fileFlag(cmd)
		if err != nil {
			return nil, err
		}
		return feature.QAEvaluatorRequest{Filename: path, Data: data}, nil

	case feature.KindStudyPlan:
		name, _ := f.GetString("name")
		hours, _ := f.GetInt("hours")
		subjects, _ := f.GetStringSlice("subjects")
		req := feature.StudyPlanRequest{Name: name, Hours: hours, Subjects: subjects}
		if d, _ := f.GetString("deadline"); d != "" {
			t, err := time.Parse(prompt.DateLayout, d)
			if err != nil {
				return nil, fmt.Errorf("invalid --deadline %q: want YYYY-MM-DD", d)
			}
			req.Deadline = t
		}
		return req, nil

	case feature.KindConceptMap:
		topic, _ := f.GetString("topic")
		subtopics, _ := f.GetString("subtopics")
		if strings.TrimSpace(subtopics) == "" {
			return feature.SubtopicsRequest{Topic: topic}, nil
		}
		return feature.ConceptMapRequest{Topic: topic, Subtopics: subtopics}, nil

	case feature.KindTopicSummary:
		text, err := textFlag(cmd, "text")
		if err != nil {
			return nil, err
		}
		return feature.SummaryRequest{Text: text}, nil
	}
	return nil, fmt.Errorf("unsupported feature %q", kind)
}

// textFlag returns the named string flag, reading stdin when it is "-".
func textFlag(cmd *cobra.Command, name string) (string, error) {
	v, _ := cmd.Flags().GetString(name)
	if v != "-" {
		return v, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// fileFlag reads --file. An unset flag yields nil so the router reports
// the missing upload.
func fileFlag(cmd *cobra.Command) ([]byte, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// promptFor returns the prompt req would send, without calling the model.
func promptFor(req feature.Request) (string, error) {
	switch r := req.(type) {
	case feature.MCQRequest:
		return prompt.Build(prompt.MCQ, prompt.Params{Text: r.Text, Count: r.Count, Subject: r.Subject}), nil
	case feature.PDFQARequest:
		text, err := ingest.ExtractText(r.Document)
		if err != nil {
			return "", fmt.Errorf("extract pdf text: %w", err)
		}
		return prompt.Build(prompt.PDFQA, prompt.Params{Text: text}), nil
	case feature.ResearchRequest:
		return prompt.Build(prompt.Research, prompt.Params{Query: r.Query}), nil
	case feature.SummaryRequest:
		return prompt.Build(prompt.Summary, prompt.Params{Text: r.Text}), nil
	case feature.StudyPlanRequest:
		return prompt.Build(prompt.StudyPlan, prompt.Params{
			Name:     r.Name,
			Hours:    r.Hours,
			Subjects: r.Subjects,
			Deadline: r.Deadline,
		}), nil
	case feature.SubtopicsRequest:
		return prompt.Build(prompt.Subtopics, prompt.Params{Concept: r.Topic}), nil
	}
	return "", fmt.Errorf("%s does not call the model", req.Kind())
}

func printResult(w io.Writer, res *feature.Result) {
	sep := strings.Repeat("─", 60)

	if res.Heading != "" {
		fmt.Fprintln(w, res.Heading)
		fmt.Fprintln(w, sep)
	}
	if res.Warning != "" {
		fmt.Fprintf(w, "Warning: %s\n", res.Warning)
	}
	for _, line := range res.Lines {
		fmt.Fprintln(w, line)
	}
	printPlan(w, res.Plan)
	if res.Text != "" {
		fmt.Fprintln(w, res.Text)
	}
	if res.Table != nil {
		printTable(w, res.Table, res.Columns)
	}
	if res.Graph != nil {
		fmt.Fprintln(w, res.Graph.Topic)
		for _, e := range res.Graph.Edges() {
			fmt.Fprintf(w, "  %s -> %s\n", e.From, e.To)
		}
	}
}

func printPlan(w io.Writer, plan []studyplan.Allocation) {
	for _, a := range plan {
		fmt.Fprintf(w, "  %s\n", a)
	}
}

func printTable(w io.Writer, t *ingest.Table, columns []string) {
	fmt.Fprintln(w, strings.Join(t.Headers(), "\t"))
	for _, row := range t.Head(5) {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	fmt.Fprintln(w)
	for _, name := range columns {
		values, err := t.Series(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%-16s  %s\n", truncate(name, 16), components.Sparkline(values, 48))
	}
}

func init() {
	addGenerateFlags(generateCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("text", "", "Source text (mcq, summary)")
	f.String("subject", "", "Subject (mcq)")
	f.Int("count", feature.DefaultMCQCount, "Number of questions (mcq)")
	f.String("query", "", "Research question (research)")
	f.String("file", "", "Input file (pdf-qa, csv, qa-evaluator)")
	f.StringSlice("columns", nil, "Numeric columns to chart (csv); default all")
	f.String("name", "", "Student name (study-plan)")
	f.Int("hours", studyplan.DefaultHours, "Study hours per day (study-plan)")
	f.StringSlice("subjects", nil, "Subjects, comma-separated (study-plan)")
	f.String("deadline", "", "Exam date as YYYY-MM-DD (study-plan)")
	f.String("topic", "", "Main topic (concept-map)")
	f.String("subtopics", "", "Comma-separated subtopics (concept-map); suggested when empty")
	f.Bool("dry-run", false, "Print the prompt instead of calling the model")
	f.Duration("timeout", 90*time.Second, "Model request timeout")
}
