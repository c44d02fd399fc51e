package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/conceptmap"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/store"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/studyplan"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/web"
)

func generateFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "generate"}
	addGenerateFlags(c)
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func TestRequestFromFlagsMCQ(t *testing.T) {
	c := generateFlags(t, "--text", "Photosynthesis converts light.", "--subject", "Science")

	req, err := requestFromFlags(c, feature.KindMCQ)
	require.NoError(t, err)
	assert.Equal(t, feature.MCQRequest{
		Text:    "Photosynthesis converts light.",
		Count:   feature.DefaultMCQCount,
		Subject: "Science",
	}, req)
}

func TestRequestFromFlagsStudyPlan(t *testing.T) {
	c := generateFlags(t, "--name", "Asha", "--subjects", "Math,History", "--deadline", "2026-12-01")

	req, err := requestFromFlags(c, feature.KindStudyPlan)
	require.NoError(t, err)

	plan, ok := req.(feature.StudyPlanRequest)
	require.True(t, ok)
	assert.Equal(t, "Asha", plan.Name)
	assert.Equal(t, studyplan.DefaultHours, plan.Hours)
	assert.Equal(t, []string{"Math", "History"}, plan.Subjects)
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), plan.Deadline)
}

func TestRequestFromFlagsBadDeadline(t *testing.T) {
	c := generateFlags(t, "--deadline", "next week")

	_, err := requestFromFlags(c, feature.KindStudyPlan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestRequestFromFlagsConceptMap(t *testing.T) {
	req, err := requestFromFlags(generateFlags(t, "--topic", "Physics"), feature.KindConceptMap)
	require.NoError(t, err)
	assert.Equal(t, feature.SubtopicsRequest{Topic: "Physics"}, req)

	req, err = requestFromFlags(generateFlags(t, "--topic", "Physics", "--subtopics", "Motion, Energy"), feature.KindConceptMap)
	require.NoError(t, err)
	assert.Equal(t, feature.ConceptMapRequest{Topic: "Physics", Subtopics: "Motion, Energy"}, req)
}

func TestRequestFromFlagsCSVColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,score\nA,1\n"), 0o644))

	req, err := requestFromFlags(generateFlags(t, "--file", path), feature.KindCSVVisualization)
	require.NoError(t, err)
	csv := req.(feature.CSVRequest)
	assert.Nil(t, csv.Columns, "unset --columns selects every numeric column")
	assert.Equal(t, "name,score\nA,1\n", string(csv.Data))

	req, err = requestFromFlags(generateFlags(t, "--file", path, "--columns", "score"), feature.KindCSVVisualization)
	require.NoError(t, err)
	assert.Equal(t, []string{"score"}, req.(feature.CSVRequest).Columns)
}

func TestRequestFromFlagsMissingFile(t *testing.T) {
	c := generateFlags(t, "--file", filepath.Join(t.TempDir(), "missing.pdf"))

	_, err := requestFromFlags(c, feature.KindPDFQA)
	require.Error(t, err)
}

func TestTextFlagReadsStdin(t *testing.T) {
	c := generateFlags(t, "--text", "-")
	c.SetIn(strings.NewReader("piped text"))

	text, err := textFlag(c, "text")
	require.NoError(t, err)
	assert.Equal(t, "piped text", text)
}

func TestPromptFor(t *testing.T) {
	p, err := promptFor(feature.MCQRequest{Text: "cells", Count: 3, Subject: "Science"})
	require.NoError(t, err)
	assert.Equal(t, "You are an expert MCQ maker. Generate 3 MCQs on Science based on the following text: cells", p)

	p, err = promptFor(feature.SubtopicsRequest{Topic: "Physics"})
	require.NoError(t, err)
	assert.Contains(t, p, "'Physics'")

	_, err = promptFor(feature.CSVRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not call the model")
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, &feature.Result{
		Heading: "Concept Map",
		Graph:   conceptmap.Build("Physics", []string{"Motion", "Energy"}),
	})

	out := buf.String()
	assert.Contains(t, out, "Concept Map\n")
	assert.Contains(t, out, "  Physics -> Motion\n")
	assert.Contains(t, out, "  Physics -> Energy\n")
}

func TestPrintResultPlan(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, &feature.Result{
		Warning: "Could not generate detailed study plan",
		Plan:    studyplan.EvenSplit(3, []string{"Math", "Arts"}),
	})

	out := buf.String()
	assert.Contains(t, out, "Warning: Could not generate detailed study plan\n")
	assert.Contains(t, out, "Math: 1.50 hours per day (basic allocation)")
}

func TestLLMStats(t *testing.T) {
	cost := 0.0021
	stats := web.LLMStats{
		Model:     "gemini-1.5-flash",
		Available: true,
		ByPurpose: []store.PurposeUsage{
			{Purpose: "mcq", Calls: 2, Failures: 1, InputTokens: 100, OutputTokens: 50, AvgLatencyMs: 420},
		},
		ByModel: []web.ModelCost{
			{ModelUsage: store.ModelUsage{Model: "gemini-1.5-flash", Calls: 1, InputTokens: 100, OutputTokens: 50}, CostUSD: &cost},
			{ModelUsage: store.ModelUsage{Model: "mystery-model", Calls: 1}},
		},
		TotalCost: cost,
		Unpriced:  true,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/llm/stats", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(stats)
	}))
	defer srv.Close()

	c := &cobra.Command{}
	c.SetContext(context.Background())

	got, err := fetchStats(c, srv.URL+"/")
	require.NoError(t, err)

	var buf bytes.Buffer
	printStats(&buf, got)
	out := buf.String()

	assert.Contains(t, out, "Model: gemini-1.5-flash")
	assert.Contains(t, out, "Usage by Purpose")
	assert.Contains(t, out, "mcq")
	assert.Contains(t, out, "$0.0021")
	assert.Contains(t, out, "TOTAL (partial)")
	assert.Contains(t, out, "Pricing unavailable for: mystery-model")
}

func TestLLMStatsEmpty(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, &web.LLMStats{})

	assert.Contains(t, buf.String(), "Model: not available")
	assert.Contains(t, buf.String(), "No model usage recorded yet.")
}

func TestFetchStatsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := &cobra.Command{}
	c.SetContext(context.Background())

	_, err := fetchStats(c, srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0050", formatCost(0.005))
	assert.Equal(t, "$1.25", formatCost(1.25))
}

func TestVersion(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "knav (devel)\n", buf.String())
}
