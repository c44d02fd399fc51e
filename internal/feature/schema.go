package feature

import "github.com/r-sathish-02/Knowledge-Navigator-App/internal/llm"

// SubtopicsSchema constrains the subtopic suggestion to a single
// comma-separated string.
var SubtopicsSchema = &llm.Schema{
	Name:        "concept-subtopics",
	Description: "Key subtopics of a concept as one comma-separated string",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subtopics": map[string]any{
				"type":        "string",
				"description": "5-7 subtopics separated by commas, e.g. \"Chlorophyll, Light reactions, Calvin cycle\"",
				"minLength":   1,
			},
		},
		"required":             []any{"subtopics"},
		"additionalProperties": false,
	},
}

type subtopicsOutput struct {
	Subtopics string `json:"subtopics"`
}
