package llm

import (
	"context"
	"encoding/json"
)

// Provider is the transport-level abstraction over a hosted model API.
// Feature code talks to a Gateway, which wraps a Provider.
type Provider interface {
	// Generate sends a single request to the model. When req.Schema is set,
	// the provider asks for JSON conforming to it and validates the result.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is an optional system prompt.
	System string

	// Messages is the conversation. Knowledge Navigator always sends a
	// single user message holding the built prompt.
	Messages []Message

	// Schema, when set, asks for structured JSON output. When nil the
	// response Content is the raw text.
	Schema *Schema

	// MaxTokens caps the response length. Zero leaves the provider default.
	MaxTokens int

	// Temperature controls randomness. Zero leaves the provider default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema, e.g. "concept-subtopics".
	Name string

	// Description is sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the validated JSON object when a Schema was requested,
	// otherwise the raw response text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Normalized stop reasons. A truncated answer is still returned; the
// reason is kept in the request log.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// UserRequest builds a single-turn request for prompt.
func UserRequest(prompt string) Request {
	return Request{
		Messages: []Message{{Role: RoleUser, Content: prompt}},
	}
}
