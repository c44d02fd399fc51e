package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// anthropicStub serves one canned Messages API reply and keeps the last
// request body.
type anthropicStub struct {
	status int
	reply  map[string]any
	body   map[string]any
}

func (s *anthropicStub) provider(t *testing.T) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.body = nil
		_ = json.NewDecoder(r.Body).Decode(&s.body)
		w.Header().Set("Content-Type", "application/json")
		if s.status != 0 {
			w.WriteHeader(s.status)
		}
		_ = json.NewEncoder(w).Encode(s.reply)
	}))
	t.Cleanup(srv.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func anthropicMessage(stop string, blocks ...map[string]any) map[string]any {
	return map[string]any{
		"id":          "msg_01",
		"type":        "message",
		"role":        "assistant",
		"model":       "claude-haiku-4-5-20251001",
		"content":     blocks,
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 120, "output_tokens": 45},
	}
}

func TestAnthropicProvider_JoinsTextBlocks(t *testing.T) {
	stub := &anthropicStub{reply: anthropicMessage("end_turn",
		map[string]any{"type": "text", "text": "Mitochondria make ATP. "},
		map[string]any{"type": "text", "text": "Ribosomes make proteins."},
	)}
	p := stub.provider(t)

	resp, err := p.Generate(context.Background(), Request{
		System:   "You are a biology tutor.",
		Messages: []Message{{Role: RoleUser, Content: "Explain organelles."}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Mitochondria make ATP. Ribosomes make proteins.", string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 120, OutputTokens: 45, TotalTokens: 165}, resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.EqualValues(t, defaultAnthropicMaxTokens, stub.body["max_tokens"])
	assert.NotNil(t, stub.body["system"])
}

func TestAnthropicProvider_TruncatedStructuredReply(t *testing.T) {
	stub := &anthropicStub{reply: anthropicMessage("max_tokens",
		map[string]any{"type": "text", "text": "```json\n{\"subtopics\": \"Osmosis\"}\n```"},
	)}
	p := stub.provider(t)

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Cell transport"}},
		Schema:    subtopicsSchema(),
		MaxTokens: 64,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"subtopics": "Osmosis"}`, string(resp.Content))
	assert.Equal(t, StopMaxTokens, resp.StopReason)
	assert.EqualValues(t, 64, stub.body["max_tokens"])
}

func TestAnthropicProvider_NoTextBlock(t *testing.T) {
	stub := &anthropicStub{reply: anthropicMessage("end_turn")}
	_, err := stub.provider(t).Generate(context.Background(), UserRequest("hi"))

	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestAnthropicProvider_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   string
		check  func(error) bool
	}{
		{"rate limited", http.StatusTooManyRequests, "rate_limit_error", func(err error) bool {
			var e *ErrRateLimit
			return errors.As(err, &e)
		}},
		{"overloaded", 529, "overloaded_error", func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
		{"bad key passes through", http.StatusUnauthorized, "authentication_error", func(err error) bool {
			var e *anthropic.Error
			return errors.As(err, &e) && e.StatusCode == http.StatusUnauthorized
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &anthropicStub{status: tt.status, reply: map[string]any{
				"type":  "error",
				"error": map[string]any{"type": tt.kind, "message": tt.name},
			}}
			_, err := stub.provider(t).Generate(context.Background(), UserRequest("hi"))
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error %T: %v", err, err)
		})
	}
}

func TestAnthropicModelAliases(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "claude-haiku-4-5-20251001", resolveModel("claude-haiku", anthropicModels))
	assert.Equal(t, "claude-opus-4-1", resolveModel("claude-opus-4-1", anthropicModels))
}
