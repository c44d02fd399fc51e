package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_UnavailableMakesNoCall(t *testing.T) {
	cause := errors.New("GOOGLE_API_KEY is required")
	g := UnavailableGateway(cause)

	_, err := g.Generate(context.Background(), "Generate 5 MCQs on Biology")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModelUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.False(t, g.Available())
	assert.Empty(t, g.ModelID())
}

func TestGateway_NilProviderIsUnavailable(t *testing.T) {
	g := NewGateway(nil, GatewayOptions{})
	_, err := g.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrModelUnavailable)
}

func TestGateway_Generate(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage("  Paris is the capital.\n")})
	g := NewGateway(mock, GatewayOptions{MaxTokens: 512})

	text, err := g.Generate(context.Background(), "What is the capital of France?")
	require.NoError(t, err)
	assert.Equal(t, "Paris is the capital.", text)

	require.Equal(t, 1, mock.CallCount())
	call := mock.Calls[0]
	require.Len(t, call.Messages, 1)
	assert.Equal(t, RoleUser, call.Messages[0].Role)
	assert.Equal(t, "What is the capital of France?", call.Messages[0].Content)
	assert.Equal(t, 512, call.MaxTokens)
	assert.Nil(t, call.Schema)
}

func TestGateway_ProviderFailureCarriesMessage(t *testing.T) {
	providerErr := &ErrRateLimit{Err: errors.New("quota exceeded")}
	mock := NewMockProvider(MockResponse{Err: providerErr})
	g := NewGateway(mock, GatewayOptions{})

	_, err := g.Generate(context.Background(), "prompt")

	var pf *ProviderFailure
	require.True(t, errors.As(err, &pf), "expected ProviderFailure, got %T", err)
	assert.Contains(t, pf.Message, "quota exceeded")
	assert.NotErrorIs(t, err, ErrModelUnavailable)

	var rl *ErrRateLimit
	assert.True(t, errors.As(err, &rl), "provider error should stay in the chain")
	assert.Equal(t, 1, mock.CallCount(), "failures are not retried")
}

func TestGateway_EmptyResponseIsFailure(t *testing.T) {
	g := NewGateway(NewMockProvider(MockResponse{Content: json.RawMessage("   ")}), GatewayOptions{})

	_, err := g.Generate(context.Background(), "prompt")
	var pf *ProviderFailure
	assert.True(t, errors.As(err, &pf))
}

func TestGateway_EmptyPrompt(t *testing.T) {
	mock := NewMockProvider()
	g := NewGateway(mock, GatewayOptions{})

	_, err := g.Generate(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
	assert.Zero(t, mock.CallCount())
}

func TestGateway_GenerateStructured(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"subtopics":"Light, Water, Chlorophyll"}`)})
	g := NewGateway(mock, GatewayOptions{})

	var out struct {
		Subtopics string `json:"subtopics"`
	}
	err := g.GenerateStructured(context.Background(), "subtopics please", subtopicsSchema(), &out)
	require.NoError(t, err)
	assert.Equal(t, "Light, Water, Chlorophyll", out.Subtopics)
	assert.Equal(t, "test-subtopics", mock.Calls[0].Schema.Name)
}

func TestGateway_GenerateStructuredDecodeFailure(t *testing.T) {
	g := NewGateway(NewMockProvider(MockResponse{Content: json.RawMessage(`not json`)}), GatewayOptions{})

	var out map[string]string
	err := g.GenerateStructured(context.Background(), "p", subtopicsSchema(), &out)
	var pf *ProviderFailure
	assert.True(t, errors.As(err, &pf))
}

func TestGateway_GenerateStructuredRequiresSchema(t *testing.T) {
	mock := NewMockProvider()
	g := NewGateway(mock, GatewayOptions{})

	var out map[string]string
	assert.Error(t, g.GenerateStructured(context.Background(), "p", nil, &out))
	assert.Zero(t, mock.CallCount())
}

func TestNewGatewayFromConfig_MissingKey(t *testing.T) {
	g := NewGatewayFromConfig(context.Background(), Config{Provider: "gemini"}, nil, nil)

	assert.False(t, g.Available())
	require.Error(t, g.Cause())
	assert.Contains(t, g.Cause().Error(), "GOOGLE_API_KEY")
}

func TestNewGatewayFromConfig_Mock(t *testing.T) {
	g := NewGatewayFromConfig(context.Background(), Config{Provider: "mock"}, nil, nil)

	assert.True(t, g.Available())
	assert.Equal(t, "mock", g.ModelID())
}
