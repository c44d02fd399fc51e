package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with the
// logging decorator. repo may be nil.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, log logrus.FieldLogger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := transport(cfg)

	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini, httpClient)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI, httpClient)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic, httpClient)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter, httpClient)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, cfg.Provider, repo, log), nil
}

// NewGatewayFromConfig builds a Gateway. Configuration or initialization
// failures yield an unavailable gateway carrying the cause rather than an
// error, so callers can keep serving the non-AI features.
func NewGatewayFromConfig(ctx context.Context, cfg Config, repo store.EventRepo, log logrus.FieldLogger) *Gateway {
	p, err := NewProvider(ctx, cfg, repo, log)
	if err != nil {
		return UnavailableGateway(err)
	}
	return NewGateway(p, GatewayOptions{MaxTokens: cfg.MaxTokens})
}

func transport(cfg Config) *http.Client {
	if cfg.Timeout <= 0 {
		return nil
	}
	return &http.Client{Timeout: cfg.Timeout}
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	// If not in the map, use as-is (allows direct model IDs).
	return name
}
