package llm

import (
	"fmt"
	"net/http"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// openRouterTitle names the app on OpenRouter's usage dashboards.
	openRouterTitle = "Knowledge Navigator"
)

// OpenRouterProvider is an OpenAIProvider pointed at OpenRouter. Model IDs
// are vendor-prefixed ("google/gemini-2.0-flash-exp") and passed through
// unmapped. Structured output uses plain JSON mode because not every
// routed model supports strict schemas.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig, httpClient *http.Client) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	inner, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  cfg.APIKey,
		BaseURL: baseURL,
	}, withAttribution(httpClient, cfg.Referer))
	if err != nil {
		return nil, err
	}
	inner.model = cfg.Model
	inner.jsonObject = true

	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

// withAttribution returns a copy of c whose requests carry OpenRouter's
// app attribution headers.
func withAttribution(c *http.Client, referer string) *http.Client {
	out := &http.Client{}
	if c != nil {
		*out = *c
	}
	out.Transport = &attributionTransport{base: out.Transport, referer: referer}
	return out
}

type attributionTransport struct {
	base    http.RoundTripper
	referer string
}

func (t *attributionTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("X-Title", openRouterTitle)
	if t.referer != "" {
		r.Header.Set("HTTP-Referer", t.referer)
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(r)
}
