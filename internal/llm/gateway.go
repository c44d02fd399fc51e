package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// GatewayOptions tunes the requests a Gateway sends.
type GatewayOptions struct {
	MaxTokens   int
	Temperature float64
}

// Gateway is the single text-in, text-out entry point to the model.
// Each call is one-shot: no retries, no caching.
type Gateway struct {
	provider Provider
	cause    error
	opts     GatewayOptions
}

// NewGateway wraps a ready Provider.
func NewGateway(p Provider, opts GatewayOptions) *Gateway {
	if p == nil {
		return UnavailableGateway(nil)
	}
	return &Gateway{provider: p, opts: opts}
}

// UnavailableGateway returns a Gateway whose every call fails with
// ErrModelUnavailable. cause is reported by Cause.
func UnavailableGateway(cause error) *Gateway {
	return &Gateway{cause: cause}
}

// Available reports whether the gateway has a provider.
func (g *Gateway) Available() bool {
	return g != nil && g.provider != nil
}

// Cause returns the initialization failure of an unavailable gateway.
func (g *Gateway) Cause() error {
	if g == nil {
		return nil
	}
	return g.cause
}

// ModelID returns the backing model, or "" when unavailable.
func (g *Gateway) ModelID() string {
	if !g.Available() {
		return ""
	}
	return g.provider.ModelID()
}

// Generate sends prompt as a single user message and returns the text.
func (g *Gateway) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.call(ctx, prompt, nil)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(string(resp.Content))
	if text == "" {
		return "", &ProviderFailure{Message: "the model returned an empty response"}
	}
	return text, nil
}

// GenerateStructured requests JSON conforming to schema and decodes it
// into out.
func (g *Gateway) GenerateStructured(ctx context.Context, prompt string, schema *Schema, out any) error {
	if schema == nil {
		return fmt.Errorf("structured generation requires a schema")
	}

	resp, err := g.call(ctx, prompt, schema)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Content, out); err != nil {
		return &ProviderFailure{
			Message: fmt.Sprintf("could not decode %s response: %v", schema.Name, err),
			Err:     err,
		}
	}
	return nil
}

func (g *Gateway) call(ctx context.Context, prompt string, schema *Schema) (*Response, error) {
	if !g.Available() {
		return nil, &UnavailableError{Cause: g.Cause()}
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	req := UserRequest(prompt)
	req.Schema = schema
	req.MaxTokens = g.opts.MaxTokens
	req.Temperature = g.opts.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, &ProviderFailure{Message: err.Error(), Err: err}
	}
	return resp, nil
}
