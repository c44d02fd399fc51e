package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrModelUnavailable is returned by a Gateway that has no usable provider,
// typically because no API key is configured. No network call is made.
var ErrModelUnavailable = errors.New("AI model not available")

// ErrEmptyPrompt is returned when Generate is called with a blank prompt.
var ErrEmptyPrompt = errors.New("prompt must not be empty")

// UnavailableError carries the reason a Gateway could not be initialized.
// It matches ErrModelUnavailable under errors.Is.
type UnavailableError struct {
	Cause error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", ErrModelUnavailable, e.Cause)
	}
	return ErrModelUnavailable.Error()
}

func (e *UnavailableError) Is(target error) bool { return target == ErrModelUnavailable }

func (e *UnavailableError) Unwrap() error { return e.Cause }

// ProviderFailure indicates a call was attempted and the provider rejected
// it or errored. Message carries the provider detail for display.
type ProviderFailure struct {
	Message string
	Err     error
}

func (e *ProviderFailure) Error() string {
	return e.Message
}

func (e *ProviderFailure) Unwrap() error { return e.Err }

// ErrRateLimit is a 429 from the provider. Calls are never retried, so
// the user sees it as a provider failure.
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("model provider rate limit: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is a reply that is empty or fails the requested
// schema. Content holds what the model actually sent.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid model response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model provider unavailable: %v", e.Err)
	}
	return "model provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// classifyStatus maps a provider's HTTP status onto the error types above.
// 429 is a rate limit and 5xx an outage; anything else (bad key, blocked
// prompt, unknown model) is returned unchanged so the SDK detail survives.
func classifyStatus(status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case status >= http.StatusInternalServerError:
		return &ErrProviderUnavailable{Err: err}
	}
	return err
}
