package web

import (
	"errors"
	"net/http"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/feature"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/llm"
	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/quiz"
)

// statusFor maps a feature error to an HTTP status.
func statusFor(err error) int {
	var ve *feature.ValidationError
	var ee *feature.ExtractionError
	var pf *llm.ProviderFailure
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &ee):
		return http.StatusUnprocessableEntity
	case errors.Is(err, llm.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &pf):
		return http.StatusBadGateway
	case errors.Is(err, quiz.ErrStaleAnswer),
		errors.Is(err, quiz.ErrQuizCompleted),
		errors.Is(err, quiz.ErrQuizInProgress):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// errorKind labels err for API clients.
func errorKind(err error) string {
	switch statusFor(err) {
	case http.StatusBadRequest:
		return "validation"
	case http.StatusUnprocessableEntity:
		return "extraction"
	case http.StatusServiceUnavailable:
		return "model_unavailable"
	case http.StatusBadGateway:
		return "provider_failure"
	case http.StatusConflict:
		return "quiz_state"
	}
	return "internal"
}
