package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/r-sathish-02/Knowledge-Navigator-App/internal/store"
)

// LoggingProvider wraps a Provider, writing one log line and one request
// log entry per call.
type LoggingProvider struct {
	inner    Provider
	provider string
	events   store.EventRepo
	log      logrus.FieldLogger
}

// WithLogging wraps p. events and log may be nil.
func WithLogging(p Provider, providerName string, events store.EventRepo, log logrus.FieldLogger) Provider {
	if log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		log = quiet
	}
	return &LoggingProvider{inner: p, provider: providerName, events: events, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ev := store.LLMRequestEventData{
		CallID:      uuid.NewString(),
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		RequestBody: transcript(req),
	}

	began := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	ev.LatencyMs = time.Since(began).Milliseconds()
	ev.Success = err == nil

	switch {
	case err != nil:
		ev.ErrorMessage = err.Error()
	case resp != nil:
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}

	entry := l.log.WithFields(logrus.Fields{
		"call_id":    ev.CallID,
		"provider":   ev.Provider,
		"model":      ev.Model,
		"purpose":    ev.Purpose,
		"latency_ms": ev.LatencyMs,
	})
	if err != nil {
		entry.WithError(err).Warn("model request failed")
	} else {
		entry.WithField("tokens", fmt.Sprintf("%d/%d", ev.InputTokens, ev.OutputTokens)).Debug("model request completed")
	}

	if l.events == nil {
		return resp, err
	}
	// The request log is best effort.
	if recErr := l.events.AppendLLMRequest(ctx, ev); recErr != nil {
		entry.WithError(recErr).Warn("failed to record model request")
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// transcript renders req as tagged sections for the request log:
// "[system]", one "[role]" per message, then "[schema: name]".
func transcript(req Request) string {
	var b strings.Builder
	section := func(tag, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", tag, body)
	}

	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			section("schema: "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
