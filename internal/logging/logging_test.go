package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", DefaultConfig(), false},
		{"json debug", Config{Level: "debug", Format: "JSON"}, false},
		{"bad level", Config{Level: "loud", Format: "text"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "warn", Format: "json"}, &buf)

	log.Info("hidden")
	log.WithField("feature", "mcq").Warn("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "mcq", line["feature"])
}

func TestNewFallsBackToInfo(t *testing.T) {
	log := NewWithOutput(Config{Level: "nope"}, &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestFromContextAddsRequestID(t *testing.T) {
	log, hook := test.NewNullLogger()
	ctx := WithLogger(context.Background(), log)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "req-42")

	FromContext(ctx).Info("hello")

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, "req-42", hook.LastEntry().Data["request_id"])
}

func TestFromContextWithoutLogger(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}

func TestRequestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()

	h := middleware.RequestID(RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mcq", nil))

	require.Len(t, hook.Entries, 2)
	inner := hook.Entries[0]
	assert.NotEmpty(t, inner.Data["request_id"])

	last := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, last.Level)
	assert.Equal(t, "GET", last.Data["method"])
	assert.Equal(t, "/mcq", last.Data["path"])
	assert.Equal(t, http.StatusTeapot, last.Data["status"])
	assert.Equal(t, 15, last.Data["bytes"])
	assert.Equal(t, inner.Data["request_id"], last.Data["request_id"])
}
