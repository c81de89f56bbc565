package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func jsonLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestLogger_Success(t *testing.T) {
	var buf bytes.Buffer

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`)) //nolint:errcheck
	})

	req := httptest.NewRequest(http.MethodPost, "/api/words", strings.NewReader(`{"word":"a"}`))
	rec := httptest.NewRecorder()

	Logger(jsonLogger(&buf))(handler).ServeHTTP(rec, req)

	entry := decodeLogLine(t, &buf)
	if entry["msg"] != "http.request" {
		t.Errorf("expected msg http.request, got %v", entry["msg"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("expected INFO level, got %v", entry["level"])
	}
	if entry["status"] != float64(http.StatusCreated) {
		t.Errorf("expected status 201, got %v", entry["status"])
	}
	if entry["bytes_out"] != float64(len(`{"ok":true}`)) {
		t.Errorf("expected bytes_out 11, got %v", entry["bytes_out"])
	}
	if entry["bytes_in"] != float64(len(`{"word":"a"}`)) {
		t.Errorf("expected bytes_in 12, got %v", entry["bytes_in"])
	}
	if _, ok := entry["user_id"]; ok {
		t.Error("anonymous request must not log user_id")
	}
}

func TestLogger_ServerErrorLogsAtError(t *testing.T) {
	var buf bytes.Buffer

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	Logger(jsonLogger(&buf))(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if entry := decodeLogLine(t, &buf); entry["level"] != "ERROR" {
		t.Errorf("expected ERROR level, got %v", entry["level"])
	}
}

func TestLogger_IncludesRequestAndUserID(t *testing.T) {
	var buf bytes.Buffer
	userID := uuid.New()

	validator := &tokenValidatorMock{
		ValidateTokenFunc: func(ctx context.Context, token string) (uuid.UUID, error) {
			return userID, nil
		},
	}
	handler := Chain(RequestID, Logger(jsonLogger(&buf)), Auth(validator, slog.Default()))(http.HandlerFunc(okHandler))

	req := httptest.NewRequest(http.MethodGet, "/api/words", nil)
	req.Header.Set("X-Request-Id", "req-abc")
	req.Header.Set("Authorization", "Bearer t")

	handler.ServeHTTP(httptest.NewRecorder(), req)

	entry := decodeLogLine(t, &buf)
	if entry["request_id"] != "req-abc" {
		t.Errorf("expected request_id req-abc, got %v", entry["request_id"])
	}
	if entry["user_id"] != userID.String() {
		t.Errorf("expected user_id %s, got %v", userID, entry["user_id"])
	}
}
