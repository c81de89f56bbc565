package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/dailyspark/vocab-backend/pkg/ctxutil"
)

func captureRequestID(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = ctxutil.RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestID_ReuseIncoming(t *testing.T) {
	var got string

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "incoming-id")
	rec := httptest.NewRecorder()

	RequestID(captureRequestID(&got)).ServeHTTP(rec, req)

	if got != "incoming-id" {
		t.Errorf("expected context request ID %q, got %q", "incoming-id", got)
	}
	if h := rec.Header().Get("X-Request-Id"); h != "incoming-id" {
		t.Errorf("expected response header %q, got %q", "incoming-id", h)
	}
}

func TestRequestID_GenerateNew(t *testing.T) {
	var got string
	rec := httptest.NewRecorder()

	RequestID(captureRequestID(&got)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(got); err != nil {
		t.Errorf("expected generated UUID, got %q", got)
	}
	if rec.Header().Get("X-Request-Id") != got {
		t.Error("response header must match context value")
	}
}

func TestRequestID_OversizedReplaced(t *testing.T) {
	var got string

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", strings.Repeat("x", 200))

	RequestID(captureRequestID(&got)).ServeHTTP(httptest.NewRecorder(), req)

	if _, err := uuid.Parse(got); err != nil {
		t.Errorf("expected oversized ID to be replaced by a UUID, got %q", got)
	}
}
