package rest

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dailyspark/vocab-backend/internal/domain"
	"github.com/dailyspark/vocab-backend/internal/service/word"
	"github.com/dailyspark/vocab-backend/internal/transport/middleware"
)

func TestRouter_ProtectsAPIRoutes(t *testing.T) {
	t.Parallel()

	words := &mockWordService{ListWordsFunc: func(context.Context, word.ListWordsInput) ([]domain.Word, int, error) {
		return nil, 0, nil
	}}

	limited := 0
	limit := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limited++
			next.ServeHTTP(w, r)
		})
	}

	mux := NewRouter(Routes{
		Health: NewHealthHandler("test"),
		Words:  NewWordHandler(words, slog.Default()),
		Import: NewImportHandler(&mockImportService{}, nil, testMaxFileSize, slog.Default()),
	}, middleware.RequireUser, limit)

	tests := []struct {
		method, path string
		authed       bool
		want         int
	}{
		{http.MethodGet, "/live", false, http.StatusOK},
		{http.MethodGet, "/health", false, http.StatusOK},
		{http.MethodGet, "/api/words", false, http.StatusUnauthorized},
		{http.MethodGet, "/api/words", true, http.StatusOK},
		{http.MethodPost, "/api/words/import", false, http.StatusUnauthorized},
		{http.MethodGet, "/api/words/import/template", false, http.StatusUnauthorized},
		{http.MethodGet, "/api/words/import/template", true, http.StatusOK},
		{http.MethodGet, "/api/import-jobs/abc", true, http.StatusServiceUnavailable},
		{http.MethodDelete, "/api/words", true, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		if tt.authed {
			req = withUser(req)
		}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		assert.Equal(t, tt.want, rec.Code, "%s %s authed=%v", tt.method, tt.path, tt.authed)
	}

	assert.Zero(t, limited, "anonymous uploads are rejected before the rate limiter")
}
