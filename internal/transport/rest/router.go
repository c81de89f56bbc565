package rest

import (
	"net/http"

	"github.com/dailyspark/vocab-backend/internal/transport/middleware"
)

// Routes holds the handlers mounted by NewRouter.
type Routes struct {
	Health *HealthHandler
	Words  *WordHandler
	Import *ImportHandler
}

// NewRouter registers every endpoint. protect wraps all /api routes;
// limitImport additionally wraps the upload endpoint.
func NewRouter(rt Routes, protect, limitImport middleware.Middleware) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", rt.Health.Live)
	mux.HandleFunc("GET /ready", rt.Health.Ready)
	mux.HandleFunc("GET /health", rt.Health.Health)

	api := func(h http.HandlerFunc) http.Handler { return protect(h) }

	mux.Handle("GET /api/words", api(rt.Words.List))
	mux.Handle("POST /api/words", api(rt.Words.Create))
	mux.Handle("POST /api/words/import", protect(limitImport(http.HandlerFunc(rt.Import.Import))))
	mux.Handle("GET /api/words/import/template", api(rt.Import.Template))
	mux.Handle("GET /api/import-jobs/{id}", api(rt.Import.JobStatus))

	return mux
}
