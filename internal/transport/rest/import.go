package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dailyspark/vocab-backend/internal/adapter/queue"
	"github.com/dailyspark/vocab-backend/internal/service/vocabimport"
	"github.com/dailyspark/vocab-backend/pkg/ctxutil"
)

// multipartOverhead is allowed on top of the file limit for form
// boundaries and part headers.
const multipartOverhead = 1 << 20

type importService interface {
	Import(ctx context.Context, upload vocabimport.Upload) (*vocabimport.ImportSummary, error)
}

type importQueue interface {
	EnqueueImport(ctx context.Context, upload vocabimport.Upload) (string, error)
	JobStatus(ctx context.Context, jobID string) (*queue.JobStatus, error)
}

// ImportHandler serves the bulk import endpoints.
type ImportHandler struct {
	svc         importService
	jobs        importQueue
	maxFileSize int64
	log         *slog.Logger
}

// NewImportHandler creates an ImportHandler. jobs may be nil when the
// background queue is disabled; async requests then get 503.
func NewImportHandler(svc importService, jobs importQueue, maxFileSize int64, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		svc:         svc,
		jobs:        jobs,
		maxFileSize: maxFileSize,
		log:         logger.With("handler", "import"),
	}
}

type importResponse struct {
	Success    bool                  `json:"success"`
	Total      int                   `json:"total"`
	Imported   int                   `json:"imported"`
	Duplicates int                   `json:"duplicates"`
	Failed     int                   `json:"failed"`
	Errors     []vocabimport.Failure `json:"errors"`
}

type enqueueResponse struct {
	JobID string `json:"jobId"`
}

// Import handles POST /api/words/import with multipart field "file".
// With ?async=true the file is queued and 202 {jobId} is returned.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	upload, err := h.readUpload(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handleError(w, r, h.log, vocabimport.FileTooLarge(h.maxFileSize))
			return
		}
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}

	if async, _ := strconv.ParseBool(r.URL.Query().Get("async")); async {
		h.enqueue(w, r, upload)
		return
	}

	summary, err := h.svc.Import(r.Context(), upload)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, importResponse{
		Success:    true,
		Total:      summary.TotalRows,
		Imported:   summary.ImportedCount,
		Duplicates: summary.DuplicateCount,
		Failed:     summary.FailedCount,
		Errors:     summary.Failures,
	})
}

func (h *ImportHandler) enqueue(w http.ResponseWriter, r *http.Request, upload vocabimport.Upload) {
	if h.jobs == nil {
		writeError(w, http.StatusServiceUnavailable, "Background import is not enabled")
		return
	}
	if int64(len(upload.Data)) > h.maxFileSize {
		handleError(w, r, h.log, vocabimport.FileTooLarge(h.maxFileSize))
		return
	}

	jobID, err := h.jobs.EnqueueImport(r.Context(), upload)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.Header().Set("Location", "/api/import-jobs/"+jobID)
	writeJSON(w, http.StatusAccepted, enqueueResponse{JobID: jobID})
}

// JobStatus handles GET /api/import-jobs/{id}.
func (h *ImportHandler) JobStatus(w http.ResponseWriter, r *http.Request) {
	if h.jobs == nil {
		writeError(w, http.StatusServiceUnavailable, "Background import is not enabled")
		return
	}

	status, err := h.jobs.JobStatus(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// Template handles GET /api/words/import/template.
func (h *ImportHandler) Template(w http.ResponseWriter, r *http.Request) {
	data, err := vocabimport.Template()
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="vocabulary-template.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// readUpload reads the "file" part. The request body is capped so an
// oversized upload fails with *http.MaxBytesError before it is buffered.
func (h *ImportHandler) readUpload(w http.ResponseWriter, r *http.Request) (vocabimport.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		return vocabimport.Upload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return vocabimport.Upload{}, fmt.Errorf("read upload: %w", err)
	}

	return vocabimport.Upload{
		Data:     data,
		MimeType: header.Header.Get("Content-Type"),
		Filename: header.Filename,
	}, nil
}
