package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/dailyspark/vocab-backend/internal/domain"
	"github.com/dailyspark/vocab-backend/internal/service/vocabimport"
	"github.com/dailyspark/vocab-backend/pkg/ctxutil"
)

type importer interface {
	ImportForUser(ctx context.Context, userID uuid.UUID, upload vocabimport.Upload) (*vocabimport.ImportSummary, error)
}

// Handler processes vocab:import tasks.
type Handler struct {
	log      *slog.Logger
	importer importer
}

// NewHandler creates a Handler.
func NewHandler(logger *slog.Logger, importer importer) *Handler {
	return &Handler{log: logger.With("service", "import_worker"), importer: importer}
}

// Register binds the handler to its task type on mux.
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.Handle(TypeVocabImport, h)
}

// ProcessTask runs one import. The summary is stored as the task result.
// Bad input and failed chunk writes are not retried: chunks committed before
// the failure would be counted as duplicates on a second run.
func (h *Handler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	payload, err := decodePayload(t.Payload())
	if err != nil {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	if id, ok := asynq.GetTaskID(ctx); ok {
		ctx = ctxutil.WithJobID(ctx, id)
	}

	summary, err := h.importer.ImportForUser(ctx, payload.UserID, payload.Upload())
	if err != nil {
		var pErr *vocabimport.PersistError
		if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrUnauthorized) || errors.As(err, &pErr) {
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}

	result, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if rw := t.ResultWriter(); rw != nil {
		if _, err := rw.Write(result); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}

	h.log.InfoContext(ctx, "import job completed",
		slog.String("job_id", ctxutil.JobIDFromCtx(ctx)),
		slog.String("user_id", payload.UserID.String()),
		slog.Int("imported", summary.ImportedCount),
	)
	return nil
}
