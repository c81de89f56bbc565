// Package vocabimport implements the bulk vocabulary import pipeline:
// Decode -> Normalize -> Validate -> Dedupe -> Persist -> Summarize.
package vocabimport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dailyspark/vocab-backend/internal/config"
	"github.com/dailyspark/vocab-backend/internal/domain"
	"github.com/dailyspark/vocab-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordWriter interface {
	CreateBatch(ctx context.Context, words []domain.Word) (int, error)
}

type wordRepo interface {
	wordWriter
	ListTexts(ctx context.Context, userID *uuid.UUID) ([]string, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service runs imports for authenticated users.
type Service struct {
	log        *slog.Logger
	words      wordRepo
	decoder    *Decoder
	persister  *Persister
	failureCap int
}

// NewService creates a new import Service.
func NewService(logger *slog.Logger, words wordRepo, tx txManager, cfg config.ImportConfig) *Service {
	log := logger.With("service", "vocabimport")
	return &Service{
		log:        log,
		words:      words,
		decoder:    NewDecoder(cfg.MaxFileSize, cfg.MaxRows),
		persister:  NewPersister(log, words, tx, cfg.ChunkSize),
		failureCap: cfg.FailureCap,
	}
}

// Import runs the pipeline for the user in ctx.
func (s *Service) Import(ctx context.Context, upload Upload) (*ImportSummary, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.ImportForUser(ctx, userID, upload)
}

// ImportForUser runs the pipeline on behalf of userID. Decode and persist
// failures are returned as errors without a summary; invalid and duplicate
// rows are reported in the summary.
func (s *Service) ImportForUser(ctx context.Context, userID uuid.UUID, upload Upload) (*ImportSummary, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	start := time.Now()

	raws, err := s.decoder.Decode(upload.Data, upload.MimeType, upload.Filename)
	if err != nil {
		s.log.WarnContext(ctx, "import rejected",
			slog.String("user_id", userID.String()),
			slog.String("filename", upload.Filename),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	valid := make([]CanonicalRow, 0, len(raws))
	var failures []Failure
	for _, raw := range raws {
		outcome := Validate(raw.Number, Normalize(raw), raw)
		if !outcome.Valid() {
			failures = append(failures, outcome.Failure())
			continue
		}
		valid = append(valid, outcome.Row)
	}

	var existing []string
	if len(valid) > 0 {
		existing, err = s.words.ListTexts(ctx, &userID)
		if err != nil {
			return nil, fmt.Errorf("list existing words: %w", err)
		}
	}
	deduped := Dedupe(valid, existing)

	imported, err := s.persister.Persist(ctx, deduped.ToInsert, userID)
	if err != nil {
		attrs := []any{
			slog.String("user_id", userID.String()),
			slog.Int("committed", imported),
			slog.String("error", err.Error()),
		}
		var pErr *PersistError
		if errors.As(err, &pErr) {
			attrs = append(attrs, slog.Int("chunk", pErr.Chunk))
		}
		s.log.ErrorContext(ctx, "import persist failed", attrs...)
		return nil, err
	}

	summary := Summarize(len(raws), imported, deduped.DuplicateCount, failures, s.failureCap)

	s.log.InfoContext(ctx, "import completed",
		slog.String("user_id", userID.String()),
		slog.String("filename", upload.Filename),
		slog.String("format", string(DetectFormat(upload.MimeType, upload.Filename))),
		slog.Int("total", summary.TotalRows),
		slog.Int("imported", summary.ImportedCount),
		slog.Int("duplicates", summary.DuplicateCount),
		slog.Int("failed", summary.FailedCount),
		slog.Duration("duration", time.Since(start)),
	)

	return &summary, nil
}
