// Package word manages a user's word book one word at a time.
package word

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dailyspark/vocab-backend/internal/domain"
	"github.com/dailyspark/vocab-backend/pkg/ctxutil"
)

type wordRepo interface {
	GetByText(ctx context.Context, userID uuid.UUID, text string) (*domain.Word, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.WordFilter) ([]domain.Word, int, error)
	Create(ctx context.Context, w domain.Word) (*domain.Word, error)
}

// Service implements word book reads and single-word writes.
type Service struct {
	log   *slog.Logger
	words wordRepo
	now   func() time.Time
}

// NewService creates a new word Service.
func NewService(logger *slog.Logger, words wordRepo) *Service {
	return &Service{
		log:   logger.With("service", "word"),
		words: words,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ListWords returns a page of the caller's words, newest first, and the
// total number matching the filter.
func (s *Service) ListWords(ctx context.Context, input ListWordsInput) ([]domain.Word, int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	words, total, err := s.words.List(ctx, userID, domain.WordFilter{
		Search: input.Search,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list words: %w", err)
	}
	return words, total, nil
}

// CreateWord adds one word to the caller's word book. A word whose
// normalized text already exists yields domain.ErrAlreadyExists.
func (s *Service) CreateWord(ctx context.Context, input CreateWordInput) (*domain.Word, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	fields := input.Fields()

	_, err := s.words.GetByText(ctx, userID, fields.Word)
	if err == nil {
		return nil, fmt.Errorf("word %q: %w", fields.Word, domain.ErrAlreadyExists)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}

	created, err := s.words.Create(ctx, fields.ToWord(&userID, domain.SourceSlugUser, s.now()))
	if err != nil {
		return nil, fmt.Errorf("create word: %w", err)
	}

	s.log.InfoContext(ctx, "word created",
		slog.String("user_id", userID.String()),
		slog.String("word_id", created.ID.String()),
	)
	return created, nil
}
