// Package word implements the Word repository using PostgreSQL.
// Filtered reads are built with squirrel; bulk writes are pipelined with
// pgx.Batch so a whole import chunk costs one round trip.
package word

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/dailyspark/vocab-backend/internal/adapter/postgres"
	"github.com/dailyspark/vocab-backend/internal/domain"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// psql is the statement builder bound to PostgreSQL $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var wordColumns = []string{
	"id", "user_id", "text", "text_normalized",
	"phonetic", "part_of_speech", "level", "source_slug",
	"created_at", "updated_at",
}

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new word repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// ListTexts returns the normalized text of every word owned by userID.
// A nil userID lists system words.
func (r *Repo) ListTexts(ctx context.Context, userID *uuid.UUID) ([]string, error) {
	query, args, err := psql.
		Select("text_normalized").
		From("words").
		Where(ownerEq(userID)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list texts query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list word texts: %w", err)
	}

	texts, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan word texts: %w", err)
	}
	return texts, nil
}

// GetByText returns the user's word whose normalized text matches text.
func (r *Repo) GetByText(ctx context.Context, userID uuid.UUID, text string) (*domain.Word, error) {
	normalized := domain.NormalizeText(text)

	query, args, err := psql.
		Select(wordColumns...).
		From("words").
		Where(sq.Eq{"user_id": userID, "text_normalized": normalized}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get word query: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "word", normalized)
	}

	w, err := pgx.CollectExactlyOneRow(rows, scanWord)
	if err != nil {
		return nil, postgres.MapError(err, "word", normalized)
	}

	if err := r.loadChildren(ctx, []*domain.Word{&w}); err != nil {
		return nil, err
	}
	return &w, nil
}

// List returns the user's words, newest first, with definitions and
// examples attached, plus the total count matching the filter.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, filter domain.WordFilter) ([]domain.Word, int, error) {
	limit, offset := clampPage(filter.Limit, filter.Offset)

	where := sq.And{sq.Eq{"user_id": userID}}
	if filter.Search != nil && *filter.Search != "" {
		where = append(where, sq.ILike{"text_normalized": "%" + domain.NormalizeText(*filter.Search) + "%"})
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	countSQL, countArgs, err := psql.Select("count(*)").From("words").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count words query: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count words: %w", err)
	}

	listSQL, listArgs, err := psql.
		Select(wordColumns...).
		From("words").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list words query: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list words: %w", err)
	}
	words, err := pgx.CollectRows(rows, scanWord)
	if err != nil {
		return nil, 0, fmt.Errorf("scan words: %w", err)
	}

	ptrs := make([]*domain.Word, len(words))
	for i := range words {
		ptrs[i] = &words[i]
	}
	if err := r.loadChildren(ctx, ptrs); err != nil {
		return nil, 0, err
	}

	return words, total, nil
}

// ---------------------------------------------------------------------------
// Writes (pgx.Batch API)
// ---------------------------------------------------------------------------

const insertWordSQL = `
INSERT INTO words (id, user_id, text, text_normalized, phonetic, part_of_speech, level, source_slug, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const insertDefinitionSQL = `
INSERT INTO definitions (id, word_id, text, language, position, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

const insertExampleSQL = `
INSERT INTO examples (id, word_id, sentence, translation, position, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// CreateBatch inserts words with their definitions and examples in one
// pipelined pgx.Batch. Run it inside TxManager.RunInTx so a failing
// statement rolls back the whole batch. Returns the number of words inserted.
func (r *Repo) CreateBatch(ctx context.Context, words []domain.Word) (int, error) {
	if len(words) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	// owners[i] is the word text behind the i-th queued statement, for error messages.
	owners := make([]string, 0, len(words)*3)
	isWord := make([]bool, 0, len(words)*3)

	for _, w := range words {
		batch.Queue(insertWordSQL,
			w.ID, w.UserID, w.Text, w.TextNormalized,
			w.Phonetic, w.PartOfSpeech, w.Level, w.SourceSlug,
			w.CreatedAt, w.UpdatedAt,
		)
		owners = append(owners, w.Text)
		isWord = append(isWord, true)

		for _, d := range w.Definitions {
			batch.Queue(insertDefinitionSQL, d.ID, d.WordID, d.Text, d.Language, d.Position, d.CreatedAt)
			owners = append(owners, w.Text)
			isWord = append(isWord, false)
		}
		for _, e := range w.Examples {
			batch.Queue(insertExampleSQL, e.ID, e.WordID, e.Sentence, e.Translation, e.Position, e.CreatedAt)
			owners = append(owners, w.Text)
			isWord = append(isWord, false)
		}
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for i := range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, postgres.MapError(fmt.Errorf("batch exec: %w", err), "word", owners[i])
		}
		if isWord[i] {
			inserted += int(tag.RowsAffected())
		}
	}

	return inserted, nil
}

// Create inserts a single word with its children.
func (r *Repo) Create(ctx context.Context, w domain.Word) (*domain.Word, error) {
	if _, err := r.CreateBatch(ctx, []domain.Word{w}); err != nil {
		return nil, err
	}
	return &w, nil
}

// ---------------------------------------------------------------------------
// Children
// ---------------------------------------------------------------------------

// loadChildren fills Definitions and Examples for words with two ANY queries.
func (r *Repo) loadChildren(ctx context.Context, words []*domain.Word) error {
	if len(words) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(words))
	byID := make(map[uuid.UUID]*domain.Word, len(words))
	for i, w := range words {
		ids[i] = w.ID
		byID[w.ID] = w
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT id, word_id, text, language, position, created_at
		 FROM definitions WHERE word_id = ANY($1::uuid[])
		 ORDER BY word_id, position, created_at`, ids)
	if err != nil {
		return fmt.Errorf("list definitions: %w", err)
	}
	defs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Definition, error) {
		var d domain.Definition
		err := row.Scan(&d.ID, &d.WordID, &d.Text, &d.Language, &d.Position, &d.CreatedAt)
		return d, err
	})
	if err != nil {
		return fmt.Errorf("scan definitions: %w", err)
	}
	for _, d := range defs {
		if w, ok := byID[d.WordID]; ok {
			w.Definitions = append(w.Definitions, d)
		}
	}

	rows, err = q.Query(ctx,
		`SELECT id, word_id, sentence, translation, position, created_at
		 FROM examples WHERE word_id = ANY($1::uuid[])
		 ORDER BY word_id, position, created_at`, ids)
	if err != nil {
		return fmt.Errorf("list examples: %w", err)
	}
	examples, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Example, error) {
		var e domain.Example
		err := row.Scan(&e.ID, &e.WordID, &e.Sentence, &e.Translation, &e.Position, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return fmt.Errorf("scan examples: %w", err)
	}
	for _, e := range examples {
		if w, ok := byID[e.WordID]; ok {
			w.Examples = append(w.Examples, e)
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func scanWord(row pgx.CollectableRow) (domain.Word, error) {
	var (
		w         domain.Word
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(
		&w.ID, &w.UserID, &w.Text, &w.TextNormalized,
		&w.Phonetic, &w.PartOfSpeech, &w.Level, &w.SourceSlug,
		&createdAt, &updatedAt,
	)
	w.CreatedAt = createdAt.UTC()
	w.UpdatedAt = updatedAt.UTC()
	return w, err
}

func ownerEq(userID *uuid.UUID) sq.Sqlizer {
	if userID == nil {
		return sq.Eq{"user_id": nil}
	}
	return sq.Eq{"user_id": *userID}
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
