package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dailyspark/vocab-backend/internal/domain"
)

// NewOwner returns a fresh user id. Words reference owners by id only, so
// no row has to exist anywhere for it.
func NewOwner() uuid.UUID {
	return uuid.New()
}

// SeedWord inserts a word owned by userID with a single "zh" definition.
// Returns the word as stored.
func SeedWord(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, text, meaning string) domain.Word {
	t.Helper()
	ctx := context.Background()

	owner := userID
	w := domain.WordFields{Word: text, Meaning: meaning}.
		ToWord(&owner, domain.SourceSlugUser, time.Now().UTC().Truncate(time.Microsecond))

	_, err := pool.Exec(ctx,
		`INSERT INTO words (id, user_id, text, text_normalized, source_slug, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		w.ID, w.UserID, w.Text, w.TextNormalized, w.SourceSlug, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedWord insert word: %v", err)
	}

	d := w.Definitions[0]
	_, err = pool.Exec(ctx,
		`INSERT INTO definitions (id, word_id, text, language, position, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.WordID, d.Text, d.Language, d.Position, d.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedWord insert definition: %v", err)
	}

	return w
}

// CountWords returns how many words userID owns.
func CountWords(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM words WHERE user_id = $1`, userID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountWords: %v", err)
	}
	return n
}
