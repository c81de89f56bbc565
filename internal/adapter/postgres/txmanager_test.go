package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dailyspark/vocab-backend/internal/adapter/postgres"
	"github.com/dailyspark/vocab-backend/internal/adapter/postgres/testhelper"
)

func wordExists(t *testing.T, pool *pgxpool.Pool, wordID uuid.UUID) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM words WHERE id = $1)`,
		wordID,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("wordExists query: %v", err)
	}
	return exists
}

func insertWord(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, pool)
	_, err := q.Exec(ctx,
		`INSERT INTO words (id, user_id, text, text_normalized) VALUES ($1, $2, $3, $3)`,
		id, uuid.New(), "tx-"+id.String()[:8],
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	wordID := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertWord(ctx, pool, wordID)
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !wordExists(t, pool, wordID) {
		t.Fatal("expected word to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	wordID := uuid.New()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if execErr := insertWord(ctx, pool, wordID); execErr != nil {
			t.Fatalf("insert inside tx failed: %v", execErr)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if wordExists(t, pool, wordID) {
		t.Fatal("expected word NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	wordID := uuid.New()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}
		if wordExists(t, pool, wordID) {
			t.Fatal("expected word NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertWord(ctx, pool, wordID); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_VisibleInsideNotOutsideUntilCommit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	wordID := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if !postgres.InTx(ctx) {
			t.Fatal("expected ctx to carry a transaction")
		}
		if err := insertWord(ctx, pool, wordID); err != nil {
			return err
		}

		var exists bool
		q := postgres.QuerierFromCtx(ctx, pool)
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM words WHERE id = $1)`, wordID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected word to be visible within the transaction")
		}
		if wordExists(t, pool, wordID) {
			t.Fatal("expected word NOT to be visible outside before commit")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !wordExists(t, pool, wordID) {
		t.Fatal("expected word to exist after committed transaction")
	}
}

func TestRunInTx_NestedJoinsOuter(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	outerID, innerID := uuid.New(), uuid.New()
	sentinel := errors.New("outer fails after inner")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertWord(ctx, pool, outerID); err != nil {
			return err
		}
		if err := tm.RunInTx(ctx, func(ctx context.Context) error {
			return insertWord(ctx, pool, innerID)
		}); err != nil {
			return err
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if wordExists(t, pool, outerID) || wordExists(t, pool, innerID) {
		t.Fatal("expected both inserts rolled back with the outer transaction")
	}
}
