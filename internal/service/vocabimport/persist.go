package vocabimport

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dailyspark/vocab-backend/internal/domain"
)

const defaultChunkSize = 50

// PersistError reports the chunk that failed to commit. Chunks before it
// stay committed; Committed counts their rows.
type PersistError struct {
	Chunk     int
	Committed int
	Err       error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist chunk %d (%d rows committed): %v", e.Chunk, e.Committed, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Persister writes rows in sequential chunk transactions.
type Persister struct {
	log       *slog.Logger
	words     wordWriter
	tx        txManager
	chunkSize int
	now       func() time.Time
}

// NewPersister creates a Persister. A non-positive chunkSize uses 50.
func NewPersister(logger *slog.Logger, words wordWriter, tx txManager, chunkSize int) *Persister {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Persister{
		log:       logger,
		words:     words,
		tx:        tx,
		chunkSize: chunkSize,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Persist inserts rows for ownerID, one transaction per chunk. Each chunk's
// words, definitions and examples are sent as one pipelined batch. On the
// first failing chunk it stops and returns the rows committed so far with a
// *PersistError; later chunks are not attempted.
func (p *Persister) Persist(ctx context.Context, rows []CanonicalRow, ownerID uuid.UUID) (int, error) {
	committed := 0
	owner := ownerID

	for start, chunk := 0, 1; start < len(rows); start, chunk = start+p.chunkSize, chunk+1 {
		if err := ctx.Err(); err != nil {
			return committed, &PersistError{Chunk: chunk, Committed: committed, Err: err}
		}

		end := min(start+p.chunkSize, len(rows))
		now := p.now()
		words := make([]domain.Word, 0, end-start)
		for _, row := range rows[start:end] {
			words = append(words, row.ToWord(&owner, domain.SourceSlugImport, now))
		}

		err := p.tx.RunInTx(ctx, func(txCtx context.Context) error {
			n, err := p.words.CreateBatch(txCtx, words)
			if err != nil {
				return err
			}
			if n != len(words) {
				return fmt.Errorf("inserted %d of %d words", n, len(words))
			}
			return nil
		})
		if err != nil {
			return committed, &PersistError{Chunk: chunk, Committed: committed, Err: err}
		}

		committed += len(words)
		p.log.DebugContext(ctx, "import chunk committed",
			slog.Int("chunk", chunk),
			slog.Int("rows", len(words)),
		)
	}

	return committed, nil
}
