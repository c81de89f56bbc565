package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dailyspark/vocab-backend/internal/adapter/postgres"
	wordrepo "github.com/dailyspark/vocab-backend/internal/adapter/postgres/word"
	"github.com/dailyspark/vocab-backend/internal/config"
	"github.com/dailyspark/vocab-backend/internal/service/vocabimport"
)

// deps is the wiring shared by the server, the worker and the CLI.
type deps struct {
	cfg     *config.Config
	log     *slog.Logger
	pool    *pgxpool.Pool
	words   *wordrepo.Repo
	imports *vocabimport.Service
}

func bootstrap(ctx context.Context, component string) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := NewLogger(cfg.Log, component)
	logger.Info("starting",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	words := wordrepo.New(pool)
	return &deps{
		cfg:     cfg,
		log:     logger,
		pool:    pool,
		words:   words,
		imports: vocabimport.NewService(logger, words, postgres.NewTxManager(pool), cfg.Import),
	}, nil
}

func (d *deps) close() {
	d.pool.Close()
}
