package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/dailyspark/vocab-backend/internal/adapter/queue"
)

// RunWorker processes background import jobs until ctx is cancelled.
func RunWorker(ctx context.Context) error {
	d, err := bootstrap(ctx, "worker")
	if err != nil {
		return err
	}
	defer d.close()

	if !d.cfg.Queue.Enabled {
		return errors.New("queue is disabled: set QUEUE_ENABLED=true to run the worker")
	}

	srv := queue.NewServer(d.log, d.cfg.Queue)
	mux := asynq.NewServeMux()
	queue.NewHandler(d.log, d.imports).Register(mux)

	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	d.log.Info("worker started",
		slog.String("queue", d.cfg.Queue.Name),
		slog.Int("concurrency", d.cfg.Queue.Concurrency),
	)

	<-ctx.Done()
	d.log.Info("shutting down worker")
	srv.Shutdown()
	return nil
}
