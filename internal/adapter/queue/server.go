package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/dailyspark/vocab-backend/internal/config"
)

// NewServer creates the asynq worker server for the import queue.
func NewServer(logger *slog.Logger, cfg config.QueueConfig) *asynq.Server {
	log := logger.With("service", "asynq")
	return asynq.NewServer(redisOpt(cfg), asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues:      map[string]int{cfg.Name: 1},
		Logger:      slogAdapter{log: log},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			id, _ := asynq.GetTaskID(ctx)
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			log.ErrorContext(ctx, "task failed",
				slog.String("type", task.Type()),
				slog.String("job_id", id),
				slog.Int("retried", retried),
				slog.Int("max_retry", maxRetry),
				slog.String("error", err.Error()),
			)
		}),
	})
}

// slogAdapter routes asynq's internal logging through slog.
type slogAdapter struct {
	log *slog.Logger
}

func (a slogAdapter) Debug(args ...any) { a.log.Debug(fmt.Sprint(args...)) }
func (a slogAdapter) Info(args ...any)  { a.log.Info(fmt.Sprint(args...)) }
func (a slogAdapter) Warn(args ...any)  { a.log.Warn(fmt.Sprint(args...)) }
func (a slogAdapter) Error(args ...any) { a.log.Error(fmt.Sprint(args...)) }

// Fatal logs at error level; asynq exits the process itself.
func (a slogAdapter) Fatal(args ...any) { a.log.Error(fmt.Sprint(args...)) }
