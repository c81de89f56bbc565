package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/dailyspark/vocab-backend/internal/config"
	"github.com/dailyspark/vocab-backend/internal/domain"
	"github.com/dailyspark/vocab-backend/internal/service/vocabimport"
	"github.com/dailyspark/vocab-backend/pkg/ctxutil"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

type inspector interface {
	GetTaskInfo(queue, id string) (*asynq.TaskInfo, error)
	Close() error
}

// JobStatus is what a user sees about one background import.
type JobStatus struct {
	ID          string                     `json:"jobId"`
	State       string                     `json:"state"`
	Retried     int                        `json:"retried"`
	Error       string                     `json:"error,omitempty"`
	CompletedAt *time.Time                 `json:"completedAt,omitempty"`
	Summary     *vocabimport.ImportSummary `json:"summary,omitempty"`
}

// Client enqueues import jobs and reports on them.
type Client struct {
	log       *slog.Logger
	client    enqueuer
	inspector inspector
	queue     string
	maxRetry  int
	retention time.Duration
}

// NewClient creates a Client connected to the configured Redis.
func NewClient(logger *slog.Logger, cfg config.QueueConfig) *Client {
	opt := redisOpt(cfg)
	return newClient(logger, asynq.NewClient(opt), asynq.NewInspector(opt), cfg)
}

func newClient(logger *slog.Logger, c enqueuer, i inspector, cfg config.QueueConfig) *Client {
	return &Client{
		log:       logger.With("service", "queue"),
		client:    c,
		inspector: i,
		queue:     cfg.Name,
		maxRetry:  cfg.MaxRetry,
		retention: cfg.Retention,
	}
}

// EnqueueImport schedules an import of upload for the user in ctx and
// returns the job ID.
func (c *Client) EnqueueImport(ctx context.Context, upload vocabimport.Upload) (string, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return "", domain.ErrUnauthorized
	}

	task, err := NewImportTask(userID, upload,
		asynq.Queue(c.queue),
		asynq.MaxRetry(c.maxRetry),
		asynq.Retention(c.retention),
	)
	if err != nil {
		return "", err
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return "", fmt.Errorf("enqueue import: %w", err)
	}

	c.log.InfoContext(ctx, "import enqueued",
		slog.String("job_id", info.ID),
		slog.String("user_id", userID.String()),
		slog.String("filename", upload.Filename),
		slog.Int("bytes", len(upload.Data)),
	)
	return info.ID, nil
}

// JobStatus returns the state of the caller's job. Jobs owned by someone
// else are reported as domain.ErrNotFound.
func (c *Client) JobStatus(ctx context.Context, jobID string) (*JobStatus, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	info, err := c.inspector.GetTaskInfo(c.queue, jobID)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
			return nil, fmt.Errorf("job %s: %w", jobID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get task info: %w", err)
	}

	payload, err := decodePayload(info.Payload)
	if err != nil || info.Type != TypeVocabImport || payload.UserID != userID {
		return nil, fmt.Errorf("job %s: %w", jobID, domain.ErrNotFound)
	}

	status := &JobStatus{
		ID:      info.ID,
		State:   info.State.String(),
		Retried: info.Retried,
		Error:   info.LastErr,
	}
	if !info.CompletedAt.IsZero() {
		at := info.CompletedAt
		status.CompletedAt = &at
	}
	if len(info.Result) > 0 {
		var summary vocabimport.ImportSummary
		if err := json.Unmarshal(info.Result, &summary); err != nil {
			return nil, fmt.Errorf("decode job result: %w", err)
		}
		status.Summary = &summary
	}
	return status, nil
}

// Close releases the Redis connections.
func (c *Client) Close() error {
	return errors.Join(c.client.Close(), c.inspector.Close())
}
