package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dailyspark/vocab-backend/internal/adapter/queue"
	"github.com/dailyspark/vocab-backend/internal/auth"
	wordsvc "github.com/dailyspark/vocab-backend/internal/service/word"
	"github.com/dailyspark/vocab-backend/internal/transport/middleware"
	"github.com/dailyspark/vocab-backend/internal/transport/rest"
)

const readHeaderTimeout = 10 * time.Second

// Run starts the HTTP API and blocks until ctx is cancelled, then drains
// in-flight requests within the configured shutdown timeout.
func Run(ctx context.Context) error {
	d, err := bootstrap(ctx, "server")
	if err != nil {
		return err
	}
	defer d.close()

	cfg, logger := d.cfg, d.log

	checks := []rest.HealthCheck{{Name: "database", Pinger: d.pool}}
	importHandler := rest.NewImportHandler(d.imports, nil, cfg.Import.MaxFileSize, logger)
	if cfg.Queue.Enabled {
		rdb, err := queue.NewRedis(ctx, cfg.Queue)
		if err != nil {
			return err
		}
		defer rdb.Close()

		jobs := queue.NewClient(logger, cfg.Queue)
		defer jobs.Close()

		checks = append(checks, rest.HealthCheck{Name: "redis", Pinger: queue.NewRedisPinger(rdb)})
		importHandler = rest.NewImportHandler(d.imports, jobs, cfg.Import.MaxFileSize, logger)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	mux := rest.NewRouter(rest.Routes{
		Health: rest.NewHealthHandler(BuildVersion(), checks...),
		Words:  rest.NewWordHandler(wordsvc.NewService(logger, d.words), logger),
		Import: importHandler,
	}, middleware.RequireUser, limiter.Limit(cfg.RateLimit.ImportPerMinute))

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(tokens, logger),
	)(mux)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening",
			slog.String("addr", srv.Addr),
			slog.Bool("queue_enabled", cfg.Queue.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
