// Command worker processes background vocabulary import jobs.
// Requires QUEUE_ENABLED=true and a reachable Redis.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dailyspark/vocab-backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunWorker(ctx); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
