// Command migrate applies pending database migrations.
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"log"
	"time"

	"github.com/dailyspark/vocab-backend/internal/app"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := app.RunMigrations(ctx); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}
