// Command import loads a CSV, JSON or XLSX word list into a user's word book
// and prints the import summary as JSON.
//
// Usage:
//
//	import --user=<uuid> --file=words.xlsx
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/dailyspark/vocab-backend/internal/app"
)

func main() {
	user := flag.String("user", "", "id of the user who owns the imported words")
	file := flag.String("file", "", "path to a .csv, .json or .xlsx file")
	flag.Parse()

	if *user == "" || *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: import --user=<uuid> --file=words.xlsx")
		os.Exit(1)
	}

	userID, err := uuid.Parse(*user)
	if err != nil {
		log.Fatalf("invalid --user: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := app.RunImport(ctx, userID, *file)
	if err != nil {
		log.Fatalf("import: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		log.Fatalf("write summary: %v", err)
	}
}
