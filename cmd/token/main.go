// Command token mints a bearer token for local development and smoke tests.
//
// Usage:
//
//	token --user=<uuid> [--ttl=1h]
//
// Requires AUTH_JWT_SECRET environment variable to be set.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/dailyspark/vocab-backend/internal/auth"
)

func main() {
	user := flag.String("user", "", "user id to put in the token subject")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "Usage: token --user=<uuid> [--ttl=1h]")
		os.Exit(1)
	}

	userID, err := uuid.Parse(*user)
	if err != nil {
		log.Fatalf("invalid --user: %v", err)
	}

	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		log.Fatal("AUTH_JWT_SECRET environment variable is required")
	}
	issuer := os.Getenv("AUTH_JWT_ISSUER")
	if issuer == "" {
		issuer = "dailyspark"
	}

	token, err := auth.NewJWTManager(secret, issuer).GenerateAccessToken(userID, *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(token)
}
