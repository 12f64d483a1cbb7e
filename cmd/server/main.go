// Command server runs the HTTP/WebSocket verification API: it builds,
// proves, verifies, persists, and broadcasts proof-of-reserves epochs on
// demand (spec_full.md §4.9).
package main

import (
	"log"
	"os"

	"github.com/rawblock/revelio-por/internal/api"
	"github.com/rawblock/revelio-por/internal/curve"
	"github.com/rawblock/revelio-por/internal/ledger"
	"github.com/rawblock/revelio-por/internal/por"
	"github.com/rawblock/revelio-por/internal/store"
)

func main() {
	log.Println("Starting the proof-of-reserves verification engine...")

	dbURL := os.Getenv("DATABASE_URL")
	var dbConn *store.PostgresStore
	if dbURL == "" {
		log.Println("WARNING: DATABASE_URL not set — engine running API-only, epochs will not be persisted")
	} else {
		conn, err := store.Connect(dbURL)
		if err != nil {
			log.Printf("Warning: failed to connect to PostgreSQL, continuing without persistence. Error: %v", err)
		} else {
			dbConn = conn
			defer dbConn.Close()
			if err := dbConn.InitSchema(); err != nil {
				log.Printf("Warning: DB schema init failed: %v", err)
			}
		}
	}

	wsHub := api.NewHub()
	go wsHub.Run()

	gens := curve.DefaultGenerators()
	source := ledger.NewSimulated(gens)
	kExch, err := por.NewKExch()
	if err != nil {
		log.Fatalf("FATAL: failed to initialize long-term decoy secret: %v", err)
	}
	defer kExch.Zeroize()

	if !isSyntheticEnabled() {
		log.Println("WARNING: ENABLE_SYNTHETIC is not set to true — /por/* epochs are still simulator-backed (no real ledger adapter is implemented), this flag is informational only")
	}

	r := api.SetupRouter(gens, source, kExch, dbConn, wsHub)

	port := getEnvOrDefault("PORT", "5339")
	log.Printf("Engine running on :%s\n", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func isSyntheticEnabled() bool {
	return os.Getenv("ENABLE_SYNTHETIC") == "true"
}

// getEnvOrDefault returns the env var value or a safe default for non-secret settings.
func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
