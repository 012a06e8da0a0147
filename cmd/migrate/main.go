package main

import (
	"log"
	"strings"

	"coursebay/internal/platform/config"
	"coursebay/internal/platform/db"
)

// Schema migration entrypoint. Run before the api and worker processes on a
// fresh database or after pulling a release that ships new migrations.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	log.Println("coursebay migrations starting")
	if err := db.RunMigrations(cfg.PostgresDSN); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}
	log.Println("coursebay migrations applied")
}
