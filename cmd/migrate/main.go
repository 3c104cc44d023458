package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pageza/healthtracker/backend/config"
	"github.com/pageza/healthtracker/backend/internal/database"
	"github.com/pageza/healthtracker/backend/pkg/logger"
)

func main() {
	status := flag.Bool("status", false, "List applied SQL migrations and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer database.Close(db)

	if !*status {
		if err := database.RunMigrations(db, log); err != nil {
			log.Fatalw("migration failed", "error", err)
		}
		fmt.Println("All migrations applied successfully.")
	}

	applied, err := database.AppliedMigrations(db)
	if err != nil {
		log.Fatalw("failed to read migration status", "error", err)
	}
	if len(applied) == 0 {
		fmt.Printf("No SQL migrations recorded (%s uses auto-migration only).\n", cfg.DBDriver)
		return
	}
	for _, name := range applied {
		fmt.Printf("applied: %s\n", name)
	}
}
