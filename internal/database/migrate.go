package database

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/pageza/healthtracker/backend/internal/models"
	"github.com/pageza/healthtracker/backend/pkg/logger"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations brings the schema up to date. Tables come from gorm
// AutoMigrate on every dialect; on postgres the embedded SQL files then add
// constraints AutoMigrate cannot express, each applied once.
func RunMigrations(db *gorm.DB, log *logger.Logger) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}

	if db.Dialector.Name() != "postgres" {
		log.Infow("Using GORM auto-migration only", "dialect", db.Dialector.Name())
		return nil
	}

	files, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Name() < files[j].Name()
	})

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		var count int64
		if err := db.Table("schema_migrations").Where("name = ?", file.Name()).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			log.Debugw("Skipping migration (already applied)", "name", file.Name())
			continue
		}

		content, err := migrationFiles.ReadFile("migrations/" + file.Name())
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file.Name(), err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return err
			}
			return tx.Exec("INSERT INTO schema_migrations (name) VALUES (?)", file.Name()).Error
		})
		if err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}

		log.Infow("Applied migration", "name", file.Name())
	}

	return nil
}

// AppliedMigrations lists the SQL migrations recorded on postgres. Other
// dialects have none.
func AppliedMigrations(db *gorm.DB) ([]string, error) {
	if db.Dialector.Name() != "postgres" || !db.Migrator().HasTable("schema_migrations") {
		return nil, nil
	}
	var names []string
	if err := db.Table("schema_migrations").Order("name").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list migrations: %w", err)
	}
	return names, nil
}
