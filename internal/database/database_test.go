package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/healthtracker/backend/config"
	"github.com/pageza/healthtracker/backend/internal/database"
	"github.com/pageza/healthtracker/backend/internal/models"
	"github.com/pageza/healthtracker/backend/internal/testhelpers"
	"github.com/pageza/healthtracker/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteFile(t *testing.T) {
	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "health.db"),
	}

	db, err := database.New(cfg, logger.NewNop())
	require.NoError(t, err)
	defer database.Close(db)

	require.NoError(t, database.RunMigrations(db, logger.NewNop()))
	// Migrations are idempotent.
	require.NoError(t, database.RunMigrations(db, logger.NewNop()))

	require.NoError(t, database.HealthCheck(context.Background(), db))

	applied, err := database.AppliedMigrations(db)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestNewUnknownDriver(t *testing.T) {
	_, err := database.New(&config.Config{DBDriver: "mysql"}, logger.NewNop())
	assert.Error(t, err)
}

func TestHealthCheckAfterClose(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	require.NoError(t, database.Close(db))
	assert.Error(t, database.HealthCheck(context.Background(), db))
}

func TestPostgresMigrations(t *testing.T) {
	db := testhelpers.SetupPostgresDatabase(t)

	applied, err := database.AppliedMigrations(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_nutrition_checks.sql", "0002_meal_type_check.sql"}, applied)

	// Running again applies nothing new.
	require.NoError(t, database.RunMigrations(db, logger.NewNop()))
	again, err := database.AppliedMigrations(db)
	require.NoError(t, err)
	assert.Equal(t, applied, again)

	user := testhelpers.CreateTestUser(t, db, "pguser")
	bad := &models.Meal{
		UserID:    user.ID,
		Date:      "2024-03-01",
		MealType:  models.MealLunch,
		FoodItems: "air",
		Nutrition: models.Nutrition{Calories: -5},
		Source:    models.MealSourceManual,
	}
	assert.Error(t, db.Create(bad).Error, "negative calories violate the check constraint")

	bad = &models.Meal{
		ID:        uuid.New(),
		UserID:    user.ID,
		Date:      "2024-03-01",
		MealType:  "brunch",
		FoodItems: "eggs",
		Source:    models.MealSourceManual,
	}
	assert.Error(t, db.Create(bad).Error, "unknown meal type violates the check constraint")
}
