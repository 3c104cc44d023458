package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/pageza/healthtracker/backend/internal/models"
	"github.com/pageza/healthtracker/backend/internal/service"
	"github.com/pageza/healthtracker/backend/internal/testhelpers"
	"github.com/pageza/healthtracker/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAdmin(t *testing.T) (*service.AdminService, *gorm.DB) {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	log := logger.NewNop()
	return service.NewAdminService(db, service.NewAuthService(db, "secret", log), log), db
}

func runCmd(t *testing.T, admin *service.AdminService, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), args, &out, admin)
	return out.String(), err
}

func TestCreateListDelete(t *testing.T) {
	admin, db := newAdmin(t)

	out, err := runCmd(t, admin, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No users in database")

	out, err = runCmd(t, admin, "create", "alice", "secret1", "alice@example.com", "Alice")
	require.NoError(t, err)
	assert.Contains(t, out, `User "alice" created`)

	_, err = runCmd(t, admin, "create", "alice", "secret1")
	assert.EqualError(t, err, "username or email already exists")

	_, err = runCmd(t, admin, "create", "a!", "secret1")
	assert.EqualError(t, err, "Username must be at least 3 characters")

	out, err = runCmd(t, admin, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "alice@example.com")

	out, err = runCmd(t, admin, "delete", "alice")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err = runCmd(t, admin, "delete", "alice")
	assert.EqualError(t, err, "user not found")
}

func TestStats(t *testing.T) {
	admin, db := newAdmin(t)
	user := testhelpers.CreateTestUser(t, db, "bob")
	weight := 82.5
	require.NoError(t, db.Create(&models.VitalsEntry{UserID: user.ID, Date: "2024-03-01", Weight: &weight}).Error)
	require.NoError(t, db.Create(&models.Meal{
		UserID: user.ID, Date: "2024-03-01", MealType: models.MealLunch, FoodItems: "rice",
		Nutrition: models.Nutrition{Calories: 600}, Source: models.MealSourceManual,
	}).Error)

	out, err := runCmd(t, admin, "stats", "bob")
	require.NoError(t, err)
	assert.Contains(t, out, "Meals logged:       1")
	assert.Contains(t, out, "Latest weight:      82.5 kg")
	assert.Contains(t, out, "Avg daily calories: 600")
}

func TestReset(t *testing.T) {
	admin, db := newAdmin(t)
	testhelpers.CreateTestUser(t, db, "carol")

	_, err := runCmd(t, admin, "reset")
	assert.EqualError(t, err, "refusing to reset without -yes")

	_, err = runCmd(t, admin, "reset", "-yes")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUsage(t *testing.T) {
	admin, _ := newAdmin(t)
	for _, args := range [][]string{nil, {"bogus"}, {"create", "only-one"}, {"stats"}} {
		_, err := runCmd(t, admin, args...)
		assert.ErrorIs(t, err, errUsage, args)
	}
}
