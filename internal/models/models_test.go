package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(All()...))
	return db
}

func TestNutritionArithmetic(t *testing.T) {
	n := Nutrition{Calories: 100, Protein: 10, Fat: 2, Carbohydrates: 20}

	assert.Equal(t, Nutrition{Calories: 150, Protein: 15, Fat: 3, Carbohydrates: 30}, n.Scale(1.5))
	assert.Equal(t, Nutrition{Calories: 200, Protein: 20, Fat: 4, Carbohydrates: 40}, n.Add(n))
	assert.Equal(t,
		Nutrition{Calories: 0, Protein: 5, Fat: 0, Carbohydrates: 0},
		Nutrition{Calories: -1, Protein: 5, Fat: -0.5}.NonNegative(),
	)
	assert.True(t, Nutrition{}.IsZero())
	assert.False(t, n.IsZero())
}

func TestIsMealType(t *testing.T) {
	for _, mt := range MealTypes {
		assert.True(t, IsMealType(mt))
	}
	assert.False(t, IsMealType("brunch"))
	assert.False(t, IsMealType(""))
}

func TestCreateUserDefaults(t *testing.T) {
	db := setupTestDB(t)

	user := &User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, DefaultTargetCalories, user.TargetCalories)

	var loaded User
	require.NoError(t, db.First(&loaded, "id = ?", user.ID).Error)
	assert.Equal(t, "alice", loaded.Username)
	assert.Nil(t, loaded.Email)
}

func TestMealBreakdownRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	meal := &Meal{
		UserID:    uuid.New(),
		Date:      "2024-03-01",
		MealType:  MealLunch,
		FoodItems: "rice, chicken",
		Nutrition: Nutrition{Calories: 442.5},
		Breakdown: []MealItem{
			{Food: "rice", Nutrition: Nutrition{Calories: 195}, PortionGrams: 150},
			{Food: "chicken", Nutrition: Nutrition{Calories: 247.5}, PortionGrams: 150},
		},
		PortionMultiplier: 1.5,
		Source:            MealSourcePhoto,
	}
	require.NoError(t, db.Create(meal).Error)

	var loaded Meal
	require.NoError(t, db.First(&loaded, "id = ?", meal.ID).Error)
	assert.Equal(t, meal.Breakdown, loaded.Breakdown)
	assert.Equal(t, 442.5, loaded.Nutrition.Calories)
}

func TestVitalsAllowSameDate(t *testing.T) {
	db := setupTestDB(t)
	userID := uuid.New()
	w1, w2 := 80.0, 79.5

	require.NoError(t, db.Create(&VitalsEntry{UserID: userID, Date: "2024-03-01", Weight: &w1}).Error)
	require.NoError(t, db.Create(&VitalsEntry{UserID: userID, Date: "2024-03-01", Weight: &w2}).Error)

	var count int64
	require.NoError(t, db.Model(&VitalsEntry{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
