package service_test

import (
	"context"
	"testing"

	"github.com/pageza/healthtracker/backend/internal/models"
	"github.com/pageza/healthtracker/backend/internal/service"
	"github.com/pageza/healthtracker/backend/internal/testhelpers"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/pageza/healthtracker/backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedDay(t *testing.T, db *gorm.DB, user *models.User, date string, consumed, burned float64) {
	t.Helper()
	require.NoError(t, db.Create(&models.Meal{
		UserID:    user.ID,
		Date:      date,
		MealType:  models.MealLunch,
		FoodItems: "food",
		Nutrition: models.Nutrition{Calories: consumed, Protein: 10, Fat: 5, Carbohydrates: 20},
		Source:    models.MealSourceManual,
	}).Error)
	if burned > 0 {
		require.NoError(t, db.Create(&models.Activity{
			UserID:         user.ID,
			Date:           date,
			ActivityName:   "run",
			CaloriesBurned: burned,
		}).Error)
	}
}

func TestDailySummary(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewSummaryService(db, logger.NewNop())
	user := testhelpers.CreateTestUser(t, db, "alice")
	ctx := context.Background()

	seedDay(t, db, user, "2024-03-01", 1200, 300)
	seedDay(t, db, user, "2024-03-01", 600, 0)

	summary, err := svc.Daily(ctx, user.ID, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, types.DailySummary{
		Date:                  "2024-03-01",
		TotalCaloriesConsumed: 1800,
		TotalCaloriesBurned:   300,
		NetCalories:           1500,
		TotalProtein:          20,
		TotalFat:              10,
		TotalCarbs:            40,
		TargetCalories:        2000,
		RemainingCalories:     500,
	}, *summary)

	empty, err := svc.Daily(ctx, user.ID, "2024-03-02")
	require.NoError(t, err)
	assert.Zero(t, empty.NetCalories)
	assert.Equal(t, 2000.0, empty.RemainingCalories)

	_, err = svc.Daily(ctx, user.ID, "March 1")
	requireMessage(t, err, "Invalid date format (expected YYYY-MM-DD)")
}

func TestWeeklySummary(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewSummaryService(db, logger.NewNop())
	user := testhelpers.CreateTestUser(t, db, "alice")
	ctx := context.Background()

	seedDay(t, db, user, "2024-02-29", 2800, 0)
	seedDay(t, db, user, "2024-03-03", 1400, 100)
	seedDay(t, db, user, "2024-03-06", 700, 0)
	seedDay(t, db, user, "2024-03-07", 5000, 0) // after the window

	week, err := svc.Weekly(ctx, user.ID, "2024-03-06")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", week.StartDate)
	assert.Equal(t, "2024-03-06", week.EndDate)
	require.Len(t, week.Days, 7)
	assert.Equal(t, "2024-02-29", week.Days[0].Date)
	assert.Equal(t, "2024-03-01", week.Days[1].Date, "leap day handled")
	assert.Equal(t, "2024-03-06", week.Days[6].Date)

	assert.InDelta(t, 4900.0/7, week.AverageConsumed, 1e-9)
	assert.InDelta(t, 100.0/7, week.AverageBurned, 1e-9)
	assert.InDelta(t, 4800.0/7, week.AverageNet, 1e-9)
	assert.Equal(t, 1, week.DaysOverTarget)
}

func TestMonthlyCalendar(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := service.NewSummaryService(db, logger.NewNop())
	user := testhelpers.CreateTestUser(t, db, "alice")
	ctx := context.Background()

	seedDay(t, db, user, "2024-03-01", 1500, 0)
	seedDay(t, db, user, "2024-03-15", 2500, 400)
	seedDay(t, db, user, "2024-03-31", 2600, 0)
	seedDay(t, db, user, "2024-04-01", 100, 0)
	require.NoError(t, db.Create(&models.Activity{UserID: user.ID, Date: "2024-03-20", ActivityName: "swim", CaloriesBurned: 250}).Error)

	days, err := svc.Monthly(ctx, user.ID, 2024, 3)
	require.NoError(t, err)
	assert.Len(t, days, 4)
	assert.Equal(t, types.CalendarDay{Consumed: 1500, Net: 1500, Status: types.CalendarGood}, days[1])
	assert.Equal(t, types.CalendarDay{Consumed: 2500, Burned: 400, Net: 2100, Status: types.CalendarOver}, days[15])
	assert.Equal(t, types.CalendarDay{Burned: 250, Net: -250, Status: types.CalendarGood}, days[20])
	assert.Equal(t, types.CalendarOver, days[31].Status)

	_, err = svc.Monthly(ctx, user.ID, 2024, 13)
	requireMessage(t, err, "Invalid year or month")
}
