package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/healthtracker/backend/internal/models"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/pageza/healthtracker/backend/pkg/logger"
	"gorm.io/gorm"
)

const WeekDays = 7

// SummaryService derives daily, weekly and monthly figures from meals and
// activities. Nothing it returns is stored.
type SummaryService struct {
	db  *gorm.DB
	log *logger.Logger
}

var _ ISummaryService = (*SummaryService)(nil)

func NewSummaryService(db *gorm.DB, log *logger.Logger) *SummaryService {
	return &SummaryService{db: db, log: log.Named("summary")}
}

type dayTotals struct {
	Date           string
	Calories       float64
	Protein        float64
	Fat            float64
	Carbohydrates  float64
	CaloriesBurned float64
}

func (s *SummaryService) Daily(ctx context.Context, userID uuid.UUID, date string) (*types.DailySummary, error) {
	date, err := resolveDate(date)
	if err != nil {
		return nil, err
	}
	target, err := targetCalories(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	totals, err := s.totalsByDate(ctx, userID, date, date)
	if err != nil {
		return nil, err
	}

	summary := buildDaily(date, totals[date], target)
	return &summary, nil
}

// Weekly returns the seven days ending on endDate, oldest first.
func (s *SummaryService) Weekly(ctx context.Context, userID uuid.UUID, endDate string) (*types.WeeklySummary, error) {
	endDate, err := resolveDate(endDate)
	if err != nil {
		return nil, err
	}
	end, _ := time.Parse(types.DateLayout, endDate)
	startDate := end.AddDate(0, 0, -(WeekDays - 1)).Format(types.DateLayout)

	target, err := targetCalories(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	totals, err := s.totalsByDate(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	week := &types.WeeklySummary{
		StartDate:      startDate,
		EndDate:        endDate,
		Days:           make([]types.DailySummary, 0, WeekDays),
		TargetCalories: target,
	}
	var consumed, burned, net float64
	for i := WeekDays - 1; i >= 0; i-- {
		date := end.AddDate(0, 0, -i).Format(types.DateLayout)
		day := buildDaily(date, totals[date], target)
		week.Days = append(week.Days, day)

		consumed += day.TotalCaloriesConsumed
		burned += day.TotalCaloriesBurned
		net += day.NetCalories
		if day.NetCalories > float64(target) {
			week.DaysOverTarget++
		}
	}
	week.AverageConsumed = consumed / WeekDays
	week.AverageBurned = burned / WeekDays
	week.AverageNet = net / WeekDays
	return week, nil
}

// Monthly returns the populated days of a month keyed by day of month.
func (s *SummaryService) Monthly(ctx context.Context, userID uuid.UUID, year, month int) (map[int]types.CalendarDay, error) {
	if year < 1 || year > 9999 || month < 1 || month > 12 {
		return nil, types.NewValidationError("month", "Invalid year or month")
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	target, err := targetCalories(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	totals, err := s.totalsByDate(ctx, userID, first.Format(types.DateLayout), last.Format(types.DateLayout))
	if err != nil {
		return nil, err
	}

	days := make(map[int]types.CalendarDay, len(totals))
	for date, t := range totals {
		d, err := time.Parse(types.DateLayout, date)
		if err != nil {
			continue
		}
		net := t.Calories - t.CaloriesBurned
		status := types.CalendarGood
		if net > float64(target) {
			status = types.CalendarOver
		}
		days[d.Day()] = types.CalendarDay{
			Consumed: t.Calories,
			Burned:   t.CaloriesBurned,
			Net:      net,
			Status:   status,
		}
	}
	return days, nil
}

const mealTotalsColumns = "date, SUM(calories) AS calories, SUM(protein) AS protein, SUM(fat) AS fat, SUM(carbohydrates) AS carbohydrates"

// totalsByDate sums meals and activities per date in [from, to]. Dates with
// neither are absent from the result.
func (s *SummaryService) totalsByDate(ctx context.Context, userID uuid.UUID, from, to string) (map[string]*dayTotals, error) {
	db := s.db.WithContext(ctx)

	var meals []dayTotals
	err := db.Model(&models.Meal{}).
		Select(mealTotalsColumns).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Group("date").
		Scan(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("sum meals: %w", err)
	}

	var activities []dayTotals
	err = db.Model(&models.Activity{}).
		Select("date, SUM(calories_burned) AS calories_burned").
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Group("date").
		Scan(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("sum activities: %w", err)
	}

	totals := make(map[string]*dayTotals, len(meals)+len(activities))
	for i := range meals {
		totals[meals[i].Date] = &meals[i]
	}
	for _, a := range activities {
		t, ok := totals[a.Date]
		if !ok {
			t = &dayTotals{Date: a.Date}
			totals[a.Date] = t
		}
		t.CaloriesBurned = a.CaloriesBurned
	}
	return totals, nil
}

func buildDaily(date string, t *dayTotals, target int) types.DailySummary {
	summary := types.DailySummary{Date: date, TargetCalories: target}
	if t != nil {
		summary.TotalCaloriesConsumed = t.Calories
		summary.TotalCaloriesBurned = t.CaloriesBurned
		summary.TotalProtein = t.Protein
		summary.TotalFat = t.Fat
		summary.TotalCarbs = t.Carbohydrates
	}
	summary.NetCalories = summary.TotalCaloriesConsumed - summary.TotalCaloriesBurned
	summary.RemainingCalories = float64(target) - summary.NetCalories
	return summary
}
