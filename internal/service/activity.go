package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/pageza/healthtracker/backend/internal/models"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/pageza/healthtracker/backend/pkg/logger"
	"gorm.io/gorm"
)

const MaxActivityCalories = 2000

type ActivityService struct {
	db  *gorm.DB
	log *logger.Logger
}

var _ IActivityService = (*ActivityService)(nil)

func NewActivityService(db *gorm.DB, log *logger.Logger) *ActivityService {
	return &ActivityService{db: db, log: log.Named("activities")}
}

// List returns the activities logged on date, newest first.
func (s *ActivityService) List(ctx context.Context, userID uuid.UUID, date string) ([]models.Activity, error) {
	date, err := resolveDate(date)
	if err != nil {
		return nil, err
	}

	activities := []models.Activity{}
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order("created_at DESC").
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return activities, nil
}

func (s *ActivityService) Add(ctx context.Context, userID uuid.UUID, req types.ActivityRequest) (*models.Activity, error) {
	req.Normalize()
	if err := types.Validate(req); err != nil {
		return nil, err
	}
	date, err := resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	duration, err := req.DurationMinutes.Int(0)
	if err != nil {
		return nil, types.NewValidationError("duration_minutes", "Invalid duration or calories value")
	}
	calories, err := req.CaloriesBurned.Float(0)
	if err != nil {
		return nil, types.NewValidationError("calories_burned", "Invalid duration or calories value")
	}
	if duration < 0 {
		duration = 0
	}
	calories = math.Max(0, calories)
	if calories > MaxActivityCalories {
		return nil, types.NewValidationError("calories_burned", "Calories burned seems too high (max 2000)")
	}

	activity := &models.Activity{
		UserID:          userID,
		Date:            date,
		ActivityName:    req.ActivityName,
		DurationMinutes: duration,
		CaloriesBurned:  calories,
		Notes:           req.Notes,
	}
	if err := s.db.WithContext(ctx).Create(activity).Error; err != nil {
		return nil, fmt.Errorf("insert activity: %w", err)
	}

	s.log.Infow("activity recorded", "user_id", userID, "activity_id", activity.ID, "calories_burned", calories)
	return activity, nil
}

// Delete removes one of the user's activities. Ids that do not parse or that
// belong to someone else are reported as not found.
func (s *ActivityService) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	activityID, err := uuid.Parse(id)
	if err != nil {
		return ErrActivityNotFound
	}

	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", activityID, userID).
		Delete(&models.Activity{})
	if result.Error != nil {
		return fmt.Errorf("delete activity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrActivityNotFound
	}

	s.log.Infow("activity deleted", "user_id", userID, "activity_id", activityID)
	return nil
}
