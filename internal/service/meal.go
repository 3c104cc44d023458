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

const (
	DefaultMealType   = models.MealSnacks
	MaxManualCalories = 5000
)

const mealDisplayOrder = "CASE meal_type WHEN 'breakfast' THEN 0 WHEN 'lunch' THEN 1 " +
	"WHEN 'snacks' THEN 2 WHEN 'dinner' THEN 3 ELSE 4 END, created_at ASC"

type MealService struct {
	db     *gorm.DB
	photos PhotoStore
	log    *logger.Logger
}

var _ IMealService = (*MealService)(nil)

// NewMealService creates a MealService. photos may be nil, in which case
// photos are kept inline on the meal row.
func NewMealService(db *gorm.DB, photos PhotoStore, log *logger.Logger) *MealService {
	return &MealService{db: db, photos: photos, log: log.Named("meals")}
}

// List returns the meals logged on date in display order.
func (s *MealService) List(ctx context.Context, userID uuid.UUID, date string) ([]models.Meal, error) {
	date, err := resolveDate(date)
	if err != nil {
		return nil, err
	}

	meals := []models.Meal{}
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Order(mealDisplayOrder).
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}

	if s.photos != nil {
		for i := range meals {
			if meals[i].ImageKey == "" {
				continue
			}
			url, err := s.photos.URL(ctx, meals[i].ImageKey)
			if err != nil {
				s.log.Warnw("presign meal photo", "meal_id", meals[i].ID, "error", err)
				continue
			}
			meals[i].ImageURL = url
		}
	}
	return meals, nil
}

// AddManual stores a meal typed in by the user.
func (s *MealService) AddManual(ctx context.Context, userID uuid.UUID, req types.ManualMealRequest) (*models.Meal, error) {
	req.Normalize()
	if err := types.Validate(req); err != nil {
		return nil, err
	}
	mealType, err := resolveMealType(req.MealType)
	if err != nil {
		return nil, err
	}
	date, err := resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	var values [4]float64
	for i, n := range []types.Number{req.Calories, req.Protein, req.Fat, req.Carbohydrates} {
		v, err := n.Float(0)
		if err != nil {
			return nil, types.NewValidationError("nutrition", "Invalid nutrition values")
		}
		values[i] = math.Max(0, v)
	}
	if values[0] > MaxManualCalories {
		return nil, types.NewValidationError("calories", "Calories value seems too high (max 5000)")
	}

	meal := &models.Meal{
		UserID:    userID,
		Date:      date,
		MealType:  mealType,
		FoodItems: req.FoodItems,
		Nutrition: models.Nutrition{
			Calories:      values[0],
			Protein:       values[1],
			Fat:           values[2],
			Carbohydrates: values[3],
		},
		Source: models.MealSourceManual,
	}
	if err := s.Create(ctx, meal); err != nil {
		return nil, err
	}
	return meal, nil
}

// Create persists a fully computed meal.
func (s *MealService) Create(ctx context.Context, meal *models.Meal) error {
	if err := s.db.WithContext(ctx).Create(meal).Error; err != nil {
		return fmt.Errorf("insert meal: %w", err)
	}
	s.log.Infow("meal recorded",
		"user_id", meal.UserID,
		"meal_id", meal.ID,
		"meal_type", meal.MealType,
		"source", meal.Source,
		"calories", meal.Nutrition.Calories,
	)
	return nil
}

func resolveMealType(mealType string) (string, error) {
	if mealType == "" {
		return DefaultMealType, nil
	}
	if !models.IsMealType(mealType) {
		return "", types.NewValidationError("meal_type", "Invalid meal type")
	}
	return mealType, nil
}
