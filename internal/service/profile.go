package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pageza/healthtracker/backend/internal/models"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/pageza/healthtracker/backend/pkg/logger"
	"gorm.io/gorm"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db  *gorm.DB
	log *logger.Logger
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

func NewProfileService(db *gorm.DB, log *logger.Logger) *ProfileService {
	return &ProfileService{
		db:  db,
		log: log.Named("profile"),
	}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*types.ProfileResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	return &types.ProfileResponse{
		Username:       user.Username,
		Email:          user.Email,
		Name:           user.Name,
		Age:            user.Age,
		Height:         user.Height,
		TargetCalories: user.TargetCalories,
	}, nil
}

// UpdateProfile replaces age, height and calorie target. Values that were
// supplied but do not parse fall back to null (age, height) or the default
// target. Name is only changed when present.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req types.UpdateProfileRequest) error {
	updates := map[string]interface{}{}

	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}

	var age *int
	if f, err := req.Age.Float(0); req.Age.Present && err == nil {
		v := int(f)
		if v < 1 || v > 150 {
			return types.NewValidationError("age", "Invalid age (must be 1-150)")
		}
		age = &v
	}
	updates["age"] = age

	var height *float64
	if v, err := req.Height.Float(0); req.Height.Present && err == nil {
		if v < 50 || v > 300 {
			return types.NewValidationError("height", "Invalid height (must be 50-300 cm)")
		}
		height = &v
	}
	updates["height"] = height

	target := models.DefaultTargetCalories
	if f, err := req.TargetCalories.Float(0); req.TargetCalories.Present && err == nil {
		target = int(f)
		if target < 500 || target > 10000 {
			return types.NewValidationError("target_calories", "Invalid calorie target (must be 500-10000)")
		}
	}
	updates["target_calories"] = target

	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	s.log.Infow("profile updated", "user_id", userID)
	return nil
}

// TargetCalories returns the user's daily target, or the default when the
// user has none.
func (s *ProfileService) TargetCalories(ctx context.Context, userID uuid.UUID) (int, error) {
	return targetCalories(s.db.WithContext(ctx), userID)
}

func targetCalories(db *gorm.DB, userID uuid.UUID) (int, error) {
	var user models.User
	err := db.Select("target_calories").First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultTargetCalories, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load target calories: %w", err)
	}
	if user.TargetCalories <= 0 {
		return models.DefaultTargetCalories, nil
	}
	return user.TargetCalories, nil
}
