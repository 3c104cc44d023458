package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pageza/healthtracker/backend/internal/models"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/pageza/healthtracker/backend/pkg/logger"
	"gorm.io/gorm"
)

// UserStats summarises one user's stored data.
type UserStats struct {
	User                 models.User
	Meals                int64
	Activities           int64
	Vitals               int64
	LatestWeight         *float64
	AverageDailyCalories *float64
}

// AdminService backs the database management CLI.
type AdminService struct {
	db   *gorm.DB
	auth *AuthService
	log  *logger.Logger
}

func NewAdminService(db *gorm.DB, auth *AuthService, log *logger.Logger) *AdminService {
	return &AdminService{db: db, auth: auth, log: log.Named("admin")}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CreateUser applies the same rules as signup.
func (s *AdminService) CreateUser(ctx context.Context, req types.SignupRequest) (*models.User, error) {
	return s.auth.Signup(ctx, req)
}

// DeleteUser removes a user together with their meals, activities and vitals.
func (s *AdminService) DeleteUser(ctx context.Context, username string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("username = ?", username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		for _, model := range []interface{}{&models.Meal{}, &models.Activity{}, &models.VitalsEntry{}} {
			if err := tx.Where("user_id = ?", user.ID).Delete(model).Error; err != nil {
				return fmt.Errorf("delete user data: %w", err)
			}
		}
		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}

		s.log.Infow("user deleted", "user_id", user.ID, "username", username)
		return nil
	})
}

func (s *AdminService) Stats(ctx context.Context, username string) (*UserStats, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	stats := &UserStats{User: user}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.Meal{}, &stats.Meals},
		{&models.Activity{}, &stats.Activities},
		{&models.VitalsEntry{}, &stats.Vitals},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where("user_id = ?", user.ID).Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("count rows: %w", err)
		}
	}

	var latest models.VitalsEntry
	err := db.Where("user_id = ? AND weight IS NOT NULL", user.ID).
		Order("date DESC, created_at DESC").
		First(&latest).Error
	switch {
	case err == nil:
		stats.LatestWeight = latest.Weight
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("latest weight: %w", err)
	}

	daily := db.Model(&models.Meal{}).
		Select("date, SUM(calories) AS total").
		Where("user_id = ?", user.ID).
		Group("date")
	var avg sql.NullFloat64
	if err := db.Table("(?) AS daily", daily).Select("AVG(total)").Row().Scan(&avg); err != nil {
		return nil, fmt.Errorf("average calories: %w", err)
	}
	if avg.Valid {
		stats.AverageDailyCalories = &avg.Float64
	}

	return stats, nil
}

// Reset deletes every row of every table, caches included.
func (s *AdminService) Reset(ctx context.Context) error {
	all := models.All()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := len(all) - 1; i >= 0; i-- {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(all[i]).Error; err != nil {
				return fmt.Errorf("reset %T: %w", all[i], err)
			}
		}
		s.log.Warnw("database reset")
		return nil
	})
}
