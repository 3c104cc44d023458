package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/healthtracker/backend/internal/models"
	"github.com/pageza/healthtracker/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Signup(ctx context.Context, req types.SignupRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GenerateToken(user *models.User, ttl time.Duration) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*types.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req types.UpdateProfileRequest) error
}

type IVitalsService interface {
	Add(ctx context.Context, userID uuid.UUID, req types.VitalsRequest) (*models.VitalsEntry, error)
	List(ctx context.Context, userID uuid.UUID, from, to string) ([]models.VitalsEntry, error)
}

type IMealService interface {
	List(ctx context.Context, userID uuid.UUID, date string) ([]models.Meal, error)
	AddManual(ctx context.Context, userID uuid.UUID, req types.ManualMealRequest) (*models.Meal, error)
}

type IActivityService interface {
	List(ctx context.Context, userID uuid.UUID, date string) ([]models.Activity, error)
	Add(ctx context.Context, userID uuid.UUID, req types.ActivityRequest) (*models.Activity, error)
	Delete(ctx context.Context, userID uuid.UUID, id string) error
}

// ISummaryService defines the interface for derived calorie summaries
type ISummaryService interface {
	Daily(ctx context.Context, userID uuid.UUID, date string) (*types.DailySummary, error)
	Weekly(ctx context.Context, userID uuid.UUID, endDate string) (*types.WeeklySummary, error)
	Monthly(ctx context.Context, userID uuid.UUID, year, month int) (map[int]types.CalendarDay, error)
}

// IAnalysisService defines the interface for meal photo analysis
type IAnalysisService interface {
	ValidateUpload(filename string, size int64) error
	MaxUploadBytes() int64
	Analyze(ctx context.Context, in AnalyzeInput) (*types.MealAnalysis, error)
}
