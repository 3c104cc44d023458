package types

import (
	"github.com/google/uuid"
	"github.com/pageza/healthtracker/backend/internal/models"
)

// Response statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrorResponse is the body of every failed API request. Message is shown
// to the user as is.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Status: StatusError, Message: message}
}

// ProfileResponse is the public view of a user's profile.
type ProfileResponse struct {
	Username       string   `json:"username"`
	Email          *string  `json:"email"`
	Name           string   `json:"name"`
	Age            *int     `json:"age"`
	Height         *float64 `json:"height"`
	TargetCalories int      `json:"target_calories"`
}

// DailySummary aggregates one day of meals and activities.
type DailySummary struct {
	Date                  string  `json:"date"`
	TotalCaloriesConsumed float64 `json:"total_calories_consumed"`
	TotalCaloriesBurned   float64 `json:"total_calories_burned"`
	NetCalories           float64 `json:"net_calories"`
	TotalProtein          float64 `json:"total_protein"`
	TotalFat              float64 `json:"total_fat"`
	TotalCarbs            float64 `json:"total_carbs"`
	TargetCalories        int     `json:"target_calories"`
	RemainingCalories     float64 `json:"remaining_calories"`
}

// WeeklySummary is seven consecutive daily summaries ending on EndDate.
type WeeklySummary struct {
	StartDate       string         `json:"start_date"`
	EndDate         string         `json:"end_date"`
	Days            []DailySummary `json:"days"`
	AverageConsumed float64        `json:"average_consumed"`
	AverageBurned   float64        `json:"average_burned"`
	AverageNet      float64        `json:"average_net"`
	DaysOverTarget  int            `json:"days_over_target"`
	TargetCalories  int            `json:"target_calories"`
}

// Calendar statuses
const (
	CalendarGood = "good"
	CalendarOver = "over"
)

// CalendarDay is one populated day of a month view.
type CalendarDay struct {
	Consumed float64 `json:"consumed"`
	Burned   float64 `json:"burned"`
	Net      float64 `json:"net"`
	Status   string  `json:"status"`
}

// MealAnalysis is the outcome of analysing a meal photo.
type MealAnalysis struct {
	MealID            uuid.UUID         `json:"meal_id"`
	MealType          string            `json:"meal_type"`
	Date              string            `json:"date"`
	FoodItems         []string          `json:"food_items"`
	Nutrition         models.Nutrition  `json:"nutrition"`
	Breakdown         []models.MealItem `json:"breakdown"`
	PortionMultiplier float64           `json:"portion_multiplier"`
	Cached            bool              `json:"cached"`
}
