package types

import (
	"strings"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// SignupRequest represents the request body for account creation
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,username"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"omitempty,contains=@"`
	Name     string `json:"name"`
}

// Normalize trims surrounding whitespace from every field.
func (r *SignupRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Password = strings.TrimSpace(r.Password)
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
}

func (r SignupRequest) validationMessages() map[string]string {
	return map[string]string{
		"Username.required": "Username and password are required",
		"Password.required": "Username and password are required",
		"Username.min":      "Username must be at least 3 characters",
		"Username.username": "Username can only contain letters, numbers, and underscores",
		"Password.min":      "Password must be at least 6 characters",
		"Email.contains":    "Invalid email format",
	}
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Password = strings.TrimSpace(r.Password)
}

func (r LoginRequest) validationMessages() map[string]string {
	return map[string]string{
		"Username.required": "Username and password are required",
		"Password.required": "Username and password are required",
	}
}

// UpdateProfileRequest represents the request body for a profile edit. Range
// checks happen in the profile service because unparseable values have
// field-specific fallbacks.
type UpdateProfileRequest struct {
	Name           *string `json:"name"`
	Age            Number  `json:"age"`
	Height         Number  `json:"height"`
	TargetCalories Number  `json:"target_calories"`
}

// VitalsRequest is a full vitals submission.
type VitalsRequest struct {
	Date                     string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Weight                   *float64 `json:"weight" validate:"omitempty,gte=0"`
	BMI                      *float64 `json:"bmi" validate:"omitempty,gte=0"`
	BodyFatPercentage        *float64 `json:"body_fat_percentage" validate:"omitempty,gte=0,lte=100"`
	SkeletalMusclePercentage *float64 `json:"skeletal_muscle_percentage" validate:"omitempty,gte=0,lte=100"`
	FatFreeMass              *float64 `json:"fat_free_mass" validate:"omitempty,gte=0"`
	SubcutaneousFat          *float64 `json:"subcutaneous_fat" validate:"omitempty,gte=0,lte=100"`
	VisceralFat              *float64 `json:"visceral_fat" validate:"omitempty,gte=0"`
	BodyWaterPercentage      *float64 `json:"body_water_percentage" validate:"omitempty,gte=0,lte=100"`
	MuscleMass               *float64 `json:"muscle_mass" validate:"omitempty,gte=0"`
	BoneMass                 *float64 `json:"bone_mass" validate:"omitempty,gte=0"`
	ProteinPercentage        *float64 `json:"protein_percentage" validate:"omitempty,gte=0,lte=100"`
	BMR                      *float64 `json:"bmr" validate:"omitempty,gte=0"`
	MetabolicAge             *int     `json:"metabolic_age" validate:"omitempty,gte=0,lte=150"`
}

func (r VitalsRequest) validationMessages() map[string]string {
	return map[string]string{
		"Date.datetime": "Invalid date format (expected YYYY-MM-DD)",
	}
}

// ManualMealRequest is a meal entered without a photo. It binds from JSON or
// from a form.
type ManualMealRequest struct {
	MealType      string `json:"meal_type" form:"meal_type"`
	Date          string `json:"date" form:"date" validate:"omitempty,datetime=2006-01-02"`
	FoodItems     string `json:"food_items" form:"food_items" validate:"required"`
	Calories      Number `json:"calories" form:"calories"`
	Protein       Number `json:"protein" form:"protein"`
	Fat           Number `json:"fat" form:"fat"`
	Carbohydrates Number `json:"carbohydrates" form:"carbohydrates"`
}

func (r *ManualMealRequest) Normalize() {
	r.MealType = strings.TrimSpace(r.MealType)
	r.Date = strings.TrimSpace(r.Date)
	r.FoodItems = strings.TrimSpace(r.FoodItems)
}

func (r ManualMealRequest) validationMessages() map[string]string {
	return map[string]string{
		"FoodItems.required": "Food items are required",
		"Date.datetime":      "Invalid date format (expected YYYY-MM-DD)",
	}
}

// ActivityRequest represents the request body for logging exercise
type ActivityRequest struct {
	Date            string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	ActivityName    string `json:"activity_name" validate:"required"`
	DurationMinutes Number `json:"duration_minutes"`
	CaloriesBurned  Number `json:"calories_burned"`
	Notes           string `json:"notes"`
}

func (r *ActivityRequest) Normalize() {
	r.Date = strings.TrimSpace(r.Date)
	r.ActivityName = strings.TrimSpace(r.ActivityName)
	r.Notes = strings.TrimSpace(r.Notes)
}

func (r ActivityRequest) validationMessages() map[string]string {
	return map[string]string{
		"ActivityName.required": "Activity name is required",
		"Date.datetime":         "Invalid date format (expected YYYY-MM-DD)",
	}
}
