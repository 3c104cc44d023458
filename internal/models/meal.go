package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Meal types in display order.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealSnacks    = "snacks"
	MealDinner    = "dinner"
)

var MealTypes = []string{MealBreakfast, MealLunch, MealSnacks, MealDinner}

// IsMealType reports whether s is one of MealTypes.
func IsMealType(s string) bool {
	for _, t := range MealTypes {
		if t == s {
			return true
		}
	}
	return false
}

const (
	MealSourceManual = "manual"
	MealSourcePhoto  = "photo"
)

// MealItem is the nutrition attributed to one recognised food.
type MealItem struct {
	Food         string    `json:"food"`
	Nutrition    Nutrition `json:"nutrition"`
	PortionGrams float64   `json:"portion_grams"`
}

// Meal is immutable once created. Nutrition holds the portion-adjusted totals
// computed at creation time.
type Meal struct {
	ID                uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID            uuid.UUID  `gorm:"type:varchar(36);not null;index:idx_meals_user_date" json:"user_id"`
	Date              string     `gorm:"type:varchar(10);not null;index:idx_meals_user_date" json:"date"`
	MealType          string     `gorm:"size:20;not null" json:"meal_type"`
	FoodItems         string     `gorm:"type:text" json:"food_items"`
	Nutrition         Nutrition  `gorm:"embedded" json:"nutrition"`
	Breakdown         []MealItem `gorm:"type:text;serializer:json" json:"breakdown,omitempty"`
	PortionMultiplier float64    `json:"portion_multiplier,omitempty"`
	Source            string     `gorm:"size:10;not null;default:'manual'" json:"source"`
	ImageData         string     `gorm:"type:text" json:"image_data,omitempty"`
	ImageKey          string     `gorm:"size:255" json:"-"`
	ImageURL          string     `gorm:"-" json:"image_url,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
