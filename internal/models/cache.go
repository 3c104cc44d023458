package models

import (
	"time"
)

// FoodCacheEntry stores per-100g nutrition for a food name that has been
// resolved before.
type FoodCacheEntry struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	FoodName    string    `gorm:"size:255;not null;uniqueIndex" json:"food_name"`
	Nutrition   Nutrition `gorm:"embedded" json:"nutrition"`
	ServingSize string    `gorm:"size:50;default:'100g'" json:"serving_size"`
	Source      string    `gorm:"size:20" json:"source"`
	LastUpdated time.Time `gorm:"not null" json:"last_updated"`
}

func (FoodCacheEntry) TableName() string {
	return "food_cache"
}

// AnalysisCacheEntry stores a recognised food list keyed by image digest.
type AnalysisCacheEntry struct {
	ID           uint      `gorm:"primarykey"`
	CacheKey     string    `gorm:"size:255;not null;uniqueIndex"`
	ResponseData string    `gorm:"type:text;not null"`
	CreatedAt    time.Time `gorm:"not null"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

func (AnalysisCacheEntry) TableName() string {
	return "api_cache"
}

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&VitalsEntry{},
		&Meal{},
		&Activity{},
		&FoodCacheEntry{},
		&AnalysisCacheEntry{},
	}
}
