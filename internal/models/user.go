package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultTargetCalories is the daily calorie target given to new accounts.
const DefaultTargetCalories = 2000

type User struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Username       string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email          *string   `gorm:"size:255;uniqueIndex" json:"email"`
	Name           string    `gorm:"size:255" json:"name"`
	PasswordHash   string    `gorm:"not null" json:"-"`
	Age            *int      `json:"age"`
	Height         *float64  `json:"height"`
	TargetCalories int       `gorm:"not null;default:2000" json:"target_calories"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.TargetCalories == 0 {
		u.TargetCalories = DefaultTargetCalories
	}
	return nil
}
