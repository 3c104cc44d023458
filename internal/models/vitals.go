package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VitalsEntry is one body-composition reading. Entries are only ever appended;
// several entries may share a date.
type VitalsEntry struct {
	ID                       uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID                   uuid.UUID `gorm:"type:varchar(36);not null;index:idx_vitals_user_date" json:"user_id"`
	Date                     string    `gorm:"type:varchar(10);not null;index:idx_vitals_user_date" json:"date"`
	Weight                   *float64  `json:"weight"`
	BMI                      *float64  `gorm:"column:bmi" json:"bmi"`
	BodyFatPercentage        *float64  `json:"body_fat_percentage"`
	SkeletalMusclePercentage *float64  `json:"skeletal_muscle_percentage"`
	FatFreeMass              *float64  `json:"fat_free_mass"`
	SubcutaneousFat          *float64  `json:"subcutaneous_fat"`
	VisceralFat              *float64  `json:"visceral_fat"`
	BodyWaterPercentage      *float64  `json:"body_water_percentage"`
	MuscleMass               *float64  `json:"muscle_mass"`
	BoneMass                 *float64  `json:"bone_mass"`
	ProteinPercentage        *float64  `json:"protein_percentage"`
	BMR                      *float64  `gorm:"column:bmr" json:"bmr"`
	MetabolicAge             *int      `json:"metabolic_age"`
	CreatedAt                time.Time `json:"created_at"`
}

func (VitalsEntry) TableName() string {
	return "vitals"
}

func (v *VitalsEntry) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
