package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/healthtracker/backend/internal/models"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/pageza/healthtracker/backend/pkg/logger"
	"gorm.io/gorm"
)

// VitalsHistoryDays is the default window for vitals queries.
const VitalsHistoryDays = 30

// VitalsService records body-composition readings. Readings are append-only.
type VitalsService struct {
	db  *gorm.DB
	log *logger.Logger
}

var _ IVitalsService = (*VitalsService)(nil)

func NewVitalsService(db *gorm.DB, log *logger.Logger) *VitalsService {
	return &VitalsService{db: db, log: log.Named("vitals")}
}

func (s *VitalsService) Add(ctx context.Context, userID uuid.UUID, req types.VitalsRequest) (*models.VitalsEntry, error) {
	if err := types.Validate(req); err != nil {
		return nil, err
	}
	date, err := resolveDate(req.Date)
	if err != nil {
		return nil, err
	}

	entry := &models.VitalsEntry{
		UserID:                   userID,
		Date:                     date,
		Weight:                   req.Weight,
		BMI:                      req.BMI,
		BodyFatPercentage:        req.BodyFatPercentage,
		SkeletalMusclePercentage: req.SkeletalMusclePercentage,
		FatFreeMass:              req.FatFreeMass,
		SubcutaneousFat:          req.SubcutaneousFat,
		VisceralFat:              req.VisceralFat,
		BodyWaterPercentage:      req.BodyWaterPercentage,
		MuscleMass:               req.MuscleMass,
		BoneMass:                 req.BoneMass,
		ProteinPercentage:        req.ProteinPercentage,
		BMR:                      req.BMR,
		MetabolicAge:             req.MetabolicAge,
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("insert vitals: %w", err)
	}

	s.log.Infow("vitals recorded", "user_id", userID, "vitals_id", entry.ID, "date", date)
	return entry, nil
}

// List returns entries between from and to inclusive, oldest first. Empty
// bounds default to the last VitalsHistoryDays days.
func (s *VitalsService) List(ctx context.Context, userID uuid.UUID, from, to string) ([]models.VitalsEntry, error) {
	from, to, err := dateRange(from, to, VitalsHistoryDays)
	if err != nil {
		return nil, err
	}

	entries := []models.VitalsEntry{}
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC, created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list vitals: %w", err)
	}
	return entries, nil
}
