package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pageza/healthtracker/backend/internal/models"
	"github.com/pageza/healthtracker/backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Nutrition sources, recorded on cache rows and in lookup results.
const (
	SourceCache     = "cache"
	SourceBuiltin   = "builtin"
	SourceFatSecret = "fatsecret"
	SourceDefault   = "default"
)

// DefaultNutrition is used when no source knows a food. It is never cached.
var DefaultNutrition = models.Nutrition{Calories: 100, Protein: 5, Fat: 3, Carbohydrates: 15}

type builtinFood struct {
	name      string
	nutrition models.Nutrition
}

// Per-100g estimates, matched in order.
var builtinFoods = []builtinFood{
	{"chicken", models.Nutrition{Calories: 165, Protein: 31, Fat: 3.6, Carbohydrates: 0}},
	{"potato", models.Nutrition{Calories: 77, Protein: 2, Fat: 0.1, Carbohydrates: 17}},
	{"green beans", models.Nutrition{Calories: 31, Protein: 1.8, Fat: 0.2, Carbohydrates: 7}},
	{"butternut squash", models.Nutrition{Calories: 45, Protein: 1, Fat: 0.1, Carbohydrates: 12}},
	{"rice", models.Nutrition{Calories: 130, Protein: 2.7, Fat: 0.3, Carbohydrates: 28}},
	{"bread", models.Nutrition{Calories: 265, Protein: 9, Fat: 3.2, Carbohydrates: 49}},
	{"egg", models.Nutrition{Calories: 155, Protein: 13, Fat: 11, Carbohydrates: 1.1}},
	{"salmon", models.Nutrition{Calories: 208, Protein: 20, Fat: 13, Carbohydrates: 0}},
	{"beef", models.Nutrition{Calories: 250, Protein: 26, Fat: 15, Carbohydrates: 0}},
	{"pasta", models.Nutrition{Calories: 131, Protein: 5, Fat: 1.1, Carbohydrates: 25}},
	{"apple", models.Nutrition{Calories: 52, Protein: 0.3, Fat: 0.2, Carbohydrates: 14}},
	{"banana", models.Nutrition{Calories: 89, Protein: 1.1, Fat: 0.3, Carbohydrates: 23}},
	{"broccoli", models.Nutrition{Calories: 34, Protein: 2.8, Fat: 0.4, Carbohydrates: 7}},
	{"carrot", models.Nutrition{Calories: 41, Protein: 0.9, Fat: 0.2, Carbohydrates: 10}},
	{"cheese", models.Nutrition{Calories: 402, Protein: 25, Fat: 33, Carbohydrates: 1.3}},
	{"milk", models.Nutrition{Calories: 42, Protein: 3.4, Fat: 1, Carbohydrates: 5}},
	{"yogurt", models.Nutrition{Calories: 59, Protein: 10, Fat: 0.4, Carbohydrates: 3.6}},
	{"avocado", models.Nutrition{Calories: 160, Protein: 2, Fat: 15, Carbohydrates: 9}},
	{"tomato", models.Nutrition{Calories: 18, Protein: 0.9, Fat: 0.2, Carbohydrates: 3.9}},
	{"lettuce", models.Nutrition{Calories: 15, Protein: 1.4, Fat: 0.2, Carbohydrates: 2.9}},
}

// builtinNutrition matches food against the table by substring in either
// direction.
func builtinNutrition(food string) (models.Nutrition, bool) {
	if food == "" {
		return models.Nutrition{}, false
	}
	for _, b := range builtinFoods {
		if strings.Contains(food, b.name) || strings.Contains(b.name, food) {
			return b.nutrition, true
		}
	}
	return models.Nutrition{}, false
}

// NutritionSource is a remote per-100g nutrition database.
type NutritionSource interface {
	Lookup(ctx context.Context, food string) (models.Nutrition, bool, error)
}

// NutritionLookup is a resolved per-100g figure and where it came from.
type NutritionLookup struct {
	Nutrition models.Nutrition
	Source    string
}

// NutritionService resolves per-100g nutrition through the food cache, the
// builtin table, an optional remote source and finally DefaultNutrition.
type NutritionService struct {
	db     *gorm.DB
	remote NutritionSource
	log    *logger.Logger
}

// NewNutritionService creates a NutritionService. remote may be nil.
func NewNutritionService(db *gorm.DB, remote NutritionSource, log *logger.Logger) *NutritionService {
	return &NutritionService{db: db, remote: remote, log: log.Named("nutrition")}
}

func normalizeFood(food string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(food)), ".")
}

// PerHundredGrams never fails. Lookup problems are logged and the next
// source is tried.
func (s *NutritionService) PerHundredGrams(ctx context.Context, food string) NutritionLookup {
	name := normalizeFood(food)
	if name == "" {
		return NutritionLookup{Nutrition: DefaultNutrition, Source: SourceDefault}
	}

	var cached models.FoodCacheEntry
	err := s.db.WithContext(ctx).Where("food_name = ?", name).First(&cached).Error
	switch {
	case err == nil:
		return NutritionLookup{Nutrition: cached.Nutrition.NonNegative(), Source: SourceCache}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		s.log.Warnw("food cache read failed", "food", name, "error", err)
	}

	if n, ok := builtinNutrition(name); ok {
		s.store(ctx, name, n, SourceBuiltin)
		return NutritionLookup{Nutrition: n, Source: SourceBuiltin}
	}

	if s.remote != nil {
		n, ok, err := s.remote.Lookup(ctx, name)
		if err != nil {
			s.log.Warnw("remote nutrition lookup failed", "food", name, "error", err)
		} else if ok {
			n = n.NonNegative()
			s.store(ctx, name, n, SourceFatSecret)
			return NutritionLookup{Nutrition: n, Source: SourceFatSecret}
		}
	}

	s.log.Debugw("using default nutrition", "food", name)
	return NutritionLookup{Nutrition: DefaultNutrition, Source: SourceDefault}
}

func (s *NutritionService) store(ctx context.Context, name string, n models.Nutrition, source string) {
	entry := models.FoodCacheEntry{
		FoodName:    name,
		Nutrition:   n,
		ServingSize: "100g",
		Source:      source,
		LastUpdated: time.Now(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "food_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"calories", "protein", "fat", "carbohydrates", "source", "last_updated"}),
	}).Create(&entry).Error
	if err != nil {
		s.log.Warnw("food cache write failed", "food", name, "error", err)
	}
}
