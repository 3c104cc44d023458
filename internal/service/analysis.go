package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/healthtracker/backend/internal/models"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/pageza/healthtracker/backend/pkg/logger"
)

const DefaultMaxUploadBytes = 10 << 20

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// AnalysisOptions wires the analysis pipeline. Cache and Photos are optional.
type AnalysisOptions struct {
	Recognizer FoodRecognizer
	Nutrition  *NutritionService
	Meals      *MealService
	Cache      AnalysisCache
	CacheTTL   time.Duration
	Photos     PhotoStore
	Portion    PortionPolicy
	MaxBytes   int64
}

// AnalyzeInput is one uploaded meal photo. A nil Portion uses the service
// default.
type AnalyzeInput struct {
	UserID   uuid.UUID
	MealType string
	Date     string
	Filename string
	Image    []byte
	Portion  PortionPolicy
}

// AnalysisService turns a meal photo into a stored meal: recognise foods,
// resolve per-100g nutrition, apply the portion policy and persist.
type AnalysisService struct {
	recognizer FoodRecognizer
	nutrition  *NutritionService
	meals      *MealService
	cache      AnalysisCache
	cacheTTL   time.Duration
	photos     PhotoStore
	portion    PortionPolicy
	maxBytes   int64
	log        *logger.Logger
}

var _ IAnalysisService = (*AnalysisService)(nil)

func NewAnalysisService(opts AnalysisOptions, log *logger.Logger) *AnalysisService {
	s := &AnalysisService{
		recognizer: opts.Recognizer,
		nutrition:  opts.Nutrition,
		meals:      opts.Meals,
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
		photos:     opts.Photos,
		portion:    opts.Portion,
		maxBytes:   opts.MaxBytes,
		log:        log.Named("analysis"),
	}
	if s.portion == nil {
		s.portion = FixedPortion(DefaultPortionMultiplier)
	}
	if s.cacheTTL == 0 {
		s.cacheTTL = DefaultAnalysisCacheTTL
	}
	if s.maxBytes <= 0 {
		s.maxBytes = DefaultMaxUploadBytes
	}
	return s
}

// MaxUploadBytes is the largest accepted photo.
func (s *AnalysisService) MaxUploadBytes() int64 {
	return s.maxBytes
}

// ValidateUpload checks the file name and size before the body is read.
func (s *AnalysisService) ValidateUpload(filename string, size int64) error {
	if filename == "" {
		return ErrNoPhoto
	}
	if !allowedImageExtensions[strings.ToLower(filepath.Ext(filename))] {
		return ErrUnsupportedImage
	}
	if size > s.maxBytes {
		return ErrImageTooLarge
	}
	return nil
}

func (s *AnalysisService) Analyze(ctx context.Context, in AnalyzeInput) (*types.MealAnalysis, error) {
	if len(in.Image) == 0 {
		return nil, ErrNoPhoto
	}
	if err := s.ValidateUpload(in.Filename, int64(len(in.Image))); err != nil {
		return nil, err
	}
	mealType, err := resolveMealType(strings.TrimSpace(in.MealType))
	if err != nil {
		return nil, err
	}
	date, err := resolveDate(strings.TrimSpace(in.Date))
	if err != nil {
		return nil, err
	}
	portion := in.Portion
	if portion == nil {
		portion = s.portion
	}

	log := s.log.With("user_id", in.UserID, "meal_type", mealType)
	mimeType := http.DetectContentType(in.Image)

	foods, cached, err := s.recognize(ctx, in.Image, mimeType, log)
	if err != nil {
		log.Errorw("food recognition failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrRecognitionFailed, err)
	}
	if len(foods) == 0 {
		log.Infow("no food identified")
		return nil, ErrNoFoodIdentified
	}

	breakdown := make([]models.MealItem, 0, len(foods))
	var total models.Nutrition
	for _, food := range foods {
		lookup := s.nutrition.PerHundredGrams(ctx, food)
		multiplier := portion.Multiplier(food)
		item := models.MealItem{
			Food:         food,
			Nutrition:    lookup.Nutrition.Scale(multiplier).NonNegative(),
			PortionGrams: multiplier * 100,
		}
		breakdown = append(breakdown, item)
		total = total.Add(item.Nutrition)
		log.Debugw("nutrition resolved", "food", food, "source", lookup.Source)
	}

	meal := &models.Meal{
		UserID:            in.UserID,
		Date:              date,
		MealType:          mealType,
		FoodItems:         strings.Join(foods, ", "),
		Nutrition:         total,
		Breakdown:         breakdown,
		PortionMultiplier: fixedMultiplier(portion),
		Source:            models.MealSourcePhoto,
	}
	s.attachPhoto(ctx, meal, in, mimeType, log)

	if err := s.meals.Create(ctx, meal); err != nil {
		return nil, err
	}

	return &types.MealAnalysis{
		MealID:            meal.ID,
		MealType:          mealType,
		Date:              date,
		FoodItems:         foods,
		Nutrition:         total,
		Breakdown:         breakdown,
		PortionMultiplier: meal.PortionMultiplier,
		Cached:            cached,
	}, nil
}

func (s *AnalysisService) recognize(ctx context.Context, image []byte, mimeType string, log *logger.Logger) ([]string, bool, error) {
	key := ImageCacheKey(image)

	if s.cache != nil {
		foods, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Warnw("analysis cache read failed", "error", err)
		} else if ok {
			log.Infow("analysis cache hit", "cache_key", key)
			return foods, true, nil
		}
	}

	if s.recognizer == nil {
		return nil, false, fmt.Errorf("no food recognizer configured")
	}
	foods, err := s.recognizer.RecognizeFoods(ctx, image, mimeType)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil && len(foods) > 0 {
		if err := s.cache.Set(ctx, key, foods, s.cacheTTL); err != nil {
			log.Warnw("analysis cache write failed", "error", err)
		}
	}
	return foods, false, nil
}

// attachPhoto uploads to the photo store when there is one, otherwise the
// photo is kept inline. Upload failures also fall back to inline.
func (s *AnalysisService) attachPhoto(ctx context.Context, meal *models.Meal, in AnalyzeInput, mimeType string, log *logger.Logger) {
	if s.photos != nil {
		key := fmt.Sprintf("meals/%s/%s%s", in.UserID, uuid.New(), strings.ToLower(filepath.Ext(in.Filename)))
		err := s.photos.Put(ctx, key, in.Image, mimeType)
		if err == nil {
			meal.ImageKey = key
			return
		}
		log.Warnw("photo upload failed, storing inline", "error", err)
	}
	meal.ImageData = base64.StdEncoding.EncodeToString(in.Image)
}

func fixedMultiplier(p PortionPolicy) float64 {
	if f, ok := p.(FixedPortion); ok {
		return float64(f)
	}
	return 0
}
