package server

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/healthtracker/backend/config"
	"github.com/pageza/healthtracker/backend/internal/api"
	"github.com/pageza/healthtracker/backend/internal/middleware"
	"github.com/pageza/healthtracker/backend/internal/router"
	"github.com/pageza/healthtracker/backend/internal/service"
	"github.com/pageza/healthtracker/backend/pkg/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Components are the externally backed parts of the application. Redis and
// Photos are optional. A nil Recognizer or Nutrition is built from config.
type Components struct {
	Redis      *redis.Client
	Photos     service.PhotoStore
	Recognizer service.FoodRecognizer
	Nutrition  service.NutritionSource
}

// NewRecognizer builds the food recognizer selected by AI_PROVIDER.
func NewRecognizer(cfg *config.Config) service.FoodRecognizer {
	if cfg.AIProvider == config.ProviderOpenAI {
		return service.NewOpenAIRecognizer(cfg.OpenAIAPIKey, cfg.OpenAIModel, "")
	}
	return service.NewGeminiRecognizer(cfg.GeminiAPIKey, cfg.GeminiModel, "")
}

// NewNutritionSource returns the FatSecret client, or nil when no access
// token is configured.
func NewNutritionSource(cfg *config.Config) service.NutritionSource {
	if cfg.FatSecretAccessToken == "" {
		return nil
	}
	return service.NewFatSecretClient(cfg.FatSecretAccessToken, "")
}

// NewApp wires services, handlers and pages into one gin engine.
func NewApp(cfg *config.Config, db *gorm.DB, c Components, log *logger.Logger) (*gin.Engine, error) {
	if c.Recognizer == nil {
		c.Recognizer = NewRecognizer(cfg)
	}
	if c.Nutrition == nil {
		c.Nutrition = NewNutritionSource(cfg)
	}

	var (
		cache   service.AnalysisCache
		limiter *middleware.RateLimiter
	)
	if c.Redis != nil {
		cache = service.NewRedisAnalysisCache(c.Redis)
		limiter = middleware.NewPhotoAnalysisRateLimiter(c.Redis, log)
	} else {
		cache = service.NewDBAnalysisCache(db)
	}

	portion := service.FixedPortion(service.DefaultPortionMultiplier)
	if cfg.PortionMultiplier > 0 {
		portion = service.FixedPortion(cfg.PortionMultiplier)
	}

	auth := service.NewAuthService(db, cfg.JWTSecret, log)
	meals := service.NewMealService(db, c.Photos, log)
	analysis := service.NewAnalysisService(service.AnalysisOptions{
		Recognizer: c.Recognizer,
		Nutrition:  service.NewNutritionService(db, c.Nutrition, log),
		Meals:      meals,
		Cache:      cache,
		CacheTTL:   cfg.AnalysisCacheTTL,
		Photos:     c.Photos,
		Portion:    portion,
		MaxBytes:   cfg.MaxUploadBytes,
	}, log)

	svc := api.Services{
		Auth:       auth,
		Profile:    service.NewProfileService(db, log),
		Vitals:     service.NewVitalsService(db, log),
		Meals:      meals,
		Activities: service.NewActivityService(db, log),
		Summaries:  service.NewSummaryService(db, log),
		Analysis:   analysis,
	}

	return router.SetupRouter(svc, router.Config{
		Options: api.Options{
			DB: db,
			Session: api.SessionConfig{
				CookieName: cfg.SessionCookieName,
				Secure:     cfg.SecureCookies,
			},
			PhotoLimiter: limiter,
			Log:          log,
		},
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Log:            log,
	})
}
