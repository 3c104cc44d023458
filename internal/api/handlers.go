package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/healthtracker/backend/internal/middleware"
	"github.com/pageza/healthtracker/backend/internal/service"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/pageza/healthtracker/backend/pkg/logger"
	"gorm.io/gorm"
)

// Services groups the business services the API exposes.
type Services struct {
	Auth       service.IAuthService
	Profile    service.IProfileService
	Vitals     service.IVitalsService
	Meals      service.IMealService
	Activities service.IActivityService
	Summaries  service.ISummaryService
	Analysis   service.IAnalysisService
}

// Options configures RegisterRoutes. PhotoLimiter is nil when redis is not
// configured.
type Options struct {
	DB           *gorm.DB
	Session      SessionConfig
	PhotoLimiter *middleware.RateLimiter
	Log          *logger.Logger
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, svc Services, opts Options) {
	// Health check endpoint (no auth required)
	router.GET("/health", HealthCheck(opts.DB))

	api := router.Group("/api")
	api.GET("/health", HealthCheck(opts.DB))

	NewAuthHandler(svc.Auth, opts.Session, opts.Log).RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(svc.Auth, opts.Session.CookieName))

	NewProfileHandler(svc.Profile).RegisterRoutes(protected)
	NewVitalsHandler(svc.Vitals).RegisterRoutes(protected)
	NewMealHandler(svc.Meals, svc.Analysis, opts.PhotoLimiter, opts.Log).RegisterRoutes(protected)
	NewActivityHandler(svc.Activities).RegisterRoutes(protected)
	NewSummaryHandler(svc.Summaries).RegisterRoutes(protected)

	RegisterRateLimitRoutes(protected, opts.PhotoLimiter)
}

// RegisterRateLimitRoutes registers the endpoint for checking the photo
// analysis quota. limiter may be nil.
func RegisterRateLimitRoutes(router *gin.RouterGroup, limiter *middleware.RateLimiter) {
	router.GET("/rate-limit", func(c *gin.Context) {
		if limiter == nil {
			c.JSON(http.StatusOK, gin.H{"enabled": false})
			return
		}

		userID, ok := currentUser(c)
		if !ok {
			return
		}

		remaining, resetTime, err := limiter.GetRemainingRequests(c.Request.Context(), userID.String())
		if err != nil {
			c.JSON(http.StatusInternalServerError, types.NewErrorResponse("Failed to check rate limit"))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"enabled":    true,
			"limit":      limiter.Limit(),
			"remaining":  remaining,
			"reset_time": resetTime.Unix(),
			"window":     "1h",
		})
	})
}
