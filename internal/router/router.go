package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pageza/healthtracker/backend/internal/api"
	"github.com/pageza/healthtracker/backend/internal/middleware"
	"github.com/pageza/healthtracker/backend/internal/web"
	"github.com/pageza/healthtracker/backend/pkg/logger"
)

// Config carries what SetupRouter needs beyond the services.
type Config struct {
	Options        api.Options
	AllowedOrigins []string
	Log            *logger.Logger
}

// SetupRouter configures the application routes
func SetupRouter(svc api.Services, cfg Config) (*gin.Engine, error) {
	router := gin.New()

	router.Use(middleware.ErrorHandler(cfg.Log))
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	api.RegisterRoutes(router, svc, cfg.Options)

	if err := web.RegisterRoutes(router, svc.Auth, cfg.Options.Session.CookieName); err != nil {
		return nil, err
	}

	return router, nil
}
