package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/healthtracker/backend/internal/database"
	"gorm.io/gorm"
)

// Version is reported by the health endpoints.
var Version = "v1.0.0"

const healthCheckTimeout = 2 * time.Second

// HealthCheck pings the database and reports the API status.
func HealthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		if err := database.HealthCheck(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database unavailable",
				"version": Version,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Health Tracker API is running",
			"version": Version,
		})
	}
}
