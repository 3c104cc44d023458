package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/pageza/healthtracker/backend/pkg/logger"
)

const internalErrorMessage = "An internal server error occurred."

// ErrorHandler turns panics and unanswered handler errors into the JSON
// error body.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Errorw("panic recovered",
					"error", err,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.NewErrorResponse(internalErrorMessage))
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			log.Errorw("request failed", "errors", c.Errors.String(), "path", c.Request.URL.Path)
			c.JSON(http.StatusInternalServerError, types.NewErrorResponse(internalErrorMessage))
		}
	}
}
