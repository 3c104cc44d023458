package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pageza/healthtracker/backend/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func limitedRouter(rl *RateLimiter, userID uuid.UUID) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextUserID, userID)
		c.Next()
	})
	router.POST("/api/meal", rl.Middleware(IsPhotoSubmission), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return router
}

func photoRequest() *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/meal", strings.NewReader("--x--"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	return req
}

func TestRateLimiterFailsOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	rl := NewPhotoAnalysisRateLimiter(client, logger.NewNop())
	rr := httptest.NewRecorder()
	limitedRouter(rl, uuid.New()).ServeHTTP(rr, photoRequest())

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "rate limit check failed", rr.Header().Get("X-RateLimit-Error"))
}

func TestRateLimiterOnlyMatchesPhotos(t *testing.T) {
	gin.SetMode(gin.TestMode)
	req := httptest.NewRequest(http.MethodPost, "/api/meal", strings.NewReader(`{"food_items":"toast"}`))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	assert.False(t, IsPhotoSubmission(c))

	c.Request = photoRequest()
	assert.True(t, IsPhotoSubmission(c))
}

func TestRateLimiterWithRedis(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set, skipping redis test")
	}
	gin.SetMode(gin.TestMode)
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	defer client.Close()

	rl := NewRateLimiter(client, RateLimitConfig{
		Window:    time.Minute,
		Limit:     2,
		KeyPrefix: "rate_limit:test:" + uuid.NewString(),
	}, logger.NewNop())
	userID := uuid.New()
	router := limitedRouter(rl, userID)

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, photoRequest())
		assert.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, photoRequest())
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))

	remaining, _, err := rl.GetRemainingRequests(context.Background(), userID.String())
	require.NoError(t, err)
	assert.Zero(t, remaining)
}
