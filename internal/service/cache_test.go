package service_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/pageza/healthtracker/backend/internal/service"
	"github.com/pageza/healthtracker/backend/internal/testhelpers"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageCacheKey(t *testing.T) {
	a := service.ImageCacheKey(testhelpers.PNGImage(1))
	b := service.ImageCacheKey(testhelpers.PNGImage(2))
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b, "images sharing a header get different keys")
	assert.Equal(t, a, service.ImageCacheKey(testhelpers.PNGImage(1)))
}

func TestDBAnalysisCache(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	cache := service.NewDBAnalysisCache(db)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k1", []string{"rice", "egg"}, time.Hour))
	foods, ok, err := cache.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"rice", "egg"}, foods)

	// Overwrite with an already expired entry.
	require.NoError(t, cache.Set(ctx, "k1", []string{"toast"}, -time.Minute))
	_, ok, err = cache.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok, "expired entries are ignored")

	purged, err := cache.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}

func TestRedisAnalysisCache(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set, skipping redis test")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	defer client.Close()

	cache := service.NewRedisAnalysisCache(client)
	ctx := context.Background()
	key := "test-" + time.Now().Format(time.RFC3339Nano)

	require.NoError(t, cache.Set(ctx, key, []string{"apple"}, time.Minute))
	foods, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"apple"}, foods)

	client.Del(ctx, "analysis:"+key)
	_, ok, err = cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}
