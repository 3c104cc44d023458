package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pageza/healthtracker/backend/internal/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultAnalysisCacheTTL = 168 * time.Hour

// AnalysisCache stores recognised food lists by image digest.
type AnalysisCache interface {
	Get(ctx context.Context, key string) ([]string, bool, error)
	Set(ctx context.Context, key string, foods []string, ttl time.Duration) error
}

// ImageCacheKey is the hex SHA-256 of the image bytes.
func ImageCacheKey(image []byte) string {
	sum := sha256.Sum256(image)
	return hex.EncodeToString(sum[:])
}

// RedisAnalysisCache keeps entries in redis with a native expiry.
type RedisAnalysisCache struct {
	client *redis.Client
	prefix string
}

var _ AnalysisCache = (*RedisAnalysisCache)(nil)

func NewRedisAnalysisCache(client *redis.Client) *RedisAnalysisCache {
	return &RedisAnalysisCache{client: client, prefix: "analysis:"}
}

func (c *RedisAnalysisCache) Get(ctx context.Context, key string) ([]string, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var foods []string
	if err := json.Unmarshal(data, &foods); err != nil {
		return nil, false, fmt.Errorf("decode cached analysis: %w", err)
	}
	return foods, true, nil
}

func (c *RedisAnalysisCache) Set(ctx context.Context, key string, foods []string, ttl time.Duration) error {
	data, err := json.Marshal(foods)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, data, ttl).Err()
}

// DBAnalysisCache keeps entries in the api_cache table. Expired rows are
// ignored on read and overwritten on the next write.
type DBAnalysisCache struct {
	db *gorm.DB
}

var _ AnalysisCache = (*DBAnalysisCache)(nil)

func NewDBAnalysisCache(db *gorm.DB) *DBAnalysisCache {
	return &DBAnalysisCache{db: db}
}

func (c *DBAnalysisCache) Get(ctx context.Context, key string) ([]string, bool, error) {
	var entry models.AnalysisCacheEntry
	err := c.db.WithContext(ctx).
		Where("cache_key = ? AND expires_at > ?", key, time.Now()).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var foods []string
	if err := json.Unmarshal([]byte(entry.ResponseData), &foods); err != nil {
		return nil, false, fmt.Errorf("decode cached analysis: %w", err)
	}
	return foods, true, nil
}

func (c *DBAnalysisCache) Set(ctx context.Context, key string, foods []string, ttl time.Duration) error {
	data, err := json.Marshal(foods)
	if err != nil {
		return err
	}

	now := time.Now()
	entry := models.AnalysisCacheEntry{
		CacheKey:     key,
		ResponseData: string(data),
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
	}
	return c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"response_data", "created_at", "expires_at"}),
	}).Create(&entry).Error
}

// PurgeExpired deletes expired rows and reports how many were removed.
func (c *DBAnalysisCache) PurgeExpired(ctx context.Context) (int64, error) {
	result := c.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&models.AnalysisCacheEntry{})
	return result.RowsAffected, result.Error
}
