package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/kvistberg/mentor-platform/internal/modality"
	"github.com/kvistberg/mentor-platform/pkg/config"
	"github.com/kvistberg/mentor-platform/pkg/redis"
)

// Cache is the fast local evidence store: a capped list of data points per
// learner in Redis plus a small metadata hash. It is the collection the
// engine recomputes from; the durable Postgres record is only a fallback.
type Cache struct {
	redis  redis.Client
	cfg    *config.Config
	logger *slog.Logger
}

// NewCache creates a new evidence cache wrapper
func NewCache(redisClient redis.Client, cfg *config.Config, logger *slog.Logger) *Cache {
	return &Cache{
		redis:  redisClient,
		cfg:    cfg,
		logger: logger,
	}
}

// StorePoint appends a data point to the learner's evidence list and trims
// it to the configured history cap (newest first).
func (c *Cache) StorePoint(ctx context.Context, userID string, point modality.DataPoint) error {
	key := redis.ActivityPointsKey(userID)

	data, err := json.Marshal(point)
	if err != nil {
		return fmt.Errorf("failed to marshal data point: %w", err)
	}

	if err := c.redis.LPush(ctx, key, string(data)); err != nil {
		return err
	}

	if err := c.redis.LTrim(ctx, key, 0, int64(c.cfg.MaxActivityHistory)-1); err != nil {
		return err
	}

	metaKey := redis.ActivityMetaKey(userID)
	if err := c.redis.HSet(ctx, metaKey, "lastActivity", fmt.Sprintf("%d", time.Now().UnixMilli())); err != nil {
		c.logger.Warn("Failed to update activity metadata", "user", userID, "error", err)
	}

	return nil
}

// Count returns the number of cached data points for a learner
func (c *Cache) Count(ctx context.Context, userID string) (int, error) {
	length, err := c.redis.LLen(ctx, redis.ActivityPointsKey(userID))
	if err != nil {
		return 0, err
	}
	return int(length), nil
}

// Points returns all cached data points for a learner, oldest first.
// Entries that fail to parse are skipped with a warning rather than failing
// the whole recomputation.
func (c *Cache) Points(ctx context.Context, userID string) ([]modality.DataPoint, error) {
	key := redis.ActivityPointsKey(userID)

	values, err := c.redis.LRange(ctx, key, 0, -1)
	if err != nil {
		c.logger.Warn("Failed to read activity points", "user", userID, "error", err)
		return nil, err
	}

	// Stored newest first; reverse for chronological order
	points := make([]modality.DataPoint, 0, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		var point modality.DataPoint
		if err := json.Unmarshal([]byte(values[i]), &point); err != nil {
			c.logger.Warn("Failed to parse cached data point", "user", userID, "error", err)
			continue
		}
		points = append(points, point)
	}

	return points, nil
}
