package schedule

import (
	"context"
	"encoding/json"
	"time"

	"garagehub/models"
	"garagehub/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AvailabilityCache caches computed per-date availability. The cache is
// advisory: every method degrades to a miss or a no-op on failure, and the
// capacity guard at the store stays authoritative.
type AvailabilityCache interface {
	Get(ctx context.Context, garageID, date string) ([]models.AvailableSlot, bool)
	Set(ctx context.Context, garageID, date string, slots []models.AvailableSlot)
	// InvalidateDate drops the cached availability for one garage+date.
	InvalidateDate(ctx context.Context, garageID, date string)
	// InvalidateGarage drops every cached date for the garage (schedule
	// mutations change availability on all future dates of that weekday).
	InvalidateGarage(ctx context.Context, garageID string)
}

const availabilityKeyPrefix = "availability:"

// RedisAvailabilityCache stores availability responses in Redis as JSON with
// a short TTL.
type RedisAvailabilityCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisAvailabilityCache constructs a cache over the shared Redis client.
func NewRedisAvailabilityCache(client *redis.Client, ttl time.Duration) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{Client: client, TTL: ttl}
}

func availabilityKey(garageID, date string) string {
	return availabilityKeyPrefix + garageID + ":" + date
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, garageID, date string) ([]models.AvailableSlot, bool) {
	raw, err := c.Client.Get(ctx, availabilityKey(garageID, date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Warn("Availability cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var slots []models.AvailableSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		utils.GetLogger().Warn("Availability cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return slots, true
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, garageID, date string, slots []models.AvailableSlot) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, availabilityKey(garageID, date), raw, c.TTL).Err(); err != nil {
		utils.GetLogger().Warn("Availability cache write failed", zap.Error(err))
	}
}

func (c *RedisAvailabilityCache) InvalidateDate(ctx context.Context, garageID, date string) {
	if err := c.Client.Del(ctx, availabilityKey(garageID, date)).Err(); err != nil {
		utils.GetLogger().Warn("Availability cache invalidation failed", zap.Error(err))
	}
}

func (c *RedisAvailabilityCache) InvalidateGarage(ctx context.Context, garageID string) {
	keys, err := c.Client.Keys(ctx, availabilityKeyPrefix+garageID+":*").Result()
	if err != nil {
		utils.GetLogger().Warn("Availability cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.Client.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Warn("Availability cache invalidation failed", zap.Error(err))
	}
}
