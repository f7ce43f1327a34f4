package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Cache is a thin JSON layer over Redis. A nil *Cache (or nil client)
// is valid and disables caching entirely.
type Cache struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb}
}

// Get unmarshals the cached value into dest. Returns false on miss or
// when caching is disabled.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		logrus.WithError(err).WithField("key", key).Debug("cache get")
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil || c.rdb == nil {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		logrus.WithError(err).WithField("key", key).Debug("cache set")
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		logrus.WithError(err).Debug("cache delete")
	}
}

// Cache keys.
const (
	KeyActivePlans = "coinvest:plans:active"
	KeyAdminStats  = "coinvest:admin:stats"
)

// KeyUserDashboard returns the per-user dashboard cache key.
func KeyUserDashboard(userID uint) string {
	return "coinvest:dashboard:" + strconv.FormatUint(uint64(userID), 10)
}
