package router

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/task-management-services/internal/config"
	"github.com/yukikurage/task-management-services/internal/middleware"
)

// NewLimiter returns the Redis limiter when REDIS_ADDR is set and the
// in-process limiter otherwise. The returned func releases the Redis client.
// A non-positive RATE_LIMIT_MAX disables rate limiting.
func NewLimiter(cfg *config.Config, log *logrus.Logger) (middleware.Limiter, func() error) {
	noop := func() error { return nil }
	if cfg.RateLimitMax <= 0 || cfg.RateLimitWindow <= 0 {
		log.Warn("rate limiting disabled")
		return nil, noop
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		log.WithField("addr", cfg.RedisAddr).Info("using redis rate limiter")
		return middleware.NewRedisLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindow), rdb.Close
	}

	return middleware.NewMemoryLimiter(cfg.RateLimitMax, cfg.RateLimitWindow), noop
}
