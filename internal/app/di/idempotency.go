package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	"kuber_backend/internal/feature/gold/usecase"
	"kuber_backend/internal/platform/idempotency"
)

// NewIdempotencyStore creates an IdempotencyStore implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise it returns nil and Idempotency-Key headers are ignored.
func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) usecase.IdempotencyStore {
	if rdb != nil {
		return idempotency.NewIdempotencyRedis(rdb, "idempotency", ttl)
	}
	return nil
}
