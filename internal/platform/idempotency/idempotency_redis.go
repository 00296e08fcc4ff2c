// Package idempotency はRedisを使用したIdempotency-Keyの記録を提供します。
package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kuber_backend/internal/feature/gold/domain/entity"
	"kuber_backend/internal/feature/gold/usecase"
)

const (
	statePending   = "pending"
	stateCompleted = "completed"
)

// record はRedisに保存する処理状態です。
type record struct {
	State       string            `json:"state"`
	Fingerprint string            `json:"fingerprint"`
	Order       *entity.GoldOrder `json:"order,omitempty"`
}

// IdempotencyRedis implements usecase.IdempotencyStore using Redis.
type IdempotencyRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ usecase.IdempotencyStore = (*IdempotencyRedis)(nil)

// NewIdempotencyRedis creates a new IdempotencyRedis instance.
func NewIdempotencyRedis(client *redis.Client, prefix string, ttl time.Duration) *IdempotencyRedis {
	return &IdempotencyRedis{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// recordKey returns the Redis key for an idempotency record.
func (r *IdempotencyRedis) recordKey(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

// Reserve claims the key as pending. If the key is already taken, the stored record decides the outcome.
func (r *IdempotencyRedis) Reserve(ctx context.Context, key, fingerprint string) (*entity.GoldOrder, error) {
	data, err := json.Marshal(record{State: statePending, Fingerprint: fingerprint})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal idempotency record: %w", err)
	}

	ok, err := r.client.SetNX(ctx, r.recordKey(key), data, r.ttl).Result()
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, nil
	}

	raw, err := r.client.Get(ctx, r.recordKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// SETNX と GET の間に期限切れになった
			return nil, usecase.ErrIdempotencyInProgress
		}
		return nil, err
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal idempotency record: %w", err)
	}

	if rec.Fingerprint != fingerprint {
		return nil, usecase.ErrIdempotencyKeyReused
	}
	if rec.State != stateCompleted || rec.Order == nil {
		return nil, usecase.ErrIdempotencyInProgress
	}
	return rec.Order, nil
}

// Complete stores the finished order so retries can replay it until the TTL expires.
func (r *IdempotencyRedis) Complete(ctx context.Context, key, fingerprint string, order *entity.GoldOrder) error {
	data, err := json.Marshal(record{State: stateCompleted, Fingerprint: fingerprint, Order: order})
	if err != nil {
		return fmt.Errorf("failed to marshal idempotency record: %w", err)
	}
	return r.client.Set(ctx, r.recordKey(key), data, r.ttl).Err()
}

// Release removes a pending reservation after a failed purchase.
func (r *IdempotencyRedis) Release(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.recordKey(key)).Err()
}
