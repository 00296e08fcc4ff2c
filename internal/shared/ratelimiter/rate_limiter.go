// Package ratelimiter は外部API呼び出しの頻度を制限します。
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	Wait(ctx context.Context) error
}

// RateLimiter は interval ごとに limit 回まで呼び出しを許可する固定ウィンドウ方式のリミッターです。
// 複数のgoroutineから同時に使用できます。
type RateLimiter struct {
	mu          sync.Mutex
	limit       int           // interval あたりの上限
	interval    time.Duration // どの単位でリセットするか
	count       int
	windowStart time.Time
	now         func() time.Time
}

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:       limit,
		interval:    interval,
		windowStart: time.Now(),
		now:         time.Now,
	}
}

// Wait は上限に達している場合、次のウィンドウが始まるまで待機します。
// 待機中に ctx が終了した場合は確保した枠を返却し、ctx.Err() を返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	wait, window := rl.reserve()
	if wait <= 0 {
		return nil
	}

	slog.Warn("rate limit reached, waiting", "limit", rl.limit, "interval", rl.interval, "wait", wait)
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		rl.release(window)
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// reserve は呼び出し枠を1つ確保し、その枠が使えるまでの待ち時間と枠が属するウィンドウの開始時刻を返します。
func (rl *RateLimiter) reserve() (time.Duration, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	// interval を過ぎたらカウントリセット（予約済みの未来のウィンドウは除く）
	if !now.Before(rl.windowStart) && now.Sub(rl.windowStart) >= rl.interval {
		rl.count = 0
		rl.windowStart = now
	}

	if rl.count >= rl.limit {
		rl.windowStart = rl.windowStart.Add(rl.interval)
		rl.count = 0
	}
	rl.count++

	return rl.windowStart.Sub(now), rl.windowStart
}

// release は未使用の枠を返却します。
// 既に後続のウィンドウへ進んでいる場合、古いウィンドウの枠は返却しません。
func (rl *RateLimiter) release(window time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.windowStart.Equal(window) && rl.count > 0 {
		rl.count--
	}
}
