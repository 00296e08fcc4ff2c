// Package adapters はchatフィーチャーのモデルクライアント実装を提供します。
package adapters

import (
	"context"
	"fmt"

	"kuber_backend/internal/feature/chat/usecase"
	"kuber_backend/internal/shared/ratelimiter"
)

// throttledModel は呼び出し前にレートリミッターで待機するModelClientです。
type throttledModel struct {
	next    usecase.ModelClient
	limiter ratelimiter.RateLimiterInterface
}

var _ usecase.ModelClient = (*throttledModel)(nil)

// NewThrottledModel は next の呼び出し頻度を limiter で制限します。
func NewThrottledModel(next usecase.ModelClient, limiter ratelimiter.RateLimiterInterface) *throttledModel {
	return &throttledModel{next: next, limiter: limiter}
}

// Send は呼び出し枠を確保してから next に委譲します。
func (m *throttledModel) Send(ctx context.Context, systemPrompt, message string) (string, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}
	return m.next.Send(ctx, systemPrompt, message)
}
