// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"time"

	chatadapters "kuber_backend/internal/feature/chat/adapters"
	"kuber_backend/internal/feature/chat/adapters/gemini"
	"kuber_backend/internal/feature/chat/usecase"
	"kuber_backend/internal/platform/config"
	infrahttp "kuber_backend/internal/platform/http"
	"kuber_backend/internal/shared/ratelimiter"
)

// NewChatModel creates a Gemini-backed model client with a bounded HTTP client.
// When cfg.RateLimit is positive, calls are throttled to that many per minute.
func NewChatModel(ctx context.Context, cfg config.GeminiConfig) (usecase.ModelClient, error) {
	model, err := gemini.NewGeminiModel(ctx, gemini.Config{
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		BaseURL:     cfg.BaseURL,
		HTTPClient:  infrahttp.NewHTTPClient(cfg.Timeout),
	})
	if err != nil {
		return nil, err
	}
	if cfg.RateLimit <= 0 {
		return model, nil
	}
	return chatadapters.NewThrottledModel(model, ratelimiter.NewRateLimiter(cfg.RateLimit, time.Minute)), nil
}
