// Package handler はgoldフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"kuber_backend/internal/api"
	"kuber_backend/internal/feature/gold/usecase"
)

const (
	// IdempotencyKeyHeader は購入リクエストの再送を識別するヘッダーです。
	IdempotencyKeyHeader = "Idempotency-Key"
	// ReplayedHeader は保存済みの結果を返したことを示すレスポンスヘッダーです。
	ReplayedHeader = "Idempotent-Replayed"

	purchaseMessage = "Digital gold purchased successfully."
)

// GoldUsecase は金購入のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type GoldUsecase interface {
	BuyGold(ctx context.Context, userID string, amount float64, idempotencyKey string) (*usecase.Purchase, error)
}

// GoldHandler は金購入のHTTPリクエストを処理します。
type GoldHandler struct {
	uc GoldUsecase
}

// NewGoldHandler はGoldHandlerの新しいインスタンスを生成します。
func NewGoldHandler(uc GoldUsecase) *GoldHandler {
	return &GoldHandler{uc: uc}
}

// BuyGold は模擬的なデジタルゴールド購入を記録します。
//
// エンドポイント: POST /buy-gold
// Content-Type: application/json
// ヘッダー: Idempotency-Key（任意）
func (h *GoldHandler) BuyGold(c *gin.Context) {
	var req api.BuyGoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("購入リクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	key := c.GetHeader(IdempotencyKeyHeader)
	p, err := h.uc.BuyGold(c.Request.Context(), req.UserID, *req.Amount, key)
	if err != nil {
		h.writeError(c, err, req.UserID)
		return
	}

	if p.Replayed {
		c.Header(ReplayedHeader, "true")
	}
	slog.Info("金購入を記録", "order_id", p.Order.OrderID, "user_id", p.Order.UserID,
		"gold_grams", p.Order.GoldGrams, "replayed", p.Replayed)

	c.JSON(http.StatusOK, api.BuyGoldResponse{
		OrderID:   p.Order.OrderID,
		UserID:    p.Order.UserID,
		GoldGrams: p.Order.GoldGrams,
		Status:    string(p.Order.Status),
		Message:   purchaseMessage,
	})
}

func (h *GoldHandler) writeError(c *gin.Context, err error, userID string) {
	switch {
	case errors.Is(err, usecase.ErrIdempotencyKeyReused):
		slog.Warn("Idempotency-Keyが異なるリクエストで再利用された", "user_id", userID)
		c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Error: "idempotency key reused with a different request"})
	case errors.Is(err, usecase.ErrIdempotencyInProgress):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "request with this idempotency key is in progress"})
	case errors.Is(err, usecase.ErrIdempotencyUnavailable):
		slog.Error("Idempotencyストアに接続できない", "error", err)
		c.JSON(http.StatusServiceUnavailable, api.ErrorResponse{Error: "idempotency store unavailable"})
	default:
		slog.Error("金購入に失敗", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to purchase gold"})
	}
}
