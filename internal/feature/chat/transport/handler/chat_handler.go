// Package handler はchatフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kuber_backend/internal/api"
	"kuber_backend/internal/feature/chat/domain/entity"
)

// ChatUsecase はメッセージ分類のユースケースインターフェースを定義します。
type ChatUsecase interface {
	ClassifyAndRespond(ctx context.Context, message string) entity.ChatResult
}

// ChatHandler はチャットのHTTPリクエストを処理します。
type ChatHandler struct {
	uc ChatUsecase
}

// NewChatHandler はChatHandlerの新しいインスタンスを生成します。
func NewChatHandler(uc ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// Chat はメッセージを分類し、応答を返します。空のメッセージやモデルの失敗も200で応答します。
//
// エンドポイント: POST /chat
// Content-Type: application/json
func (h *ChatHandler) Chat(c *gin.Context) {
	var req api.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("チャットリクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	r := h.uc.ClassifyAndRespond(c.Request.Context(), strings.TrimSpace(req.Message))

	c.JSON(http.StatusOK, api.ChatResponse{
		IsGoldRelated: r.IsGoldRelated,
		Confidence:    r.Confidence,
		Response:      r.Response,
		CTA:           r.CTA,
		NextAction:    string(r.NextAction),
	})
}
