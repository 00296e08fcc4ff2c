package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	chathandler "kuber_backend/internal/feature/chat/transport/handler"
	goldhandler "kuber_backend/internal/feature/gold/transport/handler"
	"kuber_backend/internal/platform/apikey"
	platformhandler "kuber_backend/internal/platform/http/handler"
	"kuber_backend/internal/platform/logger"
)

func NewRouter(log *slog.Logger, apiKey string, chat *chathandler.ChatHandler,
	gold *goldhandler.GoldHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware(log))

	// 認証不要
	// 導通確認用
	r.GET("/health", platformhandler.Health)
	r.HEAD("/health", platformhandler.Health)
	r.OPTIONS("/health", platformhandler.Health)
	// APIドキュメント
	r.GET("/", platformhandler.Root)
	r.GET(platformhandler.OpenAPIPath, platformhandler.OpenAPI)
	r.GET("/docs/*any", platformhandler.Docs())

	// x-api-key 必須のルート
	auth := r.Group("/")
	auth.Use(apikey.Required(apiKey))
	{
		auth.POST("/chat", chat.Chat)
		auth.POST("/buy-gold", gold.BuyGold)
	}

	return r
}
