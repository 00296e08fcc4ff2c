// Package logger はslogベースのロガー構築とHTTPアクセスログ用ミドルウェアを提供します。
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
)

// New は実行環境に応じたslog.Loggerを生成します。
//   - local: テキスト形式、Debugレベル
//   - dev:   JSON形式、Debugレベル
//   - prod/その他: JSON形式、Infoレベル
func New(env string) *slog.Logger {
	return newWithWriter(env, os.Stdout)
}

func newWithWriter(env string, w io.Writer) *slog.Logger {
	switch env {
	case "local":
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case "dev":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}

// GinMiddleware はリクエストごとに1件のアクセスログを出力するGinミドルウェアです。
// 5xxはError、4xxはWarn、それ以外はInfoで記録します。
func GinMiddleware(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"size", c.Writer.Size(),
			"latency_ms", float64(time.Since(start).Microseconds()) / 1000,
			"remote_addr", c.ClientIP(),
		}

		switch {
		case status >= 500:
			log.Error("http request", attrs...)
		case status >= 400:
			log.Warn("http request", attrs...)
		default:
			log.Info("http request", attrs...)
		}
	}
}
