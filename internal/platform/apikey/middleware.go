// Package apikey はAPIキーによる認証ミドルウェアを提供します。
package apikey

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"kuber_backend/internal/api"
)

// HeaderName はAPIキーを受け取るリクエストヘッダーです。
const HeaderName = "x-api-key"

// Required returns a Gin middleware function that rejects requests whose
// x-api-key header does not match secret.
func Required(secret string) gin.HandlerFunc {
	want := []byte(secret)
	return func(c *gin.Context) {
		got := c.GetHeader(HeaderName)

		// 空のシークレットでは常に拒否する
		if len(want) == 0 || subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid api key"})
			return
		}
		c.Next()
	}
}
