package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	"kuber_backend/internal/api"
)

const (
	// DocsIndexPath はSwagger UIのトップページです。
	DocsIndexPath = "/docs/index.html"
	// OpenAPIPath は埋め込んだOpenAPIドキュメントを返すパスです。
	OpenAPIPath = "/openapi.yaml"
)

// Root は / へのアクセスをAPIドキュメントへリダイレクトします。
func Root(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, DocsIndexPath)
}

// OpenAPI は埋め込んだOpenAPIドキュメントを返します。
func OpenAPI(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml", api.OpenAPISpec)
}

// Docs は /openapi.yaml を読み込むSwagger UIを返します。
// ルートは /docs/*any で登録します。
func Docs() gin.HandlerFunc {
	return gin.WrapH(httpSwagger.Handler(httpSwagger.URL(OpenAPIPath)))
}
