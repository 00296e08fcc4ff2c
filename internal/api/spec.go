package api

import _ "embed"

// OpenAPISpec は /openapi.yaml で配信するOpenAPI 3ドキュメントです。
//
//go:embed openapi.yaml
var OpenAPISpec []byte
