// Package api はHTTP APIのリクエスト/レスポンス型とOpenAPIドキュメントを定義します。
// 型の形は openapi.yaml と一致させます。
package api

// ErrorResponse はエラー時の共通レスポンスボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse は /health のレスポンスボディです。
type HealthResponse struct {
	Status string `json:"status"`
}

// ChatRequest は /chat のリクエストボディです。
// UserID は受け付けますが現在は使用しません。空文字も受け付けます。
type ChatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// ChatResponse は /chat のレスポンスボディです。
type ChatResponse struct {
	IsGoldRelated bool    `json:"is_gold_related"`
	Confidence    float64 `json:"confidence"`
	Response      string  `json:"response"`
	CTA           *string `json:"cta"`
	NextAction    string  `json:"next_action"`
}

// BuyGoldRequest は /buy-gold のリクエストボディです。
// Amount はINR建ての金額で、符号のチェックは行いません。
type BuyGoldRequest struct {
	UserID string   `json:"user_id"`
	Amount *float64 `json:"amount" binding:"required"`
}

// BuyGoldResponse は /buy-gold のレスポンスボディです。
type BuyGoldResponse struct {
	OrderID   string  `json:"order_id"`
	UserID    string  `json:"user_id"`
	GoldGrams float64 `json:"gold_grams"`
	Status    string  `json:"status"`
	Message   string  `json:"message"`
}
