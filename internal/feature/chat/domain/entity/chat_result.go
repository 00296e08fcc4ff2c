// Package entity はchatフィーチャーのドメインモデルを定義します。
package entity

// NextAction はクライアントに提示する次のアクションです。
type NextAction string

const (
	// NextActionBuyGold は金購入フローへの誘導を表します。
	NextActionBuyGold NextAction = "BUY_GOLD"
	// NextActionNone は誘導なしを表します。
	NextActionNone NextAction = "NONE"
)

// FallbackResponse はモデル呼び出しに失敗した場合の応答文です。
const FallbackResponse = "Sorry, I couldn't process that request."

// ChatResult はユーザーのメッセージに対する分類結果と応答です。
type ChatResult struct {
	IsGoldRelated bool
	Confidence    float64 // 0〜1
	Response      string
	CTA           *string // 任意の購入誘導文。nil は誘導なし
	NextAction    NextAction
}

// Fallback はモデルの出力が使えない場合に返す固定の結果です。
func Fallback() ChatResult {
	return ChatResult{
		IsGoldRelated: false,
		Confidence:    0,
		Response:      FallbackResponse,
		CTA:           nil,
		NextAction:    NextActionNone,
	}
}

// Valid は NextAction が既知の値かどうかを返します。
func (a NextAction) Valid() bool {
	return a == NextActionBuyGold || a == NextActionNone
}
