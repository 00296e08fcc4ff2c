// Package usecase はchatフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"kuber_backend/internal/feature/chat/domain/entity"
)

// ConfidenceThreshold 未満の分類は金に関係しないものとして扱います。
const ConfidenceThreshold = 0.6

// ErrUnexpectedShape はモデルの出力が期待するJSONの形でない場合に返されます。
var ErrUnexpectedShape = errors.New("unexpected model output shape")

// ModelClient は生成モデルへの1回の呼び出しを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ModelClient interface {
	Send(ctx context.Context, systemPrompt, message string) (string, error)
}

// chatUsecase はメッセージの分類と応答生成を行います。
type chatUsecase struct {
	model ModelClient
}

// NewChatUsecase はchatUsecaseの新しいインスタンスを生成します。
func NewChatUsecase(model ModelClient) *chatUsecase {
	return &chatUsecase{model: model}
}

// modelOutput はモデルが返すJSONです。欠落を検出するためにポインタで受けます。
type modelOutput struct {
	IsGoldRelated *bool    `json:"is_gold_related"`
	Confidence    *float64 `json:"confidence"`
	Response      *string  `json:"response"`
	CTA           *string  `json:"cta"`
	NextAction    *string  `json:"next_action"`
}

// ClassifyAndRespond はメッセージが金に関係するかを判定し、応答を返します。
// 失敗は呼び出し元に返さず、ログに記録した上で entity.Fallback を返します。
func (u *chatUsecase) ClassifyAndRespond(ctx context.Context, message string) entity.ChatResult {
	raw, err := u.model.Send(ctx, SystemPrompt, message)
	if err != nil {
		slog.Warn("モデル呼び出しに失敗", "error", err)
		return entity.Fallback()
	}

	result, err := parseResult(raw)
	if err != nil {
		slog.Warn("モデル出力の解析に失敗", "error", err, "output_len", len(raw))
		return entity.Fallback()
	}
	return applyConfidenceGate(result)
}

// parseResult はモデル出力を整形してから ChatResult に変換します。
func parseResult(raw string) (entity.ChatResult, error) {
	text := sanitize(raw)
	if text == "" {
		return entity.ChatResult{}, fmt.Errorf("%w: empty output", ErrUnexpectedShape)
	}

	var out modelOutput
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return entity.ChatResult{}, fmt.Errorf("decode model output: %w", err)
	}

	switch {
	case out.IsGoldRelated == nil:
		return entity.ChatResult{}, fmt.Errorf("%w: is_gold_related missing", ErrUnexpectedShape)
	case out.Confidence == nil:
		return entity.ChatResult{}, fmt.Errorf("%w: confidence missing", ErrUnexpectedShape)
	case *out.Confidence < 0 || *out.Confidence > 1:
		return entity.ChatResult{}, fmt.Errorf("%w: confidence %v out of range", ErrUnexpectedShape, *out.Confidence)
	case out.Response == nil:
		return entity.ChatResult{}, fmt.Errorf("%w: response missing", ErrUnexpectedShape)
	case out.NextAction == nil || !entity.NextAction(*out.NextAction).Valid():
		return entity.ChatResult{}, fmt.Errorf("%w: invalid next_action", ErrUnexpectedShape)
	}

	return entity.ChatResult{
		IsGoldRelated: *out.IsGoldRelated,
		Confidence:    *out.Confidence,
		Response:      *out.Response,
		CTA:           out.CTA,
		NextAction:    entity.NextAction(*out.NextAction),
	}, nil
}

// applyConfidenceGate は信頼度が閾値未満の場合に購入誘導を取り除きます。
// Confidence と Response はそのまま残します。
func applyConfidenceGate(r entity.ChatResult) entity.ChatResult {
	if r.Confidence < ConfidenceThreshold {
		r.IsGoldRelated = false
		r.CTA = nil
		r.NextAction = entity.NextActionNone
	}
	return r
}

// sanitize は前後の空白と、出力全体を囲むMarkdownのコードフェンスを取り除きます。
func sanitize(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// ```json のような言語指定を行末まで捨てる
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
