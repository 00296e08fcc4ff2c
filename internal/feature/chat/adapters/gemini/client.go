// Package gemini はGoogle Gemini APIを使用したチャットモデルクライアントを提供します。
package gemini

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"kuber_backend/internal/feature/chat/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
	// DefaultTemperature は分類を安定させるための低い温度です。
	DefaultTemperature float32 = 0.2

	jsonMIMEType = "application/json"
)

// Config はGeminiクライアントの設定です。
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	// BaseURL を指定するとAPIエンドポイントを差し替えます。空の場合はSDKのデフォルトを使用します。
	BaseURL    string
	HTTPClient *http.Client
}

// GeminiModel はGoogle Gemini APIを使用してチャット応答を生成します。
type GeminiModel struct {
	client      *genai.Client
	model       string
	temperature float32
}

// GeminiModelがModelClientを実装していることをコンパイル時に検証します。
var _ usecase.ModelClient = (*GeminiModel)(nil)

// NewGeminiModel はAPIキーを使用してGeminiModelの新しいインスタンスを生成します。
func NewGeminiModel(ctx context.Context, cfg Config) (*GeminiModel, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiModel{client: client, model: cfg.Model, temperature: cfg.Temperature}, nil
}

// Send はシステム指示とユーザーのメッセージを送信し、JSON形式の応答テキストを返します。
func (g *GeminiModel) Send(ctx context.Context, systemPrompt, message string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(message), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		ResponseMIMEType:  jsonMIMEType,
		Temperature:       genai.Ptr(g.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}
