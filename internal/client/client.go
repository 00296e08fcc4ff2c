// Package client はKuber APIを呼び出すHTTPクライアントを提供します。
//
// リクエストには Accept: application/json を付け、本文がある場合のみ
// Content-Type: application/json を設定します。2xx 以外の応答は *APIError になります。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kuber_backend/internal/api"
	infrahttp "kuber_backend/internal/platform/http"
)

const (
	apiKeyHeader         = "x-api-key"
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "Idempotent-Replayed"
)

// APIError はサーバーが2xx以外を返した場合のエラーです。
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// Client はKuber APIのクライアントです。
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient は baseURL のサーバーに接続するクライアントを生成します。
// apiKey が空の場合 x-api-key ヘッダーは送りません。
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    infrahttp.NewHTTPClient(timeout),
	}
}

// Health は GET /health を呼び出します。
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var out api.HealthResponse
	if _, err := c.do(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Chat は POST /chat を呼び出します。
func (c *Client) Chat(ctx context.Context, userID, message string) (*api.ChatResponse, error) {
	req := api.ChatRequest{UserID: userID, Message: message}
	var out api.ChatResponse
	if _, err := c.do(ctx, http.MethodPost, "/chat", &req, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BuyGold は POST /buy-gold を呼び出します。
// idempotencyKey が空でなければ Idempotency-Key ヘッダーとして送り、
// 戻り値の bool はサーバーが保存済みの結果を返したかどうかを示します。
func (c *Client) BuyGold(ctx context.Context, userID string, amount float64, idempotencyKey string) (*api.BuyGoldResponse, bool, error) {
	req := api.BuyGoldRequest{UserID: userID, Amount: &amount}
	hdr := http.Header{}
	if idempotencyKey != "" {
		hdr.Set(idempotencyKeyHeader, idempotencyKey)
	}

	var out api.BuyGoldResponse
	res, err := c.do(ctx, http.MethodPost, "/buy-gold", &req, hdr, &out)
	if err != nil {
		return nil, false, err
	}
	return &out, res.Get(replayedHeader) == "true", nil
}

// do はリクエストを送り、成功時は応答ヘッダーを返して本文を out にデコードします。
func (c *Client) do(ctx context.Context, method, path string, body any, hdr http.Header, out any) (http.Header, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
	}

	r, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	for k, vs := range hdr {
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	r.Header.Set("Accept", "application/json")
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		r.Header.Set(apiKeyHeader, c.apiKey)
	}

	res, err := c.http.Do(r)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, readAPIError(res)
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}
	return res.Header, nil
}

// readAPIError は {"error": "..."} 形式の本文を優先し、読めなければ本文かステータス行を使います。
func readAPIError(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)

	var e api.ErrorResponse
	if err := json.Unmarshal(raw, &e); err == nil && e.Error != "" {
		return &APIError{StatusCode: res.StatusCode, Message: e.Error}
	}

	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = res.Status
	}
	return &APIError{StatusCode: res.StatusCode, Message: msg}
}
