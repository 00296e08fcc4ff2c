package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"kuber_backend/internal/feature/gold/domain/entity"
	"kuber_backend/internal/feature/gold/transport/handler"
	"kuber_backend/internal/feature/gold/usecase"
)

// mockGoldUsecase はGoldUsecaseインターフェースのモック実装です。
type mockGoldUsecase struct {
	BuyGoldFunc  func(ctx context.Context, userID string, amount float64, idempotencyKey string) (*usecase.Purchase, error)
	BuyGoldCalls int
	LastKey      string
	LastAmount   float64
}

func (m *mockGoldUsecase) BuyGold(ctx context.Context, userID string, amount float64, idempotencyKey string) (*usecase.Purchase, error) {
	m.BuyGoldCalls++
	m.LastKey = idempotencyKey
	m.LastAmount = amount
	return m.BuyGoldFunc(ctx, userID, amount, idempotencyKey)
}

func purchaseOf(orderID, userID string, amount float64, replayed bool) *usecase.Purchase {
	return &usecase.Purchase{
		Order:    entity.NewGoldOrder(orderID, userID, amount, time.Now()),
		Replayed: replayed,
	}
}

func TestGoldHandler_BuyGold(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           string
		key            string
		mockFunc       func(ctx context.Context, userID string, amount float64, idempotencyKey string) (*usecase.Purchase, error)
		expectedStatus int
		expectedBody   string
		expectedCalls  int
		replayedHeader string
	}{
		{
			name: "success: purchase recorded",
			body: `{"user_id":"abc","amount":12000}`,
			mockFunc: func(ctx context.Context, userID string, amount float64, _ string) (*usecase.Purchase, error) {
				return purchaseOf("8a4f0c1e-0000-4000-8000-000000000001", userID, amount, false), nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"order_id":"8a4f0c1e-0000-4000-8000-000000000001","user_id":"abc","gold_grams":2,` +
				`"status":"SUCCESS","message":"Digital gold purchased successfully."}`,
			expectedCalls: 1,
		},
		{
			name: "success: zero amount is accepted",
			body: `{"user_id":"abc","amount":0}`,
			mockFunc: func(ctx context.Context, userID string, amount float64, _ string) (*usecase.Purchase, error) {
				return purchaseOf("order-0", userID, amount, false), nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"order_id":"order-0","user_id":"abc","gold_grams":0,` +
				`"status":"SUCCESS","message":"Digital gold purchased successfully."}`,
			expectedCalls: 1,
		},
		{
			name: "success: idempotent replay",
			body: `{"user_id":"abc","amount":6000}`,
			key:  "retry-1",
			mockFunc: func(ctx context.Context, userID string, amount float64, _ string) (*usecase.Purchase, error) {
				return purchaseOf("stored", userID, amount, true), nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"order_id":"stored","user_id":"abc","gold_grams":1,` +
				`"status":"SUCCESS","message":"Digital gold purchased successfully."}`,
			expectedCalls:  1,
			replayedHeader: "true",
		},
		{
			name:           "error: malformed json",
			body:           `{"user_id":"abc","amount":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:           "error: missing amount",
			body:           `{"user_id":"abc"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name:           "error: amount is not a number",
			body:           `{"user_id":"abc","amount":"100"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request"}`,
		},
		{
			name: "success: empty user_id is accepted",
			body: `{"user_id":"","amount":6000}`,
			mockFunc: func(ctx context.Context, userID string, amount float64, _ string) (*usecase.Purchase, error) {
				return purchaseOf("order-2", userID, amount, false), nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"order_id":"order-2","user_id":"","gold_grams":1,` +
				`"status":"SUCCESS","message":"Digital gold purchased successfully."}`,
			expectedCalls: 1,
		},
		{
			name: "error: storage failure",
			body: `{"user_id":"abc","amount":100}`,
			mockFunc: func(ctx context.Context, userID string, amount float64, _ string) (*usecase.Purchase, error) {
				return nil, fmt.Errorf("record gold order: %w", usecase.ErrStorage)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to purchase gold"}`,
			expectedCalls:  1,
		},
		{
			name: "error: key reused with different amount",
			body: `{"user_id":"abc","amount":100}`,
			key:  "retry-1",
			mockFunc: func(ctx context.Context, userID string, amount float64, _ string) (*usecase.Purchase, error) {
				return nil, usecase.ErrIdempotencyKeyReused
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"error":"idempotency key reused with a different request"}`,
			expectedCalls:  1,
		},
		{
			name: "error: request in progress",
			body: `{"user_id":"abc","amount":100}`,
			key:  "retry-1",
			mockFunc: func(ctx context.Context, userID string, amount float64, _ string) (*usecase.Purchase, error) {
				return nil, usecase.ErrIdempotencyInProgress
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"request with this idempotency key is in progress"}`,
			expectedCalls:  1,
		},
		{
			name: "error: idempotency store down",
			body: `{"user_id":"abc","amount":100}`,
			key:  "retry-1",
			mockFunc: func(ctx context.Context, userID string, amount float64, _ string) (*usecase.Purchase, error) {
				return nil, fmt.Errorf("%w: %w", usecase.ErrIdempotencyUnavailable, errors.New("dial tcp"))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"error":"idempotency store unavailable"}`,
			expectedCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockGoldUsecase{BuyGoldFunc: tt.mockFunc}
			h := handler.NewGoldHandler(mockUC)

			router := gin.New()
			router.POST("/buy-gold", h.BuyGold)

			req := httptest.NewRequest(http.MethodPost, "/buy-gold", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.key != "" {
				req.Header.Set(handler.IdempotencyKeyHeader, tt.key)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, tt.expectedCalls, mockUC.BuyGoldCalls)
			assert.Equal(t, tt.replayedHeader, w.Header().Get(handler.ReplayedHeader))
			if tt.expectedCalls > 0 {
				assert.Equal(t, tt.key, mockUC.LastKey)
			}
		})
	}
}
