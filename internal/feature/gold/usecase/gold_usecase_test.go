package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kuber_backend/internal/feature/gold/domain/entity"
	"kuber_backend/internal/feature/gold/usecase"
)

// errDB はモックと期待値の間で共有されるセンチネルエラーです。
var errDB = errors.New("database is locked")

// mockGoldStore はGoldStoreインターフェースのモック実装です。
type mockGoldStore struct {
	EnsureUserFunc       func(ctx context.Context, userID string) error
	RecordGoldOrderFunc  func(ctx context.Context, userID string, amount float64) (*entity.GoldOrder, error)
	EnsureUserCalls      int
	RecordGoldOrderCalls int
}

func (m *mockGoldStore) EnsureUser(ctx context.Context, userID string) error {
	m.EnsureUserCalls++
	if m.EnsureUserFunc != nil {
		return m.EnsureUserFunc(ctx, userID)
	}
	return nil
}

func (m *mockGoldStore) RecordGoldOrder(ctx context.Context, userID string, amount float64) (*entity.GoldOrder, error) {
	m.RecordGoldOrderCalls++
	if m.RecordGoldOrderFunc != nil {
		return m.RecordGoldOrderFunc(ctx, userID, amount)
	}
	return entity.NewGoldOrder("order-1", userID, amount, time.Now()), nil
}

// mockIdempotencyStore はIdempotencyStoreインターフェースのモック実装です。
type mockIdempotencyStore struct {
	ReserveFunc   func(ctx context.Context, key, fingerprint string) (*entity.GoldOrder, error)
	CompleteFunc  func(ctx context.Context, key, fingerprint string, order *entity.GoldOrder) error
	ReserveCalls  int
	CompleteCalls int
	ReleaseCalls  int
	LastKey       string
	LastFP        string
}

func (m *mockIdempotencyStore) Reserve(ctx context.Context, key, fingerprint string) (*entity.GoldOrder, error) {
	m.ReserveCalls++
	m.LastKey = key
	m.LastFP = fingerprint
	if m.ReserveFunc != nil {
		return m.ReserveFunc(ctx, key, fingerprint)
	}
	return nil, nil
}

func (m *mockIdempotencyStore) Complete(ctx context.Context, key, fingerprint string, order *entity.GoldOrder) error {
	m.CompleteCalls++
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, key, fingerprint, order)
	}
	return nil
}

func (m *mockIdempotencyStore) Release(ctx context.Context, key string) error {
	m.ReleaseCalls++
	return nil
}

// TestGoldUsecase_BuyGold はIdempotency-Keyなしの購入処理を検証します。
func TestGoldUsecase_BuyGold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		ensureErr       error
		recordErr       error
		wantErr         error
		wantRecordCalls int
	}{
		{name: "success", wantRecordCalls: 1},
		{name: "ensure user fails", ensureErr: errDB, wantErr: errDB, wantRecordCalls: 0},
		{name: "record order fails", recordErr: errDB, wantErr: errDB, wantRecordCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &mockGoldStore{
				EnsureUserFunc: func(ctx context.Context, userID string) error { return tt.ensureErr },
			}
			if tt.recordErr != nil {
				store.RecordGoldOrderFunc = func(ctx context.Context, userID string, amount float64) (*entity.GoldOrder, error) {
					return nil, tt.recordErr
				}
			}
			uc := usecase.NewGoldUsecase(store, nil)

			got, err := uc.BuyGold(context.Background(), "abc", 12000, "key-1")

			assert.Equal(t, 1, store.EnsureUserCalls)
			assert.Equal(t, tt.wantRecordCalls, store.RecordGoldOrderCalls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.False(t, got.Replayed)
			assert.Equal(t, "abc", got.Order.UserID)
			assert.Equal(t, 2.0, got.Order.GoldGrams)
		})
	}
}

// TestGoldUsecase_BuyGold_Idempotent はIdempotency-Key指定時の予約・再送・解除の流れを検証します。
func TestGoldUsecase_BuyGold_Idempotent(t *testing.T) {
	t.Parallel()

	stored := entity.NewGoldOrder("stored-order", "abc", 12000, time.Now())

	tests := []struct {
		name         string
		reserve      func(ctx context.Context, key, fingerprint string) (*entity.GoldOrder, error)
		recordErr    error
		completeErr  error
		wantErr      error
		wantOrderID  string
		wantReplayed bool
		wantRecord   int
		wantComplete int
		wantRelease  int
	}{
		{
			name:         "first request records and completes",
			wantOrderID:  "order-1",
			wantRecord:   1,
			wantComplete: 1,
		},
		{
			name: "replay returns stored order without writing",
			reserve: func(ctx context.Context, key, fingerprint string) (*entity.GoldOrder, error) {
				return stored, nil
			},
			wantOrderID:  "stored-order",
			wantReplayed: true,
		},
		{
			name: "reused key with different amount",
			reserve: func(ctx context.Context, key, fingerprint string) (*entity.GoldOrder, error) {
				return nil, usecase.ErrIdempotencyKeyReused
			},
			wantErr: usecase.ErrIdempotencyKeyReused,
		},
		{
			name: "request in progress",
			reserve: func(ctx context.Context, key, fingerprint string) (*entity.GoldOrder, error) {
				return nil, usecase.ErrIdempotencyInProgress
			},
			wantErr: usecase.ErrIdempotencyInProgress,
		},
		{
			name: "store unreachable",
			reserve: func(ctx context.Context, key, fingerprint string) (*entity.GoldOrder, error) {
				return nil, errors.New("dial tcp: connection refused")
			},
			wantErr: usecase.ErrIdempotencyUnavailable,
		},
		{
			name:        "failed purchase releases the key",
			recordErr:   errDB,
			wantErr:     errDB,
			wantRecord:  1,
			wantRelease: 1,
		},
		{
			name:         "complete failure still succeeds",
			completeErr:  errors.New("redis timeout"),
			wantOrderID:  "order-1",
			wantRecord:   1,
			wantComplete: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &mockGoldStore{}
			if tt.recordErr != nil {
				store.RecordGoldOrderFunc = func(ctx context.Context, userID string, amount float64) (*entity.GoldOrder, error) {
					return nil, tt.recordErr
				}
			}
			idem := &mockIdempotencyStore{ReserveFunc: tt.reserve}
			if tt.completeErr != nil {
				idem.CompleteFunc = func(ctx context.Context, key, fingerprint string, order *entity.GoldOrder) error {
					return tt.completeErr
				}
			}
			uc := usecase.NewGoldUsecase(store, idem)

			got, err := uc.BuyGold(context.Background(), "abc", 12000, "key-1")

			assert.Equal(t, 1, idem.ReserveCalls)
			assert.Equal(t, "abc:key-1", idem.LastKey)
			assert.Equal(t, "12000", idem.LastFP)
			assert.Equal(t, tt.wantRecord, store.RecordGoldOrderCalls)
			assert.Equal(t, tt.wantComplete, idem.CompleteCalls)
			assert.Equal(t, tt.wantRelease, idem.ReleaseCalls)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOrderID, got.Order.OrderID)
			assert.Equal(t, tt.wantReplayed, got.Replayed)
		})
	}
}

// TestGoldUsecase_BuyGold_NoKeySkipsIdempotency はヘッダーが空の場合に予約を行わないことを検証します。
func TestGoldUsecase_BuyGold_NoKeySkipsIdempotency(t *testing.T) {
	t.Parallel()

	store := &mockGoldStore{}
	idem := &mockIdempotencyStore{}
	uc := usecase.NewGoldUsecase(store, idem)

	got, err := uc.BuyGold(context.Background(), "abc", 6000, "")

	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Order.GoldGrams)
	assert.Equal(t, 0, idem.ReserveCalls)
	assert.Equal(t, 0, idem.CompleteCalls)
}
