package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"kuber_backend/internal/feature/gold/domain/entity"
)

// GoldStore はユーザーと金注文の永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type GoldStore interface {
	// EnsureUser はユーザーが存在しなければ作成します。既に存在する場合は何もしません。
	EnsureUser(ctx context.Context, userID string) error

	// RecordGoldOrder はグラム数を計算し、新しい注文IDで注文を保存します。
	RecordGoldOrder(ctx context.Context, userID string, amount float64) (*entity.GoldOrder, error)
}

// IdempotencyStore は Idempotency-Key ごとの処理結果を保持します。
type IdempotencyStore interface {
	// Reserve はキーを処理中として確保します。
	// 完了済みで同じfingerprintの場合は保存済みの注文を返します。
	// fingerprintが異なる場合は ErrIdempotencyKeyReused、処理中の場合は ErrIdempotencyInProgress を返します。
	Reserve(ctx context.Context, key, fingerprint string) (*entity.GoldOrder, error)

	// Complete はキーに処理結果を保存します。
	Complete(ctx context.Context, key, fingerprint string, order *entity.GoldOrder) error

	// Release は処理に失敗したキーの確保を解除します。
	Release(ctx context.Context, key string) error
}

// Purchase は購入処理の結果です。Replayed は Idempotency-Key による再送で保存済みの結果を返した場合にtrueです。
type Purchase struct {
	Order    *entity.GoldOrder
	Replayed bool
}

// goldUsecase は模擬的な金購入のビジネスロジックを提供します。
type goldUsecase struct {
	store       GoldStore
	idempotency IdempotencyStore
}

// NewGoldUsecase はgoldUsecaseの新しいインスタンスを生成します。
// idempotency がnilの場合、Idempotency-Key は無視されます。
func NewGoldUsecase(store GoldStore, idempotency IdempotencyStore) *goldUsecase {
	return &goldUsecase{store: store, idempotency: idempotency}
}

// BuyGold はユーザーを確保した上で注文を記録します。
// ユーザー作成後に注文の保存が失敗した場合でも、ユーザーは残ります。
func (u *goldUsecase) BuyGold(ctx context.Context, userID string, amount float64, idempotencyKey string) (*Purchase, error) {
	if idempotencyKey == "" || u.idempotency == nil {
		order, err := u.purchase(ctx, userID, amount)
		if err != nil {
			return nil, err
		}
		return &Purchase{Order: order}, nil
	}

	key := scopedKey(userID, idempotencyKey)
	fp := fingerprint(amount)

	stored, err := u.idempotency.Reserve(ctx, key, fp)
	if err != nil {
		if errors.Is(err, ErrIdempotencyKeyReused) || errors.Is(err, ErrIdempotencyInProgress) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrIdempotencyUnavailable, err)
	}
	if stored != nil {
		return &Purchase{Order: stored, Replayed: true}, nil
	}

	order, err := u.purchase(ctx, userID, amount)
	if err != nil {
		if relErr := u.idempotency.Release(ctx, key); relErr != nil {
			slog.Warn("failed to release idempotency key", "key", key, "error", relErr)
		}
		return nil, err
	}

	// 注文は保存済みなので、結果の保存失敗はレスポンスを失敗させない
	if err := u.idempotency.Complete(ctx, key, fp, order); err != nil {
		slog.Warn("failed to store idempotent result", "key", key, "order_id", order.OrderID, "error", err)
	}
	return &Purchase{Order: order}, nil
}

func (u *goldUsecase) purchase(ctx context.Context, userID string, amount float64) (*entity.GoldOrder, error) {
	if err := u.store.EnsureUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("ensure user %q: %w", userID, err)
	}
	order, err := u.store.RecordGoldOrder(ctx, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("record gold order for %q: %w", userID, err)
	}
	return order, nil
}

// scopedKey はユーザーごとに Idempotency-Key の名前空間を分けます。
func scopedKey(userID, key string) string {
	return userID + ":" + key
}

func fingerprint(amount float64) string {
	return strconv.FormatFloat(amount, 'g', -1, 64)
}
