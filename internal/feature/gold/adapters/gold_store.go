// Package adapters はgoldフィーチャーの永続化実装を提供します。
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kuber_backend/internal/feature/gold/domain/entity"
	"kuber_backend/internal/feature/gold/usecase"
)

// goldStore はGoldStoreインターフェースのGORM実装です。
// SQLite と PostgreSQL のどちらでも動作します。
type goldStore struct {
	db  *gorm.DB
	now func() time.Time
}

// goldStoreがGoldStoreを実装していることをコンパイル時に検証します。
var _ usecase.GoldStore = (*goldStore)(nil)

// NewGoldStore は指定されたgorm.DB接続でgoldStoreの新しいインスタンスを生成します。
func NewGoldStore(db *gorm.DB) *goldStore {
	return &goldStore{db: db, now: time.Now}
}

// EnsureUser はユーザーが存在しなければ作成します。
// 同時リクエストでも主キー衝突を ON CONFLICT DO NOTHING で吸収するため、常に1行だけが残ります。
func (s *goldStore) EnsureUser(ctx context.Context, userID string) error {
	u := UserModel{UserID: userID, CreatedAt: s.now().UTC()}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&u).Error
	if err != nil {
		return fmt.Errorf("%w: insert user: %w", usecase.ErrStorage, err)
	}
	return nil
}

// RecordGoldOrder は新しい注文IDを採番し、グラム数を計算した注文を保存します。
func (s *goldStore) RecordGoldOrder(ctx context.Context, userID string, amount float64) (*entity.GoldOrder, error) {
	order := entity.NewGoldOrder(uuid.NewString(), userID, amount, s.now())

	m := GoldOrderModel{
		OrderID:   order.OrderID,
		UserID:    order.UserID,
		Amount:    order.Amount,
		GoldGrams: order.GoldGrams,
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("%w: insert gold order: %w", usecase.ErrStorage, err)
	}
	return order, nil
}
