// Package entity はgoldフィーチャーのドメインモデルを定義します。
package entity

import (
	"math"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// PricePerGram は1グラムあたりの固定金価格（INR）です。
	PricePerGram = 6000
	// GramsPrecision はグラム数を丸める小数点以下の桁数です。
	GramsPrecision = 6
)

// OrderStatus は注文の状態です。現在は成功のみを扱います。
type OrderStatus string

// OrderStatusSuccess は注文成功を表します。
const OrderStatusSuccess OrderStatus = "SUCCESS"

// GoldOrder は模擬的なデジタルゴールド購入注文を表します。作成後は変更されません。
type GoldOrder struct {
	OrderID   string      // ランダムに生成される注文ID（UUID）
	UserID    string      // 購入したユーザーID（参照整合性は強制しない）
	Amount    float64     // 購入金額（INR）
	GoldGrams float64     // Amount / PricePerGram を小数6桁に丸めた値
	Status    OrderStatus // 常に OrderStatusSuccess
	CreatedAt time.Time   // 作成時刻（UTC）
}

// NewGoldOrder はグラム数を計算した上で新しい注文を生成します。
func NewGoldOrder(orderID, userID string, amount float64, now time.Time) *GoldOrder {
	return &GoldOrder{
		OrderID:   orderID,
		UserID:    userID,
		Amount:    amount,
		GoldGrams: GoldGramsFor(amount),
		Status:    OrderStatusSuccess,
		CreatedAt: now.UTC(),
	}
}

// GoldGramsFor は金額に相当する金のグラム数を返します。
// float64 の商 amount / PricePerGram を、その2進値のまま小数6桁に丸めます（偶数丸め）。
func GoldGramsFor(amount float64) float64 {
	q := amount / PricePerGram
	return exactDecimal(q).RoundBank(GramsPrecision).InexactFloat64()
}

// exactDecimal は f の2進表現を誤差なく10進数に変換します。
// NewFromFloat は最短の10進表記を使うため、丸めの境界で結果が変わります。
func exactDecimal(f float64) decimal.Decimal {
	frac, exp := math.Frexp(f)
	mant := big.NewInt(int64(frac * (1 << 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}
	// mant * 2^-k = mant * 5^k * 10^-k
	k := int64(-exp)
	pow5 := new(big.Int).Exp(big.NewInt(5), big.NewInt(k), nil)
	return decimal.NewFromBigInt(mant.Mul(mant, pow5), int32(-k))
}
