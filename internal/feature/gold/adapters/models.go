package adapters

import "time"

// UserModel は users テーブルのGORMモデルです。
type UserModel struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// TableName はGORMで使用するテーブル名を返します。
func (UserModel) TableName() string { return "users" }

// GoldOrderModel は gold_orders テーブルのGORMモデルです。
// user_id に外部キー制約は付けません。
type GoldOrderModel struct {
	OrderID   string    `gorm:"column:order_id;primaryKey"`
	UserID    string    `gorm:"column:user_id;not null"`
	Amount    float64   `gorm:"column:amount;not null"`
	GoldGrams float64   `gorm:"column:gold_grams;not null"`
	Status    string    `gorm:"column:status;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

// TableName はGORMで使用するテーブル名を返します。
func (GoldOrderModel) TableName() string { return "gold_orders" }
