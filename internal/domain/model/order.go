package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// 注文確定時に1回だけ作成。以後は管理者のステータス変更以外は不変。
// TotalAmountは必ずサーバー側で再計算した値（クライアント入力は信用しない）。
type Order struct {
	ID           int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerName string      `gorm:"type:varchar(255);not null" json:"customer_name"`
	Email        string      `gorm:"type:varchar(255);not null" json:"email"`
	Status       OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount  int64       `gorm:"not null" json:"total_amount"`
	CreatedAt    time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
