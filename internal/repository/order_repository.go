package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

// 管理者用の注文一覧フィルタ
type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	//注文と明細を1トランザクションで作成してIDを返す
	Create(ctx context.Context, order model.Order, items []model.OrderItem) (int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListItemsByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}
