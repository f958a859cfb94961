package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 一覧検索（ショップページのフィルタ＋ページング）
type ProductListQuery struct {
	Page     int
	Limit    int
	Category string
	MinPrice *int64
	MaxPrice *int64
}

// 商品の永続化（保存・取得）だけを約束。
// カートのreconcileはFindByIDの「存在するかどうか」をそのまま信用する。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error
}
