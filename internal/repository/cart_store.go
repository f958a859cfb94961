package repository

import (
	"context"

	"app/internal/domain/model"
)

// セッションID→カートの読み書き。
// 各リクエストがread-modify-writeする（last-writer-wins、同一セッションの同時更新は調停しない）。
type SessionCartStore interface {
	// キーが無ければ空カートを返す（エラーにしない）
	Get(ctx context.Context, sessionID string) (model.Cart, error)
	Save(ctx context.Context, sessionID string, cart model.Cart) error
	Clear(ctx context.Context, sessionID string) error
}
