package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"app/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// セッションの寿命＝カートの寿命
const cartTTL = 30 * time.Minute

type CartRedisStore struct {
	rdb *redis.Client
}

// DI
func NewCartRedisStore(rdb *redis.Client) *CartRedisStore {
	return &CartRedisStore{rdb: rdb}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// キーが無ければ空カート（カート操作は空カートを常に許容する）
func (s *CartRedisStore) Get(ctx context.Context, sessionID string) (model.Cart, error) {
	raw, err := s.rdb.Get(ctx, cartKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return model.Cart{}, nil
	}
	if err != nil {
		return nil, err
	}

	var cart model.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		//壊れたblobは空カート扱いで捨てる
		return model.Cart{}, nil
	}
	return cart, nil
}

func (s *CartRedisStore) Save(ctx context.Context, sessionID string, cart model.Cart) error {
	if cart == nil {
		cart = model.Cart{}
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, cartKey(sessionID), raw, cartTTL).Err()
}

func (s *CartRedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, cartKey(sessionID)).Err()
}
