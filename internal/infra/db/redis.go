package db

import (
	"os"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis はセッションカート用のRedisクライアントを返す。
func ConnectRedis() *redis.Client {
	addr := getenv("REDIS_ADDR", "localhost:6379")

	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}
