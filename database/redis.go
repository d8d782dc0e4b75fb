package database

import (
	"context"
	"log"
	"time"

	"ctfapi/config"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// InitRedis initializes the redis client used for submission rate limiting and the leaderboard cache
func InitRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       0,
		PoolSize: 100,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RDB.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	log.Println("Redis connection established")
}
