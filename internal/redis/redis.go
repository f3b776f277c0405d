package redis

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var Rdb *redis.Client

const (
	sessionPrefix = "session:"
	revokedPrefix = "revoked:"
)

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

func Set(ctx context.Context, key string, value interface{}, expiration time.Duration) {
	if err := Rdb.Set(ctx, key, value, expiration).Err(); err != nil {
		log.Printf("Failed to add %s to redis: %v", key, err)
		return
	}
}

// returns the cached value for key, or "" and false on a miss.
func Get(ctx context.Context, key string) (string, bool) {
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Failed to read %s from redis: %v", key, err)
		}
		return "", false
	}
	return value, true
}

// records an issued token so active sessions can be counted.
// ttl should match the token lifetime.
func RegisterSession(ctx context.Context, token string, ttl time.Duration) {
	Set(ctx, sessionPrefix+token, 1, ttl)
}

// ends the session and marks the token revoked until it would have
// expired on its own.
func RevokeToken(ctx context.Context, token string, ttl time.Duration) {
	if err := Rdb.Del(ctx, sessionPrefix+token).Err(); err != nil {
		log.Printf("Failed to delete session from redis: %v", err)
	}
	Set(ctx, revokedPrefix+token, 1, ttl)
}

func IsTokenRevoked(ctx context.Context, token string) bool {
	n, err := Rdb.Exists(ctx, revokedPrefix+token).Result()
	if err != nil {
		log.Printf("Failed to check revoked token in redis: %v", err)
		return false
	}
	return n > 0
}

// number of live sessions. scans session keys, accurate enough for a
// stats endpoint.
func ActiveSessions(ctx context.Context) int {
	var count int
	var cursor uint64
	for {
		keys, next, err := Rdb.Scan(ctx, cursor, sessionPrefix+"*", 100).Result()
		if err != nil {
			log.Printf("Failed to scan sessions in redis: %v", err)
			return count
		}
		count += len(keys)
		cursor = next
		if cursor == 0 {
			return count
		}
	}
}
