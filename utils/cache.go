// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"shearbook/config"
)

var (
	// SlotCacheClient caches blocked-slot sets per (shop, date, employee).
	SlotCacheClient *redis.Client
	// AuthCacheClient is the dedicated client for auth token caching.
	AuthCacheClient *redis.Client
)

// InitSlotCache initializes the Redis client used for availability caching.
func InitSlotCache() {
	SlotCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SlotCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (slot cache): %v", err)
	}
}

// GetSlotCacheClient returns the availability cache client.
func GetSlotCacheClient() *redis.Client {
	if SlotCacheClient == nil {
		InitSlotCache()
	}
	return SlotCacheClient
}

// InitAuthCache initializes the Redis client for auth token caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := AuthCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (auth cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for auth token caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}
