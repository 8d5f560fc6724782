package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/redis/go-redis/v9"
)

// RedisCache is an ObjectCache stored in redis, keys are prefixed with namespace
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to redis and checks the connection
func NewRedisCache(ctx context.Context, addr string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", addr, err)
	}
	lgr.Printf("[INFO] connected to redis at %s", addr)
	return &RedisCache{client: client}, nil
}

// Get returns a value, missing key is not an error
func (r *RedisCache) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, redisKey(namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get key %s: %w", key, err)
	}
	return val, true, nil
}

// Set stores value with ttl, ttl <= 0 means no expiration
func (r *RedisCache) Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, redisKey(namespace, key), value, ttl).Err(); err != nil {
		return fmt.Errorf("set key %s: %w", key, err)
	}
	return nil
}

// Delete removes a key
func (r *RedisCache) Delete(ctx context.Context, namespace, key string) error {
	if err := r.client.Del(ctx, redisKey(namespace, key)).Err(); err != nil {
		return fmt.Errorf("delete key %s: %w", key, err)
	}
	return nil
}

// Flush removes all keys of the namespace using SCAN, other keys of the db are kept
func (r *RedisCache) Flush(ctx context.Context, namespace string) error {
	iter := r.client.Scan(ctx, 0, namespace+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) >= 100 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("flush namespace %s: %w", namespace, err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan namespace %s: %w", namespace, err)
	}
	if len(keys) > 0 {
		if err := r.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("flush namespace %s: %w", namespace, err)
		}
	}
	return nil
}

// Close closes redis connection
func (r *RedisCache) Close() error {
	return r.client.Close()
}

func redisKey(namespace, key string) string {
	return namespace + ":" + key
}
