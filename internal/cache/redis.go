package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/skyseats/config"
	"github.com/Domenick1991/skyseats/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}), flightsTTL)
}

func NewRedisCacheFromClient(client *redis.Client, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, flightsTTL: flightsTTL}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// GetFlights returns nil, nil on a miss.
func (c *RedisCache) GetFlights(ctx context.Context, key string) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, key string, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(key), payload, c.flightsTTL).Err()
}

// ClaimIdempotencyKey marks key as in progress. It reports false when the
// key was already claimed, together with the stored value.
func (c *RedisCache) ClaimIdempotencyKey(ctx context.Context, key string, ttl time.Duration) (bool, string, error) {
	ok, err := c.client.SetNX(ctx, idempotencyKey(key), inProgress, ttl).Result()
	if err != nil {
		return false, "", err
	}
	if ok {
		return true, "", nil
	}
	val, err := c.client.Get(ctx, idempotencyKey(key)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, "", err
	}
	return false, val, nil
}

// CompleteIdempotencyKey stores the final response body for replay.
func (c *RedisCache) CompleteIdempotencyKey(ctx context.Context, key, response string, ttl time.Duration) error {
	return c.client.Set(ctx, idempotencyKey(key), response, ttl).Err()
}

// ReleaseIdempotencyKey frees a key whose request failed so the client may retry.
func (c *RedisCache) ReleaseIdempotencyKey(ctx context.Context, key string) error {
	return c.client.Del(ctx, idempotencyKey(key)).Err()
}

// inProgress is not valid JSON, so it never parses as a stored response.
const inProgress = "PROCESSING"

func flightsKey(key string) string {
	return fmt.Sprintf("cache:flights:%s", key)
}

func idempotencyKey(key string) string {
	return fmt.Sprintf("idempotency:%s", key)
}
