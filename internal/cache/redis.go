package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avelora/flightbook/config"
	"github.com/avelora/flightbook/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client       *redis.Client
	searchTTL    time.Duration
	referenceTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, searchTTL, referenceTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:       redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		searchTTL:    searchTTL,
		referenceTTL: referenceTTL,
	}
}

// GetSearch returns cached search results for a route, or nil on a miss.
func (c *RedisCache) GetSearch(ctx context.Context, key string) ([]domain.FlightSummary, error) {
	data, err := c.client.Get(ctx, searchKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.FlightSummary
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetSearch(ctx context.Context, key string, flights []domain.FlightSummary) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, searchKey(key), payload, c.searchTTL).Err()
}

func (c *RedisCache) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	data, err := c.client.Get(ctx, airportsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var airports []domain.Airport
	if err := json.Unmarshal(data, &airports); err != nil {
		return nil, err
	}
	return airports, nil
}

func (c *RedisCache) SetAirports(ctx context.Context, airports []domain.Airport) error {
	payload, err := json.Marshal(airports)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, airportsKey(), payload, c.referenceTTL).Err()
}

// AcquireSeatLock takes a short-lived SetNX lock on a seat while a booking is
// in flight. The database uniqueness constraint is the final guard; the lock
// only keeps concurrent requests from doing doomed work.
func (c *RedisCache) AcquireSeatLock(ctx context.Context, seatID string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, seatLockKey(seatID), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseSeatLock(ctx context.Context, seatID string) error {
	return c.client.Del(ctx, seatLockKey(seatID)).Err()
}

func searchKey(key string) string {
	return "cache:search:" + key
}

func airportsKey() string {
	return "cache:airports"
}

func seatLockKey(seatID string) string {
	return fmt.Sprintf("lock:seat:%s", seatID)
}
