package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carvalueai/carvalueai/internal/model"
)

// Cache key prefixes and TTLs.
const (
	carKeyPrefix = "car:"

	// DefaultCarTTL is the TTL for cached car records. Valuations are
	// immutable apart from the status flip, so a long TTL is safe.
	DefaultCarTTL = 24 * time.Hour
)

// ErrCacheMiss is returned when a key is not present.
var ErrCacheMiss = errors.New("cache miss")

// GetCar retrieves a cached car record by its business ID.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetCar(ctx context.Context, carID string) (*model.Car, error) {
	key := carKeyPrefix + carID

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var car model.Car
	if err := json.Unmarshal(payload, &car); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached car: %w", err)
	}

	return &car, nil
}

// SetCar stores a car record in cache.
func (c *Cache) SetCar(ctx context.Context, car *model.Car) error {
	key := carKeyPrefix + car.CarID

	payload, err := json.Marshal(car)
	if err != nil {
		return fmt.Errorf("failed to marshal car: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, DefaultCarTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache car: %w", err)
	}

	return nil
}

// InvalidateCar drops a cached car record, e.g. after a status change.
func (c *Cache) InvalidateCar(ctx context.Context, carID string) error {
	if err := c.client.Del(ctx, carKeyPrefix+carID).Err(); err != nil {
		return fmt.Errorf("failed to invalidate car: %w", err)
	}
	return nil
}
