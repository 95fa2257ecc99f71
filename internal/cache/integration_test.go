//go:build integration

package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/carvalueai/carvalueai/internal/testutil"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	ctx := context.Background()
	c, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect to Redis: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	if err := testutil.FlushRedis(ctx, c.client); err != nil {
		t.Fatalf("flush Redis: %v", err)
	}

	return c
}

func TestCarCache_RoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	car := testutil.NewTestCar(t)

	if _, err := c.GetCar(ctx, car.CarID); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("GetCar before set: err = %v, want ErrCacheMiss", err)
	}

	if err := c.SetCar(ctx, car); err != nil {
		t.Fatalf("SetCar: %v", err)
	}

	got, err := c.GetCar(ctx, car.CarID)
	if err != nil {
		t.Fatalf("GetCar after set: %v", err)
	}
	if got.CarID != car.CarID {
		t.Errorf("CarID = %q, want %q", got.CarID, car.CarID)
	}
	if got.PredictedPrice != car.PredictedPrice {
		t.Errorf("PredictedPrice = %d, want %d", got.PredictedPrice, car.PredictedPrice)
	}
	if got.Details.Name != car.Details.Name {
		t.Errorf("Details.Name = %q, want %q", got.Details.Name, car.Details.Name)
	}
}

func TestCarCache_Invalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	car := testutil.NewTestCar(t)

	if err := c.SetCar(ctx, car); err != nil {
		t.Fatalf("SetCar: %v", err)
	}
	if err := c.InvalidateCar(ctx, car.CarID); err != nil {
		t.Fatalf("InvalidateCar: %v", err)
	}

	if _, err := c.GetCar(ctx, car.CarID); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("GetCar after invalidate: err = %v, want ErrCacheMiss", err)
	}
}

func TestCheckIPRateLimit_ExhaustsBurst(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	const burst = 3

	for i := 0; i < burst; i++ {
		result, err := c.CheckIPRateLimit(ctx, "203.0.113.7", 1, burst)
		if err != nil {
			t.Fatalf("CheckIPRateLimit #%d: %v", i+1, err)
		}
		if !result.Allowed {
			t.Fatalf("request %d within burst was denied", i+1)
		}
	}

	result, err := c.CheckIPRateLimit(ctx, "203.0.113.7", 1, burst)
	if err != nil {
		t.Fatalf("CheckIPRateLimit over burst: %v", err)
	}
	if result.Allowed {
		t.Error("request over burst was allowed")
	}
	if result.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want > 0", result.RetryAfter)
	}

	// A different address has its own bucket.
	other, err := c.CheckIPRateLimit(ctx, "203.0.113.8", 1, burst)
	if err != nil {
		t.Fatalf("CheckIPRateLimit other IP: %v", err)
	}
	if !other.Allowed {
		t.Error("first request from a different IP was denied")
	}
}
