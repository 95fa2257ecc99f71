// Package testutil provides helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/carvalueai/carvalueai/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 730731

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// migrationFiles in dependency order. Bookings reference cars, so cars
// come up first and go down last.
var migrationFiles = []string{
	"000001_users",
	"000002_cars",
	"000003_bookings",
	"000004_payments",
}

// ResetSchema drops and recreates every table for tests.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	for i := len(migrationFiles) - 1; i >= 0; i-- {
		if err := applyMigration(ctx, pool, root, migrationFiles[i]+".down.sql"); err != nil {
			return err
		}
	}

	for _, name := range migrationFiles {
		if err := applyMigration(ctx, pool, root, name+".up.sql"); err != nil {
			return err
		}
	}

	return nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, root, file string) error {
	path := filepath.Join(root, "migrations", file)

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", file, err)
	}
	if _, err := pool.Exec(ctx, string(raw)); err != nil {
		return fmt.Errorf("apply migration %s: %w", file, err)
	}

	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestCar creates a car record with sensible defaults.
func NewTestCar(t testing.TB) *model.Car {
	t.Helper()
	now := time.Now().UTC()
	return &model.Car{
		CarID: model.NewCarID(now),
		Details: model.CarDetails{
			Name:         "Maruti Swift VDI",
			Year:         2018,
			KmDriven:     45000,
			Fuel:         "Diesel",
			SellerType:   "Individual",
			Transmission: "Manual",
			Owner:        "First Owner",
			Mileage:      23.4,
			Engine:       1248,
			MaxPower:     74,
			Seats:        5,
		},
		PredictedPrice: 450000,
		Status:         model.CarStatusPredicted,
		CreatedAt:      now,
	}
}

// NewTestBooking creates a booking for the given car.
func NewTestBooking(t testing.TB, carID string) *model.Booking {
	t.Helper()
	now := time.Now().UTC()
	return &model.Booking{
		ID:             UniqueID("bk"),
		BookingID:      model.NewBookingID(now),
		CarID:          carID,
		CustomerName:   "Test Customer",
		CustomerEmail:  fmt.Sprintf("customer-%d@example.com", now.UnixNano()),
		InspectionDate: now.AddDate(0, 0, 3).Format("2006-01-02"),
		InspectionTime: model.DefaultInspectionTime,
		Status:         model.BookingStatusConfirmed,
		CreatedAt:      now,
	}
}

// NewTestUser creates a user with a placeholder password hash.
func NewTestUser(t testing.TB) *model.User {
	t.Helper()
	now := time.Now().UTC()
	return &model.User{
		ID:           UniqueID("user"),
		Name:         "Test User",
		Email:        fmt.Sprintf("user-%d@example.com", now.UnixNano()),
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$dGVzdHNhbHQ$dGVzdGhhc2g",
		CreatedAt:    now,
	}
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
