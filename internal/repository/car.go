package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/carvalueai/carvalueai/internal/model"
)

// ErrCarNotFound is returned when no car matches the lookup.
var ErrCarNotFound = errors.New("car not found")

// CreateCar inserts a valued car record. Details are stored as JSONB.
func (r *Repository) CreateCar(ctx context.Context, car *model.Car) error {
	details, err := json.Marshal(car.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal car details: %w", err)
	}

	query := `
		INSERT INTO cars (car_id, details, predicted_price, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = r.pool.Exec(ctx, query,
		car.CarID,
		details,
		car.PredictedPrice,
		car.Status,
		car.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}

	return nil
}

// GetCar retrieves a car record by its business ID.
func (r *Repository) GetCar(ctx context.Context, carID string) (*model.Car, error) {
	query := `
		SELECT car_id, details, predicted_price, status, created_at
		FROM cars
		WHERE car_id = $1
	`

	var (
		car     model.Car
		details []byte
	)
	err := r.pool.QueryRow(ctx, query, carID).Scan(
		&car.CarID,
		&details,
		&car.PredictedPrice,
		&car.Status,
		&car.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to get car: %w", err)
	}

	if err := json.Unmarshal(details, &car.Details); err != nil {
		return nil, fmt.Errorf("failed to unmarshal car details: %w", err)
	}

	return &car, nil
}

// UpdateCarStatus moves a car to a new status.
func (r *Repository) UpdateCarStatus(ctx context.Context, carID, status string) error {
	query := `
		UPDATE cars
		SET status = $2
		WHERE car_id = $1
	`

	tag, err := r.pool.Exec(ctx, query, carID, status)
	if err != nil {
		return fmt.Errorf("failed to update car status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCarNotFound
	}

	return nil
}

// CountCars returns the total number of valued cars.
func (r *Repository) CountCars(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM cars`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cars: %w", err)
	}
	return count, nil
}
