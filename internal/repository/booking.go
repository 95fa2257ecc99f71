package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/carvalueai/carvalueai/internal/model"
)

// Common errors for booking repository operations.
var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrBookingExists   = errors.New("booking already exists")
)

// CreateBooking inserts an inspection booking.
func (r *Repository) CreateBooking(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, booking_id, car_id, order_id,
			customer_name, customer_email, customer_phone, address,
			inspection_date, inspection_time, status, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		booking.ID,
		booking.BookingID,
		booking.CarID,
		booking.OrderID,
		booking.CustomerName,
		booking.CustomerEmail,
		booking.CustomerPhone,
		booking.Address,
		booking.InspectionDate,
		booking.InspectionTime,
		booking.Status,
		booking.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrBookingExists
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetBooking retrieves a booking by its business ID.
func (r *Repository) GetBooking(ctx context.Context, bookingID string) (*model.Booking, error) {
	query := `
		SELECT id, booking_id, car_id, order_id,
		       customer_name, customer_email, customer_phone, address,
		       inspection_date, inspection_time, status, created_at
		FROM bookings
		WHERE booking_id = $1
	`

	var booking model.Booking
	err := r.pool.QueryRow(ctx, query, bookingID).Scan(
		&booking.ID,
		&booking.BookingID,
		&booking.CarID,
		&booking.OrderID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.Address,
		&booking.InspectionDate,
		&booking.InspectionTime,
		&booking.Status,
		&booking.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &booking, nil
}

// CountBookings returns the total number of bookings.
func (r *Repository) CountBookings(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}
