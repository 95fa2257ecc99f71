package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/carvalueai/carvalueai/internal/cache"
	"github.com/carvalueai/carvalueai/internal/metrics"
	"github.com/carvalueai/carvalueai/internal/model"
	"github.com/carvalueai/carvalueai/internal/repository"
)

// Booking errors.
var (
	ErrMissingCustomerName   = errors.New("customer_name is required")
	ErrMissingCustomerEmail  = errors.New("customer_email is required")
	ErrInvalidCustomerEmail  = errors.New("customer_email is not a valid address")
	ErrMissingInspectionDate = errors.New("inspection_date is required")
	ErrBookingNotFound       = errors.New("booking not found")
)

// BookingService schedules vehicle inspections.
type BookingService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	metrics metrics.Recorder
	now     func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(repo *repository.Repository, cache *cache.Cache, recorder metrics.Recorder) *BookingService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &BookingService{
		repo:    repo,
		cache:   cache,
		metrics: recorder,
		now:     time.Now,
	}
}

// BookInspectionInput carries the customer details for a booking.
type BookInspectionInput struct {
	CarID          string
	OrderID        string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	Address        string
	InspectionDate string
	InspectionTime string
}

// ValidateBookingInput checks the submitted booking fields.
func ValidateBookingInput(input BookInspectionInput) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return ErrMissingCustomerName
	}
	email := strings.TrimSpace(input.CustomerEmail)
	if email == "" {
		return ErrMissingCustomerEmail
	}
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return ErrInvalidCustomerEmail
	}
	if strings.TrimSpace(input.InspectionDate) == "" {
		return ErrMissingInspectionDate
	}
	return nil
}

// BookInspection creates a booking for a previously valued car and
// transitions the car into the inspection pipeline.
func (s *BookingService) BookInspection(ctx context.Context, input BookInspectionInput) (*model.Booking, error) {
	if err := ValidateBookingInput(input); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetCar(ctx, input.CarID); err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}

	inspectionTime := strings.TrimSpace(input.InspectionTime)
	if inspectionTime == "" {
		inspectionTime = model.DefaultInspectionTime
	}

	now := s.now()
	booking := &model.Booking{
		ID:             ulid.Make().String(),
		BookingID:      model.NewBookingID(now),
		CarID:          input.CarID,
		OrderID:        input.OrderID,
		CustomerName:   strings.TrimSpace(input.CustomerName),
		CustomerEmail:  strings.TrimSpace(input.CustomerEmail),
		CustomerPhone:  strings.TrimSpace(input.CustomerPhone),
		Address:        strings.TrimSpace(input.Address),
		InspectionDate: strings.TrimSpace(input.InspectionDate),
		InspectionTime: inspectionTime,
		Status:         model.BookingStatusConfirmed,
		CreatedAt:      now.UTC(),
	}

	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := s.repo.UpdateCarStatus(ctx, input.CarID, model.CarStatusInspectionBooked); err != nil {
		// The booking exists; a stale car status is recoverable, a lost
		// booking is not. Surface the error so callers can log it.
		return booking, fmt.Errorf("booking created but car status update failed: %w", err)
	}

	// Drop the cached copy so the next read sees the new status.
	_ = s.cache.InvalidateCar(ctx, input.CarID)

	s.metrics.IncBookingCreated()

	return booking, nil
}

// GetBooking retrieves a booking by its business ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*model.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}
