// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carvalueai/carvalueai/internal/cache"
	"github.com/carvalueai/carvalueai/internal/metrics"
	"github.com/carvalueai/carvalueai/internal/model"
	"github.com/carvalueai/carvalueai/internal/repository"
	"github.com/carvalueai/carvalueai/internal/valuation"
)

// Service errors.
var (
	ErrInvalidYear         = errors.New("year is out of range")
	ErrInvalidOdometer     = errors.New("km_driven must be non-negative")
	ErrInvalidMileage      = errors.New("mileage must be positive")
	ErrInvalidEngine       = errors.New("engine displacement must be positive")
	ErrInvalidPower        = errors.New("max_power must be positive")
	ErrInvalidSeats        = errors.New("seats is out of range")
	ErrMissingName         = errors.New("name is required")
	ErrMissingFuel         = errors.New("fuel is required")
	ErrMissingSellerType   = errors.New("seller_type is required")
	ErrMissingTransmission = errors.New("transmission is required")
	ErrMissingOwner        = errors.New("owner is required")
	ErrCarNotFound         = errors.New("car not found")
)

const (
	minModelYear = 1980
	minSeats     = 2
	maxSeats     = 10
)

// ValuationService handles car valuation business logic.
type ValuationService struct {
	repo    *repository.Repository
	cache   *cache.Cache
	valuer  valuation.Valuer
	metrics metrics.Recorder
	now     func() time.Time
}

// NewValuationService creates a new ValuationService.
func NewValuationService(repo *repository.Repository, cache *cache.Cache, valuer valuation.Valuer, recorder metrics.Recorder) *ValuationService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ValuationService{
		repo:    repo,
		cache:   cache,
		valuer:  valuer,
		metrics: recorder,
		now:     time.Now,
	}
}

// ValidateDetails checks the submitted vehicle attributes.
func ValidateDetails(details model.CarDetails) error {
	if details.Name == "" {
		return ErrMissingName
	}
	if details.Fuel == "" {
		return ErrMissingFuel
	}
	if details.SellerType == "" {
		return ErrMissingSellerType
	}
	if details.Transmission == "" {
		return ErrMissingTransmission
	}
	if details.Owner == "" {
		return ErrMissingOwner
	}
	if details.Year < minModelYear || details.Year > time.Now().Year()+1 {
		return ErrInvalidYear
	}
	if details.KmDriven < 0 {
		return ErrInvalidOdometer
	}
	if details.Mileage <= 0 {
		return ErrInvalidMileage
	}
	if details.Engine <= 0 {
		return ErrInvalidEngine
	}
	if details.MaxPower <= 0 {
		return ErrInvalidPower
	}
	if details.Seats < minSeats || details.Seats > maxSeats {
		return ErrInvalidSeats
	}
	return nil
}

// Value estimates a price for the vehicle and persists the record.
func (s *ValuationService) Value(ctx context.Context, details model.CarDetails) (*model.Car, error) {
	if err := ValidateDetails(details); err != nil {
		return nil, err
	}

	now := s.now()
	car := &model.Car{
		CarID:          model.NewCarID(now),
		Details:        details,
		PredictedPrice: s.valuer.Estimate(details),
		Status:         model.CarStatusPredicted,
		CreatedAt:      now.UTC(),
	}

	if err := s.repo.CreateCar(ctx, car); err != nil {
		return nil, fmt.Errorf("failed to store valuation: %w", err)
	}

	// Cache write is best-effort; the record is already durable.
	_ = s.cache.SetCar(ctx, car)

	s.metrics.IncValuation()

	return car, nil
}

// GetCar retrieves a valued car, consulting the cache first.
func (s *ValuationService) GetCar(ctx context.Context, carID string) (*model.Car, error) {
	if car, err := s.cache.GetCar(ctx, carID); err == nil {
		s.metrics.IncCarCacheHit()
		return car, nil
	}
	s.metrics.IncCarCacheMiss()

	car, err := s.repo.GetCar(ctx, carID)
	if err != nil {
		if errors.Is(err, repository.ErrCarNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}

	_ = s.cache.SetCar(ctx, car)

	return car, nil
}
