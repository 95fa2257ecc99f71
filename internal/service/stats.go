package service

import (
	"context"
	"fmt"

	"github.com/carvalueai/carvalueai/internal/repository"
)

// Stats aggregates high level usage counts.
type Stats struct {
	TotalPredictions int64 `json:"total_predictions"`
	TotalBookings    int64 `json:"total_bookings"`
	TotalPayments    int64 `json:"total_payments"`
}

// StatsService reads aggregate counts for the dashboard.
type StatsService struct {
	repo *repository.Repository
}

// NewStatsService creates a new StatsService.
func NewStatsService(repo *repository.Repository) *StatsService {
	return &StatsService{repo: repo}
}

// Collect returns the current usage counts.
func (s *StatsService) Collect(ctx context.Context) (*Stats, error) {
	cars, err := s.repo.CountCars(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect stats: %w", err)
	}

	bookings, err := s.repo.CountBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect stats: %w", err)
	}

	payments, err := s.repo.CountVerifiedPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect stats: %w", err)
	}

	return &Stats{
		TotalPredictions: cars,
		TotalBookings:    bookings,
		TotalPayments:    payments,
	}, nil
}
