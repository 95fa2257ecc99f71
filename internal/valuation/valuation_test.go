package valuation

import (
	"testing"
	"time"

	"github.com/carvalueai/carvalueai/internal/model"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
}

func sampleDetails() model.CarDetails {
	return model.CarDetails{
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
	}
}

func TestBaseline_Deterministic(t *testing.T) {
	valuer := &Baseline{Now: fixedClock}

	details := sampleDetails()
	first := valuer.Estimate(details)
	second := valuer.Estimate(details)

	if first != second {
		t.Errorf("same input produced different prices: %d vs %d", first, second)
	}
	if first < 25000 {
		t.Errorf("price %d below floor", first)
	}
}

func TestBaseline_OlderCarIsCheaper(t *testing.T) {
	valuer := &Baseline{Now: fixedClock}

	newer := sampleDetails()
	newer.Year = 2022

	older := sampleDetails()
	older.Year = 2010

	if valuer.Estimate(older) >= valuer.Estimate(newer) {
		t.Error("expected older car to be valued below the newer one")
	}
}

func TestBaseline_HighMileageIsCheaper(t *testing.T) {
	valuer := &Baseline{Now: fixedClock}

	low := sampleDetails()
	low.KmDriven = 10000

	high := sampleDetails()
	high.KmDriven = 200000

	if valuer.Estimate(high) >= valuer.Estimate(low) {
		t.Error("expected high odometer car to be valued below the low one")
	}
}

func TestBaseline_PriceFloor(t *testing.T) {
	valuer := &Baseline{Now: fixedClock}

	details := sampleDetails()
	details.Year = 1985
	details.KmDriven = 900000
	details.Engine = 50
	details.MaxPower = 5

	if got := valuer.Estimate(details); got != 25000 {
		t.Errorf("Estimate() = %d, want floor 25000", got)
	}
}
