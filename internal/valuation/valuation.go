// Package valuation estimates resale prices for vehicles.
package valuation

import (
	"math"
	"time"

	"github.com/carvalueai/carvalueai/internal/model"
)

// Valuer estimates a resale price in rupees for a vehicle.
type Valuer interface {
	Estimate(details model.CarDetails) int64
}

// Baseline is a deterministic estimator standing in for the trained
// model: a displacement/power base price, compounding age depreciation,
// and an odometer penalty. It exists so the API contract can be
// exercised end to end; a model server replaces it via the Valuer
// interface.
type Baseline struct {
	// Now supplies the reference year; defaults to time.Now.
	Now func() time.Time
}

// Estimate computes the baseline price.
func (v *Baseline) Estimate(details model.CarDetails) int64 {
	now := time.Now
	if v.Now != nil {
		now = v.Now
	}

	base := details.Engine*250 + details.MaxPower*1800

	age := float64(now().Year() - details.Year)
	if age < 0 {
		age = 0
	}
	depreciation := math.Pow(0.93, age)

	// 1% penalty per 10k km, capped at half the depreciated value.
	penalty := 1 - float64(details.KmDriven)/10000*0.01
	if penalty < 0.5 {
		penalty = 0.5
	}

	price := int64(math.Round(base * depreciation * penalty))
	if price < 25000 {
		price = 25000
	}
	return price
}
