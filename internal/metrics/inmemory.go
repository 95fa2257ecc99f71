package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Valuations       uint64
	CarCacheHits     uint64
	CarCacheMisses   uint64
	BookingsCreated  uint64
	OrdersCreated    uint64
	PaymentsVerified uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	valuations       uint64
	carCacheHits     uint64
	carCacheMisses   uint64
	bookingsCreated  uint64
	ordersCreated    uint64
	paymentsVerified uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		Valuations:       atomic.LoadUint64(&m.valuations),
		CarCacheHits:     atomic.LoadUint64(&m.carCacheHits),
		CarCacheMisses:   atomic.LoadUint64(&m.carCacheMisses),
		BookingsCreated:  atomic.LoadUint64(&m.bookingsCreated),
		OrdersCreated:    atomic.LoadUint64(&m.ordersCreated),
		PaymentsVerified: atomic.LoadUint64(&m.paymentsVerified),
	}
}

// IncValuation increments the valuation counter.
func (m *InMemoryRecorder) IncValuation() {
	atomic.AddUint64(&m.valuations, 1)
}

// IncCarCacheHit increments the cache hit counter.
func (m *InMemoryRecorder) IncCarCacheHit() {
	atomic.AddUint64(&m.carCacheHits, 1)
}

// IncCarCacheMiss increments the cache miss counter.
func (m *InMemoryRecorder) IncCarCacheMiss() {
	atomic.AddUint64(&m.carCacheMisses, 1)
}

// IncBookingCreated increments the booking counter.
func (m *InMemoryRecorder) IncBookingCreated() {
	atomic.AddUint64(&m.bookingsCreated, 1)
}

// IncOrderCreated increments the order counter.
func (m *InMemoryRecorder) IncOrderCreated() {
	atomic.AddUint64(&m.ordersCreated, 1)
}

// IncPaymentVerified increments the verified payment counter.
func (m *InMemoryRecorder) IncPaymentVerified() {
	atomic.AddUint64(&m.paymentsVerified, 1)
}
