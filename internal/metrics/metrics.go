// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Valuation metrics
	IncValuation()
	IncCarCacheHit()
	IncCarCacheMiss()

	// Booking and payment metrics
	IncBookingCreated()
	IncOrderCreated()
	IncPaymentVerified()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
