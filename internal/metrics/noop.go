package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncValuation is a no-op.
func (n *NoopRecorder) IncValuation() {}

// IncCarCacheHit is a no-op.
func (n *NoopRecorder) IncCarCacheHit() {}

// IncCarCacheMiss is a no-op.
func (n *NoopRecorder) IncCarCacheMiss() {}

// IncBookingCreated is a no-op.
func (n *NoopRecorder) IncBookingCreated() {}

// IncOrderCreated is a no-op.
func (n *NoopRecorder) IncOrderCreated() {}

// IncPaymentVerified is a no-op.
func (n *NoopRecorder) IncPaymentVerified() {}
