package metrics

import (
	"sync"
	"testing"
)

func TestInMemoryRecorder_Counts(t *testing.T) {
	rec := NewInMemory()

	rec.IncValuation()
	rec.IncValuation()
	rec.IncCarCacheHit()
	rec.IncCarCacheMiss()
	rec.IncBookingCreated()
	rec.IncOrderCreated()
	rec.IncPaymentVerified()

	snap := rec.Snapshot()
	if snap.Valuations != 2 {
		t.Errorf("Valuations = %d, want 2", snap.Valuations)
	}
	if snap.CarCacheHits != 1 || snap.CarCacheMisses != 1 {
		t.Errorf("cache counters = %d/%d, want 1/1", snap.CarCacheHits, snap.CarCacheMisses)
	}
	if snap.BookingsCreated != 1 || snap.OrdersCreated != 1 || snap.PaymentsVerified != 1 {
		t.Errorf("unexpected counters: %+v", snap)
	}
}

func TestInMemoryRecorder_Concurrent(t *testing.T) {
	rec := NewInMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.IncValuation()
		}()
	}
	wg.Wait()

	if got := rec.Snapshot().Valuations; got != 50 {
		t.Errorf("Valuations = %d, want 50", got)
	}
}
