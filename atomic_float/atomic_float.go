// Package atomic_float provides a lock-free float64 for aggregating
// figures across concurrently running, independently-owned runs. The
// simulation itself is single-threaded per run; only the cross-run
// aggregates in the driver need atomicity.
package atomic_float

import (
	"math"
	"sync/atomic"
)

// AtomicFloat64 is a float64 updated via compare-and-swap on its bits.
type AtomicFloat64 struct {
	bits uint64
}

func NewAtomicFloat64(val float64) *AtomicFloat64 {
	return &AtomicFloat64{bits: math.Float64bits(val)}
}

// Read returns the current value.
func (f *AtomicFloat64) Read() float64 {
	return math.Float64frombits(atomic.LoadUint64(&f.bits))
}

// Set stores val unconditionally.
func (f *AtomicFloat64) Set(val float64) {
	atomic.StoreUint64(&f.bits, math.Float64bits(val))
}

// Add adds delta and returns the new value, retrying until the swap wins.
func (f *AtomicFloat64) Add(delta float64) float64 {
	for {
		old := atomic.LoadUint64(&f.bits)
		next := math.Float64frombits(old) + delta
		if atomic.CompareAndSwapUint64(&f.bits, old, math.Float64bits(next)) {
			return next
		}
	}
}

// Max raises the stored value to val if val is larger, returning the
// resulting value.
func (f *AtomicFloat64) Max(val float64) float64 {
	for {
		old := atomic.LoadUint64(&f.bits)
		cur := math.Float64frombits(old)
		if val <= cur {
			return cur
		}
		if atomic.CompareAndSwapUint64(&f.bits, old, math.Float64bits(val)) {
			return val
		}
	}
}
