package counters

import (
	"go.uber.org/atomic"
)

// StrictMonotonicCounter is a helper struct which implements a strict
// monotonic counter. StrictMonotonicCounter is implemented using atomic
// operations and doesn't allow to set a value which is lower or equal to the
// already stored one. The counter is implemented solely with non-blocking
// atomic operations for concurrency safety.
type StrictMonotonicCounter struct {
	atomicCounter *atomic.Uint64
}

// NewMonotonicCounter creates a new strict monotonic counter with the
// provided initial value.
func NewMonotonicCounter(initialValue uint64) StrictMonotonicCounter {
	return StrictMonotonicCounter{
		atomicCounter: atomic.NewUint64(initialValue),
	}
}

// Set updates the value of the counter if and only if it's strictly greater
// than the value which is already stored. Returns true if the value was
// updated.
func (c StrictMonotonicCounter) Set(newValue uint64) bool {
	for {
		oldValue := c.atomicCounter.Load()
		if newValue <= oldValue {
			return false
		}
		if c.atomicCounter.CompareAndSwap(oldValue, newValue) {
			return true
		}
	}
}

// Value returns the value which is stored in the atomic counter.
func (c StrictMonotonicCounter) Value() uint64 {
	return c.atomicCounter.Load()
}
