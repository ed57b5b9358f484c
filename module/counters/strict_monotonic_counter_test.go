package counters

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMonotonicConsumer(t *testing.T) {
	var counter = NewMonotonicCounter(3)
	require.Equal(t, uint64(3), counter.Value())

	// lower values are rejected
	require.False(t, counter.Set(2))
	require.Equal(t, uint64(3), counter.Value())

	// equal values are rejected
	require.False(t, counter.Set(3))
	require.Equal(t, uint64(3), counter.Value())

	// higher values win
	require.True(t, counter.Set(4))
	require.Equal(t, uint64(4), counter.Value())
}

// TestMonotonicConsumer_Concurrent verifies that under concurrent updates
// exactly one goroutine wins each distinct value and the counter ends at the
// maximum.
func TestMonotonicConsumer_Concurrent(t *testing.T) {
	counter := NewMonotonicCounter(0)

	var wins sync.Map
	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		i := uint64(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if counter.Set(i) {
				wins.Store(i, struct{}{})
			}
		}()
	}
	wg.Wait()

	require.Equal(t, uint64(100), counter.Value())

	// the maximum must have been accepted by exactly one goroutine
	_, ok := wins.Load(uint64(100))
	require.True(t, ok)
}
