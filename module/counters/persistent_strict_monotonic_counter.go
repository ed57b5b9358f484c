package counters

import (
	"errors"
	"fmt"

	"github.com/oraclenet/offchain-worker/storage"
)

// ErrIncorrectValue indicates that a processed index update was rejected
// because the new value is not strictly larger than the stored one. Callers
// treat it as "already handled", distinct from a storage failure.
var ErrIncorrectValue = errors.New("incorrect value")

// PersistentStrictMonotonicCounter represents the consumer progress with a
// strict monotonic counter backed by storage.
type PersistentStrictMonotonicCounter struct {
	consumerProgress storage.ConsumerProgress

	// used to skip values that are lower than the current value
	counter StrictMonotonicCounter
}

// NewPersistentStrictMonotonicCounter creates a new
// PersistentStrictMonotonicCounter which inserts the default processed index
// to the storage layer and creates a new counter with the defaultIndex value.
// The consumer progress and associated db entry must not be accessed outside
// of calls to the returned object, otherwise the state may become
// inconsistent.
//
// No errors are expected during normal operation.
func NewPersistentStrictMonotonicCounter(consumerProgress storage.ConsumerProgress, defaultIndex uint64) (*PersistentStrictMonotonicCounter, error) {
	m := &PersistentStrictMonotonicCounter{
		consumerProgress: consumerProgress,
	}

	// sync with storage for the processed index to ensure consistency
	value, err := m.consumerProgress.ProcessedIndex()
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			err := m.consumerProgress.InitProcessedIndex(defaultIndex)
			if err != nil {
				return nil, fmt.Errorf("could not init consumer progress: %w", err)
			}
			m.counter = NewMonotonicCounter(defaultIndex)
		} else {
			return nil, fmt.Errorf("could not read consumer progress: %w", err)
		}
	} else {
		m.counter = NewMonotonicCounter(value)
	}

	return m, nil
}

// Set sets the processed index, ensuring it is strictly monotonically
// increasing. It returns ErrIncorrectValue if the new value is not larger
// than the stored one, and a wrapped storage error if persisting fails. The
// in-memory counter only advances after a successful write, so a failed
// height can be retried. Set expects a single writer; concurrent callers
// must serialize externally.
func (m *PersistentStrictMonotonicCounter) Set(processed uint64) error {
	if processed <= m.counter.Value() {
		return ErrIncorrectValue
	}
	err := m.consumerProgress.SetProcessedIndex(processed)
	if err != nil {
		return fmt.Errorf("could not update processed index: %w", err)
	}
	m.counter.Set(processed)
	return nil
}

// Value loads the current stored index.
func (m *PersistentStrictMonotonicCounter) Value() uint64 {
	return m.counter.Value()
}
