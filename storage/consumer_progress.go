package storage

// ConsumerProgress reads and writes the last processed index of the job in
// the scope of the given consumer.
type ConsumerProgress interface {
	// ProcessedIndex returns the processed index for the consumer.
	// It returns ErrNotFound if the consumer has never been initialized.
	ProcessedIndex() (uint64, error)

	// InitProcessedIndex inserts the default processed index for the
	// consumer. It returns ErrAlreadyExists if the consumer was initialized
	// before.
	InitProcessedIndex(defaultIndex uint64) error

	// SetProcessedIndex updates the processed index for the consumer.
	// The caller is responsible for ordering; the value is stored as given.
	SetProcessedIndex(processed uint64) error
}
