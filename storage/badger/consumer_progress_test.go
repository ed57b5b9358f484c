package badger

import (
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/require"

	"github.com/oraclenet/offchain-worker/storage"
)

func withDB(t *testing.T, f func(db *badger.DB)) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	defer db.Close()
	f(db)
}

func TestConsumerProgressInitialization(t *testing.T) {
	withDB(t, func(db *badger.DB) {
		progress := NewConsumerProgress(db, "test_consumer")

		// reading before initialization returns ErrNotFound
		_, err := progress.ProcessedIndex()
		require.ErrorIs(t, err, storage.ErrNotFound)

		require.NoError(t, progress.InitProcessedIndex(7))

		processed, err := progress.ProcessedIndex()
		require.NoError(t, err)
		require.Equal(t, uint64(7), processed)

		// double initialization is rejected
		err = progress.InitProcessedIndex(9)
		require.ErrorIs(t, err, storage.ErrAlreadyExists)
	})
}

func TestConsumerProgressUpdate(t *testing.T) {
	withDB(t, func(db *badger.DB) {
		progress := NewConsumerProgress(db, "test_consumer")
		require.NoError(t, progress.InitProcessedIndex(0))

		for i := uint64(1); i <= 5; i++ {
			require.NoError(t, progress.SetProcessedIndex(i))
		}

		processed, err := progress.ProcessedIndex()
		require.NoError(t, err)
		require.Equal(t, uint64(5), processed)
	})
}

func TestConsumerProgressIsolation(t *testing.T) {
	withDB(t, func(db *badger.DB) {
		first := NewConsumerProgress(db, "consumer_a")
		second := NewConsumerProgress(db, "consumer_b")

		require.NoError(t, first.InitProcessedIndex(1))

		// the second consumer's progress is independent of the first
		_, err := second.ProcessedIndex()
		require.ErrorIs(t, err, storage.ErrNotFound)

		require.NoError(t, second.InitProcessedIndex(2))
		require.NoError(t, first.SetProcessedIndex(10))

		processed, err := second.ProcessedIndex()
		require.NoError(t, err)
		require.Equal(t, uint64(2), processed)
	})
}
