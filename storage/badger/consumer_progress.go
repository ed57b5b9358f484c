package badger

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/oraclenet/offchain-worker/storage"
)

// keyPrefixProgress namespaces the processed-index entries so multiple
// consumers can share one database.
const keyPrefixProgress = "consumer_progress"

// ConsumerProgress persists the last processed index of a consumer in a
// badger database.
type ConsumerProgress struct {
	db       *badger.DB
	consumer string // to distinguish the progress between different consumers
}

var _ storage.ConsumerProgress = (*ConsumerProgress)(nil)

func NewConsumerProgress(db *badger.DB, consumer string) *ConsumerProgress {
	return &ConsumerProgress{
		db:       db,
		consumer: consumer,
	}
}

func (cp *ConsumerProgress) key() []byte {
	return []byte(fmt.Sprintf("%s:%s", keyPrefixProgress, cp.consumer))
}

// ProcessedIndex returns the processed index for the consumer. It returns
// storage.ErrNotFound if the consumer has never been initialized.
func (cp *ConsumerProgress) ProcessedIndex() (uint64, error) {
	var processed uint64
	err := cp.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(cp.key())
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("could not load data: %w", err)
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("invalid processed index entry of %d bytes", len(val))
			}
			processed = binary.BigEndian.Uint64(val)
			return nil
		})
	})
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve processed index: %w", err)
	}
	return processed, nil
}

// InitProcessedIndex inserts the default processed index for the consumer.
// It returns storage.ErrAlreadyExists if the consumer was initialized before.
func (cp *ConsumerProgress) InitProcessedIndex(defaultIndex uint64) error {
	err := cp.db.Update(func(tx *badger.Txn) error {
		_, err := tx.Get(cp.key())
		if err == nil {
			return storage.ErrAlreadyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("could not check key: %w", err)
		}
		return tx.Set(cp.key(), encodeIndex(defaultIndex))
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return err
		}
		return fmt.Errorf("could not init processed index: %w", err)
	}
	return nil
}

// SetProcessedIndex updates the processed index for the consumer.
func (cp *ConsumerProgress) SetProcessedIndex(processed uint64) error {
	err := cp.db.Update(func(tx *badger.Txn) error {
		return tx.Set(cp.key(), encodeIndex(processed))
	})
	if err != nil {
		return fmt.Errorf("could not update processed index: %w", err)
	}
	return nil
}

func encodeIndex(index uint64) []byte {
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, index)
	return val
}
