package events

import (
	"sync"

	"github.com/oraclenet/offchain-worker/model/chain"
	"github.com/oraclenet/offchain-worker/state/protocol"
)

// Distributor distributes chain events to a list of subscribers.
type Distributor struct {
	subscribers []protocol.Consumer
	mu          sync.RWMutex
}

var _ protocol.Consumer = (*Distributor)(nil)

// NewDistributor returns a new events distributor.
func NewDistributor() *Distributor {
	return &Distributor{}
}

// AddConsumer adds a consumer to the distribution list. Not safe for use
// concurrently with event delivery.
func (d *Distributor) AddConsumer(consumer protocol.Consumer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subscribers = append(d.subscribers, consumer)
}

// BlockFinalized delivers the event to every subscriber, in subscription
// order.
func (d *Distributor) BlockFinalized(header *chain.Header) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, sub := range d.subscribers {
		sub.BlockFinalized(header)
	}
}
