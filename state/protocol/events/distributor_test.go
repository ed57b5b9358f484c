package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oraclenet/offchain-worker/model/chain"
	"github.com/oraclenet/offchain-worker/state/protocol"
	"github.com/oraclenet/offchain-worker/utils/unittest"
)

type capturingConsumer struct {
	Noop
	mu      sync.Mutex
	headers []*chain.Header
}

func (c *capturingConsumer) BlockFinalized(header *chain.Header) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers = append(c.headers, header)
}

func TestDistributorFanOut(t *testing.T) {
	distributor := NewDistributor()

	first := &capturingConsumer{}
	second := &capturingConsumer{}
	distributor.AddConsumer(first)
	distributor.AddConsumer(second)

	header := unittest.HeaderFixture(1)
	distributor.BlockFinalized(header)
	distributor.BlockFinalized(unittest.HeaderFixture(2))

	assert.Len(t, first.headers, 2)
	assert.Len(t, second.headers, 2)
	assert.Equal(t, header, first.headers[0])
	assert.Equal(t, first.headers, second.headers)
}

func TestDistributorNoConsumers(t *testing.T) {
	distributor := NewDistributor()
	assert.NotPanics(t, func() {
		distributor.BlockFinalized(unittest.HeaderFixture(1))
	})
}

// the noop consumer must satisfy the consumer interface so engines can embed
// it and override only the events they care about
var _ protocol.Consumer = (*Noop)(nil)
