package events

import (
	"github.com/oraclenet/offchain-worker/model/chain"
	"github.com/oraclenet/offchain-worker/state/protocol"
)

// Noop implements protocol.Consumer with no operations. Components embed it
// so they only need to implement the events they care about.
type Noop struct{}

var _ protocol.Consumer = (*Noop)(nil)

func (n Noop) BlockFinalized(*chain.Header) {}
