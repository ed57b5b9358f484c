package protocol

import (
	"github.com/oraclenet/offchain-worker/model/chain"
)

// Consumer defines a set of events that occur when the host node's view of
// the chain advances, that can be propagated to other components via an
// implementation of this interface. Consumer implementations must be
// non-blocking: they are invoked on the block import path and must never
// delay consensus-critical work.
type Consumer interface {

	// BlockFinalized is called when a block is locally imported and
	// finalized. Formally, this callback is informationally idempotent: the
	// consumer must handle repeated calls with the same header.
	BlockFinalized(header *chain.Header)
}
