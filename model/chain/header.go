package chain

import (
	"time"
)

// Header identifies a block imported by the host node. It is the trigger
// payload handed to block-driven background components: created by the host
// at import time, consumed once, then discarded.
type Header struct {
	// Height is the block's position in the chain.
	Height uint64

	// ParentID is the ID of the direct parent block.
	ParentID Identifier

	// Timestamp is the block proposer's claimed construction time.
	Timestamp time.Time
}

// ID returns a unique identifier for the block header.
func (h Header) ID() Identifier {
	return MakeID(h)
}
