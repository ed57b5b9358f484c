package module

import (
	"context"

	"github.com/oraclenet/offchain-worker/model/chain"
)

// Keystore is the narrow view of the node's key-store consumed by the
// offchain worker: listing locally held keys by application tag, and signing
// with a listed key. Implementations must be safe for concurrent use; the
// worker performs no additional locking around keystore calls.
type Keystore interface {
	// KeysByTag returns handles for all locally held keys registered under
	// the given application tag, in no particular order. The returned slice
	// may be empty. An error indicates the keystore itself is unreachable.
	KeysByTag(tag chain.KeyTag) ([]chain.KeyHandle, error)

	// Sign signs the message with the key identified by the given public
	// key. It returns an error if the key is no longer held, which can
	// happen between discovery and signing.
	Sign(public chain.PublicKey, msg []byte) (chain.Signature, error)
}

// TransactionPool is the narrow view of the node's transaction queue
// consumed by the offchain worker: accepting one signed extrinsic at a time.
// Implementations must be safe for concurrent submission and own all
// sequencing rules for concurrent extrinsics from the same account.
type TransactionPool interface {
	// Submit hands the signed extrinsic to the pool for inclusion in a
	// future block. A non-nil error means the pool rejected the extrinsic
	// (duplicate, stale nonce, insufficient balance, ...); the extrinsic is
	// dropped and is not resubmitted by the worker.
	Submit(extrinsic *chain.SignedExtrinsic) error
}

// AccountState is the read-only view of runtime account state consumed by
// the offchain worker. The worker never mutates or reserves nonces; the
// authoritative increment happens when an extrinsic is included in a block.
type AccountState interface {
	// NonceAt returns the account's current sequence number.
	NonceAt(account chain.AccountID) (uint64, error)
}

// DatumSource fetches the external value submitted by the offchain worker.
// Fetch must be bounded by a deadline well under the block production
// budget, so a stuck source can never meaningfully delay the node.
type DatumSource interface {
	Fetch(ctx context.Context) (*chain.Datum, error)
}

// WorkerMetrics is the observability collaborator for the offchain worker.
// Failed pipelines surface only through these metrics and logs; they never
// propagate to the block import path.
type WorkerMetrics interface {
	// BlockTriggered records one scheduler invocation at the given height.
	BlockTriggered(height uint64)

	// KeysDiscovered records the number of tagged keys found for one
	// invocation.
	KeysDiscovered(count int)

	// DatumFetched records a successful fetch and the payload size.
	DatumFetched(sizeBytes int)

	// ExtrinsicSubmitted records one accepted pool submission.
	ExtrinsicSubmitted()

	// PipelineFailure records a pipeline aborted at the given stage
	// ("discover", "fetch", "build", "sign", "submit").
	PipelineFailure(stage string)
}
