// Package mempool provides an in-process transaction pool implementing the
// narrow submission interface the offchain worker consumes. It enforces the
// sequencing rules the worker delegates to the pool: per-account nonce
// ordering and duplicate (account, nonce) rejection.
package mempool

import (
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/oraclenet/offchain-worker/model/chain"
	"github.com/oraclenet/offchain-worker/module"
)

const (
	// DefaultLimit is the default maximum number of pending extrinsics.
	DefaultLimit = 1000

	// DefaultSeenWindow is the default size of the window remembering
	// recently observed (account, nonce) pairs.
	DefaultSeenWindow = 10_000
)

var (
	// ErrDuplicate indicates an extrinsic for the same (account, nonce) pair
	// was already accepted.
	ErrDuplicate = errors.New("duplicate extrinsic for account and nonce")

	// ErrStaleNonce indicates the extrinsic's nonce is below the account's
	// next expected sequence number.
	ErrStaleNonce = errors.New("stale nonce")

	// ErrInvalidSignature indicates the signature does not verify against
	// the extrinsic's signing payload, or the signer does not control the
	// submitting account.
	ErrInvalidSignature = errors.New("invalid extrinsic signature")

	// ErrPoolFull indicates the pool is at capacity.
	ErrPoolFull = errors.New("transaction pool is full")
)

type nonceKey struct {
	account chain.AccountID
	nonce   uint64
}

// Pool is a bounded in-memory transaction pool. It is safe for concurrent
// submission.
type Pool struct {
	mu      sync.Mutex
	limit   int
	pending map[chain.Identifier]*chain.SignedExtrinsic
	nonces  map[chain.AccountID]uint64 // next expected nonce per account
	seen    *lru.Cache                 // window of observed (account, nonce) pairs
}

var _ module.TransactionPool = (*Pool)(nil)
var _ module.AccountState = (*Pool)(nil)

// NewPool creates a pool holding at most limit pending extrinsics and
// remembering seenWindow recently observed (account, nonce) pairs.
func NewPool(limit int, seenWindow int) (*Pool, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if seenWindow <= 0 {
		seenWindow = DefaultSeenWindow
	}
	seen, err := lru.New(seenWindow)
	if err != nil {
		return nil, fmt.Errorf("could not create seen window: %w", err)
	}
	return &Pool{
		limit:   limit,
		pending: make(map[chain.Identifier]*chain.SignedExtrinsic),
		nonces:  make(map[chain.AccountID]uint64),
		seen:    seen,
	}, nil
}

// Submit validates and accepts one signed extrinsic. Expected errors:
// ErrInvalidSignature, ErrStaleNonce, ErrDuplicate, ErrPoolFull.
func (p *Pool) Submit(extrinsic *chain.SignedExtrinsic) error {
	payload, err := extrinsic.Body.SigningPayload()
	if err != nil {
		return fmt.Errorf("could not compute signing payload: %w", err)
	}
	if chain.AccountIDFromPublicKey(extrinsic.Public) != extrinsic.Body.Account {
		return fmt.Errorf("signer does not control account %s: %w", extrinsic.Body.Account.ShortString(), ErrInvalidSignature)
	}
	if !ed25519.Verify(ed25519.PublicKey(extrinsic.Public.Bytes()), payload, extrinsic.Signature.Bytes()) {
		return ErrInvalidSignature
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// sequencing checks come before the capacity check, so the rejection
	// reason for a given extrinsic does not depend on pool occupancy
	key := nonceKey{account: extrinsic.Body.Account, nonce: extrinsic.Body.Nonce}
	if p.seen.Contains(key) {
		return ErrDuplicate
	}
	if expected := p.nonces[extrinsic.Body.Account]; extrinsic.Body.Nonce < expected {
		return fmt.Errorf("nonce %d below expected %d: %w", extrinsic.Body.Nonce, expected, ErrStaleNonce)
	}
	if len(p.pending) >= p.limit {
		return ErrPoolFull
	}

	p.seen.Add(key, struct{}{})
	p.pending[extrinsic.ID()] = extrinsic
	p.nonces[extrinsic.Body.Account] = extrinsic.Body.Nonce + 1
	return nil
}

// NonceAt returns the account's next sequence number as observed by the
// pool: the highest accepted nonce plus one, or zero for unseen accounts.
// This lets the pool double as the worker's account state in standalone
// deployments.
func (p *Pool) NonceAt(account chain.AccountID) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nonces[account], nil
}

// Size returns the number of pending extrinsics.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// All returns all pending extrinsics, in no particular order.
func (p *Pool) All() []*chain.SignedExtrinsic {
	p.mu.Lock()
	defer p.mu.Unlock()
	all := make([]*chain.SignedExtrinsic, 0, len(p.pending))
	for _, xt := range p.pending {
		all = append(all, xt)
	}
	return all
}
