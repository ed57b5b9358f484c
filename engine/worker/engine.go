// Package worker implements the block-triggered offchain worker: once per
// imported block it discovers tagged signing keys, and for each key fetches
// an external datum, packages it into an extrinsic at the account's current
// nonce, signs it through the keystore and submits it to the transaction
// pool. Pipelines are failure-isolated per key and run off the block import
// critical path.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/rs/zerolog"

	"github.com/oraclenet/offchain-worker/engine"
	"github.com/oraclenet/offchain-worker/model/chain"
	"github.com/oraclenet/offchain-worker/module"
	"github.com/oraclenet/offchain-worker/module/component"
	"github.com/oraclenet/offchain-worker/module/counters"
	"github.com/oraclenet/offchain-worker/module/irrecoverable"
	"github.com/oraclenet/offchain-worker/state/protocol"
	"github.com/oraclenet/offchain-worker/state/protocol/events"
)

// DefaultMaxConcurrentPipelines bounds how many per-key pipelines run at the
// same time. Pipelines beyond the bound queue without blocking the trigger.
const DefaultMaxConcurrentPipelines = 4

// Config configures the worker engine.
type Config struct {
	// Tag selects which locally held keys the worker signs with.
	Tag chain.KeyTag

	// MaxConcurrentPipelines bounds concurrent per-key pipelines.
	// Zero selects DefaultMaxConcurrentPipelines.
	MaxConcurrentPipelines int
}

// ProcessedCounter tracks the highest block height the worker has handled.
// Set returns counters.ErrIncorrectValue for heights at or below the current
// value; any other error means recording progress failed and the height was
// not handled. Satisfied by counters.PersistentStrictMonotonicCounter when
// progress should survive restarts.
type ProcessedCounter interface {
	Set(uint64) error
	Value() uint64
}

// inmemCounter adapts the in-memory strict monotonic counter to the
// ProcessedCounter contract for deployments without persisted progress.
type inmemCounter struct {
	counters.StrictMonotonicCounter
}

func (c inmemCounter) Set(height uint64) error {
	if !c.StrictMonotonicCounter.Set(height) {
		return counters.ErrIncorrectValue
	}
	return nil
}

// Engine is the worker scheduler. It consumes BlockFinalized events: each
// event bumps the latest trigger and notifies a dedicated goroutine, so the
// event callback returns without doing any work. The goroutine runs one
// invocation per notification against the most recent trigger, coalescing
// bursts of blocks; a skipped height is not retried, the next block's
// invocation is the retry.
type Engine struct {
	events.Noop
	component.Component

	log     zerolog.Logger
	metrics module.WorkerMetrics

	keystore module.Keystore
	source   module.DatumSource
	accounts module.AccountState
	pool     module.TransactionPool

	tag       chain.KeyTag
	pipelines *workerpool.WorkerPool

	// latest pending trigger, replaced (never queued) as blocks arrive
	mu     sync.Mutex
	latest *chain.Header

	notifier      engine.Notifier
	lastProcessed ProcessedCounter
}

var _ protocol.Consumer = (*Engine)(nil)
var _ component.Component = (*Engine)(nil)

// Option customizes the engine.
type Option func(*Engine)

// WithProcessedCounter overrides the counter tracking the highest handled
// height, e.g. with a persisted one. Triggers at or below the counter's
// current value are ignored.
func WithProcessedCounter(counter ProcessedCounter) Option {
	return func(e *Engine) {
		e.lastProcessed = counter
	}
}

// New creates the worker engine. The keystore, datum source, account state
// and transaction pool are injected collaborators; the engine performs no
// locking around them beyond its own bookkeeping.
func New(
	log zerolog.Logger,
	metrics module.WorkerMetrics,
	keystore module.Keystore,
	source module.DatumSource,
	accounts module.AccountState,
	pool module.TransactionPool,
	cfg Config,
	opts ...Option,
) (*Engine, error) {

	if cfg.Tag == (chain.KeyTag{}) {
		return nil, fmt.Errorf("key tag must be set")
	}
	maxPipelines := cfg.MaxConcurrentPipelines
	if maxPipelines <= 0 {
		maxPipelines = DefaultMaxConcurrentPipelines
	}

	e := &Engine{
		log:           log.With().Str("component", "offchain_worker").Logger(),
		metrics:       metrics,
		keystore:      keystore,
		source:        source,
		accounts:      accounts,
		pool:          pool,
		tag:           cfg.Tag,
		pipelines:     workerpool.New(maxPipelines),
		notifier:      engine.NewNotifier(),
		lastProcessed: inmemCounter{counters.NewMonotonicCounter(0)},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.Component = component.NewComponentManagerBuilder().
		AddWorker(e.processBlocks).
		Build()

	return e, nil
}

// BlockFinalized implements protocol.Consumer. It is invoked on the block
// import path and must never block: it records the trigger and returns.
func (e *Engine) BlockFinalized(header *chain.Header) {
	e.mu.Lock()
	if e.latest == nil || header.Height > e.latest.Height {
		e.latest = header
		e.mu.Unlock()
		e.notifier.Notify()
		return
	}
	e.mu.Unlock()
}

// takeLatestTrigger returns the pending trigger, or nil if none is pending.
func (e *Engine) takeLatestTrigger() *chain.Header {
	e.mu.Lock()
	defer e.mu.Unlock()
	header := e.latest
	e.latest = nil
	return header
}

// processBlocks is the scheduler loop: Idle between notifications, Running
// for the duration of one invocation. On shutdown it waits for queued and
// in-flight pipelines to drain; their contexts are cancelled so the wait is
// bounded by the fetch and signing timeouts.
func (e *Engine) processBlocks(ctx irrecoverable.SignalerContext, ready component.ReadyFunc) {
	ready()

	defer e.pipelines.StopWait()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.notifier.Channel():
			header := e.takeLatestTrigger()
			if header == nil {
				continue
			}
			err := e.lastProcessed.Set(header.Height)
			if errors.Is(err, counters.ErrIncorrectValue) {
				// already handled this or a higher block
				continue
			}
			if err != nil {
				// losing the ability to record progress is a storage
				// failure, not a property of this block
				ctx.Throw(fmt.Errorf("could not record processed height %d: %w", header.Height, err))
				return
			}
			e.runInvocation(ctx, header)
		}
	}
}

// runInvocation executes one scheduler invocation: discover keys once, then
// fan each key out as an independent pipeline. It returns as soon as all
// pipelines are dispatched; it never waits for their completion.
func (e *Engine) runInvocation(ctx context.Context, header *chain.Header) {
	blockID := header.ID()
	log := e.log.With().
		Uint64("height", header.Height).
		Hex("block_id", blockID[:]).
		Logger()

	e.metrics.BlockTriggered(header.Height)

	keys, err := e.keystore.KeysByTag(e.tag)
	if err != nil {
		// an unreachable keystore means zero keys for this block, never a
		// failure of the block import
		log.Warn().Err(err).Msg("keystore unavailable, skipping block")
		e.metrics.PipelineFailure(StageDiscover)
		return
	}

	e.metrics.KeysDiscovered(len(keys))
	if len(keys) == 0 {
		log.Debug().
			Str("tag", e.tag.String()).
			Msg("no local signing keys for tag, consider registering one")
		return
	}

	log.Info().Int("keys", len(keys)).Msg("dispatching pipelines")

	for _, key := range keys {
		key := key
		e.pipelines.Submit(func() {
			e.runPipeline(ctx, log, key)
		})
	}
}
