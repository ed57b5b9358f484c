package component

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oraclenet/offchain-worker/module"
	"github.com/oraclenet/offchain-worker/module/irrecoverable"
	"github.com/oraclenet/offchain-worker/utils/unittest"
)

func TestComponentManagerLifecycle(t *testing.T) {
	started := make(chan struct{})
	mgr := NewComponentManagerBuilder().
		AddWorker(func(ctx irrecoverable.SignalerContext, ready ReadyFunc) {
			close(started)
			ready()
			<-ctx.Done()
		}).
		Build()

	parent, cancel := context.WithCancel(context.Background())
	signalerCtx, errChan := irrecoverable.WithSignaler(parent)
	mgr.Start(signalerCtx)

	unittest.RequireCloseBefore(t, started, time.Second, "worker never started")
	unittest.RequireCloseBefore(t, mgr.Ready(), time.Second, "manager never became ready")
	unittest.RequireNotClosed(t, mgr.Done(), "done must not close while the worker runs")

	cancel()
	unittest.RequireCloseBefore(t, mgr.Done(), time.Second, "manager never shut down")

	select {
	case err := <-errChan:
		require.NoError(t, err)
	default:
	}
}

// TestComponentManagerReadyAfterAllWorkers verifies that Ready only closes
// once every worker has signalled readiness.
func TestComponentManagerReadyAfterAllWorkers(t *testing.T) {
	release := make(chan struct{})
	mgr := NewComponentManagerBuilder().
		AddWorker(func(ctx irrecoverable.SignalerContext, ready ReadyFunc) {
			ready()
			<-ctx.Done()
		}).
		AddWorker(func(ctx irrecoverable.SignalerContext, ready ReadyFunc) {
			<-release
			ready()
			<-ctx.Done()
		}).
		Build()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signalerCtx, _ := irrecoverable.WithSignaler(ctx)
	mgr.Start(signalerCtx)

	unittest.RequireNotClosed(t, mgr.Ready(), "ready must wait for the second worker")
	close(release)
	unittest.RequireCloseBefore(t, mgr.Ready(), time.Second, "manager never became ready")
}

func TestComponentManagerThrowPropagates(t *testing.T) {
	workerErr := errors.New("worker failed")
	mgr := NewComponentManagerBuilder().
		AddWorker(func(ctx irrecoverable.SignalerContext, ready ReadyFunc) {
			ready()
			ctx.Throw(workerErr)
		}).
		Build()

	signalerCtx, errChan := irrecoverable.WithSignaler(context.Background())
	mgr.Start(signalerCtx)

	select {
	case err := <-errChan:
		assert.ErrorIs(t, err, workerErr)
	case <-time.After(time.Second):
		t.Fatal("error was not propagated")
	}
	unittest.RequireCloseBefore(t, mgr.Done(), time.Second, "manager never shut down after throw")
}

func TestComponentManagerStartsOnce(t *testing.T) {
	mgr := NewComponentManagerBuilder().
		AddWorker(func(ctx irrecoverable.SignalerContext, ready ReadyFunc) {
			ready()
			<-ctx.Done()
		}).
		Build()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signalerCtx, _ := irrecoverable.WithSignaler(ctx)
	mgr.Start(signalerCtx)

	assert.PanicsWithValue(t, module.ErrMultipleStartup, func() {
		mgr.Start(signalerCtx)
	})
}
