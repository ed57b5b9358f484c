package unittest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// RequireReturnsBefore requires that the given function returns before the
// given duration.
func RequireReturnsBefore(t testing.TB, f func(), duration time.Duration, message string) {
	done := make(chan struct{})

	go func() {
		f()
		close(done)
	}()

	select {
	case <-time.After(duration):
		require.Fail(t, "function did not return on time: "+message)
	case <-done:
	}
}

// RequireCloseBefore requires that the given channel closes before the given
// duration.
func RequireCloseBefore(t testing.TB, ch <-chan struct{}, duration time.Duration, message string) {
	select {
	case <-time.After(duration):
		require.Fail(t, "channel did not close on time: "+message)
	case <-ch:
	}
}

// RequireNotClosed requires that the given channel is not closed yet.
func RequireNotClosed(t testing.TB, ch <-chan struct{}, message string) {
	select {
	case <-ch:
		require.Fail(t, "channel closed: "+message)
	default:
	}
}

// FailOnIrrecoverableError waits for an irrecoverable error from the error
// channel and fails the test if one is received before the done channel
// closes. Run it in a dedicated goroutine alongside started components.
func FailOnIrrecoverableError(t *testing.T, done <-chan struct{}, errCh <-chan error) {
	select {
	case <-done:
	case err := <-errCh:
		if err != nil {
			t.Errorf("observed unexpected irrecoverable error: %v", err)
		}
	}
}
