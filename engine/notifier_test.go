package engine

import (
	"sync"
	"testing"
)

// TestNotifier_PassByValue verifies that passing Notifier by value is safe
func TestNotifier_PassByValue(t *testing.T) {
	t.Parallel()
	notifier := NewNotifier()

	var sent sync.WaitGroup
	sent.Add(1)
	go func(n Notifier) {
		n.Notify()
		sent.Done()
	}(notifier)
	sent.Wait()

	select {
	case <-notifier.Channel(): // expected
	default:
		t.Fail()
	}
}

// TestNotifier_NoNotificationsInitialization verifies that Notifier is
// initialized without notifications
func TestNotifier_NoNotificationsInitialization(t *testing.T) {
	t.Parallel()
	notifier := NewNotifier()
	select {
	case <-notifier.Channel():
		t.Fail()
	default: // expected
	}
}

// TestNotifier_ManyNotifications sends many notifications to the Notifier
// and verifies that:
//   - the notifier accepts them all without a notification being consumed
//   - only one notification is internally stored and subsequent attempts to
//     read a notification would block
func TestNotifier_ManyNotifications(t *testing.T) {
	t.Parallel()
	notifier := NewNotifier()

	var counter sync.WaitGroup
	for i := 0; i < 10; i++ {
		counter.Add(1)
		go func() {
			defer counter.Done()
			notifier.Notify()
		}()
	}
	counter.Wait()

	// attempt to consume first notification:
	// expect that one notification should be available
	c := notifier.Channel()
	select {
	case <-c: // expected
	default:
		t.Error("expected one notification to be available")
	}

	// attempt to consume second notification
	// expect that no notification is available
	select {
	case <-c:
		t.Error("expected only one notification to be available")
	default: // expected
	}
}

// TestNotifier_ManyConsumers spawns many consumers waiting for notifications
// and verifies that repeated notifications eventually wake them all.
func TestNotifier_ManyConsumers(t *testing.T) {
	t.Parallel()
	notifier := NewNotifier()

	consumers := 20
	var started sync.WaitGroup
	var woken sync.WaitGroup
	started.Add(consumers)
	woken.Add(consumers)
	for i := 0; i < consumers; i++ {
		go func() {
			started.Done()
			<-notifier.Channel()
			woken.Done()
		}()
	}
	started.Wait()

	// notifications are consumed one at a time, so we keep notifying until
	// every consumer has passed the gate
	allWoken := make(chan struct{})
	go func() {
		woken.Wait()
		close(allWoken)
	}()
	for {
		select {
		case <-allWoken:
			return
		default:
			notifier.Notify()
		}
	}
}
