package storage

import (
	"testing"
	"time"
)

func TestNotifier_DeliversToAllSubscribers(t *testing.T) {
	n := NewNotifier()
	a := n.Subscribe()
	b := n.Subscribe()

	n.Notify()

	for name, ch := range map[string]<-chan struct{}{"a": a, "b": b} {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("Subscriber %s never received the change signal", name)
		}
	}
}

func TestNotifier_CoalescesPendingSignals(t *testing.T) {
	n := NewNotifier()
	ch := n.Subscribe()

	// Burst of writes while the subscriber is busy.
	n.Notify()
	n.Notify()
	n.Notify()

	<-ch
	select {
	case <-ch:
		t.Error("Expected burst to coalesce into a single pending signal")
	default:
	}
}

func TestNotifier_NotifyWithoutSubscribersDoesNotBlock(t *testing.T) {
	n := NewNotifier()
	done := make(chan struct{})
	go func() {
		n.Notify()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked with no subscribers")
	}
}
