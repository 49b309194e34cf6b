package storage

import "sync"

// Notifier is the coarse change-notification primitive: subscribers learn
// that something changed, never what. Sends never block a writer; a
// subscriber that is already flagged simply coalesces the signal.
type Notifier struct {
	mu   sync.Mutex
	subs []chan struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe returns a channel that receives one token per batch of changes.
func (n *Notifier) Subscribe() <-chan struct{} {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch := make(chan struct{}, 1)
	n.subs = append(n.subs, ch)
	return ch
}

// Notify flags every subscriber. Pending signals coalesce.
func (n *Notifier) Notify() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
