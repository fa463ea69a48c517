package feed

import (
	"sync"
	"time"
)

// DefaultNoticeTTL is how long a success notice stays visible.
const DefaultNoticeTTL = 4 * time.Second

// Notifier holds the single dismissible notice, auto-clearing it after
// the TTL. A newer notice replaces the pending one and restarts the
// clock.
type Notifier struct {
	mu      sync.Mutex
	current string
	timer   *time.Timer
	ttl     time.Duration
}

// NewNotifier creates a notifier; ttl <= 0 uses DefaultNoticeTTL.
func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &Notifier{ttl: ttl}
}

// Show replaces the current notice and schedules its expiry.
func (n *Notifier) Show(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.current = msg
	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.current == msg {
			n.current = ""
		}
	})
}

// Dismiss clears the notice immediately.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = ""
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

// Current returns the visible notice, or "" when none is showing.
func (n *Notifier) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
