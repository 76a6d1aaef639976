package alert

import (
	"sync"

	"github.com/kubesimlab/kubesim/internal/logic/cluster"
)

// Feed is the bounded, most-recent-first alert history. The differ
// itself holds no state between ticks; the tick loop prepends whatever
// Diff returned and old entries silently drop off the end.
type Feed struct {
	mu       sync.RWMutex
	capacity int
	alerts   []cluster.Alert
}

// NewFeed creates a feed retaining at most capacity alerts.
// A non-positive capacity falls back to FeedCapacity.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = FeedCapacity
	}

	return &Feed{capacity: capacity}
}

// Prepend inserts alerts at the front, preserving their relative order,
// and trims the feed to capacity.
func (f *Feed) Prepend(alerts ...cluster.Alert) {
	if len(alerts) == 0 {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	merged := make([]cluster.Alert, 0, len(alerts)+len(f.alerts))
	merged = append(merged, alerts...)
	merged = append(merged, f.alerts...)

	if len(merged) > f.capacity {
		merged = merged[:f.capacity]
	}

	f.alerts = merged
}

// List returns a copy of the feed, most recent first.
func (f *Feed) List() []cluster.Alert {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]cluster.Alert, len(f.alerts))
	copy(out, f.alerts)

	return out
}

// Latest returns the most recent alert, if any.
func (f *Feed) Latest() (cluster.Alert, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.alerts) == 0 {
		return cluster.Alert{}, false
	}

	return f.alerts[0], true
}

// Len returns the number of retained alerts.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return len(f.alerts)
}
