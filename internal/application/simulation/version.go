package simulation

import (
	"context"
	"sync"

	"github.com/tarwn/consuming-logs/internal/adapters/metrics"
	"github.com/tarwn/consuming-logs/internal/domain/events"
)

// versionTracker forwards events and remembers the id of the last one the
// downstream publisher accepted
type versionTracker struct {
	next events.Publisher

	mu        sync.Mutex
	last      string
	published int
}

func newVersionTracker(next events.Publisher) *versionTracker {
	return &versionTracker{next: next}
}

func (t *versionTracker) Publish(ctx context.Context, evts ...events.Event) error {
	if err := t.next.Publish(ctx, evts...); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range evts {
		metrics.RecordEventPublished(e.EventType().String())
		t.last = e.EventID()
		t.published++
	}
	return nil
}

func (t *versionTracker) lastID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

func (t *versionTracker) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.published
}
