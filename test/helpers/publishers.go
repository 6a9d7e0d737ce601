package helpers

import (
	"context"
	"errors"
	"sync"

	"github.com/tarwn/consuming-logs/internal/domain/events"
)

// RecordingPublisher keeps every published event in order
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	calls  int
}

func NewRecordingPublisher() *RecordingPublisher {
	return &RecordingPublisher{}
}

func (p *RecordingPublisher) Publish(_ context.Context, evts ...events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evts...)
	p.calls++
	return nil
}

// Events returns a copy of everything published so far
func (p *RecordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// Types returns the published event types in order
func (p *RecordingPublisher) Types() []events.Type {
	return events.Types(p.Events())
}

// OfType returns the published events with the given type
func (p *RecordingPublisher) OfType(t events.Type) []events.Event {
	var out []events.Event
	for _, e := range p.Events() {
		if e.EventType() == t {
			out = append(out, e)
		}
	}
	return out
}

// Calls returns how many times Publish was called
func (p *RecordingPublisher) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// Reset forgets everything recorded
func (p *RecordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
	p.calls = 0
}

// ErrPublishFailed is returned by FailingPublisher
var ErrPublishFailed = errors.New("publisher unavailable")

// FailingPublisher accepts the first SucceedCalls calls, then fails every call
type FailingPublisher struct {
	RecordingPublisher
	SucceedCalls int

	mu       sync.Mutex
	attempts int
}

func (p *FailingPublisher) Publish(ctx context.Context, evts ...events.Event) error {
	p.mu.Lock()
	p.attempts++
	attempt := p.attempts
	p.mu.Unlock()

	if attempt > p.SucceedCalls {
		return ErrPublishFailed
	}
	return p.RecordingPublisher.Publish(ctx, evts...)
}
