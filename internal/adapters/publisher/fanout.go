// Package publisher holds the sinks events are published to: the application
// log, the database, a compressed journal, a websocket stream and the ledger
// projection.
package publisher

import (
	"context"
	"errors"
	"fmt"

	"github.com/tarwn/consuming-logs/internal/domain/events"
)

// FanoutPublisher hands every call to each sink in order. Every sink sees the
// call even when an earlier one fails; the failures are joined.
type FanoutPublisher struct {
	sinks []namedSink
}

type namedSink struct {
	name      string
	publisher events.Publisher
}

// NewFanoutPublisher creates an empty fanout
func NewFanoutPublisher() *FanoutPublisher {
	return &FanoutPublisher{}
}

// Add appends a sink. The name appears in errors.
func (f *FanoutPublisher) Add(name string, p events.Publisher) *FanoutPublisher {
	f.sinks = append(f.sinks, namedSink{name: name, publisher: p})
	return f
}

// Len returns the number of sinks
func (f *FanoutPublisher) Len() int {
	return len(f.sinks)
}

// Publish implements events.Publisher
func (f *FanoutPublisher) Publish(ctx context.Context, evts ...events.Event) error {
	if len(evts) == 0 {
		return nil
	}

	var errs []error
	for _, s := range f.sinks {
		if err := s.publisher.Publish(ctx, evts...); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}
