package events

import "context"

// Publisher records or fans out events. Publish returns only after every
// event in the call has been handled, in order.
type Publisher interface {
	Publish(ctx context.Context, evts ...Event) error
}

// PublisherFunc adapts a function to the Publisher interface
type PublisherFunc func(ctx context.Context, evts ...Event) error

func (f PublisherFunc) Publish(ctx context.Context, evts ...Event) error {
	return f(ctx, evts...)
}
