// Package decision implements the decide/execute protocol: departments build
// Decisions from a snapshot, and the tick driver executes them later.
package decision

import (
	"context"
	"fmt"

	"github.com/tarwn/consuming-logs/internal/domain/events"
	"github.com/tarwn/consuming-logs/internal/domain/world"
)

// Action is one logical business step: store mutations followed by the events
// describing them. It captures everything it needs when it is created.
type Action func(ctx context.Context, store *world.Store, publisher events.Publisher) error

// Decision is an uncommitted, ordered batch of actions
type Decision struct {
	name    string
	actions []Action
}

// New creates a decision. A decision built with no actions is a no-action decision.
func New(name string, actions ...Action) *Decision {
	return &Decision{name: name, actions: actions}
}

// NoAction returns a decision that does nothing
func NoAction(name string) *Decision {
	return &Decision{name: name}
}

// Name identifies the department operation that produced the decision
func (d *Decision) Name() string {
	return d.name
}

// ActionCount reports how many actions the decision holds
func (d *Decision) ActionCount() int {
	return len(d.actions)
}

// IsNoAction reports whether the decision holds no actions
func (d *Decision) IsNoAction() bool {
	return len(d.actions) == 0
}

// ExecuteAll runs the actions in order, each finishing before the next starts.
// The first failing action stops the batch; earlier mutations stay applied.
func (d *Decision) ExecuteAll(ctx context.Context, store *world.Store, publisher events.Publisher) error {
	for i, action := range d.actions {
		if err := action(ctx, store, publisher); err != nil {
			return fmt.Errorf("%s action %d of %d: %w", d.name, i+1, len(d.actions), err)
		}
	}
	return nil
}

// Publish sends evts and wraps any failure in *events.PublishError
func Publish(ctx context.Context, publisher events.Publisher, evts ...events.Event) error {
	if len(evts) == 0 {
		return nil
	}
	if err := publisher.Publish(ctx, evts...); err != nil {
		return events.NewPublishError(evts, err)
	}
	return nil
}
