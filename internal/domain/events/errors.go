package events

import (
	"fmt"
)

// PublishError wraps a publisher failure. The state change the events
// describe has already been applied.
type PublishError struct {
	Types []Type
	Err   error
}

func NewPublishError(evts []Event, err error) *PublishError {
	return &PublishError{Types: Types(evts), Err: err}
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("failed to publish %v: %v", e.Types, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}
