package events

import "fmt"

// ListenerError wraps the error returned by a listener during Trigger.
type ListenerError struct {
	Event string // Event being delivered
	Err   error  // Error returned by the listener
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener for %q: %v", e.Event, e.Err)
}

func (e *ListenerError) Unwrap() error {
	return e.Err
}
