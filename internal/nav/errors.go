package nav

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two droppable navigation outcomes. Both are
// reported to the caller and logged; neither is fatal.
var (
	// ErrNavigationBlocked marks a navigation dropped because a screen
	// transition is still in flight. Dropped requests are not queued.
	ErrNavigationBlocked = errors.New("nav: transition in progress")

	// ErrAtRoot marks a goBack attempted at the bottom of the history
	// stack. The stack is left unchanged.
	ErrAtRoot = errors.New("nav: already at root")
)

// UnknownRouteError reports a navigation or lookup against a route that was
// never registered.
type UnknownRouteError struct {
	Route Route
}

func (e *UnknownRouteError) Error() string {
	return fmt.Sprintf("nav: unknown route %q", string(e.Route))
}

// IsUnknownRoute reports whether err is an UnknownRouteError.
func IsUnknownRoute(err error) bool {
	var ure *UnknownRouteError
	return errors.As(err, &ure)
}

// ListenerError records a recovered panic from an event subscriber. It is
// logged and delivery continues with the next handler; it never propagates
// to the navigation in progress.
type ListenerError struct {
	Kind      EventKind
	Recovered interface{}
}

func (e *ListenerError) Error() string {
	return fmt.Sprintf("nav: %s listener panicked: %v", e.Kind, e.Recovered)
}
