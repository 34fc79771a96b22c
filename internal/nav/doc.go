// Package nav is the screen navigation container for the basil TUI: a
// registry of screen descriptors, a history stack with an index cursor, a
// synchronous event emitter, deep-link formatting and parsing, location
// mirroring, and gesture/keyboard translation.
//
// A Controller owns all navigation state and is built by injection; there is
// no package-level instance. It is not safe for concurrent use: every call
// must come from the UI event loop. While a screen transition is in flight
// the controller drops further navigation instead of queueing it.
package nav
