package nav

import "log"

// EventKind selects one of the four navigation event channels.
type EventKind int

const (
	// EventBeforeRemove fires for the entry about to be left, before the
	// stack mutates.
	EventBeforeRemove EventKind = iota
	// EventBlur fires for the entry that was left, after the stack mutated.
	EventBlur
	// EventFocus fires for the entry that became current, after the
	// renderer swapped screens.
	EventFocus
	// EventStateChange fires last, with a snapshot of the whole stack.
	EventStateChange
)

func (k EventKind) String() string {
	switch k {
	case EventBeforeRemove:
		return "beforeRemove"
	case EventBlur:
		return "blur"
	case EventFocus:
		return "focus"
	case EventStateChange:
		return "stateChange"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers. Entry is the affected entry; Stack and
// Index are populated for stateChange only.
type Event struct {
	Kind  EventKind
	Entry Entry
	Stack []Entry
	Index int
}

// Handler receives events synchronously on the navigation goroutine. A
// handler that panics is recovered and logged; it cannot abort navigation
// or starve later handlers.
type Handler func(Event)

type subscription struct {
	id int
	fn Handler
}

// Emitter delivers navigation events to subscribers in registration order.
type Emitter struct {
	logger *log.Logger
	nextID int
	subs   map[EventKind][]subscription
}

// NewEmitter returns an emitter logging listener panics to logger
// (log.Default when nil).
func NewEmitter(logger *log.Logger) *Emitter {
	if logger == nil {
		logger = log.Default()
	}
	return &Emitter{
		logger: logger,
		subs:   make(map[EventKind][]subscription),
	}
}

// Subscribe registers fn on kind and returns its removal func. Removal is
// idempotent and safe to call during delivery.
func (e *Emitter) Subscribe(kind EventKind, fn Handler) func() {
	e.nextID++
	id := e.nextID
	e.subs[kind] = append(e.subs[kind], subscription{id: id, fn: fn})

	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		list := e.subs[kind]
		for i, sub := range list {
			if sub.id == id {
				e.subs[kind] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers ev to every subscriber of ev.Kind, in registration order.
// Subscriptions added or removed by a handler take effect on the next Emit.
func (e *Emitter) Emit(ev Event) {
	list := e.subs[ev.Kind]
	if len(list) == 0 {
		return
	}
	snapshot := make([]subscription, len(list))
	copy(snapshot, list)
	for _, sub := range snapshot {
		e.dispatch(sub.fn, ev)
	}
}

func (e *Emitter) dispatch(fn Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Printf("%v", &ListenerError{Kind: ev.Kind, Recovered: r})
		}
	}()
	fn(ev)
}
