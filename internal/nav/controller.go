package nav

import (
	"fmt"
	"log"
	"time"
)

// DefaultTransition is the fixed screen transition duration. Navigation
// arriving inside this window after a successful mutation is dropped.
const DefaultTransition = 250 * time.Millisecond

// Options configure a Controller. Registry and Renderer are required; the
// rest default to sensible no-ops.
type Options struct {
	Registry *Registry
	Renderer Renderer
	Links    *DeepLinks
	Sync     HistorySync
	Logger   *log.Logger
	// Transition is the fixed animation duration. Zero means
	// DefaultTransition; negative disables the animating gate entirely.
	Transition time.Duration
}

// Controller owns all navigation state: the history stack, the Idle or
// Animating flag, subscriptions, and the collaborators that mirror and
// present navigation. All methods must be called from the UI event loop.
type Controller struct {
	registry *Registry
	renderer Renderer
	links    *DeepLinks
	sync     HistorySync
	emitter  *Emitter
	logger   *log.Logger

	transition time.Duration
	history    *History
	animating  bool
}

// NewController wires a controller from its collaborators. The controller
// starts without a history; Start performs the initial mount.
func NewController(opts Options) (*Controller, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("nav: controller needs a registry")
	}
	if opts.Renderer == nil {
		return nil, fmt.Errorf("nav: controller needs a renderer")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	transition := opts.Transition
	if transition == 0 {
		transition = DefaultTransition
	}
	return &Controller{
		registry:   opts.Registry,
		renderer:   opts.Renderer,
		links:      opts.Links,
		sync:       opts.Sync,
		emitter:    NewEmitter(logger),
		logger:     logger,
		transition: transition,
	}, nil
}

// On subscribes fn to one event kind and returns the removal func.
func (c *Controller) On(kind EventKind, fn Handler) func() {
	return c.emitter.Subscribe(kind, fn)
}

// Start performs the initial mount: a one-entry history, no prior screen,
// no transition gate. It must be called exactly once before any navigation.
func (c *Controller) Start(route Route, params Params) error {
	if c.history != nil {
		return fmt.Errorf("nav: controller already started")
	}
	spec, err := c.registry.Lookup(route)
	if err != nil {
		return err
	}
	entry := Entry{Route: route, Params: params.Clone()}
	c.history = NewHistory(entry)
	c.renderer.Mount(entry, spec, nil)
	c.emitter.Emit(Event{Kind: EventFocus, Entry: entry})
	c.emitStateChange(entry)
	if c.sync != nil {
		c.sync.Reset(entry, c.locationFor(entry))
	}
	return nil
}

// Navigate pushes a new entry. Everything after the cursor is discarded.
func (c *Controller) Navigate(route Route, params Params) error {
	return c.push(route, params, true)
}

// HandleExternalLocation reacts to a location change that originated
// outside the app (the popstate analogue): the path is parsed back into an
// entry and navigation proceeds silently, without mirroring to HistorySync.
func (c *Controller) HandleExternalLocation(path string) error {
	if c.links == nil {
		return fmt.Errorf("nav: no deep links configured")
	}
	route, params, err := c.links.Parse(path)
	if err != nil {
		c.logger.Printf("nav: external location %q: %v", path, err)
		return err
	}
	return c.push(route, params, false)
}

func (c *Controller) push(route Route, params Params, mirror bool) error {
	spec, prev, err := c.begin("navigate", route)
	if err != nil {
		return err
	}
	next := Entry{Route: route, Params: params.Clone()}
	c.commit(prev, next, spec, func() {
		c.history.Push(next)
	})
	if mirror && c.sync != nil {
		c.sync.Pushed(next, c.locationFor(next))
	}
	return nil
}

// GoBack moves one entry toward the root. At the root it is a no-op
// returning ErrAtRoot.
func (c *Controller) GoBack() error {
	if err := c.ready("goBack"); err != nil {
		return err
	}
	next, ok := c.history.PeekBack()
	if !ok {
		c.logger.Printf("nav: goBack at root ignored")
		return ErrAtRoot
	}
	spec, err := c.registry.Lookup(next.Route)
	if err != nil {
		c.logger.Printf("nav: goBack: %v", err)
		return err
	}
	prev := c.history.Current()
	c.commit(&prev, next, spec, func() {
		c.history.Back()
	})
	if c.sync != nil {
		c.sync.Popped(next, c.locationFor(next))
	}
	return nil
}

// Replace swaps the current entry in place; history length is unchanged.
func (c *Controller) Replace(route Route, params Params) error {
	spec, prev, err := c.begin("replace", route)
	if err != nil {
		return err
	}
	next := Entry{Route: route, Params: params.Clone()}
	c.commit(prev, next, spec, func() {
		c.history.ReplaceTop(next)
	})
	if c.sync != nil {
		c.sync.Replaced(next, c.locationFor(next))
	}
	return nil
}

// ResetTo collapses the history to a single entry.
func (c *Controller) ResetTo(route Route, params Params) error {
	spec, prev, err := c.begin("reset", route)
	if err != nil {
		return err
	}
	next := Entry{Route: route, Params: params.Clone()}
	c.commit(prev, next, spec, func() {
		c.history.Reset(next)
	})
	if c.sync != nil {
		c.sync.Reset(next, c.locationFor(next))
	}
	return nil
}

// begin runs the shared preconditions for a mutation targeting route and
// returns the target descriptor plus the entry being left.
func (c *Controller) begin(op string, route Route) (Screen, *Entry, error) {
	if err := c.ready(op); err != nil {
		return Screen{}, nil, err
	}
	spec, err := c.registry.Lookup(route)
	if err != nil {
		c.logger.Printf("nav: %s: %v", op, err)
		return Screen{}, nil, err
	}
	prev := c.history.Current()
	return spec, &prev, nil
}

func (c *Controller) ready(op string) error {
	if c.history == nil {
		return fmt.Errorf("nav: controller not started")
	}
	if c.animating {
		c.logger.Printf("nav: dropped %s: transition in progress", op)
		return ErrNavigationBlocked
	}
	return nil
}

// commit runs the mutation and the fixed event sequence:
// beforeRemove(prev), mutate, blur(prev), renderer swap, focus(next),
// stateChange. It then arms the transition gate.
func (c *Controller) commit(prev *Entry, next Entry, spec Screen, mutate func()) {
	if prev != nil {
		c.emitter.Emit(Event{Kind: EventBeforeRemove, Entry: *prev})
	}
	mutate()
	if prev != nil {
		c.emitter.Emit(Event{Kind: EventBlur, Entry: *prev})
		c.renderer.Unmount(*prev)
	}
	c.renderer.Mount(next, spec, prev)
	c.emitter.Emit(Event{Kind: EventFocus, Entry: next})
	c.emitStateChange(next)
	if c.transition > 0 {
		c.animating = true
	}
}

func (c *Controller) emitStateChange(entry Entry) {
	c.emitter.Emit(Event{
		Kind:  EventStateChange,
		Entry: entry,
		Stack: c.history.Entries(),
		Index: c.history.Index(),
	})
}

// FinishTransition flips Animating back to Idle. The host calls it when the
// fixed-duration timer fires; extra calls while Idle are harmless.
func (c *Controller) FinishTransition() {
	c.animating = false
}

// Animating reports whether a transition gate is in flight.
func (c *Controller) Animating() bool {
	return c.animating
}

// TransitionFor returns the duration the host timer should wait before
// calling FinishTransition.
func (c *Controller) TransitionFor() time.Duration {
	if c.transition < 0 {
		return 0
	}
	return c.transition
}

// Current returns the active entry. Start must have succeeded.
func (c *Controller) Current() Entry {
	return c.history.Current()
}

// CurrentScreen returns the active entry's descriptor.
func (c *Controller) CurrentScreen() Screen {
	spec, err := c.registry.Lookup(c.history.Current().Route)
	if err != nil {
		// current entries only enter the stack through Lookup
		c.logger.Printf("nav: %v", err)
	}
	return spec
}

// CanGoBack reports whether the stack has an entry behind the cursor.
func (c *Controller) CanGoBack() bool {
	return c.history != nil && c.history.CanGoBack()
}

// Stack returns a copy of the history entries and the cursor index.
func (c *Controller) Stack() ([]Entry, int) {
	return c.history.Entries(), c.history.Index()
}

// Location returns the current entry's deep link, or "" when the route has
// no template.
func (c *Controller) Location() string {
	if c.history == nil {
		return ""
	}
	return c.locationFor(c.history.Current())
}

func (c *Controller) locationFor(e Entry) string {
	if c.links == nil {
		return ""
	}
	loc, err := c.links.Format(e.Route, e.Params)
	if err != nil {
		c.logger.Printf("nav: location for %q: %v", string(e.Route), err)
		return ""
	}
	return loc
}
