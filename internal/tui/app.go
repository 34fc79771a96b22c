package tui

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/feastkit/basil/internal/catalog"
	"github.com/feastkit/basil/internal/nav"
	"github.com/feastkit/basil/internal/pantry"
	"github.com/feastkit/basil/internal/recipe"
)

// statusTTL is how long a transient status line message stays up.
const statusTTL = 4 * time.Second

// Options configures a new App.
type Options struct {
	// Service is the recipe backend, local or remote.
	Service recipe.Service
	// Pantry holds favorites and other client-side state.
	Pantry *pantry.Pantry
	// Events is the push feed. Nil means no live updates.
	Events <-chan catalog.Change
	// Mode labels the backend in the status line ("local", "remote").
	Mode string
	// StateDir is where the last location is recorded for the next launch.
	// Empty disables location recording.
	StateDir string
	// Transition overrides the navigation transition duration. Zero keeps
	// the default; negative disables the gate.
	Transition time.Duration
	// GestureCells overrides how far a drag must travel to count as a
	// back swipe.
	GestureCells int
	// OpenLocation starts the app at a deep link, overriding the recorded
	// location.
	OpenLocation string
	Logger       *log.Logger
}

// App is the top-level Bubble Tea model. It owns the navigation controller,
// the modal stack, and the status line; everything inside the content region
// belongs to the visible screen.
type App struct {
	deps     ScreenDeps
	ctrl     *nav.Controller
	renderer *Renderer
	input    *nav.InputHandler
	keys     KeyMap
	logger   *log.Logger
	events   <-chan catalog.Change
	mode     string

	width  int
	height int

	modalStack []Modal

	gotoActive bool
	gotoInput  textinput.Model

	status    string
	statusErr bool
	statusSeq int

	startLocation string
}

// NewApp wires the registry, deep links, renderer, and controller together.
func NewApp(opts Options) (*App, error) {
	if opts.Service == nil {
		return nil, errors.New("tui: Options.Service is required")
	}
	if opts.Pantry == nil {
		return nil, errors.New("tui: Options.Pantry is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	keys := DefaultKeyMap()
	deps := ScreenDeps{
		Service: opts.Service,
		Pantry:  opts.Pantry,
		Keys:    keys,
		Logger:  logger,
	}

	registry := nav.NewRegistry()
	for _, s := range DefaultScreens() {
		if err := registry.Register(s); err != nil {
			return nil, err
		}
	}
	links, err := nav.FromRegistry(registry)
	if err != nil {
		return nil, err
	}

	renderer := NewRenderer(deps)

	var sync nav.HistorySync
	if opts.StateDir != "" {
		sync = newLocationRecorder(opts.StateDir, logger)
	}

	ctrl, err := nav.NewController(nav.Options{
		Registry:   registry,
		Renderer:   renderer,
		Links:      links,
		Sync:       sync,
		Logger:     logger,
		Transition: opts.Transition,
	})
	if err != nil {
		return nil, err
	}

	threshold := opts.GestureCells
	if threshold <= 0 {
		threshold = nav.DefaultGestureCells
	}
	input := nav.NewInputHandler(ctrl, threshold, logger)

	gotoInput := textinput.New()
	gotoInput.Prompt = "go to: "
	gotoInput.Placeholder = "/recipe/<id>"
	gotoInput.CharLimit = 120

	startLocation := opts.OpenLocation
	if startLocation == "" && opts.StateDir != "" {
		startLocation = pantry.LoadUIState(opts.StateDir, logger).LastLocation
	}

	return &App{
		deps:          deps,
		ctrl:          ctrl,
		renderer:      renderer,
		input:         input,
		keys:          keys,
		logger:        logger,
		events:        opts.Events,
		mode:          opts.Mode,
		gotoInput:     gotoInput,
		startLocation: startLocation,
	}, nil
}

// Controller exposes the navigation controller, mainly for tests and for
// hosts that want to subscribe to navigation events.
func (a *App) Controller() *nav.Controller {
	return a.ctrl
}

func (a *App) Init() tea.Cmd {
	a.startNavigation()
	cmds := []tea.Cmd{a.renderer.TakeInit()}
	if a.ctrl.Animating() {
		cmds = append(cmds, a.transitionCmd())
	}
	if a.events != nil {
		cmds = append(cmds, a.waitForEvent())
	}
	return tea.Batch(cmds...)
}

// startNavigation performs the initial mount. A recorded or requested deep
// link lands on its screen with the home screen underneath, the way a fresh
// page load restores a location; everything else starts at the welcome
// screen.
func (a *App) startNavigation() {
	loc := strings.TrimSpace(a.startLocation)
	if loc != "" && loc != "/welcome" {
		if err := a.ctrl.Start(nav.RouteHome, nil); err != nil {
			a.logger.Printf("tui: start: %v", err)
			return
		}
		if loc != "/" {
			if err := a.ctrl.HandleExternalLocation(loc); err != nil {
				a.logger.Printf("tui: open %s: %v", loc, err)
			}
		}
		return
	}
	if err := a.ctrl.Start(nav.RouteWelcome, nil); err != nil {
		a.logger.Printf("tui: start: %v", err)
	}
}

// pushModal adds a modal to the stack, deduplicating by ID.
func (a *App) pushModal(m Modal) {
	for _, existing := range a.modalStack {
		if existing.ID() == m.ID() {
			return
		}
	}
	a.modalStack = append(a.modalStack, m)
}

// popModal removes the topmost modal.
func (a *App) popModal() {
	if len(a.modalStack) > 0 {
		a.modalStack = a.modalStack[:len(a.modalStack)-1]
	}
}

// topModal returns the topmost modal, or nil.
func (a *App) topModal() Modal {
	if len(a.modalStack) == 0 {
		return nil
	}
	return a.modalStack[len(a.modalStack)-1]
}
