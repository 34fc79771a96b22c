package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/feastkit/basil/internal/nav"
)

// Renderer holds the single visible screen. The nav controller drives it:
// Unmount for the entry being left, Mount for the new one. Because the
// controller always pairs the calls, there is never more than one screen
// alive here.
type Renderer struct {
	deps ScreenDeps

	visible ScreenModel
	entry   nav.Entry
	spec    nav.Screen
	mounted bool

	pending tea.Cmd
}

// NewRenderer creates an empty renderer.
func NewRenderer(deps ScreenDeps) *Renderer {
	return &Renderer{deps: deps}
}

// Mount builds the screen for next and queues its Init command for the app
// to collect with TakeInit.
func (r *Renderer) Mount(next nav.Entry, spec nav.Screen, _ *nav.Entry) {
	r.visible = buildScreen(r.deps, next)
	r.entry = next
	r.spec = spec
	r.mounted = r.visible != nil
	if r.mounted {
		r.pending = r.visible.Init()
	}
}

// Unmount drops the visible screen.
func (r *Renderer) Unmount(_ nav.Entry) {
	r.visible = nil
	r.mounted = false
	r.pending = nil
}

// TakeInit returns the queued Init command of the last mount, once.
func (r *Renderer) TakeInit() tea.Cmd {
	cmd := r.pending
	r.pending = nil
	return cmd
}

// Visible returns the mounted screen, or nil between navigations.
func (r *Renderer) Visible() ScreenModel {
	if !r.mounted {
		return nil
	}
	return r.visible
}

// Spec returns the screen descriptor of the visible screen.
func (r *Renderer) Spec() nav.Screen {
	return r.spec
}

// Entry returns the navigation entry of the visible screen.
func (r *Renderer) Entry() nav.Entry {
	return r.entry
}
