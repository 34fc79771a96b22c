package nav

import (
	"errors"
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultGestureCells is the rightward drag distance (terminal cells) that
// triggers a back gesture.
const DefaultGestureCells = 6

// InputHandler translates raw terminal input into back navigation: a
// rightward horizontal drag past the threshold, or one of the back key
// bindings. It never performs any navigation other than GoBack.
type InputHandler struct {
	ctrl      *Controller
	logger    *log.Logger
	back      key.Binding
	threshold int

	tracking bool
	fired    bool
	startX   int
	startY   int
}

// NewInputHandler wires the translator to a controller. threshold <= 0
// falls back to DefaultGestureCells.
func NewInputHandler(ctrl *Controller, threshold int, logger *log.Logger) *InputHandler {
	if threshold <= 0 {
		threshold = DefaultGestureCells
	}
	if logger == nil {
		logger = log.Default()
	}
	return &InputHandler{
		ctrl:      ctrl,
		logger:    logger,
		threshold: threshold,
		back: key.NewBinding(
			key.WithKeys("alt+left", "esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// BackBinding exposes the back keys for help surfaces.
func (h *InputHandler) BackBinding() key.Binding {
	return h.back
}

// HandleKey consumes a back key when back navigation is possible. It
// returns false otherwise so the host can give the key another meaning.
func (h *InputHandler) HandleKey(msg tea.KeyMsg) bool {
	if !key.Matches(msg, h.back) {
		return false
	}
	if !h.ctrl.CanGoBack() {
		return false
	}
	h.goBack("key")
	return true
}

// HandleMouse tracks one button press through motion to release. The back
// gesture fires at most once per press, when the drag is predominantly
// horizontal, rightward, and at least threshold cells long. It returns true
// when the event fired a navigation.
func (h *InputHandler) HandleMouse(msg tea.MouseMsg) bool {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return false
		}
		h.tracking = true
		h.fired = false
		h.startX, h.startY = msg.X, msg.Y
	case tea.MouseActionMotion:
		if !h.tracking || h.fired {
			return false
		}
		dx := msg.X - h.startX
		dy := msg.Y - h.startY
		if dy < 0 {
			dy = -dy
		}
		if dx < h.threshold || dx < 2*dy {
			return false
		}
		// threshold crossed; one shot per press
		h.fired = true
		if !h.ctrl.CurrentScreen().GestureEnabled {
			return false
		}
		if !h.ctrl.CanGoBack() || h.ctrl.Animating() {
			return false
		}
		h.goBack("gesture")
		return true
	case tea.MouseActionRelease:
		h.tracking = false
		h.fired = false
	}
	return false
}

func (h *InputHandler) goBack(source string) {
	err := h.ctrl.GoBack()
	switch {
	case err == nil:
	case errors.Is(err, ErrAtRoot), errors.Is(err, ErrNavigationBlocked):
		// already logged by the controller
	default:
		h.logger.Printf("nav: %s back failed: %v", source, err)
	}
}
