package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// HelpModal is a scrollable overview of every key the app understands.
type HelpModal struct {
	viewport viewport.Model
}

func NewHelpModal() *HelpModal {
	return &HelpModal{viewport: viewport.New(80, 20)}
}

func (h *HelpModal) ID() string { return "help" }

func (h *HelpModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			h.viewport.ScrollUp(1)
			return false, nil
		case "down", "j":
			h.viewport.ScrollDown(1)
			return false, nil
		case "pgup":
			h.viewport.HalfPageUp()
			return false, nil
		case "pgdown":
			h.viewport.HalfPageDown()
			return false, nil
		case "esc", "?", "q":
			return true, nil
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				h.viewport.ScrollUp(1)
			case tea.MouseButtonWheelDown:
				h.viewport.ScrollDown(1)
			}
		}
	}
	return false, nil
}

func (h *HelpModal) View(width, height int) string {
	contentWidth, contentHeight := modalContentSize(width, height)
	h.viewport.Width = contentWidth
	h.viewport.Height = contentHeight
	h.viewport.SetContent(helpText)

	return renderModalFrame(
		"Keyboard Reference",
		h.viewport.View(),
		"up/down: scroll | ?: toggle help | esc: close",
		width, height,
	)
}

const helpText = `NAVIGATION
  up/down or k/j    Move selection
  Enter             Open selected recipe
  Alt+Left or Esc   Go back one screen
  Mouse drag right  Swipe back (where enabled)
  g                 Go to a location, e.g. /recipe/<id>
  m                 My Food
  F                 Favorites
  q                 Quit

CATALOG
  /                 Search recipes
  c                 Cycle category filter
  f                 Toggle favorite
  n                 New recipe
  e                 Edit recipe
  d                 Delete recipe
  r                 Refresh

FORM
  Tab/Shift+Tab     Next / previous field
  Ctrl+S            Save
  Esc               Cancel

OTHER
  s                 Catalog statistics
  ?                 Toggle this help
  Ctrl+C            Force quit`
