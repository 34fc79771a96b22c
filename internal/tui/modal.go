package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is a self-contained overlay that owns its own Update/View lifecycle.
// Modals are managed via a stack on App; the topmost modal receives all
// input and renders over the current screen.
type Modal interface {
	// ID returns a unique identifier used to deduplicate pushes.
	ID() string
	// Update processes a message. Return pop=true to close the modal.
	Update(msg tea.Msg) (pop bool, cmd tea.Cmd)
	// View renders the modal for the given content dimensions.
	View(width, height int) string
}

// showModalMsg asks the app to push a modal. Screens return it through a
// command so they never touch the stack directly.
type showModalMsg struct {
	modal Modal
}

func showModal(m Modal) tea.Cmd {
	return func() tea.Msg { return showModalMsg{modal: m} }
}

// modalContentSize returns the inner pane dimensions for a framed modal so
// viewports can be sized before rendering.
func modalContentSize(width, height int) (int, int) {
	cw := width - 12
	ch := height - 8
	if cw < 20 {
		cw = 20
	}
	if ch < 4 {
		ch = 4
	}
	return cw, ch
}

// renderModalFrame renders a titled modal with an inner content pane and a
// status bar, centered in the content area.
func renderModalFrame(title, content, status string, width, height int) string {
	contentWidth, contentHeight := modalContentSize(width, height)

	pane := lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorGray).
		Render(content)

	header := lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(ColorBlue).
		Bold(true).
		Render(title)

	statusBar := helpStyle.Render(status)

	modal := lipgloss.JoinVertical(lipgloss.Left, header, pane, statusBar)

	framed := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Render(modal)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, framed)
}
