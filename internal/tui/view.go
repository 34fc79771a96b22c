package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/feastkit/basil/internal/nav"
)

func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return "starting..."
	}

	spec := a.renderer.Spec()
	contentHeight := a.contentHeight()

	var content string
	if top := a.topModal(); top != nil {
		content = top.View(a.width, contentHeight)
	} else if vis := a.renderer.Visible(); vis != nil {
		content = vis.View(a.width, contentHeight)
	}
	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	sections := make([]string, 0, 3)
	if spec.ShowHeader {
		sections = append(sections, a.renderHeader(spec))
	}
	sections = append(sections, content)
	sections = append(sections, a.renderStatusLine())
	return strings.Join(sections, "\n")
}

// renderHeader renders the top bar: branding, the screen title, and the
// current location right-aligned, the terminal's address bar.
func (a *App) renderHeader(spec nav.Screen) string {
	left := headerStyle.Render(" ") + renderBasilBranding() +
		headerTitleStyle.Render("  "+spec.Title)
	right := headerLocationStyle.Render(a.ctrl.Location() + " ")

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return headerStyle.Width(a.width).MaxWidth(a.width).Render(left)
	}
	return left + headerStyle.Render(strings.Repeat(" ", gap)) + right
}

// renderStatusLine renders the bottom line: transient status or key hints on
// the left, backend mode and transition state on the right.
func (a *App) renderStatusLine() string {
	baseStyle := lipgloss.NewStyle().
		Background(ColorNavy).
		Foreground(ColorWhite)

	if a.gotoActive {
		return baseStyle.Width(a.width).MaxWidth(a.width).Render(a.gotoInput.View())
	}

	w := a.width
	veryNarrow := w < 60
	narrow := w < 90

	// Left: transient status wins over hints.
	var leftText string
	leftStyle := statusInfoStyle
	switch {
	case a.status != "":
		leftText = a.status
		if a.statusErr {
			leftStyle = statusErrorStyle
		}
	case a.topModal() != nil:
		leftText = "esc: close"
	case veryNarrow:
		leftText = "? • g • q"
	case narrow:
		leftText = "?: help • g: go to • q: quit"
	default:
		if a.ctrl.CanGoBack() {
			leftText = "esc: back • ?: help • g: go to • s: stats • q: quit"
		} else {
			leftText = "?: help • g: go to • s: stats • q: quit"
		}
	}

	// Right: backend mode, plus the active transition while the gate is up.
	var rightParts []string
	if a.ctrl.Animating() {
		anim := a.renderer.Spec().Animation.String()
		if anim != "" && !veryNarrow {
			rightParts = append(rightParts, anim)
		}
	}
	if a.mode != "" {
		rightParts = append(rightParts, a.mode)
	}
	rightText := strings.Join(rightParts, " • ")

	left := baseStyle.Render(" ") + leftStyle.Render(leftText)
	right := baseStyle.Render(rightText + " ")

	gap := w - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return baseStyle.Width(w).MaxWidth(w).Render(left)
	}
	return left + baseStyle.Render(strings.Repeat(" ", gap)) + right
}
