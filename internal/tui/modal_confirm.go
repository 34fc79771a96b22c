package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModal is a small yes/no prompt that runs a command when accepted.
type ConfirmModal struct {
	title  string
	prompt string
	accept tea.Cmd
}

func NewConfirmModal(title, prompt string, accept tea.Cmd) *ConfirmModal {
	return &ConfirmModal{title: title, prompt: prompt, accept: accept}
}

func (c *ConfirmModal) ID() string { return "confirm" }

func (c *ConfirmModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return false, nil
	}
	switch keyMsg.String() {
	case "y", "Y", "enter":
		return true, c.accept
	case "n", "N", "esc", "q":
		return true, nil
	}
	return false, nil
}

func (c *ConfirmModal) View(width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		modalTitleStyle.Render(c.title),
		"",
		c.prompt,
		"",
		helpStyle.Render("y: confirm   n: cancel"),
	)
	box := modalBorderStyle.Padding(1, 2).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
