package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/feastkit/basil/internal/nav"
)

// welcomeScreen is the first-launch landing screen. Enter replaces it with
// Home so back never returns here.
type welcomeScreen struct {
	deps  ScreenDeps
	count int
	err   error
}

func newWelcomeScreen(deps ScreenDeps) *welcomeScreen {
	return &welcomeScreen{deps: deps, count: -1}
}

func (s *welcomeScreen) Init() tea.Cmd {
	return fetchRecipesCmd(s.deps, nav.RouteWelcome)
}

func (s *welcomeScreen) Update(msg tea.Msg) (tea.Cmd, *NavRequest) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, s.deps.Keys.Enter) {
			return nil, Replace(nav.RouteHome, nil)
		}
		if key.Matches(msg, s.deps.Keys.Refresh) {
			return fetchRecipesCmd(s.deps, nav.RouteWelcome), nil
		}
	case recipesLoadedMsg:
		if msg.route != nav.RouteWelcome {
			return nil, nil
		}
		if msg.err != nil {
			s.err = msg.err
			return nil, nil
		}
		s.err = nil
		s.count = len(msg.recipes)
	}
	return nil, nil
}

func (s *welcomeScreen) View(width, height int) string {
	title := renderBasilBranding()
	subtitle := dimStyle.Render("a recipe catalog for your terminal")

	var status string
	switch {
	case s.err != nil:
		status = errorStyle.Render("catalog unreachable, check the server and press r")
	case s.count >= 0:
		status = helpStyle.Render(fmt.Sprintf("%d recipes waiting", s.count))
	default:
		status = helpStyle.Render("warming up...")
	}

	prompt := labelStyle.Render("press enter to start cooking")

	block := lipgloss.JoinVertical(lipgloss.Center, title, "", subtitle, "", status, "", prompt)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
