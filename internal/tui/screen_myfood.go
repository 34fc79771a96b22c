package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/feastkit/basil/internal/nav"
)

// myFoodScreen is the hub for everything the user owns: their custom
// recipes, their favorites, and the shortcut to a fresh form.
type myFoodScreen struct {
	deps    ScreenDeps
	cursor  int
	customs int
	loaded  bool
	err     error
}

const (
	myFoodCustom = iota
	myFoodFavorites
	myFoodNew
	myFoodItems
)

func newMyFoodScreen(deps ScreenDeps) *myFoodScreen {
	return &myFoodScreen{deps: deps}
}

func (s *myFoodScreen) Init() tea.Cmd {
	return fetchRecipesCmd(s.deps, nav.RouteMyFood)
}

func (s *myFoodScreen) Update(msg tea.Msg) (tea.Cmd, *NavRequest) {
	switch msg := msg.(type) {
	case recipesLoadedMsg:
		if msg.route != nav.RouteMyFood {
			return nil, nil
		}
		if msg.err != nil {
			s.err = msg.err
			return nil, nil
		}
		s.err = nil
		s.loaded = true
		s.customs = 0
		for _, r := range msg.recipes {
			if r.Custom {
				s.customs++
			}
		}
		return nil, nil

	case pushEventMsg:
		return fetchRecipesCmd(s.deps, nav.RouteMyFood), nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil, nil
}

func (s *myFoodScreen) handleKey(msg tea.KeyMsg) (tea.Cmd, *NavRequest) {
	keys := s.deps.Keys
	switch {
	case key.Matches(msg, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, keys.Down):
		if s.cursor < myFoodItems-1 {
			s.cursor++
		}
	case key.Matches(msg, keys.Enter):
		switch s.cursor {
		case myFoodCustom:
			return nil, Push(nav.RouteCustomRecipes, nil)
		case myFoodFavorites:
			return nil, Push(nav.RouteFavorites, nil)
		case myFoodNew:
			return nil, Push(nav.RouteRecipeForm, nil)
		}
	case key.Matches(msg, keys.New):
		return nil, Push(nav.RouteRecipeForm, nil)
	case key.Matches(msg, keys.Favorites):
		return nil, Push(nav.RouteFavorites, nil)
	case key.Matches(msg, keys.Refresh):
		return fetchRecipesCmd(s.deps, nav.RouteMyFood), nil
	}
	return nil, nil
}

func (s *myFoodScreen) View(width, height int) string {
	favorites := len(s.deps.Pantry.Favorites())

	labels := [myFoodItems]string{"Custom Recipes", "Favorites", "New Recipe"}
	counts := [myFoodItems]string{
		fmt.Sprintf("%d", s.customs),
		fmt.Sprintf("%d", favorites),
		"",
	}
	if !s.loaded {
		counts[myFoodCustom] = "…"
	}

	var rows []string
	for i := 0; i < myFoodItems; i++ {
		line := fmt.Sprintf("%-16s %s", labels[i], dimStyle.Render(counts[i]))
		if i == s.cursor {
			rows = append(rows, "> "+selectedRowStyle.Render(line))
		} else {
			rows = append(rows, "  "+rowStyle.Render(line))
		}
	}

	var sections []string
	if s.err != nil {
		sections = append(sections, errorStyle.Render("catalog unreachable: press r to retry"))
		sections = append(sections, "")
	}
	sections = append(sections, strings.Join(rows, "\n"))
	sections = append(sections, "")
	sections = append(sections, helpStyle.Render("enter: open | n: new recipe | esc: back"))

	menu := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, menu)
}
