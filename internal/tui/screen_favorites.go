package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/feastkit/basil/internal/nav"
	"github.com/feastkit/basil/internal/recipe"
)

// favoritesScreen lists the recipes the user has hearted. The heart set
// lives in the pantry, so the screen joins it against the catalog on every
// change.
type favoritesScreen struct {
	deps    ScreenDeps
	all     []recipe.Recipe
	list    recipeList
	loading bool
	err     error
}

func newFavoritesScreen(deps ScreenDeps) *favoritesScreen {
	return &favoritesScreen{deps: deps, loading: true}
}

func (s *favoritesScreen) Init() tea.Cmd {
	return fetchRecipesCmd(s.deps, nav.RouteFavorites)
}

func (s *favoritesScreen) Update(msg tea.Msg) (tea.Cmd, *NavRequest) {
	switch msg := msg.(type) {
	case recipesLoadedMsg:
		if msg.route != nav.RouteFavorites {
			return nil, nil
		}
		s.loading = false
		s.err = msg.err
		if msg.err == nil {
			s.all = msg.recipes
			s.applyFilter()
		}
		return nil, nil

	case favoriteToggledMsg:
		s.applyFilter()
		return nil, nil

	case pushEventMsg:
		return fetchRecipesCmd(s.deps, nav.RouteFavorites), nil

	case tea.KeyMsg:
		return s.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				s.list.move(-1)
			case tea.MouseButtonWheelDown:
				s.list.move(1)
			}
		}
		return nil, nil
	}
	return nil, nil
}

func (s *favoritesScreen) handleKey(msg tea.KeyMsg) (tea.Cmd, *NavRequest) {
	keys := s.deps.Keys
	switch {
	case key.Matches(msg, keys.Up):
		s.list.move(-1)
	case key.Matches(msg, keys.Down):
		s.list.move(1)
	case key.Matches(msg, keys.PageUp):
		s.list.move(-10)
	case key.Matches(msg, keys.PageDown):
		s.list.move(10)
	case key.Matches(msg, keys.Home):
		s.list.toTop()
	case key.Matches(msg, keys.End):
		s.list.toBottom()
	case key.Matches(msg, keys.Enter):
		if r, ok := s.list.selected(); ok {
			return nil, Push(nav.RouteRecipeDetail, nav.Params{"id": r.ID})
		}
	case key.Matches(msg, keys.Favorite):
		if r, ok := s.list.selected(); ok {
			return toggleFavoriteCmd(s.deps, r.ID), nil
		}
	case key.Matches(msg, keys.Refresh):
		return fetchRecipesCmd(s.deps, nav.RouteFavorites), nil
	}
	return nil, nil
}

// applyFilter rebuilds the visible list from the catalog snapshot and the
// current heart set, preserving catalog order.
func (s *favoritesScreen) applyFilter() {
	ids := s.deps.Pantry.Favorites()
	hearted := make(map[string]bool, len(ids))
	for _, id := range ids {
		hearted[id] = true
	}
	favs := make([]recipe.Recipe, 0, len(ids))
	for _, r := range s.all {
		if hearted[r.ID] {
			favs = append(favs, r)
		}
	}
	s.list.setItems(favs)
}

func (s *favoritesScreen) View(width, height int) string {
	if s.loading {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			dimStyle.Render("loading..."))
	}
	if s.err == nil && len(s.list.items) == 0 {
		empty := lipgloss.JoinVertical(lipgloss.Center,
			dimStyle.Render("No favorites yet."),
			helpStyle.Render("press f on any recipe to heart it"),
		)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, empty)
	}

	var sections []string
	if s.err != nil {
		sections = append(sections, errorStyle.Render("catalog unreachable: press r to retry"))
	}
	help := helpStyle.Render("enter: open | f: unfavorite | esc: back")
	listHeight := height - len(sections) - 1
	sections = append(sections, s.list.render(width, listHeight, s.deps.Pantry.IsFavorite))
	sections = append(sections, help)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
