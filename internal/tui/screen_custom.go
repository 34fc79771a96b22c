package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/feastkit/basil/internal/nav"
	"github.com/feastkit/basil/internal/recipe"
)

// customRecipesScreen lists only the recipes the user created or edited.
type customRecipesScreen struct {
	deps    ScreenDeps
	list    recipeList
	loading bool
	err     error
}

func newCustomRecipesScreen(deps ScreenDeps) *customRecipesScreen {
	return &customRecipesScreen{deps: deps, loading: true}
}

func (s *customRecipesScreen) Init() tea.Cmd {
	return fetchRecipesCmd(s.deps, nav.RouteCustomRecipes)
}

func (s *customRecipesScreen) Update(msg tea.Msg) (tea.Cmd, *NavRequest) {
	switch msg := msg.(type) {
	case recipesLoadedMsg:
		if msg.route != nav.RouteCustomRecipes {
			return nil, nil
		}
		s.loading = false
		s.err = msg.err
		if msg.err == nil {
			custom := make([]recipe.Recipe, 0, len(msg.recipes))
			for _, r := range msg.recipes {
				if r.Custom {
					custom = append(custom, r)
				}
			}
			s.list.setItems(custom)
		}
		return nil, nil

	case deleteDoneMsg:
		if msg.err != nil {
			s.err = msg.err
			return nil, nil
		}
		return fetchRecipesCmd(s.deps, nav.RouteCustomRecipes), nil

	case pushEventMsg:
		return fetchRecipesCmd(s.deps, nav.RouteCustomRecipes), nil

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

func (s *customRecipesScreen) handleKey(msg tea.KeyMsg) (tea.Cmd, *NavRequest) {
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
	case key.Matches(msg, keys.New):
		return nil, Push(nav.RouteRecipeForm, nil)
	case key.Matches(msg, keys.Edit):
		if r, ok := s.list.selected(); ok {
			return nil, Push(nav.RouteRecipeForm, nav.Params{"id": r.ID})
		}
	case key.Matches(msg, keys.Delete):
		if r, ok := s.list.selected(); ok {
			prompt := fmt.Sprintf("Delete %q for good?", r.Title)
			return showModal(NewConfirmModal("Delete recipe", prompt, deleteRecipeCmd(s.deps, r.ID))), nil
		}
	case key.Matches(msg, keys.Favorite):
		if r, ok := s.list.selected(); ok {
			return toggleFavoriteCmd(s.deps, r.ID), nil
		}
	case key.Matches(msg, keys.Refresh):
		return fetchRecipesCmd(s.deps, nav.RouteCustomRecipes), nil
	}
	return nil, nil
}

func (s *customRecipesScreen) View(width, height int) string {
	if s.loading {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			dimStyle.Render("loading..."))
	}
	if s.err == nil && len(s.list.items) == 0 {
		empty := lipgloss.JoinVertical(lipgloss.Center,
			dimStyle.Render("No custom recipes yet."),
			helpStyle.Render("press n to create your first one"),
		)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, empty)
	}

	var sections []string
	if s.err != nil {
		sections = append(sections, errorStyle.Render("catalog unreachable: press r to retry"))
	}
	help := helpStyle.Render("enter: open | n: new | e: edit | d: delete | esc: back")
	listHeight := height - len(sections) - 1
	sections = append(sections, s.list.render(width, listHeight, s.deps.Pantry.IsFavorite))
	sections = append(sections, help)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
