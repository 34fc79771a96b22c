package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/feastkit/basil/internal/nav"
)

// homeScreen is the main catalog browser: full recipe list with search and
// a category filter cycle.
type homeScreen struct {
	deps ScreenDeps
	list recipeList

	searchInput  textinput.Model
	searchActive bool
	searchTerm   string

	categories  []string
	categoryIdx int // 0 = all

	loading bool
	err     error
}

func newHomeScreen(deps ScreenDeps) *homeScreen {
	input := textinput.New()
	input.Placeholder = "Search title, description or ingredients..."
	input.CharLimit = 120
	return &homeScreen{deps: deps, searchInput: input, loading: true}
}

func (s *homeScreen) Init() tea.Cmd {
	return tea.Batch(
		fetchRecipesCmd(s.deps, nav.RouteHome),
		fetchCategoriesCmd(s.deps, nav.RouteHome),
	)
}

func (s *homeScreen) CapturingInput() bool {
	return s.searchActive
}

// category returns the active category filter, or "" for all.
func (s *homeScreen) category() string {
	if s.categoryIdx == 0 || s.categoryIdx > len(s.categories) {
		return ""
	}
	return s.categories[s.categoryIdx-1]
}

func (s *homeScreen) refetch() tea.Cmd {
	s.loading = true
	if s.searchTerm == "" && s.category() == "" {
		return fetchRecipesCmd(s.deps, nav.RouteHome)
	}
	return searchRecipesCmd(s.deps, nav.RouteHome, s.searchTerm, s.category())
}

func (s *homeScreen) Update(msg tea.Msg) (tea.Cmd, *NavRequest) {
	switch msg := msg.(type) {
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

	case recipesLoadedMsg:
		if msg.route != nav.RouteHome {
			return nil, nil
		}
		s.loading = false
		s.err = msg.err
		if msg.err == nil {
			s.list.setItems(msg.recipes)
		}
		return nil, nil

	case categoriesLoadedMsg:
		if msg.route == nav.RouteHome && msg.err == nil {
			s.categories = msg.categories
		}
		return nil, nil

	case pushEventMsg:
		// any catalog change invalidates the list
		return s.refetch(), nil
	}
	return nil, nil
}

func (s *homeScreen) handleKey(msg tea.KeyMsg) (tea.Cmd, *NavRequest) {
	keys := s.deps.Keys

	if s.searchActive {
		switch msg.Type {
		case tea.KeyEnter:
			s.searchActive = false
			s.searchInput.Blur()
			s.searchTerm = strings.TrimSpace(s.searchInput.Value())
			return s.refetch(), nil
		case tea.KeyEsc:
			s.searchActive = false
			s.searchInput.Blur()
			s.searchInput.SetValue("")
			if s.searchTerm != "" {
				s.searchTerm = ""
				return s.refetch(), nil
			}
			return nil, nil
		}
		var cmd tea.Cmd
		s.searchInput, cmd = s.searchInput.Update(msg)
		return cmd, nil
	}

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

	case key.Matches(msg, keys.Search):
		s.searchActive = true
		s.searchInput.Focus()
		return textinput.Blink, nil

	case key.Matches(msg, keys.Category):
		s.categoryIdx = (s.categoryIdx + 1) % (len(s.categories) + 1)
		return s.refetch(), nil

	case key.Matches(msg, keys.Favorite):
		if r, ok := s.list.selected(); ok {
			return toggleFavoriteCmd(s.deps, r.ID), nil
		}

	case key.Matches(msg, keys.MyFood):
		return nil, Push(nav.RouteMyFood, nil)

	case key.Matches(msg, keys.Favorites):
		return nil, Push(nav.RouteFavorites, nil)

	case key.Matches(msg, keys.New):
		return nil, Push(nav.RouteRecipeForm, nil)

	case key.Matches(msg, keys.Refresh):
		return s.refetch(), nil
	}
	return nil, nil
}

func (s *homeScreen) View(width, height int) string {
	var sections []string

	filter := s.renderFilterLine(width)
	if filter != "" {
		sections = append(sections, filter)
	}

	listHeight := height - len(sections)
	switch {
	case s.loading && len(s.list.items) == 0:
		sections = append(sections, helpStyle.Render("Loading recipes..."))
	case s.err != nil:
		sections = append(sections, errorStyle.Render("catalog unreachable: press r to retry"))
	default:
		sections = append(sections, s.list.render(width, listHeight, s.deps.Pantry.IsFavorite))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s *homeScreen) renderFilterLine(width int) string {
	if s.searchActive {
		s.searchInput.Width = width - 10
		return labelStyle.Render("Search: ") + s.searchInput.View()
	}

	var parts []string
	if s.searchTerm != "" {
		parts = append(parts, fmt.Sprintf("search: %q", s.searchTerm))
	}
	if c := s.category(); c != "" {
		parts = append(parts, "category: "+c)
	}
	if len(parts) == 0 {
		return ""
	}
	return dimStyle.Render(strings.Join(parts, "  ·  "))
}
