package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/feastkit/basil/internal/catalog"
	"github.com/feastkit/basil/internal/nav"
	"github.com/feastkit/basil/internal/recipe"
)

// detailScreen shows one recipe rendered as markdown in a scrollable
// viewport. A recipe can vanish while we look at it (deleted elsewhere, or a
// stale deep link); the screen then flips to a not-found notice instead of
// bouncing the user away.
type detailScreen struct {
	deps     ScreenDeps
	id       string
	recipe   recipe.Recipe
	loaded   bool
	notFound bool
	err      error
	viewport viewport.Model
	width    int
	height   int
}

func newDetailScreen(deps ScreenDeps, id string) *detailScreen {
	vp := viewport.New(0, 0)
	// e/f/d/u/b are taken by recipe actions, so the viewport only keeps the
	// arrow and page keys.
	vp.KeyMap = viewport.KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
	}
	return &detailScreen{deps: deps, id: id, viewport: vp}
}

func (s *detailScreen) Init() tea.Cmd {
	return fetchRecipeCmd(s.deps, s.id)
}

func (s *detailScreen) Update(msg tea.Msg) (tea.Cmd, *NavRequest) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.viewport.Width = msg.Width
		s.viewport.Height = msg.Height - 2
		if s.loaded {
			s.setContent()
		}
		return nil, nil

	case recipeLoadedMsg:
		if msg.id != s.id {
			return nil, nil
		}
		s.notFound = msg.notFound
		s.err = msg.err
		if msg.err == nil && !msg.notFound {
			s.recipe = msg.r
			s.loaded = true
			s.setContent()
		}
		return nil, nil

	case deleteDoneMsg:
		if msg.id != s.id {
			return nil, nil
		}
		if msg.err != nil {
			s.err = msg.err
			return nil, nil
		}
		return nil, Back()

	case pushEventMsg:
		if msg.change.Recipe.ID != s.id {
			return nil, nil
		}
		switch msg.change.Kind {
		case catalog.ChangeDeleted:
			s.notFound = true
			s.loaded = false
		case catalog.ChangeUpdated:
			return fetchRecipeCmd(s.deps, s.id), nil
		}
		return nil, nil

	case tea.KeyMsg:
		return s.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		s.viewport, cmd = s.viewport.Update(msg)
		return cmd, nil
	}
	return nil, nil
}

func (s *detailScreen) handleKey(msg tea.KeyMsg) (tea.Cmd, *NavRequest) {
	keys := s.deps.Keys
	switch {
	case key.Matches(msg, keys.Refresh):
		return fetchRecipeCmd(s.deps, s.id), nil

	case key.Matches(msg, keys.Edit):
		if !s.loaded {
			return nil, nil
		}
		return nil, Push(nav.RouteRecipeForm, nav.Params{"id": s.id})

	case key.Matches(msg, keys.Favorite):
		if !s.loaded {
			return nil, nil
		}
		return toggleFavoriteCmd(s.deps, s.id), nil

	case key.Matches(msg, keys.Delete):
		if !s.loaded {
			return nil, nil
		}
		prompt := fmt.Sprintf("Delete %q for good?", s.recipe.Title)
		return showModal(NewConfirmModal("Delete recipe", prompt, deleteRecipeCmd(s.deps, s.id))), nil
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return cmd, nil
}

// setContent re-renders the markdown body at the current width.
func (s *detailScreen) setContent() {
	width := s.viewport.Width
	if width <= 0 {
		width = 80
	}
	md := recipeMarkdown(
		s.recipe.Title,
		s.recipe.Description,
		s.recipe.Category,
		recipe.FormatCookTime(s.recipe.CookMinutes),
		s.recipe.Servings,
		s.recipe.Ingredients,
		s.recipe.Steps,
		s.recipe.Custom,
	)
	s.viewport.SetContent(renderMarkdown(md, width))
}

func (s *detailScreen) View(width, height int) string {
	if s.notFound {
		notice := lipgloss.JoinVertical(lipgloss.Center,
			errorStyle.Render("This recipe is gone."),
			"",
			dimStyle.Render("It may have been deleted on another device."),
			helpStyle.Render("press esc to go back"),
		)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, notice)
	}
	if s.err != nil {
		notice := lipgloss.JoinVertical(lipgloss.Center,
			errorStyle.Render(fmt.Sprintf("could not load recipe: %v", s.err)),
			helpStyle.Render("press r to retry, esc to go back"),
		)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, notice)
	}
	if !s.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			dimStyle.Render("loading recipe..."))
	}

	var badges []string
	if s.deps.Pantry.IsFavorite(s.id) {
		badges = append(badges, favoriteStyle.Render("♥ favorite"))
	}
	if s.recipe.Custom {
		badges = append(badges, customBadgeStyle.Render("✎ your recipe"))
	}
	badgeLine := strings.Join(badges, "  ")

	help := helpStyle.Render("e: edit | f: favorite | d: delete | esc: back")

	return lipgloss.JoinVertical(lipgloss.Left, badgeLine, s.viewport.View(), help)
}
