package tui

import (
	"context"
	"errors"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/feastkit/basil/internal/nav"
	"github.com/feastkit/basil/internal/pantry"
	"github.com/feastkit/basil/internal/recipe"
)

// fetchTimeout bounds service calls issued from screen commands.
const fetchTimeout = 5 * time.Second

// ScreenModel is one mounted screen. The renderer keeps at most one alive;
// screens get every message the app does not consume and render into the
// content region between header and status line.
type ScreenModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *NavRequest)
	View(width, height int) string
}

// InputCapturer is implemented by screens that own the keyboard while a
// text field is focused. While capturing, global key bindings are off.
type InputCapturer interface {
	CapturingInput() bool
}

// ScreenDeps is what screens need to do their work. All fields are required;
// NewApp validates them once so screens never have to.
type ScreenDeps struct {
	Service recipe.Service
	Pantry  *pantry.Pantry
	Keys    KeyMap
	Logger  *log.Logger
}

// DefaultScreens returns the full screen table: identity, title,
// transition, gesture policy, and deep-link template per route.
func DefaultScreens() []nav.Screen {
	return []nav.Screen{
		{Route: nav.RouteWelcome, Title: "Welcome", Animation: nav.AnimFade, ShowHeader: false, DeepLink: "/welcome"},
		{Route: nav.RouteHome, Title: "Recipes", Animation: nav.AnimFade, ShowHeader: true, DeepLink: "/"},
		{Route: nav.RouteRecipeDetail, Title: "Recipe", Animation: nav.AnimSlideFromRight, GestureEnabled: true, ShowHeader: true, DeepLink: "/recipe/{id}"},
		{Route: nav.RouteMyFood, Title: "My Food", Animation: nav.AnimSlideFromRight, GestureEnabled: true, ShowHeader: true, DeepLink: "/my-food"},
		{Route: nav.RouteCustomRecipes, Title: "Custom Recipes", Animation: nav.AnimSlideFromRight, GestureEnabled: true, ShowHeader: true, DeepLink: "/my-food/custom"},
		{Route: nav.RouteRecipeForm, Title: "Recipe Form", Animation: nav.AnimSlideFromBottom, ShowHeader: true, DeepLink: "/my-food/custom/form"},
		{Route: nav.RouteFavorites, Title: "Favorites", Animation: nav.AnimSlideFromRight, GestureEnabled: true, ShowHeader: true, DeepLink: "/favorites"},
	}
}

// buildScreen constructs the screen model for an entry.
func buildScreen(deps ScreenDeps, e nav.Entry) ScreenModel {
	switch e.Route {
	case nav.RouteWelcome:
		return newWelcomeScreen(deps)
	case nav.RouteHome:
		return newHomeScreen(deps)
	case nav.RouteRecipeDetail:
		return newDetailScreen(deps, e.Params.Get("id"))
	case nav.RouteMyFood:
		return newMyFoodScreen(deps)
	case nav.RouteCustomRecipes:
		return newCustomRecipesScreen(deps)
	case nav.RouteRecipeForm:
		return newFormScreen(deps, e.Params.Get("id"))
	case nav.RouteFavorites:
		return newFavoritesScreen(deps)
	default:
		return nil
	}
}

// fetchRecipesCmd loads the full list for a list screen.
func fetchRecipesCmd(deps ScreenDeps, route nav.Route) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		recipes, err := deps.Service.ListRecipes(ctx)
		return recipesLoadedMsg{route: route, recipes: recipes, err: err}
	}
}

// searchRecipesCmd loads a filtered list.
func searchRecipesCmd(deps ScreenDeps, route nav.Route, query, category string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		recipes, err := deps.Service.Search(ctx, query, category)
		return recipesLoadedMsg{route: route, recipes: recipes, err: err}
	}
}

// fetchCategoriesCmd loads the category set.
func fetchCategoriesCmd(deps ScreenDeps, route nav.Route) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		cats, err := deps.Service.ListCategories(ctx)
		return categoriesLoadedMsg{route: route, categories: cats, err: err}
	}
}

// fetchRecipeCmd loads one recipe by id.
func fetchRecipeCmd(deps ScreenDeps, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		r, err := deps.Service.GetRecipe(ctx, id)
		if err != nil {
			if errors.Is(err, recipe.ErrNotFound) {
				return recipeLoadedMsg{id: id, notFound: true}
			}
			return recipeLoadedMsg{id: id, err: err}
		}
		return recipeLoadedMsg{id: id, r: r}
	}
}

// saveRecipeCmd creates or updates a recipe depending on whether id is set.
func saveRecipeCmd(deps ScreenDeps, id string, d recipe.Draft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		var (
			r   recipe.Recipe
			err error
		)
		if id == "" {
			r, err = deps.Service.CreateRecipe(ctx, d)
		} else {
			r, err = deps.Service.UpdateRecipe(ctx, id, d)
		}
		return saveDoneMsg{r: r, err: err}
	}
}

// deleteRecipeCmd deletes one recipe by id.
func deleteRecipeCmd(deps ScreenDeps, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return deleteDoneMsg{id: id, err: deps.Service.DeleteRecipe(ctx, id)}
	}
}

// toggleFavoriteCmd flips a favorite in the pantry.
func toggleFavoriteCmd(deps ScreenDeps, id string) tea.Cmd {
	return func() tea.Msg {
		on, err := deps.Pantry.ToggleFavorite(id)
		if err != nil {
			deps.Logger.Printf("tui: toggle favorite %s: %v", id, err)
		}
		return favoriteToggledMsg{id: id, on: on}
	}
}
