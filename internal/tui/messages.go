package tui

import (
	"github.com/feastkit/basil/internal/catalog"
	"github.com/feastkit/basil/internal/nav"
	"github.com/feastkit/basil/internal/recipe"
)

// NavOp names a controller operation a screen can request.
type NavOp int

const (
	NavPush NavOp = iota
	NavBack
	NavReplace
	NavReset
)

// NavRequest is returned from a screen's Update to drive the navigation
// controller. Screens never touch the controller directly.
type NavRequest struct {
	Op     NavOp
	Route  nav.Route
	Params nav.Params
}

// Push requests pushing a new screen.
func Push(route nav.Route, params nav.Params) *NavRequest {
	return &NavRequest{Op: NavPush, Route: route, Params: params}
}

// Back requests popping the current screen.
func Back() *NavRequest {
	return &NavRequest{Op: NavBack}
}

// Replace requests replacing the current screen.
func Replace(route nav.Route, params nav.Params) *NavRequest {
	return &NavRequest{Op: NavReplace, Route: route, Params: params}
}

// Reset requests collapsing the stack to a single screen.
func Reset(route nav.Route, params nav.Params) *NavRequest {
	return &NavRequest{Op: NavReset, Route: route, Params: params}
}

// transitionDoneMsg ends the navigation transition lock.
type transitionDoneMsg struct{}

// recipesLoadedMsg carries a fetched recipe list back to the screen that
// asked for it. Screens ignore results tagged for another route.
type recipesLoadedMsg struct {
	route   nav.Route
	recipes []recipe.Recipe
	err     error
}

// recipeLoadedMsg carries a single fetched recipe.
type recipeLoadedMsg struct {
	id       string
	r        recipe.Recipe
	notFound bool
	err      error
}

// categoriesLoadedMsg carries the category set for the filter cycle.
type categoriesLoadedMsg struct {
	route      nav.Route
	categories []string
	err        error
}

// saveDoneMsg reports a create or update round trip.
type saveDoneMsg struct {
	r   recipe.Recipe
	err error
}

// deleteDoneMsg reports a delete round trip.
type deleteDoneMsg struct {
	id  string
	err error
}

// favoriteToggledMsg reports a favorite flip.
type favoriteToggledMsg struct {
	id string
	on bool
}

// pushEventMsg delivers one change from the server's push feed (or the
// local catalog watch).
type pushEventMsg struct {
	change catalog.Change
}

// eventsClosedMsg signals the push feed is gone.
type eventsClosedMsg struct{}

// statusExpiredMsg clears a transient status line message.
type statusExpiredMsg struct {
	seq int
}
