package nav

// Route identifies a screen. Routes are a closed set; navigation to a route
// that was never registered fails with UnknownRouteError.
type Route string

// The basil screen set.
const (
	RouteWelcome       Route = "Welcome"
	RouteHome          Route = "Home"
	RouteRecipeDetail  Route = "RecipeDetail"
	RouteMyFood        Route = "MyFood"
	RouteCustomRecipes Route = "CustomRecipes"
	RouteRecipeForm    Route = "RecipeForm"
	RouteFavorites     Route = "Favorites"
)

// Params carries per-entry navigation arguments. Values are strings so every
// entry can round-trip through a deep link.
type Params map[string]string

// Get returns the value for key, or "" when absent.
func (p Params) Get(key string) string {
	if p == nil {
		return ""
	}
	return p[key]
}

// Clone returns an independent copy. Clone of nil is nil.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Entry is one element of the navigation history: a route plus its params.
type Entry struct {
	Route  Route
	Params Params
}

// Animation names the transition effect a screen mounts with. The renderer
// treats it as a presentation hint; the controller only uses the shared
// fixed duration.
type Animation int

const (
	AnimNone Animation = iota
	AnimSlideFromRight
	AnimSlideFromLeft
	AnimSlideFromBottom
	AnimFade
)

func (a Animation) String() string {
	switch a {
	case AnimSlideFromRight:
		return "slide-from-right"
	case AnimSlideFromLeft:
		return "slide-from-left"
	case AnimSlideFromBottom:
		return "slide-from-bottom"
	case AnimFade:
		return "fade"
	default:
		return "none"
	}
}

// Screen describes one registered screen: identity, presentation hints, and
// its deep-link template (gorilla/mux syntax, empty when not linkable).
type Screen struct {
	Route          Route
	Title          string
	Animation      Animation
	GestureEnabled bool
	ShowHeader     bool
	DeepLink       string
}
