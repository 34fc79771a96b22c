package nav

import "fmt"

// Registry maps routes to their screen descriptors. Registration happens
// once during startup; lookups at navigation time return UnknownRouteError
// for anything outside the registered set.
type Registry struct {
	screens map[Route]Screen
	order   []Route
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{screens: make(map[Route]Screen)}
}

// Register adds a screen descriptor. Empty and duplicate routes are
// configuration mistakes and fail loudly.
func (r *Registry) Register(s Screen) error {
	if s.Route == "" {
		return fmt.Errorf("nav: register: empty route")
	}
	if _, exists := r.screens[s.Route]; exists {
		return fmt.Errorf("nav: register: duplicate route %q", string(s.Route))
	}
	r.screens[s.Route] = s
	r.order = append(r.order, s.Route)
	return nil
}

// Lookup returns the descriptor for route.
func (r *Registry) Lookup(route Route) (Screen, error) {
	s, ok := r.screens[route]
	if !ok {
		return Screen{}, &UnknownRouteError{Route: route}
	}
	return s, nil
}

// Routes returns all registered routes in registration order.
func (r *Registry) Routes() []Route {
	return append([]Route(nil), r.order...)
}
