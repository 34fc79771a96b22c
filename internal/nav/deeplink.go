package nav

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
)

// DeepLinks is the bidirectional route/location table. Each linkable route
// owns one gorilla/mux path template ("/recipe/{id}"); Format renders an
// entry into a path and Parse inverts it.
type DeepLinks struct {
	router  *mux.Router
	byRoute map[Route]*mux.Route
}

// NewDeepLinks returns an empty table.
func NewDeepLinks() *DeepLinks {
	return &DeepLinks{
		router:  mux.NewRouter(),
		byRoute: make(map[Route]*mux.Route),
	}
}

// FromRegistry builds the table from every registered screen that declares
// a deep-link template.
func FromRegistry(reg *Registry) (*DeepLinks, error) {
	links := NewDeepLinks()
	for _, rt := range reg.Routes() {
		spec, err := reg.Lookup(rt)
		if err != nil {
			return nil, err
		}
		if spec.DeepLink == "" {
			continue
		}
		if err := links.Add(rt, spec.DeepLink); err != nil {
			return nil, err
		}
	}
	return links, nil
}

// Add registers template for route.
func (d *DeepLinks) Add(route Route, template string) error {
	if _, exists := d.byRoute[route]; exists {
		return fmt.Errorf("nav: deep link for %q already registered", string(route))
	}
	r := d.router.NewRoute().Name(string(route)).Path(template)
	if err := r.GetError(); err != nil {
		return fmt.Errorf("nav: deep link template %q: %w", template, err)
	}
	d.byRoute[route] = r
	return nil
}

// Format renders the deep link for route with params filling the template
// variables. Missing template or missing variables are errors.
func (d *DeepLinks) Format(route Route, params Params) (string, error) {
	r, ok := d.byRoute[route]
	if !ok {
		return "", fmt.Errorf("nav: route %q has no deep link", string(route))
	}
	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, k, v)
	}
	u, err := r.URL(pairs...)
	if err != nil {
		return "", fmt.Errorf("nav: format deep link for %q: %w", string(route), err)
	}
	return u.Path, nil
}

// Parse matches path against the table and returns the route plus the
// extracted params.
func (d *DeepLinks) Parse(path string) (Route, Params, error) {
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: path}}
	var match mux.RouteMatch
	if !d.router.Match(req, &match) || match.Route == nil {
		return "", nil, fmt.Errorf("nav: no route matches %q", path)
	}
	params := make(Params, len(match.Vars))
	for k, v := range match.Vars {
		params[k] = v
	}
	if len(params) == 0 {
		params = nil
	}
	return Route(match.Route.GetName()), params, nil
}
