// Package apiclient implements recipe.Service over the basil HTTP API,
// so the TUI runs identically against a remote server or a local pantry.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/feastkit/basil/internal/catalog"
	"github.com/feastkit/basil/internal/recipe"
)

// DefaultTimeout bounds individual API requests.
const DefaultTimeout = 10 * time.Second

// Client talks to a basil server. It satisfies recipe.Service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the server at baseURL, e.g. "http://127.0.0.1:8044".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
}

// Health is the server's health report.
type Health struct {
	Status      string `json:"status"`
	Uptime      string `json:"uptime"`
	RecipeCount int    `json:"recipe_count"`
	Revision    int64  `json:"revision"`
}

func (c *Client) ListRecipes(ctx context.Context) ([]recipe.Recipe, error) {
	var out []recipe.Recipe
	err := c.do(ctx, http.MethodGet, "/api/recipes", nil, &out)
	return out, err
}

func (c *Client) GetRecipe(ctx context.Context, id string) (recipe.Recipe, error) {
	var out recipe.Recipe
	err := c.do(ctx, http.MethodGet, "/api/recipes/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) CreateRecipe(ctx context.Context, d recipe.Draft) (recipe.Recipe, error) {
	var out recipe.Recipe
	err := c.do(ctx, http.MethodPost, "/api/recipes", d, &out)
	return out, err
}

func (c *Client) UpdateRecipe(ctx context.Context, id string, d recipe.Draft) (recipe.Recipe, error) {
	var out recipe.Recipe
	err := c.do(ctx, http.MethodPut, "/api/recipes/"+url.PathEscape(id), d, &out)
	return out, err
}

func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/recipes/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Search(ctx context.Context, query, category string) ([]recipe.Recipe, error) {
	values := url.Values{}
	if query != "" {
		values.Set("q", query)
	}
	if category != "" {
		values.Set("category", category)
	}
	path := "/api/search"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var out []recipe.Recipe
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	var out []string
	err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out)
	return out, err
}

// Health fetches the server's health report.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	err := c.do(ctx, http.MethodGet, "/api/health", nil, &out)
	return out, err
}

// Events subscribes to the server's change feed. The returned channel
// closes when ctx is canceled or the connection drops.
func (c *Client) Events(ctx context.Context) (<-chan catalog.Change, error) {
	wsURL, err := c.eventsURL()
	if err != nil {
		return nil, err
	}
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("apiclient: dial events: %w", err)
	}
	if resp != nil {
		resp.Body.Close()
	}

	out := make(chan catalog.Change, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(out)
		for {
			var change catalog.Change
			if err := conn.ReadJSON(&change); err != nil {
				return
			}
			select {
			case out <- change:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		conn.Close()
	}()
	return out, nil
}

func (c *Client) eventsURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("apiclient: parse base URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("apiclient: unsupported scheme %q", u.Scheme)
	}
	u.Path = "/api/events"
	return u.String(), nil
}

// do performs one API request and unmarshals the response into dest.
func (c *Client) do(ctx context.Context, method, path string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return fmt.Errorf("apiclient: decode response: %w", err)
		}
	}
	return nil
}

// decodeError maps API error responses back onto the recipe sentinels so
// callers cannot tell this client from a local store.
func decodeError(resp *http.Response) error {
	if resp.StatusCode == http.StatusNotFound {
		return recipe.ErrNotFound
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		if resp.StatusCode == http.StatusBadRequest {
			return fmt.Errorf("%w: %s", recipe.ErrInvalid, body.Error)
		}
		return fmt.Errorf("apiclient: server error: %s", body.Error)
	}
	return fmt.Errorf("apiclient: unexpected status %s", resp.Status)
}
