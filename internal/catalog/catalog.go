package catalog

import (
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/feastkit/basil/internal/recipe"
)

// ChangeKind names a catalog mutation. The values are the wire event types
// sent over the push channel.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "recipeAdded"
	ChangeUpdated ChangeKind = "recipeUpdated"
	ChangeDeleted ChangeKind = "recipeDeleted"
)

// Change describes one catalog mutation.
type Change struct {
	Kind   ChangeKind    `json:"type"`
	Recipe recipe.Recipe `json:"recipe"`
}

const watchBuffer = 16

// Catalog is the in-memory recipe store behind the HTTP API and the local
// client mode. All methods are safe for concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	byID     map[string]recipe.Recipe
	order    []string
	watchers map[chan Change]struct{}

	revision atomic.Int64
	logger   *log.Logger
}

// New returns an empty catalog. logger defaults to log.Default.
func New(logger *log.Logger) *Catalog {
	if logger == nil {
		logger = log.Default()
	}
	return &Catalog{
		byID:     make(map[string]recipe.Recipe),
		order:    make([]string, 0),
		watchers: make(map[chan Change]struct{}),
		logger:   logger,
	}
}

// seedNamespace derives stable IDs for seed entries that carry none, so a
// reseeded catalog keeps the same IDs run after run (deep links and
// favorites survive restarts).
var seedNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("basil.seed"))

// Seed loads recipes in bulk without emitting changes. Entries without an
// ID get a stable one derived from the title. Returns the number of
// recipes added.
func (c *Catalog) Seed(recipes []recipe.Recipe) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	added := 0
	for _, r := range recipes {
		if r.ID == "" {
			r.ID = uuid.NewSHA1(seedNamespace, []byte(r.Title)).String()
		}
		if _, exists := c.byID[r.ID]; exists {
			continue
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = time.Now().UTC()
		}
		if r.UpdatedAt.IsZero() {
			r.UpdatedAt = r.CreatedAt
		}
		c.byID[r.ID] = r
		c.order = append(c.order, r.ID)
		added++
	}
	if added > 0 {
		c.revision.Inc()
	}
	return added
}

// List returns every recipe in insertion order.
func (c *Catalog) List() []recipe.Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]recipe.Recipe, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Get returns one recipe by ID.
func (c *Catalog) Get(id string) (recipe.Recipe, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.byID[id]
	if !ok {
		return recipe.Recipe{}, recipe.ErrNotFound
	}
	return r, nil
}

// Create validates and stores a new recipe built from d.
func (c *Catalog) Create(d recipe.Draft) (recipe.Recipe, error) {
	d = recipe.Normalize(d)
	if err := recipe.Validate(d); err != nil {
		return recipe.Recipe{}, err
	}

	now := time.Now().UTC()
	r := recipe.Recipe{
		ID:          uuid.NewString(),
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Ingredients: d.Ingredients,
		Steps:       d.Steps,
		CookMinutes: d.CookMinutes,
		Servings:    d.Servings,
		Custom:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	c.mu.Lock()
	c.byID[r.ID] = r
	c.order = append(c.order, r.ID)
	c.revision.Inc()
	c.mu.Unlock()

	c.notify(Change{Kind: ChangeAdded, Recipe: r})
	return r, nil
}

// Update validates d and overwrites the editable fields of the recipe id.
func (c *Catalog) Update(id string, d recipe.Draft) (recipe.Recipe, error) {
	d = recipe.Normalize(d)
	if err := recipe.Validate(d); err != nil {
		return recipe.Recipe{}, err
	}

	c.mu.Lock()
	r, ok := c.byID[id]
	if !ok {
		c.mu.Unlock()
		return recipe.Recipe{}, recipe.ErrNotFound
	}
	r.Title = d.Title
	r.Description = d.Description
	r.Category = d.Category
	r.Ingredients = d.Ingredients
	r.Steps = d.Steps
	r.CookMinutes = d.CookMinutes
	r.Servings = d.Servings
	// an edited recipe counts as the user's own from here on
	r.Custom = true
	r.UpdatedAt = time.Now().UTC()
	c.byID[id] = r
	c.revision.Inc()
	c.mu.Unlock()

	c.notify(Change{Kind: ChangeUpdated, Recipe: r})
	return r, nil
}

// Delete removes the recipe id.
func (c *Catalog) Delete(id string) error {
	c.mu.Lock()
	r, ok := c.byID[id]
	if !ok {
		c.mu.Unlock()
		return recipe.ErrNotFound
	}
	delete(c.byID, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	c.revision.Inc()
	c.mu.Unlock()

	c.notify(Change{Kind: ChangeDeleted, Recipe: r})
	return nil
}

// Search returns recipes whose title, description, or ingredients contain
// query (case-insensitive), optionally narrowed to one category. Empty
// query matches everything.
func (c *Catalog) Search(query, category string) []recipe.Recipe {
	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.TrimSpace(category)

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]recipe.Recipe, 0)
	for _, id := range c.order {
		r := c.byID[id]
		if category != "" && !strings.EqualFold(r.Category, category) {
			continue
		}
		if query != "" && !matches(r, query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(r recipe.Recipe, query string) bool {
	if strings.Contains(strings.ToLower(r.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description), query) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), query) {
			return true
		}
	}
	return false
}

// Categories returns the distinct categories in use, sorted.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, r := range c.byID {
		if r.Category == "" {
			continue
		}
		seen[r.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of stored recipes.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Revision returns the mutation counter, for health reporting and cheap
// change detection.
func (c *Catalog) Revision() int64 {
	return c.revision.Load()
}

// Watch subscribes to catalog changes. The cancel func unsubscribes and
// closes the channel. A subscriber that stops draining loses events rather
// than blocking mutations.
func (c *Catalog) Watch() (<-chan Change, func()) {
	ch := make(chan Change, watchBuffer)

	c.mu.Lock()
	c.watchers[ch] = struct{}{}
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		if _, ok := c.watchers[ch]; ok {
			delete(c.watchers, ch)
			close(ch)
		}
		c.mu.Unlock()
	}
	return ch, cancel
}

func (c *Catalog) notify(change Change) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for ch := range c.watchers {
		select {
		case ch <- change:
		default:
			c.logger.Printf("catalog: watcher lagging, dropped %s", change.Kind)
		}
	}
}
