package catalog

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/feastkit/basil/internal/recipe"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	return New(log.New(io.Discard, "", 0))
}

func draft(title, category string) recipe.Draft {
	return recipe.Draft{
		Title:       title,
		Category:    category,
		Ingredients: []string{"thing one", "thing two"},
		Steps:       []string{"combine", "cook"},
		CookMinutes: 20,
		Servings:    2,
	}
}

func TestCatalog_CRUD(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t)
	created, err := c.Create(draft("Omelette", "breakfast"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created recipe has no ID")
	}
	if created.Category != "Breakfast" {
		t.Errorf("Category = %q, want normalized Breakfast", created.Category)
	}
	if !created.Custom {
		t.Error("created recipe not marked custom")
	}

	got, err := c.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Omelette" {
		t.Errorf("Title = %q", got.Title)
	}

	updated, err := c.Update(created.ID, draft("Cheese Omelette", "breakfast"))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Cheese Omelette" {
		t.Errorf("updated Title = %q", updated.Title)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Error("UpdatedAt before CreatedAt")
	}

	if err := c.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(created.ID); !errors.Is(err, recipe.ErrNotFound) {
		t.Errorf("Get after delete: err = %v, want ErrNotFound", err)
	}
}

func TestCatalog_NotFound(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t)
	if _, err := c.Get("nope"); !errors.Is(err, recipe.ErrNotFound) {
		t.Errorf("Get: err = %v, want ErrNotFound", err)
	}
	if _, err := c.Update("nope", draft("X", "")); !errors.Is(err, recipe.ErrNotFound) {
		t.Errorf("Update: err = %v, want ErrNotFound", err)
	}
	if err := c.Delete("nope"); !errors.Is(err, recipe.ErrNotFound) {
		t.Errorf("Delete: err = %v, want ErrNotFound", err)
	}
}

func TestCatalog_CreateRejectsInvalid(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t)
	if _, err := c.Create(recipe.Draft{Title: "  "}); !errors.Is(err, recipe.ErrInvalid) {
		t.Errorf("Create blank title: err = %v, want ErrInvalid", err)
	}
	if c.Count() != 0 {
		t.Error("invalid draft was stored")
	}
}

func TestCatalog_SearchAndCategories(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t)
	mustCreate := func(d recipe.Draft) recipe.Recipe {
		t.Helper()
		r, err := c.Create(d)
		if err != nil {
			t.Fatalf("Create(%q): %v", d.Title, err)
		}
		return r
	}
	mustCreate(recipe.Draft{Title: "Tomato Soup", Category: "dinner", Ingredients: []string{"tomatoes", "basil"}})
	mustCreate(recipe.Draft{Title: "Green Salad", Category: "lunch", Ingredients: []string{"lettuce"}})
	mustCreate(recipe.Draft{Title: "Bruschetta", Category: "snack", Description: "grilled bread with tomato"})

	if got := c.Search("tomato", ""); len(got) != 2 {
		t.Errorf("Search(tomato) = %d results, want 2", len(got))
	}
	if got := c.Search("tomato", "Dinner"); len(got) != 1 || got[0].Title != "Tomato Soup" {
		t.Errorf("Search(tomato, Dinner) = %v", got)
	}
	if got := c.Search("", "Lunch"); len(got) != 1 || got[0].Title != "Green Salad" {
		t.Errorf("Search(, Lunch) = %v", got)
	}
	if got := c.Search("", ""); len(got) != 3 {
		t.Errorf("empty search = %d results, want all 3", len(got))
	}
	if got := c.Search("zanzibar", ""); len(got) != 0 {
		t.Errorf("Search(zanzibar) = %v, want none", got)
	}

	cats := c.Categories()
	want := []string{"Dinner", "Lunch", "Snack"}
	if len(cats) != len(want) {
		t.Fatalf("Categories = %v, want %v", cats, want)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Fatalf("Categories = %v, want %v", cats, want)
		}
	}
}

func TestCatalog_ListKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t)
	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		if _, err := c.Create(recipe.Draft{Title: title}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	list := c.List()
	for i, title := range titles {
		if list[i].Title != title {
			t.Fatalf("List order = %v", list)
		}
	}
}

func TestCatalog_WatchDeliversChanges(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t)
	ch, cancel := c.Watch()
	defer cancel()

	created, err := c.Create(draft("Stew", "dinner"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := c.Update(created.ID, draft("Beef Stew", "dinner")); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := c.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	wantKinds := []ChangeKind{ChangeAdded, ChangeUpdated, ChangeDeleted}
	for _, want := range wantKinds {
		select {
		case change := <-ch:
			if change.Kind != want {
				t.Fatalf("change = %s, want %s", change.Kind, want)
			}
			if change.Recipe.ID != created.ID {
				t.Fatalf("change recipe = %q, want %q", change.Recipe.ID, created.ID)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestCatalog_WatchCancelCloses(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t)
	ch, cancel := c.Watch()
	cancel()
	cancel() // idempotent

	if _, open := <-ch; open {
		t.Error("channel still open after cancel")
	}

	// mutations after cancel must not panic on the closed channel
	if _, err := c.Create(draft("After", "snack")); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestCatalog_SlowWatcherDropsInsteadOfBlocking(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t)
	_, cancel := c.Watch()
	defer cancel()

	// more mutations than the watch buffer, with nobody draining
	for i := 0; i < watchBuffer+5; i++ {
		if _, err := c.Create(recipe.Draft{Title: "Filler"}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if c.Count() != watchBuffer+5 {
		t.Errorf("Count = %d, want %d", c.Count(), watchBuffer+5)
	}
}

func TestCatalog_SeedAndRevision(t *testing.T) {
	t.Parallel()

	c := newTestCatalog(t)
	seed, err := DefaultSeed()
	if err != nil {
		t.Fatalf("DefaultSeed: %v", err)
	}
	if len(seed) == 0 {
		t.Fatal("embedded seed is empty")
	}

	before := c.Revision()
	added := c.Seed(seed)
	if added != len(seed) {
		t.Errorf("Seed added %d, want %d", added, len(seed))
	}
	if c.Revision() == before {
		t.Error("revision unchanged after seed")
	}
	if c.Seed(c.List()) != 0 {
		t.Error("re-seeding duplicated recipes")
	}
}

func TestLoadSeedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.yml")
	body := "recipes:\n  - title: Toast\n    category: Breakfast\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	recipes, err := LoadSeedFile(path)
	if err != nil {
		t.Fatalf("LoadSeedFile: %v", err)
	}
	if len(recipes) != 1 || recipes[0].Title != "Toast" {
		t.Errorf("recipes = %v", recipes)
	}

	if _, err := LoadSeedFile(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("missing seed file succeeded")
	}
}
