package apiclient

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/feastkit/basil/internal/catalog"
	"github.com/feastkit/basil/internal/httpserver"
	"github.com/feastkit/basil/internal/pantry"
	"github.com/feastkit/basil/internal/push"
	"github.com/feastkit/basil/internal/recipe"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestClient stands up the real API stack in-process: pantry store,
// change hub, gin routes, and a client pointed at them.
func newTestClient(t *testing.T) (*Client, *pantry.Store) {
	t.Helper()
	logger := log.New(io.Discard, "", 0)

	p, err := pantry.Open(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	seed := []recipe.Recipe{
		{Title: "Toast", Category: "Breakfast", Ingredients: []string{"bread"}},
		{Title: "Lemonade", Category: "Drink", Ingredients: []string{"lemon", "water"}},
	}
	store := pantry.NewStore(seed, p, logger)

	changes, cancelWatch := store.Catalog().Watch()
	hub := push.NewHub(changes, logger)
	if err := hub.Start(); err != nil {
		t.Fatalf("hub start: %v", err)
	}

	srv := httpserver.NewServer("", store, hub)
	ts := httptest.NewServer(srv.Handler())

	t.Cleanup(func() {
		ts.Close()
		hub.Stop()
		cancelWatch()
	})
	return New(ts.URL), store
}

func TestClient_ListAndGet(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)

	all, err := client.ListRecipes(ctx)
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListRecipes returned %d, want 2", len(all))
	}

	got, err := client.GetRecipe(ctx, all[0].ID)
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if got.Title != all[0].Title {
		t.Errorf("Title = %q, want %q", got.Title, all[0].Title)
	}
}

func TestClient_GetNotFound(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.GetRecipe(context.Background(), "no-such-id")
	if !errors.Is(err, recipe.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestClient_CreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)

	created, err := client.CreateRecipe(ctx, recipe.Draft{
		Title:       "Herb Butter",
		Ingredients: []string{"butter", "parsley"},
	})
	if err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}
	if created.ID == "" || !created.Custom {
		t.Fatalf("created = %+v, want custom recipe with ID", created)
	}

	d := created.Draft()
	d.Description = "for steak"
	updated, err := client.UpdateRecipe(ctx, created.ID, d)
	if err != nil {
		t.Fatalf("UpdateRecipe: %v", err)
	}
	if updated.Description != "for steak" {
		t.Errorf("Description = %q", updated.Description)
	}

	if err := client.DeleteRecipe(ctx, created.ID); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}
	if _, err := client.GetRecipe(ctx, created.ID); !errors.Is(err, recipe.ErrNotFound) {
		t.Errorf("get after delete = %v, want ErrNotFound", err)
	}
}

func TestClient_CreateInvalid(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.CreateRecipe(context.Background(), recipe.Draft{Title: "  "})
	if !errors.Is(err, recipe.ErrInvalid) {
		t.Errorf("err = %v, want ErrInvalid", err)
	}
}

func TestClient_SearchAndCategories(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)

	hits, err := client.Search(ctx, "lemon", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Title != "Lemonade" {
		t.Errorf("Search = %v", hits)
	}

	hits, err = client.Search(ctx, "", "Breakfast")
	if err != nil {
		t.Fatalf("Search by category: %v", err)
	}
	if len(hits) != 1 || hits[0].Title != "Toast" {
		t.Errorf("category search = %v", hits)
	}

	cats, err := client.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 2 {
		t.Errorf("ListCategories = %v", cats)
	}
}

func TestClient_Health(t *testing.T) {
	client, _ := newTestClient(t)

	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if health.Status != "ok" {
		t.Errorf("Status = %q, want ok", health.Status)
	}
	if health.RecipeCount != 2 {
		t.Errorf("RecipeCount = %d, want 2", health.RecipeCount)
	}
}

func TestClient_Events(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client, store := newTestClient(t)

	events, err := client.Events(ctx)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}

	created, err := client.CreateRecipe(ctx, recipe.Draft{Title: "Pesto"})
	if err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	select {
	case change := <-events:
		if change.Kind != catalog.ChangeAdded {
			t.Errorf("Kind = %q, want %q", change.Kind, catalog.ChangeAdded)
		}
		if change.Recipe.ID != created.ID {
			t.Errorf("Recipe.ID = %q, want %q", change.Recipe.ID, created.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no event within deadline")
	}

	if err := store.DeleteRecipe(ctx, created.ID); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}
	select {
	case change := <-events:
		if change.Kind != catalog.ChangeDeleted {
			t.Errorf("Kind = %q, want %q", change.Kind, catalog.ChangeDeleted)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no delete event within deadline")
	}
}

func TestClient_EventsChannelClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client, _ := newTestClient(t)

	events, err := client.Events(ctx)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	cancel()

	select {
	case _, ok := <-events:
		if ok {
			t.Error("got event after cancel, want closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
