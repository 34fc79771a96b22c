package pantry

import (
	"context"
	"errors"
	"testing"

	"github.com/feastkit/basil/internal/recipe"
)

func testSeed() []recipe.Recipe {
	return []recipe.Recipe{
		{Title: "Toast", Category: "Breakfast", Ingredients: []string{"bread"}},
		{Title: "Lemonade", Category: "Drink", Ingredients: []string{"lemon", "water"}},
	}
}

func openStore(t *testing.T, dir string) *Store {
	t.Helper()
	p, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return NewStore(testSeed(), p, testLogger())
}

func findByTitle(t *testing.T, s *Store, title string) recipe.Recipe {
	t.Helper()
	all, err := s.ListRecipes(context.Background())
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	for _, r := range all {
		if r.Title == title {
			return r
		}
	}
	t.Fatalf("recipe %q not in store", title)
	return recipe.Recipe{}
}

func TestStore_SeedsBuiltins(t *testing.T) {
	t.Parallel()

	s := openStore(t, t.TempDir())
	all, err := s.ListRecipes(context.Background())
	if err != nil {
		t.Fatalf("ListRecipes: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("seeded %d recipes, want 2", len(all))
	}
	for _, r := range all {
		if r.Custom {
			t.Errorf("builtin %q marked custom", r.Title)
		}
	}
}

func TestStore_CreateSurvivesReload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	s := openStore(t, dir)

	created, err := s.CreateRecipe(ctx, recipe.Draft{Title: "Herb Butter"})
	if err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}

	s2 := openStore(t, dir)
	got, err := s2.GetRecipe(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetRecipe after reload: %v", err)
	}
	if !got.Custom {
		t.Error("created recipe lost custom flag")
	}
	if got.Title != "Herb Butter" {
		t.Errorf("Title = %q", got.Title)
	}
}

func TestStore_EditedBuiltinWinsAfterReload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	s := openStore(t, dir)

	toast := findByTitle(t, s, "Toast")
	d := toast.Draft()
	d.Title = "French Toast"
	if _, err := s.UpdateRecipe(ctx, toast.ID, d); err != nil {
		t.Fatalf("UpdateRecipe: %v", err)
	}

	s2 := openStore(t, dir)
	got, err := s2.GetRecipe(ctx, toast.ID)
	if err != nil {
		t.Fatalf("GetRecipe after reload: %v", err)
	}
	if got.Title != "French Toast" {
		t.Errorf("Title = %q, want French Toast", got.Title)
	}
	if !got.Custom {
		t.Error("edited builtin not marked custom")
	}
	all, _ := s2.ListRecipes(ctx)
	if len(all) != 2 {
		t.Errorf("%d recipes after reload, want 2 (no duplicate seed)", len(all))
	}
}

func TestStore_DeletedBuiltinStaysGone(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	s := openStore(t, dir)

	toast := findByTitle(t, s, "Toast")
	if err := s.DeleteRecipe(ctx, toast.ID); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}

	s2 := openStore(t, dir)
	if _, err := s2.GetRecipe(ctx, toast.ID); !errors.Is(err, recipe.ErrNotFound) {
		t.Fatalf("deleted builtin came back: %v", err)
	}
	all, _ := s2.ListRecipes(ctx)
	if len(all) != 1 {
		t.Errorf("%d recipes after reload, want 1", len(all))
	}
}

func TestStore_DeleteDropsFavorite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	p, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s := NewStore(testSeed(), p, testLogger())

	toast := findByTitle(t, s, "Toast")
	if _, err := p.ToggleFavorite(toast.ID); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if err := s.DeleteRecipe(ctx, toast.ID); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}
	if p.IsFavorite(toast.ID) {
		t.Error("favorite survived delete")
	}
}

func TestStore_SearchAndCategories(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := openStore(t, t.TempDir())

	hits, err := s.Search(ctx, "lemon", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Title != "Lemonade" {
		t.Errorf("Search = %v", hits)
	}

	cats, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != 2 {
		t.Errorf("Categories = %v", cats)
	}
}
