package pantry

import (
	"context"
	"log"

	"github.com/feastkit/basil/internal/catalog"
	"github.com/feastkit/basil/internal/recipe"
)

// Store is the local-mode recipe service: a catalog assembled from the
// pantry's custom recipes plus the built-in seed, with every mutation
// persisted back to the pantry file. It satisfies recipe.Service so the
// TUI cannot tell it from the remote API client.
type Store struct {
	catalog *catalog.Catalog
	pantry  *Pantry
	logger  *log.Logger
}

// NewStore builds the local catalog. Custom recipes load first so an
// edited copy of a built-in wins over the seed version; recipes the user
// deleted stay deleted through the tombstone list.
func NewStore(seed []recipe.Recipe, p *Pantry, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	cat := catalog.New(logger)
	cat.Seed(p.Custom())
	cat.Seed(seed)
	for _, id := range p.Removed() {
		if err := cat.Delete(id); err != nil {
			// seed no longer carries it; stale tombstone
			continue
		}
	}
	return &Store{catalog: cat, pantry: p, logger: logger}
}

// Catalog exposes the underlying catalog for change watching.
func (s *Store) Catalog() *catalog.Catalog {
	return s.catalog
}

// Count reports how many recipes the store holds.
func (s *Store) Count() int { return s.catalog.Count() }

// Revision reports the catalog revision, bumped on every mutation.
func (s *Store) Revision() int64 { return s.catalog.Revision() }

func (s *Store) ListRecipes(_ context.Context) ([]recipe.Recipe, error) {
	return s.catalog.List(), nil
}

func (s *Store) GetRecipe(_ context.Context, id string) (recipe.Recipe, error) {
	return s.catalog.Get(id)
}

func (s *Store) CreateRecipe(_ context.Context, d recipe.Draft) (recipe.Recipe, error) {
	r, err := s.catalog.Create(d)
	if err != nil {
		return recipe.Recipe{}, err
	}
	s.persistCustom()
	return r, nil
}

func (s *Store) UpdateRecipe(_ context.Context, id string, d recipe.Draft) (recipe.Recipe, error) {
	r, err := s.catalog.Update(id, d)
	if err != nil {
		return recipe.Recipe{}, err
	}
	s.persistCustom()
	return r, nil
}

func (s *Store) DeleteRecipe(_ context.Context, id string) error {
	r, err := s.catalog.Get(id)
	if err != nil {
		return err
	}
	if err := s.catalog.Delete(id); err != nil {
		return err
	}
	if !r.Custom {
		if err := s.pantry.MarkRemoved(id); err != nil {
			s.logger.Printf("pantry: tombstone %s: %v", id, err)
		}
	}
	if err := s.pantry.RemoveFavorite(id); err != nil {
		s.logger.Printf("pantry: drop favorite %s: %v", id, err)
	}
	s.persistCustom()
	return nil
}

func (s *Store) Search(_ context.Context, query, category string) ([]recipe.Recipe, error) {
	return s.catalog.Search(query, category), nil
}

func (s *Store) ListCategories(_ context.Context) ([]string, error) {
	return s.catalog.Categories(), nil
}

// persistCustom writes the catalog's custom recipes back to the pantry.
func (s *Store) persistCustom() {
	var customs []recipe.Recipe
	for _, r := range s.catalog.List() {
		if r.Custom {
			customs = append(customs, r)
		}
	}
	if err := s.pantry.SetCustom(customs); err != nil {
		s.logger.Printf("pantry: persist custom recipes: %v", err)
	}
}
