package recipe

import (
	"context"
	"errors"
)

// ErrNotFound is returned by every Service implementation when the
// requested recipe does not exist.
var ErrNotFound = errors.New("recipe not found")

// Service is the catalog operation contract shared by the remote API client
// and the local pantry-backed store. All calls are safe for concurrent use.
type Service interface {
	ListRecipes(ctx context.Context) ([]Recipe, error)
	GetRecipe(ctx context.Context, id string) (Recipe, error)
	CreateRecipe(ctx context.Context, d Draft) (Recipe, error)
	UpdateRecipe(ctx context.Context, id string, d Draft) (Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
	Search(ctx context.Context, query, category string) ([]Recipe, error)
	ListCategories(ctx context.Context) ([]string, error)
}
