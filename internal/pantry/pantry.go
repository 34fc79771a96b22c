// Package pantry persists the client-side state of basil: custom recipes,
// favorites, and the last visited location. Everything lives in small JSON
// files under one state directory; loads are best-effort and writes go
// through a temp file rename so a crash cannot leave a torn file.
package pantry

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/feastkit/basil/internal/recipe"
)

const (
	pantryFileName = "pantry.json"

	fileMode = 0644
	dirMode  = 0755
)

// File is the on-disk pantry document. Removed holds IDs of built-in
// recipes the user deleted, so they stay gone across restarts.
type File struct {
	Version   int             `json:"version"`
	Custom    []recipe.Recipe `json:"custom"`
	Favorites []string        `json:"favorites"`
	Removed   []string        `json:"removed,omitempty"`
}

// Pantry owns the pantry file. Methods are safe for concurrent use.
type Pantry struct {
	dir    string
	logger *log.Logger

	mu   sync.Mutex
	data File
}

// Open loads the pantry under dir, creating the directory when needed.
// A missing file means a fresh pantry; a corrupt one is logged and replaced
// on the next save rather than aborting startup.
func Open(dir string, logger *log.Logger) (*Pantry, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, fmt.Errorf("pantry: create state dir: %w", err)
	}

	p := &Pantry{dir: dir, logger: logger, data: File{Version: 1}}

	raw, err := os.ReadFile(p.Path())
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pantry: read: %w", err)
	}
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		logger.Printf("pantry: corrupt state file, starting fresh: %v", err)
		return p, nil
	}
	if f.Version == 0 {
		f.Version = 1
	}
	p.data = f
	return p, nil
}

// Path returns the pantry file location.
func (p *Pantry) Path() string {
	return filepath.Join(p.dir, pantryFileName)
}

// Dir returns the state directory.
func (p *Pantry) Dir() string {
	return p.dir
}

// Custom returns a copy of the stored custom recipes.
func (p *Pantry) Custom() []recipe.Recipe {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]recipe.Recipe(nil), p.data.Custom...)
}

// SetCustom replaces the stored custom recipes and persists.
func (p *Pantry) SetCustom(recipes []recipe.Recipe) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data.Custom = append([]recipe.Recipe(nil), recipes...)
	return p.save()
}

// Favorites returns the favorite recipe IDs in the order they were added.
func (p *Pantry) Favorites() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.data.Favorites...)
}

// IsFavorite reports whether id is marked favorite.
func (p *Pantry) IsFavorite(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, fav := range p.data.Favorites {
		if fav == id {
			return true
		}
	}
	return false
}

// ToggleFavorite flips the favorite mark for id, persists, and returns the
// new state.
func (p *Pantry) ToggleFavorite(id string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, fav := range p.data.Favorites {
		if fav == id {
			p.data.Favorites = append(p.data.Favorites[:i], p.data.Favorites[i+1:]...)
			return false, p.save()
		}
	}
	p.data.Favorites = append(p.data.Favorites, id)
	return true, p.save()
}

// Removed returns the tombstoned built-in recipe IDs.
func (p *Pantry) Removed() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.data.Removed...)
}

// MarkRemoved tombstones a built-in recipe ID and persists.
func (p *Pantry) MarkRemoved(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, existing := range p.data.Removed {
		if existing == id {
			return nil
		}
	}
	p.data.Removed = append(p.data.Removed, id)
	return p.save()
}

// RemoveFavorite drops id from the favorites if present.
func (p *Pantry) RemoveFavorite(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, fav := range p.data.Favorites {
		if fav == id {
			p.data.Favorites = append(p.data.Favorites[:i], p.data.Favorites[i+1:]...)
			return p.save()
		}
	}
	return nil
}

// save writes the pantry atomically. Callers hold p.mu.
func (p *Pantry) save() error {
	return writeJSONFile(p.Path(), p.data)
}

// writeJSONFile marshals v and renames a temp file over path.
func writeJSONFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("pantry: marshal: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, fileMode); err != nil {
		return fmt.Errorf("pantry: write: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("pantry: rename: %w", err)
	}
	return nil
}
