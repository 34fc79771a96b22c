package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/feastkit/basil/internal/recipe"
)

//go:embed seed.yml
var defaultSeed []byte

type seedFile struct {
	Recipes []recipe.Recipe `yaml:"recipes"`
}

// DefaultSeed returns the recipes embedded in the binary.
func DefaultSeed() ([]recipe.Recipe, error) {
	return parseSeed(defaultSeed)
}

// LoadSeedFile reads a seed catalog from a YAML file on disk.
func LoadSeedFile(path string) ([]recipe.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read seed: %w", err)
	}
	return parseSeed(data)
}

func parseSeed(data []byte) ([]recipe.Recipe, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog: parse seed: %w", err)
	}
	for i, r := range f.Recipes {
		if r.Title == "" {
			return nil, fmt.Errorf("catalog: seed recipe %d has no title", i)
		}
	}
	return f.Recipes, nil
}
