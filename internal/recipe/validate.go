package recipe

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalid wraps all draft validation failures so callers can map them to
// one response class.
var ErrInvalid = errors.New("invalid recipe")

// Validate checks a draft after normalization. Title is the only required
// field; numeric fields must not be negative.
func Validate(d Draft) error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalid)
	}
	if d.CookMinutes < 0 {
		return fmt.Errorf("%w: cook time cannot be negative", ErrInvalid)
	}
	if d.Servings < 0 {
		return fmt.Errorf("%w: servings cannot be negative", ErrInvalid)
	}
	return nil
}

// Normalize cleans free-form draft input: trims text fields, drops blank
// ingredients and steps, defaults servings, and canonicalizes the category.
func Normalize(d Draft) Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = NormalizeCategory(d.Category)
	d.Ingredients = cleanLines(d.Ingredients)
	d.Steps = cleanLines(d.Steps)
	if d.Servings == 0 {
		d.Servings = DefaultServings
	}
	return d
}

// NormalizeCategory maps input onto the known category spellings when it
// matches one case-insensitively, otherwise title-cases the input. Empty
// input becomes DefaultCategory.
func NormalizeCategory(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultCategory
	}
	for _, known := range KnownCategories {
		if strings.EqualFold(s, known) {
			return known
		}
	}
	return titleCase(s)
}

func cleanLines(in []string) []string {
	out := make([]string, 0, len(in))
	for _, line := range in {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// titleCase upper-cases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
