package tui

import (
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	mdMu sync.Mutex
	// Renderers are cached per wrap width. A fixed style avoids the
	// terminal background queries WithAutoStyle can block on.
	mdRenderers = map[int]*glamour.TermRenderer{}
)

// renderMarkdown renders md wrapped to width, falling back to the raw text
// when glamour fails.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	mdMu.Lock()
	r := mdRenderers[width]
	if r == nil {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			mdMu.Unlock()
			return md
		}
		mdRenderers[width] = rr
		r = rr
	}
	mdMu.Unlock()

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// recipeMarkdown formats a recipe as a markdown document for the detail
// screen.
func recipeMarkdown(title, description, category string, cookTime string, servings int, ingredients, steps []string, custom bool) string {
	var b strings.Builder

	b.WriteString("# " + title + "\n\n")
	if description != "" {
		b.WriteString(description + "\n\n")
	}

	var meta []string
	if category != "" {
		meta = append(meta, "**"+category+"**")
	}
	if cookTime != "" {
		meta = append(meta, cookTime)
	}
	if servings > 0 {
		meta = append(meta, "serves "+strconv.Itoa(servings))
	}
	if custom {
		meta = append(meta, "_your recipe_")
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, " · ") + "\n\n")
	}

	if len(ingredients) > 0 {
		b.WriteString("## Ingredients\n\n")
		for _, ing := range ingredients {
			b.WriteString("- " + ing + "\n")
		}
		b.WriteString("\n")
	}

	if len(steps) > 0 {
		b.WriteString("## Steps\n\n")
		for i, step := range steps {
			b.WriteString(strconv.Itoa(i+1) + ". " + step + "\n")
		}
	}

	return b.String()
}
