package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/feastkit/basil/internal/recipe"
)

// recipeList is the shared scrolling list used by the browse screens.
// Selection is kept stable across refreshes by recipe ID.
type recipeList struct {
	items  []recipe.Recipe
	cursor int
	offset int
}

func (l *recipeList) setItems(items []recipe.Recipe) {
	var selectedID string
	if r, ok := l.selected(); ok {
		selectedID = r.ID
	}
	l.items = items
	if selectedID != "" {
		for i, r := range items {
			if r.ID == selectedID {
				l.cursor = i
				return
			}
		}
	}
	l.clamp()
}

func (l *recipeList) selected() (recipe.Recipe, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return recipe.Recipe{}, false
	}
	return l.items[l.cursor], true
}

func (l *recipeList) move(delta int) {
	l.cursor += delta
	l.clamp()
}

func (l *recipeList) toTop() {
	l.cursor = 0
	l.clamp()
}

func (l *recipeList) toBottom() {
	l.cursor = len(l.items) - 1
	l.clamp()
}

func (l *recipeList) clamp() {
	if l.cursor >= len(l.items) {
		l.cursor = len(l.items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

// scrollTo keeps the cursor inside the visible window of height rows.
func (l *recipeList) scrollTo(height int) {
	if height < 1 {
		height = 1
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+height {
		l.offset = l.cursor - height + 1
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// render draws rows rows of the list. isFavorite may be nil.
func (l *recipeList) render(width, height int, isFavorite func(id string) bool) string {
	if len(l.items) == 0 {
		return helpStyle.Render("No recipes here yet.")
	}
	l.scrollTo(height)

	var lines []string
	end := l.offset + height
	if end > len(l.items) {
		end = len(l.items)
	}
	for i := l.offset; i < end; i++ {
		lines = append(lines, l.renderRow(i, width, isFavorite))
	}
	return strings.Join(lines, "\n")
}

func (l *recipeList) renderRow(i, width int, isFavorite func(id string) bool) string {
	r := l.items[i]

	dot := lipgloss.NewStyle().Foreground(categoryColor(r.Category)).Render("●")

	heart := " "
	if isFavorite != nil && isFavorite(r.ID) {
		heart = favoriteStyle.Render("♥")
	}

	badge := ""
	if r.Custom {
		badge = customBadgeStyle.Render(" ✎")
	}

	metaText := r.Category
	if ct := recipe.FormatCookTime(r.CookMinutes); ct != "" {
		metaText += " · " + ct
	}
	meta := dimStyle.Render(" " + metaText)

	title := r.Title
	maxTitle := width - lipgloss.Width(meta) - 8
	if maxTitle > 0 && len(title) > maxTitle {
		title = title[:maxTitle-1] + "…"
	}

	style := rowStyle
	cursor := "  "
	if i == l.cursor {
		style = selectedRowStyle
		cursor = "> "
	}

	return cursor + dot + " " + heart + " " + style.Render(title) + badge + meta
}
