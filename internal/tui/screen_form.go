package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/feastkit/basil/internal/recipe"
)

// formField indexes the tab order of the recipe form.
type formField int

const (
	fieldTitle formField = iota
	fieldCategory
	fieldCookTime
	fieldServings
	fieldDescription
	fieldIngredients
	fieldSteps
	fieldCount
)

// formScreen creates a recipe or edits an existing one. The whole screen is
// a form, so it captures the keyboard for its lifetime; only ctrl+s, tab and
// esc are interpreted, everything else goes to the focused field.
type formScreen struct {
	deps   ScreenDeps
	id     string // empty when creating
	saving bool
	gone   bool // edit target vanished
	focus  formField

	title       textinput.Model
	category    textinput.Model
	cookTime    textinput.Model
	servings    textinput.Model
	description textarea.Model
	ingredients textarea.Model
	steps       textarea.Model

	errText string
}

func newFormScreen(deps ScreenDeps, id string) *formScreen {
	title := textinput.New()
	title.Placeholder = "Pancakes"
	title.CharLimit = 120
	title.Focus()

	category := textinput.New()
	category.Placeholder = strings.Join(recipe.KnownCategories, ", ")
	category.CharLimit = 40

	cookTime := textinput.New()
	cookTime.Placeholder = "30 min or 1h30m"
	cookTime.CharLimit = 20

	servings := textinput.New()
	servings.Placeholder = strconv.Itoa(recipe.DefaultServings)
	servings.CharLimit = 3

	description := textarea.New()
	description.Placeholder = "What makes this recipe special?"
	description.SetHeight(2)

	ingredients := textarea.New()
	ingredients.Placeholder = "one ingredient per line"
	ingredients.SetHeight(4)

	steps := textarea.New()
	steps.Placeholder = "one step per line"
	steps.SetHeight(4)

	return &formScreen{
		deps:        deps,
		id:          id,
		title:       title,
		category:    category,
		cookTime:    cookTime,
		servings:    servings,
		description: description,
		ingredients: ingredients,
		steps:       steps,
	}
}

func (s *formScreen) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if s.id != "" {
		cmds = append(cmds, fetchRecipeCmd(s.deps, s.id))
	}
	return tea.Batch(cmds...)
}

// CapturingInput reports that global key bindings are off while the form is
// up.
func (s *formScreen) CapturingInput() bool { return true }

func (s *formScreen) Update(msg tea.Msg) (tea.Cmd, *NavRequest) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		fieldWidth := msg.Width - 16
		if fieldWidth < 20 {
			fieldWidth = 20
		}
		s.title.Width = fieldWidth
		s.category.Width = fieldWidth
		s.cookTime.Width = fieldWidth
		s.servings.Width = fieldWidth
		s.description.SetWidth(fieldWidth)
		s.ingredients.SetWidth(fieldWidth)
		s.steps.SetWidth(fieldWidth)
		return nil, nil

	case recipeLoadedMsg:
		if msg.id != s.id {
			return nil, nil
		}
		if msg.notFound {
			s.gone = true
			return nil, nil
		}
		if msg.err != nil {
			s.errText = fmt.Sprintf("could not load recipe: %v", msg.err)
			return nil, nil
		}
		s.populate(msg.r)
		return nil, nil

	case saveDoneMsg:
		s.saving = false
		if msg.err != nil {
			s.errText = msg.err.Error()
			return nil, nil
		}
		return nil, Back()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return nil, nil
}

func (s *formScreen) handleKey(msg tea.KeyMsg) (tea.Cmd, *NavRequest) {
	keys := s.deps.Keys
	switch {
	case msg.Type == tea.KeyEsc:
		return nil, Back()

	case key.Matches(msg, keys.Save):
		return s.submit(), nil

	case key.Matches(msg, keys.NextField):
		s.setFocus((s.focus + 1) % fieldCount)
		return nil, nil

	case key.Matches(msg, keys.PrevField):
		s.setFocus((s.focus + fieldCount - 1) % fieldCount)
		return nil, nil

	case msg.Type == tea.KeyEnter && s.focus < fieldDescription:
		// enter advances through the single-line fields
		s.setFocus(s.focus + 1)
		return nil, nil
	}

	if s.saving || s.gone {
		return nil, nil
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldTitle:
		s.title, cmd = s.title.Update(msg)
	case fieldCategory:
		s.category, cmd = s.category.Update(msg)
	case fieldCookTime:
		s.cookTime, cmd = s.cookTime.Update(msg)
	case fieldServings:
		s.servings, cmd = s.servings.Update(msg)
	case fieldDescription:
		s.description, cmd = s.description.Update(msg)
	case fieldIngredients:
		s.ingredients, cmd = s.ingredients.Update(msg)
	case fieldSteps:
		s.steps, cmd = s.steps.Update(msg)
	}
	return cmd, nil
}

func (s *formScreen) setFocus(f formField) {
	s.focus = f
	s.title.Blur()
	s.category.Blur()
	s.cookTime.Blur()
	s.servings.Blur()
	s.description.Blur()
	s.ingredients.Blur()
	s.steps.Blur()
	switch f {
	case fieldTitle:
		s.title.Focus()
	case fieldCategory:
		s.category.Focus()
	case fieldCookTime:
		s.cookTime.Focus()
	case fieldServings:
		s.servings.Focus()
	case fieldDescription:
		s.description.Focus()
	case fieldIngredients:
		s.ingredients.Focus()
	case fieldSteps:
		s.steps.Focus()
	}
}

// populate fills the fields from an existing recipe for editing.
func (s *formScreen) populate(r recipe.Recipe) {
	s.title.SetValue(r.Title)
	s.category.SetValue(r.Category)
	s.cookTime.SetValue(recipe.FormatCookTime(r.CookMinutes))
	if r.Servings > 0 {
		s.servings.SetValue(strconv.Itoa(r.Servings))
	}
	s.description.SetValue(r.Description)
	s.ingredients.SetValue(strings.Join(r.Ingredients, "\n"))
	s.steps.SetValue(strings.Join(r.Steps, "\n"))
}

// submit validates the client-side bits and kicks off the save round trip.
// The service still has the final word on validation.
func (s *formScreen) submit() tea.Cmd {
	if s.saving || s.gone {
		return nil
	}

	minutes, err := recipe.ParseCookTime(s.cookTime.Value())
	if err != nil {
		s.errText = err.Error()
		s.setFocus(fieldCookTime)
		return nil
	}

	servings := 0
	if v := strings.TrimSpace(s.servings.Value()); v != "" {
		servings, err = strconv.Atoi(v)
		if err != nil || servings < 0 {
			s.errText = fmt.Sprintf("servings must be a number, got %q", v)
			s.setFocus(fieldServings)
			return nil
		}
	}

	d := recipe.Draft{
		Title:       strings.TrimSpace(s.title.Value()),
		Description: strings.TrimSpace(s.description.Value()),
		Category:    strings.TrimSpace(s.category.Value()),
		Ingredients: splitLines(s.ingredients.Value()),
		Steps:       splitLines(s.steps.Value()),
		CookMinutes: minutes,
		Servings:    servings,
	}

	s.errText = ""
	s.saving = true
	return saveRecipeCmd(s.deps, s.id, d)
}

// splitLines turns textarea content into a list, dropping blank lines.
func splitLines(v string) []string {
	var out []string
	for _, line := range strings.Split(v, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func (s *formScreen) View(width, height int) string {
	if s.gone {
		notice := lipgloss.JoinVertical(lipgloss.Center,
			errorStyle.Render("This recipe is gone."),
			helpStyle.Render("press esc to go back"),
		)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, notice)
	}

	heading := "New Recipe"
	if s.id != "" {
		heading = "Edit Recipe"
	}

	rows := []string{
		labelStyle.Render(heading),
		"",
		s.fieldRow("Title", s.title.View(), fieldTitle),
		s.fieldRow("Category", s.category.View(), fieldCategory),
		s.fieldRow("Cook time", s.cookTime.View(), fieldCookTime),
		s.fieldRow("Servings", s.servings.View(), fieldServings),
		s.fieldRow("Description", s.description.View(), fieldDescription),
		s.fieldRow("Ingredients", s.ingredients.View(), fieldIngredients),
		s.fieldRow("Steps", s.steps.View(), fieldSteps),
	}

	if s.errText != "" {
		rows = append(rows, "", errorStyle.Render(s.errText))
	}
	if s.saving {
		rows = append(rows, "", dimStyle.Render("saving..."))
	}
	rows = append(rows, "", helpStyle.Render("tab: next field | ctrl+s: save | esc: cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// fieldRow renders a label column next to a field, highlighting the focused
// one.
func (s *formScreen) fieldRow(label, field string, f formField) string {
	style := dimStyle
	if s.focus == f {
		style = labelStyle
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		style.Width(13).Render(label), field)
}
