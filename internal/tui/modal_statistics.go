package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/feastkit/basil/internal/catalog"
	"github.com/feastkit/basil/internal/recipe"
)

// StatsModal summarizes the catalog: totals plus a per-category bar chart.
// It keeps its snapshot current by applying push events while open.
type StatsModal struct {
	viewport  viewport.Model
	recipes   []recipe.Recipe
	favorites int
	err       error
}

func NewStatsModal(recipes []recipe.Recipe, favorites int, err error) *StatsModal {
	return &StatsModal{
		viewport:  viewport.New(80, 20),
		recipes:   recipes,
		favorites: favorites,
		err:       err,
	}
}

// statsModalCmd loads the catalog and opens the statistics modal.
func statsModalCmd(deps ScreenDeps) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		recipes, err := deps.Service.ListRecipes(ctx)
		return showModalMsg{modal: NewStatsModal(recipes, len(deps.Pantry.Favorites()), err)}
	}
}

func (s *StatsModal) ID() string { return "stats" }

func (s *StatsModal) Update(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			s.viewport.ScrollUp(1)
			return false, nil
		case "down", "j":
			s.viewport.ScrollDown(1)
			return false, nil
		case "pgup":
			s.viewport.HalfPageUp()
			return false, nil
		case "pgdown":
			s.viewport.HalfPageDown()
			return false, nil
		case "esc", "s", "q":
			return true, nil
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				s.viewport.ScrollUp(1)
			case tea.MouseButtonWheelDown:
				s.viewport.ScrollDown(1)
			}
		}

	case pushEventMsg:
		s.applyChange(msg.change)
	}
	return false, nil
}

func (s *StatsModal) View(width, height int) string {
	contentWidth, contentHeight := modalContentSize(width, height)
	s.viewport.Width = contentWidth
	s.viewport.Height = contentHeight
	s.viewport.SetContent(s.renderStatsContent(contentWidth))

	return renderModalFrame(
		"Catalog Statistics",
		s.viewport.View(),
		"up/down: scroll | s: toggle stats | esc: close",
		width, height,
	)
}

// applyChange keeps the snapshot in sync with the live catalog.
func (s *StatsModal) applyChange(ch catalog.Change) {
	switch ch.Kind {
	case catalog.ChangeAdded:
		s.recipes = append(s.recipes, ch.Recipe)
	case catalog.ChangeUpdated:
		for i := range s.recipes {
			if s.recipes[i].ID == ch.Recipe.ID {
				s.recipes[i] = ch.Recipe
				return
			}
		}
		s.recipes = append(s.recipes, ch.Recipe)
	case catalog.ChangeDeleted:
		for i := range s.recipes {
			if s.recipes[i].ID == ch.Recipe.ID {
				s.recipes = append(s.recipes[:i], s.recipes[i+1:]...)
				return
			}
		}
	}
}

func (s *StatsModal) renderStatsContent(width int) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("could not load catalog: %v", s.err))
	}
	if len(s.recipes) == 0 {
		return helpStyle.Render("No recipes yet.")
	}

	counts := make(map[string]int)
	custom := 0
	totalMinutes := 0
	timed := 0
	for _, r := range s.recipes {
		counts[r.Category]++
		if r.Custom {
			custom++
		}
		if r.CookMinutes > 0 {
			totalMinutes += r.CookMinutes
			timed++
		}
	}

	categories := make([]string, 0, len(counts))
	for c := range counts {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	summary := []string{
		fmt.Sprintf("%s %d", labelStyle.Render("Recipes:"), len(s.recipes)),
		fmt.Sprintf("%s %d", labelStyle.Render("Your own:"), custom),
		fmt.Sprintf("%s %d", labelStyle.Render("Favorites:"), s.favorites),
	}
	if timed > 0 {
		summary = append(summary, fmt.Sprintf("%s %s",
			labelStyle.Render("Avg cook time:"), recipe.FormatCookTime(totalMinutes/timed)))
	}

	legendWidth := 18
	chartWidth := width - legendWidth - 2
	if chartWidth < 12 {
		chartWidth = 12
	}
	chartHeight := 8

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(3),
		barchart.WithNoAxis(),
	)
	legend := make([]string, 0, len(categories))
	for _, c := range categories {
		barStyle := lipgloss.NewStyle().
			Foreground(categoryColor(c)).
			Background(categoryColor(c))
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: c, Value: float64(counts[c]), Style: barStyle},
			},
		})
		dot := lipgloss.NewStyle().Foreground(categoryColor(c)).Render("●")
		legend = append(legend, fmt.Sprintf("%s %-10s %d", dot, c, counts[c]))
	}
	bc.Draw()

	chart := lipgloss.JoinHorizontal(lipgloss.Top,
		bc.View(), "  ", strings.Join(legend, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(summary, "\n"),
		"",
		labelStyle.Render("By category"),
		chart,
	)
}
