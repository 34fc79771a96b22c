package tui

import "github.com/charmbracelet/lipgloss"

// Shared palette. Every component pulls from these so the whole app
// re-themes from one place.
var (
	ColorGreen  = lipgloss.Color("#49E209")
	ColorBasil  = lipgloss.Color("#2E7D32")
	ColorNavy   = lipgloss.Color("#1A2B3C")
	ColorBlue   = lipgloss.Color("39")
	ColorWhite  = lipgloss.Color("15")
	ColorGray   = lipgloss.Color("244")
	ColorDim    = lipgloss.Color("240")
	ColorRed    = lipgloss.Color("196")
	ColorOrange = lipgloss.Color("208")
	ColorYellow = lipgloss.Color("220")
	ColorPink   = lipgloss.Color("205")
)

var (
	headerStyle = lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorWhite)

	headerTitleStyle = lipgloss.NewStyle().
				Background(ColorNavy).
				Foreground(ColorWhite).
				Bold(true)

	headerLocationStyle = lipgloss.NewStyle().
				Background(ColorNavy).
				Foreground(ColorGray)

	statusStyle = lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorWhite)

	statusInfoStyle = lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorGray)

	statusErrorStyle = lipgloss.NewStyle().
				Background(ColorNavy).
				Foreground(ColorRed)

	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(ColorWhite).
				Bold(true)

	rowStyle = lipgloss.NewStyle().
			Foreground(ColorWhite)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	favoriteStyle = lipgloss.NewStyle().
			Foreground(ColorPink)

	customBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	modalBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBasil)

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)
)

// renderBasilBranding renders "Basil" with a green gradient.
func renderBasilBranding() string {
	colors := []string{
		"#49E209",
		"#3FDE2B",
		"#35DA4D",
		"#2BD66F",
		"#21D291",
	}
	chars := []string{"B", "a", "s", "i", "l"}

	var result string
	for i, char := range chars {
		style := lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(lipgloss.Color(colors[i])).Bold(true)
		result += style.Render(char)
	}
	return result
}

// categoryColor picks the marker color for a recipe's category.
func categoryColor(category string) lipgloss.Color {
	switch category {
	case "Breakfast":
		return ColorYellow
	case "Lunch", "Dinner":
		return ColorOrange
	case "Dessert", "Snack":
		return ColorPink
	case "Drink":
		return ColorBlue
	default:
		return ColorGray
	}
}
