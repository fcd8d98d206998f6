package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ordek/studyr/internal/store"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// Difficulty colors follow the badge colors of the web app this
// replaced: green / amber / red.
var difficultyColors = map[store.Difficulty]lipgloss.Color{
	store.DifficultyEasy:   lipgloss.Color("#2ECC71"),
	store.DifficultyMedium: lipgloss.Color("#F39C12"),
	store.DifficultyHard:   lipgloss.Color("#E74C3C"),
}

func difficultyStyle(d store.Difficulty) lipgloss.Style {
	c, ok := difficultyColors[d]
	if !ok {
		c = colorMuted
	}
	return lipgloss.NewStyle().Foreground(c)
}

// Heatmap intensity buckets: 0, <1h, <2h, <4h, >=4h.
var heatStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(colorSubtle),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#3B3566")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#554DA8")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#6C63FF")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#9A94FF")),
}

func heatStyle(hours float64) lipgloss.Style {
	switch {
	case hours <= 0:
		return heatStyles[0]
	case hours < 1:
		return heatStyles[1]
	case hours < 2:
		return heatStyles[2]
	case hours < 4:
		return heatStyles[3]
	default:
		return heatStyles[4]
	}
}

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	// Timer
	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Align(lipgloss.Center)

	timerRunningStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorSuccess).
				Align(lipgloss.Center)

	timerPausedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWarning).
				Align(lipgloss.Center)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)
