package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ordek/studyr/internal/export"
	"github.com/ordek/studyr/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	topics    topicsModel
	analytics analyticsModel

	help   help.Model
	status string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	return App{
		store:      s,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(s),
		topics:     newTopicsModel(s),
		analytics:  newAnalyticsModel(s),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.loadData(),
		tickCmd(),
	)
}

// tickCmd arms the single once-per-second clock. It is re-armed as a
// whole on every tick; the store decides whether the second counts.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.topics.setSize(a.width, contentHeight)
		a.analytics.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		// Export picker
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewDashboard
			return a, a.dashboard.loadData()
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTopics
			return a, a.topics.refresh()
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewAnalytics
			return a, a.analytics.refresh()
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % 3
			return a, a.refreshCurrentView()
		}

	case tickMsg:
		// One second of wall clock. The store ignores it unless the
		// timer is running.
		a.store.TickTimer()
		return a, tickCmd()

	case statusMsg:
		a.status = msg.text
		return a, nil

	case timerStartedMsg:
		a.status = "Timer started"
		return a, nil

	case timerPausedMsg:
		a.status = "Timer paused"
		return a, nil

	case timerCommittedMsg:
		if msg.hours > 0 {
			a.status = fmt.Sprintf("Logged %.2fh", msg.hours)
		} else {
			a.status = "Timer reset"
		}
		return a, a.refreshCurrentView()

	case topicCreatedMsg:
		a.status = "Topic created"
		return a, a.refreshCurrentView()

	case topicDeletedMsg:
		a.status = "Topic deleted"
		return a, a.refreshCurrentView()

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewTopics:
		a.topics, cmd = a.topics.update(msg)
	case viewAnalytics:
		a.analytics, cmd = a.analytics.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	if a.activeView == viewTopics {
		return a.topics.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.loadData()
	case viewTopics:
		return a.topics.refresh()
	case viewAnalytics:
		return a.analytics.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewTopics:
		content = a.topics.view()
	case viewAnalytics:
		content = a.analytics.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Show export picker overlay
	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("studyr")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	// Timer indicator in footer
	timerInfo := ""
	if t := a.store.Timer(); !t.Idle() {
		if t.IsRunning {
			timerInfo = successStyle.Render(" ● " + formatElapsed(t.ElapsedSeconds))
		} else {
			timerInfo = warningStyle.Render(" ⏸ " + formatElapsed(t.ElapsedSeconds))
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Format")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	return func() tea.Msg {
		rows := export.BuildRows(a.store.Topics())

		home, _ := os.UserHomeDir()
		dateStr := time.Now().Format("2006-01-02")

		var path string
		if format == 0 {
			path = filepath.Join(home, fmt.Sprintf("studyr-export-%s.csv", dateStr))
			if err := export.ToCSV(rows, path); err != nil {
				return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
			}
		} else {
			path = filepath.Join(home, fmt.Sprintf("studyr-export-%s.json", dateStr))
			if err := export.ToJSON(rows, path); err != nil {
				return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
			}
		}

		return exportDoneMsg{path: path}
	}
}
