package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ordek/studyr/internal/analytics"
	"github.com/ordek/studyr/internal/store"
)

type dashboardModel struct {
	store  *store.Store
	width  int
	height int

	topics     []store.Topic
	todayHours float64
	streak     int

	// Topic picker state
	picking      bool
	pickerCursor int
}

func newDashboardModel(s *store.Store) dashboardModel {
	return dashboardModel{store: s}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type dashboardDataMsg struct {
	topics     []store.Topic
	todayHours float64
	streak     int
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		topics := d.store.Topics()
		heatmap := analytics.StudyHeatmap(topics)
		today := time.Now().Format("2006-01-02")

		return dashboardDataMsg{
			topics:     topics,
			todayHours: heatmap[today],
			streak:     analytics.TotalStreak(topics),
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.topics = msg.topics
		d.todayHours = msg.todayHours
		d.streak = msg.streak
		return d, nil

	case tea.KeyMsg:
		if d.picking {
			return d.updatePicker(msg)
		}

		timer := d.store.Timer()

		switch {
		case key.Matches(msg, keys.Start):
			if timer.IsRunning {
				return d, nil
			}
			if !timer.Idle() {
				// Paused: restart the same topic to resume.
				d.store.StartTimer(timer.ActiveTopicID)
				return d, func() tea.Msg { return timerStartedMsg{} }
			}
			if len(d.topics) == 0 {
				return d, func() tea.Msg {
					return statusMsg{text: "No topics yet. Press 2 to go to Topics and create one.", isError: true}
				}
			}
			if len(d.topics) == 1 {
				d.store.StartTimer(d.topics[0].ID)
				return d, func() tea.Msg { return timerStartedMsg{} }
			}
			d.picking = true
			d.pickerCursor = 0
			return d, nil

		case key.Matches(msg, keys.Pause):
			if timer.IsRunning {
				d.store.PauseTimer()
				return d, func() tea.Msg { return timerPausedMsg{} }
			}
			if !timer.Idle() {
				d.store.StartTimer(timer.ActiveTopicID)
				return d, func() tea.Msg { return timerStartedMsg{} }
			}
			return d, nil

		case key.Matches(msg, keys.Reset):
			if timer.Idle() {
				return d, nil
			}
			hours := committedHours(timer.ElapsedSeconds)
			if t := d.store.Topic(timer.ActiveTopicID); t == nil || !hasIncompleteDay(*t) {
				// Nothing to log against; the store drops the hours.
				hours = 0
			}
			d.store.ResetTimer()
			return d, tea.Batch(
				d.loadData(),
				func() tea.Msg { return timerCommittedMsg{hours: hours} },
			)
		}
	}
	return d, nil
}

// committedHours mirrors the store's seconds-to-hours rounding so the
// status line can report what was logged.
func committedHours(secs int) float64 {
	return math.Round(float64(secs)/3600*100) / 100
}

func hasIncompleteDay(t store.Topic) bool {
	for _, d := range t.Days {
		if !d.Completed {
			return true
		}
	}
	return false
}

func (d dashboardModel) updatePicker(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if d.pickerCursor > 0 {
				d.pickerCursor--
			}
		case key.Matches(msg, keys.Down):
			if d.pickerCursor < len(d.topics)-1 {
				d.pickerCursor++
			}
		case key.Matches(msg, keys.Enter):
			t := d.topics[d.pickerCursor]
			d.picking = false
			d.store.StartTimer(t.ID)
			return d, func() tea.Msg { return timerStartedMsg{} }
		case key.Matches(msg, keys.Back):
			d.picking = false
		}
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	timerPanel := d.renderTimerPanel(contentWidth)
	summaryPanel := d.renderSummaryPanel(contentWidth)

	var bottomPanel string
	if d.picking {
		bottomPanel = d.renderTopicPicker(contentWidth)
	} else {
		bottomPanel = d.renderTopicsPanel(contentWidth)
	}

	return lipgloss.JoinVertical(lipgloss.Left, timerPanel, summaryPanel, bottomPanel)
}

func (d dashboardModel) renderTimerPanel(w int) string {
	timer := d.store.Timer()

	if !timer.Idle() {
		timeStr := formatElapsed(timer.ElapsedSeconds)

		var timeDisplay, indicator string
		if timer.IsRunning {
			timeDisplay = timerRunningStyle.Width(w - 6).Render(timeStr)
			indicator = successStyle.Render("●  RUNNING")
		} else {
			timeDisplay = timerPausedStyle.Width(w - 6).Render(timeStr)
			indicator = warningStyle.Render("⏸  PAUSED")
		}

		topicLine := highlightStyle.Render(d.topicName(timer.ActiveTopicID))

		content := lipgloss.JoinVertical(lipgloss.Center,
			timeDisplay,
			indicator,
			topicLine,
		)
		return activePanelStyle.Width(w).Render(content)
	}

	timeDisplay := timerStyle.Width(w - 6).Render("00:00:00")
	indicator := mutedStyle.Render("■  IDLE")
	hint := mutedStyle.Render("Press s to start studying")

	content := lipgloss.JoinVertical(lipgloss.Center,
		timeDisplay,
		indicator,
		hint,
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) topicName(id string) string {
	for _, t := range d.topics {
		if t.ID == id {
			return t.Name
		}
	}
	return "?"
}

func (d dashboardModel) renderSummaryPanel(w int) string {
	title := titleStyle.Render("Today")
	total := highlightStyle.Render(formatHours(d.todayHours))

	streakStr := mutedStyle.Render("no streak")
	if d.streak > 0 {
		streakStr = warningStyle.Render(fmt.Sprintf("🔥 %d day streak", d.streak))
	}

	content := fmt.Sprintf("%s  %s   %s", title, total, streakStr)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderTopicsPanel(w int) string {
	title := titleStyle.Render("Topics")
	if len(d.topics) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No topics yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, t := range d.topics {
		dot := difficultyStyle(t.Difficulty).Render("●")
		pct := analytics.CompletionPercentage(t)
		row := fmt.Sprintf("  %s %-24s %3d%%  %s", dot, t.Name, pct, formatHours(t.TotalHoursStudied))
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderTopicPicker(w int) string {
	title := titleStyle.Render("Select Topic")

	var rows []string
	rows = append(rows, title)
	for i, t := range d.topics {
		dot := difficultyStyle(t.Difficulty).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == d.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, dot, t.Name)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
