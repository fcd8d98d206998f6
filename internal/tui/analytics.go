package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ordek/studyr/internal/analytics"
	"github.com/ordek/studyr/internal/store"
)

const heatmapWeeks = 12

type analyticsModel struct {
	store  *store.Store
	width  int
	height int

	topics  []store.Topic
	heatmap map[string]float64
	streak  int

	chart barchart.Model
}

func newAnalyticsModel(s *store.Store) analyticsModel {
	return analyticsModel{
		store: s,
		chart: barchart.New(60, 12),
	}
}

func (r *analyticsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type analyticsDataMsg struct {
	topics  []store.Topic
	heatmap map[string]float64
	streak  int
}

func (r analyticsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		topics := r.store.Topics()
		return analyticsDataMsg{
			topics:  topics,
			heatmap: analytics.StudyHeatmap(topics),
			streak:  analytics.TotalStreak(topics),
		}
	}
}

func (r analyticsModel) update(msg tea.Msg) (analyticsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case analyticsDataMsg:
		r.topics = msg.topics
		r.heatmap = msg.heatmap
		r.streak = msg.streak
		r.buildChart()
		return r, nil
	}
	return r, nil
}

func (r *analyticsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 30 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, th := range analytics.HoursByTopic(r.topics) {
		bars = append(bars, barchart.BarData{
			Label: truncate(th.Name, 10),
			Values: []barchart.BarValue{{
				Name:  th.Name,
				Value: th.Hours,
				Style: lipgloss.NewStyle().Foreground(colorPrimary),
			}},
		})
	}

	if len(bars) == 0 {
		bars = []barchart.BarData{{
			Label:  "",
			Values: []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}},
		}}
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func (r analyticsModel) view() string {
	w := r.width - 4

	header := titleStyle.Render("Analytics")

	streakLine := mutedStyle.Render("No streak yet — log some hours today")
	if r.streak > 0 {
		streakLine = warningStyle.Render(fmt.Sprintf("🔥 %d day streak", r.streak))
	}

	chartTitle := mutedStyle.Render("Hours per topic")
	chartView := r.chart.View()

	heatmapView := r.renderHeatmap()
	breakdown := r.renderDifficultyBreakdown()

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, streakLine, "", chartTitle, chartView, "", heatmapView, "", breakdown,
		),
	)
}

// renderHeatmap draws the last heatmapWeeks weeks as a grid of cells,
// one column per week, newest week rightmost, colored by total hours
// logged on that date.
func (r analyticsModel) renderHeatmap() string {
	grid := analytics.HeatmapWindow(time.Now(), heatmapWeeks)

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("Last %d weeks", heatmapWeeks)))

	// Row d is one weekday position across all weeks.
	for d := 0; d < 7; d++ {
		var cells []string
		cells = append(cells, "  ")
		for w := 0; w < len(grid); w++ {
			date := grid[w][6-d]
			cells = append(cells, heatStyle(r.heatmap[date]).Render("■"))
		}
		rows = append(rows, strings.Join(cells, " "))
	}

	legend := fmt.Sprintf("   %s less  %s %s %s %s more",
		heatStyles[0].Render("■"),
		heatStyles[1].Render("■"),
		heatStyles[2].Render("■"),
		heatStyles[3].Render("■"),
		heatStyles[4].Render("■"),
	)
	rows = append(rows, legend)

	return strings.Join(rows, "\n")
}

func (r analyticsModel) renderDifficultyBreakdown() string {
	counts := analytics.DifficultyBreakdown(r.topics)
	if len(counts) == 0 {
		return mutedStyle.Render("No topics yet")
	}

	var items []string
	for _, d := range []store.Difficulty{store.DifficultyEasy, store.DifficultyMedium, store.DifficultyHard} {
		if counts[d] == 0 {
			continue
		}
		dot := difficultyStyle(d).Render("●")
		items = append(items, fmt.Sprintf("%s %s (%d)", dot, d, counts[d]))
	}
	return "  " + strings.Join(items, "  ")
}
