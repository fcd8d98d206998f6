package tui

import (
	"fmt"
	"time"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTopics
	viewAnalytics
)

var viewNames = []string{"Dashboard", "Topics", "Analytics"}

// --- Messages ---

type timerStartedMsg struct{}
type timerPausedMsg struct{}

type timerCommittedMsg struct {
	hours float64
}

type topicCreatedMsg struct{}
type topicDeletedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatElapsed(secs int) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
