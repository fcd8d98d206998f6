// Package analytics computes derived views over a topic snapshot.
// Everything here is a pure function: no state, no caching, the same
// input always produces the same output.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/ordek/studyr/internal/store"
)

const dateLayout = "2006-01-02"

// CompletionPercentage is the share of completed subtopics across all
// days of a topic, rounded to the nearest whole percent. A topic with
// no subtopics at all is 0, not a division by zero.
func CompletionPercentage(t store.Topic) int {
	total, done := 0, 0
	for _, d := range t.Days {
		total += len(d.Subtopics)
		for _, sub := range d.Subtopics {
			if sub.Completed {
				done++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// StudyHeatmap sums logged hours per calendar date across every topic.
// Only days that carry both a date and positive hours contribute;
// dates with nothing logged are simply absent from the map.
func StudyHeatmap(topics []store.Topic) map[string]float64 {
	m := make(map[string]float64)
	for _, t := range topics {
		for _, d := range t.Days {
			if d.Date != "" && d.HoursStudied > 0 {
				m[d.Date] += d.HoursStudied
			}
		}
	}
	return m
}

// TotalStreak counts consecutive calendar days ending today with at
// least one logged study hour, across all topics.
func TotalStreak(topics []store.Topic) int {
	return TotalStreakAt(topics, time.Now())
}

// TotalStreakAt is TotalStreak anchored at an arbitrary "today",
// which keeps the tests off the wall clock. The logged dates are
// sorted newest first and walked against today, today-1, today-2, ...
// until the first gap. If today itself has nothing logged the streak
// is 0.
func TotalStreakAt(topics []store.Topic, now time.Time) int {
	seen := make(map[string]bool)
	for _, t := range topics {
		for _, d := range t.Days {
			if d.Date != "" && d.HoursStudied > 0 {
				seen[d.Date] = true
			}
		}
	}
	if len(seen) == 0 {
		return 0
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	streak := 0
	for i, d := range dates {
		expected := now.AddDate(0, 0, -i).Format(dateLayout)
		if d != expected {
			break
		}
		streak++
	}
	return streak
}

// TopicHours is one bar of the hours-per-topic chart.
type TopicHours struct {
	Name  string
	Hours float64
}

// HoursByTopic returns total logged hours per topic in collection
// order, ready for charting.
func HoursByTopic(topics []store.Topic) []TopicHours {
	out := make([]TopicHours, len(topics))
	for i, t := range topics {
		out[i] = TopicHours{Name: t.Name, Hours: t.TotalHoursStudied}
	}
	return out
}

// DifficultyBreakdown counts topics per difficulty level.
func DifficultyBreakdown(topics []store.Topic) map[store.Difficulty]int {
	m := make(map[store.Difficulty]int)
	for _, t := range topics {
		m[t.Difficulty]++
	}
	return m
}

// HeatmapWindow returns the date strings for a weeks-wide heatmap grid
// ending at now: one row per weekday position, oldest week first, so
// cell [w][i] is the date (weeks-1-w)*7+(6-i) days before now.
func HeatmapWindow(now time.Time, weeks int) [][]string {
	grid := make([][]string, weeks)
	for w := 0; w < weeks; w++ {
		row := make([]string, 7)
		for i := 0; i < 7; i++ {
			offset := (weeks-1-w)*7 + (6 - i)
			row[i] = now.AddDate(0, 0, -offset).Format(dateLayout)
		}
		grid[w] = row
	}
	return grid
}
