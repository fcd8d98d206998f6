// Package export writes the study log to CSV or JSON files.
package export

import (
	"fmt"

	"github.com/ordek/studyr/internal/store"
)

// Row is one day of one topic, flattened for export.
type Row struct {
	Topic          string
	Difficulty     string
	Day            int
	Date           string
	Hours          float64
	Completed      bool
	SubtopicsDone  int
	SubtopicsTotal int
}

// BuildRows flattens the topic collection into export rows, one per
// study day, in topic then day order.
func BuildRows(topics []store.Topic) []Row {
	var rows []Row
	for _, t := range topics {
		for _, d := range t.Days {
			done := 0
			for _, s := range d.Subtopics {
				if s.Completed {
					done++
				}
			}
			rows = append(rows, Row{
				Topic:          t.Name,
				Difficulty:     string(t.Difficulty),
				Day:            d.Day,
				Date:           d.Date,
				Hours:          d.HoursStudied,
				Completed:      d.Completed,
				SubtopicsDone:  done,
				SubtopicsTotal: len(d.Subtopics),
			})
		}
	}
	return rows
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.2f", h)
}
