package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Days       []jsonDay `json:"days"`
}

type jsonDay struct {
	Topic          string  `json:"topic"`
	Difficulty     string  `json:"difficulty"`
	Day            int     `json:"day"`
	Date           string  `json:"date,omitempty"`
	Hours          float64 `json:"hours"`
	Completed      bool    `json:"completed"`
	SubtopicsDone  int     `json:"subtopics_done"`
	SubtopicsTotal int     `json:"subtopics_total"`
}

func ToJSON(rows []Row, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(rows),
	}

	for _, r := range rows {
		export.Days = append(export.Days, jsonDay{
			Topic:          r.Topic,
			Difficulty:     r.Difficulty,
			Day:            r.Day,
			Date:           r.Date,
			Hours:          r.Hours,
			Completed:      r.Completed,
			SubtopicsDone:  r.SubtopicsDone,
			SubtopicsTotal: r.SubtopicsTotal,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
