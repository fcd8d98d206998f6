package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

func ToCSV(rows []Row, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Topic", "Difficulty", "Day", "Date", "Hours", "Completed", "Subtopics Done", "Subtopics Total"}); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{
			r.Topic,
			r.Difficulty,
			strconv.Itoa(r.Day),
			r.Date,
			formatHours(r.Hours),
			strconv.FormatBool(r.Completed),
			strconv.Itoa(r.SubtopicsDone),
			strconv.Itoa(r.SubtopicsTotal),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return w.Error()
}
