package store

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Snapshot decoding is deliberately forgiving: the persisted JSON was
// written by whatever version of the app ran last, and may have been
// hand-edited. A value that does not parse at all falls back to the
// default; individual bad fields are repaired instead of rejected.

func decodeTopics(data []byte) []Topic {
	if len(data) == 0 {
		return nil
	}
	var topics []Topic
	if err := json.Unmarshal(data, &topics); err != nil {
		return nil
	}
	for i := range topics {
		sanitizeTopic(&topics[i])
	}
	return topics
}

func decodeTimer(data []byte) TimerState {
	if len(data) == 0 {
		return TimerState{}
	}
	var t TimerState
	if err := json.Unmarshal(data, &t); err != nil {
		return TimerState{}
	}
	if t.ElapsedSeconds < 0 {
		t.ElapsedSeconds = 0
	}
	if t.ActiveTopicID == "" {
		// A running timer with no topic is unrepresentable.
		return TimerState{}
	}
	return t
}

// sanitizeTopic repairs a loaded topic in place so it satisfies the
// store invariants: ids present, days numbered 1..N, day completion
// and the topic hour total derived from the day data.
func sanitizeTopic(t *Topic) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if !t.Difficulty.Valid() {
		t.Difficulty = DifficultyMedium
	}
	// Reserved field, never carries data.
	t.Streak = 0

	total := 0.0
	for i := range t.Days {
		d := &t.Days[i]
		d.Day = i + 1
		if d.HoursStudied < 0 {
			d.HoursStudied = 0
		}
		for j := range d.Subtopics {
			if d.Subtopics[j].ID == "" {
				d.Subtopics[j].ID = uuid.NewString()
			}
		}
		d.Completed = allCompleted(d.Subtopics)
		total += d.HoursStudied
	}
	t.TotalHoursStudied = total
}

func allCompleted(subs []Subtopic) bool {
	for _, s := range subs {
		if !s.Completed {
			return false
		}
	}
	return true
}

// saveTopics persists the full topic collection. Caller holds s.mu.
func (s *Store) saveTopics() {
	data, err := json.Marshal(s.topics)
	if err != nil {
		return
	}
	s.writeSnapshot(topicsKey, data)
}

// saveTimer persists the timer state. Caller holds s.mu.
func (s *Store) saveTimer() {
	data, err := json.Marshal(s.timer)
	if err != nil {
		return
	}
	s.writeSnapshot(timerKey, data)
}
