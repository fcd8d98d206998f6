package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateTopic adds a topic to the end of the collection. The name is
// trimmed, subtopic names are trimmed and blank ones discarded, and
// days left without subtopics are dropped with the remaining days
// renumbered from 1. The call is a silent no-op when the name is empty
// or no day survives the cleanup.
func (s *Store) CreateTopic(name string, difficulty Difficulty, days []DayInput) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if !difficulty.Valid() {
		difficulty = DifficultyMedium
	}

	var kept []StudyDay
	for _, d := range days {
		var subs []Subtopic
		for _, raw := range d.Subtopics {
			sub := strings.TrimSpace(raw)
			if sub == "" {
				continue
			}
			subs = append(subs, Subtopic{ID: uuid.NewString(), Name: sub})
		}
		if len(subs) == 0 {
			continue
		}
		kept = append(kept, StudyDay{Day: len(kept) + 1, Subtopics: subs})
	}
	if len(kept) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = append(s.topics, Topic{
		ID:         uuid.NewString(),
		Name:       name,
		Difficulty: difficulty,
		Days:       kept,
		CreatedAt:  time.Now(),
	})
	s.saveTopics()
}

// DeleteTopic removes the topic with the given id. If the timer is
// bound to that topic it is reset to idle in the same step; any
// unlogged elapsed time is dropped with the topic.
func (s *Store) DeleteTopic(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.topics = append(s.topics[:idx], s.topics[idx+1:]...)
	s.saveTopics()

	if s.timer.ActiveTopicID == id {
		s.timer = TimerState{}
		s.saveTimer()
	}
}

// ToggleSubtopic flips the completed flag of one subtopic, recomputes
// the day's completion and stamps the topic's last-studied date with
// today, whether the flag went on or off. Unresolvable ids or indexes
// no-op.
func (s *Store) ToggleSubtopic(topicID string, dayIndex int, subtopicID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.find(topicID)
	if t == nil || dayIndex < 0 || dayIndex >= len(t.Days) {
		return
	}
	d := &t.Days[dayIndex]

	found := false
	for i := range d.Subtopics {
		if d.Subtopics[i].ID == subtopicID {
			d.Subtopics[i].Completed = !d.Subtopics[i].Completed
			found = true
			break
		}
	}
	if !found {
		return
	}

	d.Completed = allCompleted(d.Subtopics)
	t.LastStudiedDate = today()
	s.saveTopics()
}

// LogHours adds study hours to one day: the day's accumulated hours
// and date, the topic total and the topic's last-studied date all
// update together. Invalid topic or day index no-ops.
func (s *Store) LogHours(topicID string, dayIndex int, hours float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logHours(topicID, dayIndex, hours)
}

// logHours is the lock-held body of LogHours, shared with ResetTimer.
func (s *Store) logHours(topicID string, dayIndex int, hours float64) {
	t := s.find(topicID)
	if t == nil || dayIndex < 0 || dayIndex >= len(t.Days) {
		return
	}
	d := &t.Days[dayIndex]
	d.HoursStudied += hours
	d.Date = today()
	t.TotalHoursStudied += hours
	t.LastStudiedDate = today()
	s.saveTopics()
}

// Topics returns a deep copy of the collection in insertion order.
func (s *Store) Topics() []Topic {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Topic, len(s.topics))
	for i, t := range s.topics {
		out[i] = copyTopic(t)
	}
	return out
}

// Topic returns a copy of one topic, or nil if the id is unknown.
func (s *Store) Topic(id string) *Topic {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := s.find(id)
	if t == nil {
		return nil
	}
	c := copyTopic(*t)
	return &c
}

func (s *Store) indexOf(id string) int {
	for i := range s.topics {
		if s.topics[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) find(id string) *Topic {
	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	return &s.topics[idx]
}

func copyTopic(t Topic) Topic {
	days := make([]StudyDay, len(t.Days))
	for i, d := range t.Days {
		subs := make([]Subtopic, len(d.Subtopics))
		copy(subs, d.Subtopics)
		d.Subtopics = subs
		days[i] = d
	}
	t.Days = days
	return t
}

func today() string {
	return time.Now().Format(dateLayout)
}
