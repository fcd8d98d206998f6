package store

import "time"

// Difficulty rates how hard a topic is expected to be.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Subtopic is a single checkable learning item within a study day.
// Only Completed changes after creation.
type Subtopic struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// StudyDay groups the subtopics planned for one day of a topic.
// Completed is derived: true iff every subtopic is completed. Date is
// the calendar day ("2006-01-02") hours were last logged on, empty
// until the first log.
type StudyDay struct {
	Day          int        `json:"day"`
	Subtopics    []Subtopic `json:"subtopics"`
	HoursStudied float64    `json:"hoursStudied"`
	Completed    bool       `json:"completed"`
	Date         string     `json:"date,omitempty"`
}

// Topic is a subject of study split into sequential days.
// TotalHoursStudied is maintained incrementally and always equals the
// sum of the days' HoursStudied. Streak is reserved; it is persisted
// for snapshot compatibility but never set.
type Topic struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Difficulty        Difficulty `json:"difficulty"`
	Days              []StudyDay `json:"days"`
	CreatedAt         time.Time  `json:"createdAt"`
	TotalHoursStudied float64    `json:"totalHoursStudied"`
	Streak            int        `json:"streak"`
	LastStudiedDate   string     `json:"lastStudiedDate,omitempty"`
}

// TimerState is the single application-wide study timer. An empty
// ActiveTopicID means the timer is idle.
type TimerState struct {
	ActiveTopicID  string `json:"topicId"`
	IsRunning      bool   `json:"isRunning"`
	ElapsedSeconds int    `json:"elapsed"`
}

// Idle reports whether the timer is bound to no topic.
func (t TimerState) Idle() bool {
	return t.ActiveTopicID == ""
}

// DayInput is the caller-supplied shape of one day when creating a
// topic: just the subtopic names.
type DayInput struct {
	Subtopics []string
}

const dateLayout = "2006-01-02"
