package store

import (
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTopic is a test helper that creates a topic with one day per
// subtopic list and returns it.
func createTopic(t *testing.T, s *Store, name string, days ...[]string) Topic {
	t.Helper()
	inputs := make([]DayInput, len(days))
	for i, d := range days {
		inputs[i] = DayInput{Subtopics: d}
	}
	s.CreateTopic(name, DifficultyMedium, inputs)
	topics := s.Topics()
	if len(topics) == 0 {
		t.Fatalf("topic %q not created", name)
	}
	return topics[len(topics)-1]
}

func todayStr() string {
	return time.Now().Format("2006-01-02")
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/studyr.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed and not re-migrate
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	s2.Close()
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestFreshStoreIsEmpty(t *testing.T) {
	s := newTestStore(t)
	if len(s.Topics()) != 0 {
		t.Fatal("fresh store should have no topics")
	}
	if !s.Timer().Idle() || s.Timer().IsRunning {
		t.Fatal("fresh store timer should be idle")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Snapshot persistence
// ============================================================

func TestTopicsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/studyr.db"

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	created := createTopic(t, s, "Algebra", []string{"vectors", "matrices"})
	s.LogHours(created.ID, 0, 1.5)
	s.Close()

	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	topics := s2.Topics()
	if len(topics) != 1 {
		t.Fatalf("expected 1 topic after reopen, got %d", len(topics))
	}
	got := topics[0]
	if got.ID != created.ID || got.Name != "Algebra" {
		t.Fatalf("unexpected topic after reopen: %+v", got)
	}
	if got.TotalHoursStudied != 1.5 {
		t.Fatalf("expected 1.5 total hours, got %v", got.TotalHoursStudied)
	}
	if got.Days[0].Date != todayStr() {
		t.Fatalf("expected day date %q, got %q", todayStr(), got.Days[0].Date)
	}
}

func TestTimerSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/studyr.db"

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	topic := createTopic(t, s, "Go", []string{"goroutines"})
	s.StartTimer(topic.ID)
	s.TickTimer()
	s.TickTimer()
	s.PauseTimer()
	s.Close()

	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	timer := s2.Timer()
	if timer.ActiveTopicID != topic.ID {
		t.Fatalf("expected timer bound to %q, got %q", topic.ID, timer.ActiveTopicID)
	}
	if timer.IsRunning {
		t.Fatal("timer should be paused after reopen")
	}
	if timer.ElapsedSeconds != 2 {
		t.Fatalf("expected 2 elapsed seconds, got %d", timer.ElapsedSeconds)
	}
}

func TestCorruptTopicsSnapshotFallsBack(t *testing.T) {
	s := newTestStore(t)
	s.writeSnapshot(topicsKey, []byte("{not json"))
	s.load()
	if len(s.Topics()) != 0 {
		t.Fatal("corrupt topics snapshot should load as empty")
	}
}

func TestCorruptTimerSnapshotFallsBack(t *testing.T) {
	s := newTestStore(t)
	s.writeSnapshot(timerKey, []byte("42"))
	s.load()
	if !s.Timer().Idle() {
		t.Fatal("corrupt timer snapshot should load as idle")
	}
}

func TestLoadRepairsDerivedFields(t *testing.T) {
	s := newTestStore(t)
	// Snapshot with lies: wrong total, wrong day numbering, day marked
	// complete with an unfinished subtopic, negative hours, bad
	// difficulty, missing ids.
	raw := `[{
		"id": "t1",
		"name": "Physics",
		"difficulty": "extreme",
		"totalHoursStudied": 99,
		"streak": 7,
		"days": [
			{"day": 5, "completed": true, "hoursStudied": 2,
			 "subtopics": [{"id": "", "name": "waves", "completed": false}]},
			{"day": 9, "completed": false, "hoursStudied": -3,
			 "subtopics": [{"id": "s2", "name": "optics", "completed": true}]}
		]
	}]`
	s.writeSnapshot(topicsKey, []byte(raw))
	s.load()

	topics := s.Topics()
	if len(topics) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(topics))
	}
	got := topics[0]
	if got.Difficulty != DifficultyMedium {
		t.Fatalf("bad difficulty should default to medium, got %q", got.Difficulty)
	}
	if got.Streak != 0 {
		t.Fatal("streak is reserved and should load as 0")
	}
	if got.Days[0].Day != 1 || got.Days[1].Day != 2 {
		t.Fatalf("days should renumber 1..N, got %d and %d", got.Days[0].Day, got.Days[1].Day)
	}
	if got.Days[0].Completed {
		t.Fatal("day with unfinished subtopic should not be completed")
	}
	if !got.Days[1].Completed {
		t.Fatal("day with all subtopics done should be completed")
	}
	if got.Days[1].HoursStudied != 0 {
		t.Fatalf("negative hours should clamp to 0, got %v", got.Days[1].HoursStudied)
	}
	if got.TotalHoursStudied != 2 {
		t.Fatalf("total should recompute to 2, got %v", got.TotalHoursStudied)
	}
	if got.Days[0].Subtopics[0].ID == "" {
		t.Fatal("missing subtopic id should be assigned")
	}
}

func TestTimerSnapshotClampsElapsed(t *testing.T) {
	s := newTestStore(t)
	s.writeSnapshot(timerKey, []byte(`{"topicId":"t1","isRunning":true,"elapsed":-10}`))
	s.load()
	if s.Timer().ElapsedSeconds != 0 {
		t.Fatalf("negative elapsed should clamp to 0, got %d", s.Timer().ElapsedSeconds)
	}
}

// ============================================================
// CreateTopic
// ============================================================

func TestCreateTopic(t *testing.T) {
	s := newTestStore(t)
	topic := createTopic(t, s, "Linear Algebra", []string{"vectors", "dot product"}, []string{"matrices"})

	if topic.ID == "" {
		t.Fatal("expected non-empty id")
	}
	if topic.Name != "Linear Algebra" {
		t.Fatalf("unexpected name %q", topic.Name)
	}
	if len(topic.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(topic.Days))
	}
	if topic.Days[0].Day != 1 || topic.Days[1].Day != 2 {
		t.Fatal("days should number from 1")
	}
	if topic.TotalHoursStudied != 0 {
		t.Fatal("new topic should have 0 hours")
	}
	if topic.CreatedAt.IsZero() {
		t.Fatal("createdAt should be set")
	}
	for _, d := range topic.Days {
		if d.Completed {
			t.Fatal("new day should not be completed")
		}
		for _, sub := range d.Subtopics {
			if sub.Completed {
				t.Fatal("new subtopic should not be completed")
			}
			if sub.ID == "" {
				t.Fatal("subtopic should get an id")
			}
		}
	}
}

func TestCreateTopicTrimsAndDropsBlanks(t *testing.T) {
	s := newTestStore(t)
	s.CreateTopic("  Calculus  ", DifficultyHard, []DayInput{
		{Subtopics: []string{"a", "b"}},
		{Subtopics: []string{"   ", ""}},
		{Subtopics: []string{"  c  "}},
	})

	topics := s.Topics()
	if len(topics) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(topics))
	}
	topic := topics[0]
	if topic.Name != "Calculus" {
		t.Fatalf("name should be trimmed, got %q", topic.Name)
	}
	if len(topic.Days) != 2 {
		t.Fatalf("all-blank day should drop: expected 2 days, got %d", len(topic.Days))
	}
	if topic.Days[0].Day != 1 || topic.Days[1].Day != 2 {
		t.Fatalf("retained days should renumber contiguously, got %d and %d",
			topic.Days[0].Day, topic.Days[1].Day)
	}
	if topic.Days[1].Subtopics[0].Name != "c" {
		t.Fatalf("subtopic names should trim, got %q", topic.Days[1].Subtopics[0].Name)
	}
}

func TestCreateTopicEmptyNameNoops(t *testing.T) {
	s := newTestStore(t)
	s.CreateTopic("   ", DifficultyEasy, []DayInput{{Subtopics: []string{"a"}}})
	if len(s.Topics()) != 0 {
		t.Fatal("empty name should create nothing")
	}
}

func TestCreateTopicNoUsableDaysNoops(t *testing.T) {
	s := newTestStore(t)
	s.CreateTopic("Chemistry", DifficultyEasy, []DayInput{
		{Subtopics: []string{"", "  "}},
	})
	if len(s.Topics()) != 0 {
		t.Fatal("topic with no usable days should not be created")
	}
}

func TestCreateTopicPreservesInsertionOrder(t *testing.T) {
	s := newTestStore(t)
	createTopic(t, s, "First", []string{"a"})
	createTopic(t, s, "Second", []string{"b"})
	createTopic(t, s, "Third", []string{"c"})

	topics := s.Topics()
	if topics[0].Name != "First" || topics[1].Name != "Second" || topics[2].Name != "Third" {
		t.Fatalf("topics out of order: %v, %v, %v", topics[0].Name, topics[1].Name, topics[2].Name)
	}
}

func TestCreateTopicUnknownDifficultyDefaults(t *testing.T) {
	s := newTestStore(t)
	s.CreateTopic("History", Difficulty("impossible"), []DayInput{{Subtopics: []string{"a"}}})
	if got := s.Topics()[0].Difficulty; got != DifficultyMedium {
		t.Fatalf("expected medium, got %q", got)
	}
}

// ============================================================
// DeleteTopic
// ============================================================

func TestDeleteTopic(t *testing.T) {
	s := newTestStore(t)
	a := createTopic(t, s, "A", []string{"x"})
	b := createTopic(t, s, "B", []string{"y"})

	s.DeleteTopic(a.ID)

	topics := s.Topics()
	if len(topics) != 1 || topics[0].ID != b.ID {
		t.Fatalf("expected only topic B to remain, got %+v", topics)
	}
}

func TestDeleteTopicUnknownIDNoops(t *testing.T) {
	s := newTestStore(t)
	createTopic(t, s, "A", []string{"x"})
	s.DeleteTopic("nope")
	if len(s.Topics()) != 1 {
		t.Fatal("deleting unknown id should not touch the collection")
	}
}

func TestDeleteTopicResetsBoundTimer(t *testing.T) {
	s := newTestStore(t)
	a := createTopic(t, s, "A", []string{"x"})

	s.StartTimer(a.ID)
	s.TickTimer()
	s.DeleteTopic(a.ID)

	timer := s.Timer()
	if !timer.Idle() || timer.IsRunning || timer.ElapsedSeconds != 0 {
		t.Fatalf("timer should reset to idle with the topic, got %+v", timer)
	}
}

func TestDeleteTopicKeepsUnrelatedTimer(t *testing.T) {
	s := newTestStore(t)
	a := createTopic(t, s, "A", []string{"x"})
	b := createTopic(t, s, "B", []string{"y"})

	s.StartTimer(b.ID)
	s.TickTimer()
	s.DeleteTopic(a.ID)

	timer := s.Timer()
	if timer.ActiveTopicID != b.ID || !timer.IsRunning || timer.ElapsedSeconds != 1 {
		t.Fatalf("timer bound to another topic should be untouched, got %+v", timer)
	}
}

// ============================================================
// ToggleSubtopic
// ============================================================

func TestToggleSubtopic(t *testing.T) {
	s := newTestStore(t)
	topic := createTopic(t, s, "Go", []string{"goroutines", "channels"})
	sub := topic.Days[0].Subtopics[0]

	s.ToggleSubtopic(topic.ID, 0, sub.ID)

	got := s.Topic(topic.ID)
	if !got.Days[0].Subtopics[0].Completed {
		t.Fatal("subtopic should be completed after toggle")
	}
	if got.Days[0].Subtopics[1].Completed {
		t.Fatal("other subtopic should be untouched")
	}
	if got.Days[0].Completed {
		t.Fatal("day should not complete with one of two subtopics done")
	}
	if got.LastStudiedDate != todayStr() {
		t.Fatalf("lastStudiedDate should be today, got %q", got.LastStudiedDate)
	}
}

func TestToggleSubtopicCompletesDay(t *testing.T) {
	s := newTestStore(t)
	topic := createTopic(t, s, "Go", []string{"goroutines", "channels"})

	s.ToggleSubtopic(topic.ID, 0, topic.Days[0].Subtopics[0].ID)
	s.ToggleSubtopic(topic.ID, 0, topic.Days[0].Subtopics[1].ID)

	got := s.Topic(topic.ID)
	if !got.Days[0].Completed {
		t.Fatal("day should complete when every subtopic is done")
	}

	// Untoggling one reopens the day.
	s.ToggleSubtopic(topic.ID, 0, topic.Days[0].Subtopics[0].ID)
	got = s.Topic(topic.ID)
	if got.Days[0].Completed {
		t.Fatal("day should reopen when a subtopic is untoggled")
	}
	if got.LastStudiedDate != todayStr() {
		t.Fatal("untoggling still counts as studying today")
	}
}

func TestToggleSubtopicInvariantHolds(t *testing.T) {
	s := newTestStore(t)
	topic := createTopic(t, s, "Go", []string{"a", "b", "c"}, []string{"d"})

	// Toggle in various orders and re-verify the invariant each time.
	toggles := []struct {
		day int
		sub int
	}{{0, 0}, {0, 1}, {1, 0}, {0, 1}, {0, 2}, {0, 1}}

	for _, tg := range toggles {
		cur := s.Topic(topic.ID)
		s.ToggleSubtopic(topic.ID, tg.day, cur.Days[tg.day].Subtopics[tg.sub].ID)

		got := s.Topic(topic.ID)
		for _, d := range got.Days {
			all := true
			for _, sub := range d.Subtopics {
				if !sub.Completed {
					all = false
					break
				}
			}
			if d.Completed != all {
				t.Fatalf("day %d completed=%v but subtopics all-done=%v", d.Day, d.Completed, all)
			}
		}
	}
}

func TestToggleSubtopicInvalidArgsNoop(t *testing.T) {
	s := newTestStore(t)
	topic := createTopic(t, s, "Go", []string{"a"})

	s.ToggleSubtopic("nope", 0, topic.Days[0].Subtopics[0].ID)
	s.ToggleSubtopic(topic.ID, 5, topic.Days[0].Subtopics[0].ID)
	s.ToggleSubtopic(topic.ID, -1, topic.Days[0].Subtopics[0].ID)
	s.ToggleSubtopic(topic.ID, 0, "nope")

	got := s.Topic(topic.ID)
	if got.Days[0].Subtopics[0].Completed {
		t.Fatal("no toggle should have landed")
	}
	if got.LastStudiedDate != "" {
		t.Fatal("failed toggle should not stamp lastStudiedDate")
	}
}

// ============================================================
// LogHours
// ============================================================

func TestLogHours(t *testing.T) {
	s := newTestStore(t)
	topic := createTopic(t, s, "Go", []string{"a"}, []string{"b"})

	s.LogHours(topic.ID, 0, 1.5)
	s.LogHours(topic.ID, 1, 2.0)
	s.LogHours(topic.ID, 0, 0.5)

	got := s.Topic(topic.ID)
	if got.Days[0].HoursStudied != 2.0 {
		t.Fatalf("day 1 should accumulate to 2.0, got %v", got.Days[0].HoursStudied)
	}
	if got.Days[1].HoursStudied != 2.0 {
		t.Fatalf("day 2 should have 2.0, got %v", got.Days[1].HoursStudied)
	}
	if got.TotalHoursStudied != 4.0 {
		t.Fatalf("total should be 4.0, got %v", got.TotalHoursStudied)
	}
	if got.Days[0].Date != todayStr() || got.Days[1].Date != todayStr() {
		t.Fatal("logged days should carry today's date")
	}
	if got.LastStudiedDate != todayStr() {
		t.Fatal("lastStudiedDate should be today")
	}
}

func TestLogHoursTotalMatchesDaySum(t *testing.T) {
	s := newTestStore(t)
	topic := createTopic(t, s, "Go", []string{"a"}, []string{"b"}, []string{"c"})

	logs := []struct {
		day   int
		hours float64
	}{{0, 0.25}, {2, 1.0}, {1, 0.5}, {0, 2.0}, {2, 0.75}}

	for _, l := range logs {
		s.LogHours(topic.ID, l.day, l.hours)

		got := s.Topic(topic.ID)
		sum := 0.0
		for _, d := range got.Days {
			sum += d.HoursStudied
		}
		if sum != got.TotalHoursStudied {
			t.Fatalf("total %v != day sum %v", got.TotalHoursStudied, sum)
		}
	}
}

func TestLogHoursInvalidArgsNoop(t *testing.T) {
	s := newTestStore(t)
	topic := createTopic(t, s, "Go", []string{"a"})

	s.LogHours("nope", 0, 1)
	s.LogHours(topic.ID, 3, 1)
	s.LogHours(topic.ID, -1, 1)

	got := s.Topic(topic.ID)
	if got.TotalHoursStudied != 0 {
		t.Fatal("invalid log should not change totals")
	}
}

// ============================================================
// Read accessors
// ============================================================

func TestTopicsReturnsCopies(t *testing.T) {
	s := newTestStore(t)
	topic := createTopic(t, s, "Go", []string{"a"})

	snapshot := s.Topics()
	snapshot[0].Name = "mutated"
	snapshot[0].Days[0].Subtopics[0].Completed = true

	got := s.Topic(topic.ID)
	if got.Name != "Go" {
		t.Fatal("mutating a snapshot should not affect the store")
	}
	if got.Days[0].Subtopics[0].Completed {
		t.Fatal("mutating nested snapshot data should not affect the store")
	}
}

func TestTopicUnknownIDReturnsNil(t *testing.T) {
	s := newTestStore(t)
	if s.Topic("nope") != nil {
		t.Fatal("unknown id should return nil")
	}
}
