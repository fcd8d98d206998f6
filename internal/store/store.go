package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Snapshot keys. The values are full JSON snapshots rewritten
// wholesale on every mutation.
const (
	topicsKey = "ai-study-planner-data"
	timerKey  = "ai-study-planner-timer"
)

// Store owns the topic collection and the timer singleton, and keeps
// both mirrored into SQLite as JSON snapshots. All mutations go
// through Store methods; reads hand out copies.
type Store struct {
	db *sql.DB

	mu     sync.RWMutex
	topics []Topic
	timer  TimerState
}

// New opens (or creates) the SQLite database at dbPath, runs
// migrations and loads the persisted snapshots.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s.load()
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS snapshots (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// load pulls both snapshots into memory. Missing or malformed values
// degrade to the defaults; startup never fails on bad data.
func (s *Store) load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = decodeTopics(s.readSnapshot(topicsKey))
	s.timer = decodeTimer(s.readSnapshot(timerKey))
}

func (s *Store) readSnapshot(key string) []byte {
	var value string
	err := s.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return nil
	}
	return []byte(value)
}

func (s *Store) writeSnapshot(key string, value []byte) {
	// Persistence is fire-and-forget: mutations never fail on a write
	// error, the in-memory state stays authoritative.
	_, _ = s.db.Exec(
		`INSERT INTO snapshots (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(value),
	)
}

// DefaultDBPath returns ~/.config/studyr/studyr.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "studyr", "studyr.db"), nil
}
