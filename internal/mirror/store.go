// Package mirror is the durable local fallback copy of the remote entity
// collections. Each collection is stored as one whole JSON document under
// a fixed key and rewritten completely on every mutation, so overlapping
// writes within a session reduce to last-write-wins.
package mirror

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/smarttodo/smarttodo/internal/model"
)

//go:embed migrations/*.sql
var schemaFiles embed.FS

const (
	keyTasks      = "tasks"
	keyGoals      = "goals"
	keyCategories = "categories"

	stateOfflineMode = "offline_mode"
)

const timeLayout = time.RFC3339Nano

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("mirror: nil db")
	}
	return &Store{db: db}, nil
}

// Open opens (or creates) the mirror database at path and applies
// migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	store, err := NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// migrate applies the embedded schema files in name order. Statements use
// IF NOT EXISTS, so reopening an existing mirror is a no-op.
func migrate(db *sql.DB) error {
	names, err := fs.Glob(schemaFiles, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("glob schema: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		stmts, readErr := schemaFiles.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("read schema %s: %w", name, readErr)
		}
		if _, execErr := db.Exec(string(stmts)); execErr != nil {
			return fmt.Errorf("apply schema %s: %w", name, execErr)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) LoadTasks() ([]model.Task, bool, error) {
	var out []model.Task
	ok, err := s.loadCollection(keyTasks, &out)
	return out, ok, err
}

func (s *Store) SaveTasks(tasks []model.Task) error {
	return s.saveCollection(keyTasks, tasks)
}

func (s *Store) LoadGoals() ([]model.Goal, bool, error) {
	var out []model.Goal
	ok, err := s.loadCollection(keyGoals, &out)
	return out, ok, err
}

func (s *Store) SaveGoals(goals []model.Goal) error {
	return s.saveCollection(keyGoals, goals)
}

func (s *Store) LoadCategories() ([]model.Category, bool, error) {
	var out []model.Category
	ok, err := s.loadCollection(keyCategories, &out)
	return out, ok, err
}

func (s *Store) SaveCategories(categories []model.Category) error {
	return s.saveCollection(keyCategories, categories)
}

// OfflineMode reports the persisted session offline flag.
func (s *Store) OfflineMode() (bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM session_state WHERE key = ?`, stateOfflineMode).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

func (s *Store) SetOfflineMode(offline bool) error {
	value := "false"
	if offline {
		value = "true"
	}
	_, err := s.db.Exec(`
		INSERT INTO session_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		stateOfflineMode, value,
	)
	return err
}

// ResetSession clears session-scoped state. Called at process start so the
// offline flag behaves like browser session storage: sticky within a run,
// gone on the next.
func (s *Store) ResetSession() error {
	_, err := s.db.Exec(`DELETE FROM session_state`)
	return err
}

func (s *Store) loadCollection(key string, dest any) (bool, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM collections WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		return false, fmt.Errorf("decode %s collection: %w", key, err)
	}
	return true, nil
}

func (s *Store) saveCollection(key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s collection: %w", key, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO collections (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, string(payload), time.Now().UTC().Format(timeLayout),
	)
	return err
}
