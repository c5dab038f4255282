// Package timercache persists the extension popup's running-timer
// state across popup close. It is a read-through optimization only:
// the server-side draft entry with a null end time stays authoritative,
// and on any discrepancy the persisted entry wins.
package timercache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// TimerState is the cached blob: enough to resume a running-timer UI
// without a network round trip.
type TimerState struct {
	ClientID   string `json:"clientId"`
	ClientName string `json:"clientName"`
	EntryID    string `json:"entryId"`
	StartedAt  string `json:"startedAt"` // RFC 3339
}

// Store holds at most one serialized TimerState.
type Store struct {
	db *sql.DB
}

// Open creates or opens the cache file at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open timer cache: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS timer_state (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			payload TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init timer cache: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached state, or nil when no timer is cached.
func (s *Store) Get() (*TimerState, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM timer_state WHERE id = 1`).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read timer cache: %w", err)
	}

	var state TimerState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return nil, fmt.Errorf("failed to decode timer cache: %w", err)
	}

	return &state, nil
}

// Set replaces the cached state.
func (s *Store) Set(state TimerState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode timer state: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO timer_state (id, payload) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET payload = excluded.payload
	`, string(payload))
	if err != nil {
		return fmt.Errorf("failed to write timer cache: %w", err)
	}

	return nil
}

// Clear drops the cached state. Called on every stop.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM timer_state WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("failed to clear timer cache: %w", err)
	}
	return nil
}
