package repository

import (
	"context"
	"encoding/json"
	"time"
)

// Entry is one journaled action
type Entry struct {
	ID         int64           `json:"id"`
	Action     string          `json:"action"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Version    uint64          `json:"version"`
	Error      string          `json:"error,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// Failed reports whether the action was rejected
func (e Entry) Failed() bool {
	return e.Error != ""
}

// Journal defines the interface for action journal storage
type Journal interface {
	// Record appends an entry and fills in its ID and RecordedAt
	Record(ctx context.Context, entry *Entry) error

	// List returns the most recent entries, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Entry, error)

	// Close releases resources
	Close() error
}
