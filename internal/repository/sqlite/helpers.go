package sqlite

import (
	"database/sql"
	"encoding/json"
	"time"

	"flowstate/internal/repository"
)

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull safely converts string to sql.NullString
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// rawToNull stores an empty or null JSON payload as SQL NULL
func rawToNull(raw json.RawMessage) sql.NullString {
	if len(raw) == 0 || string(raw) == "null" {
		return sql.NullString{}
	}
	return sql.NullString{String: string(raw), Valid: true}
}

// ============================================================================
// Journal Row Scanner
// ============================================================================

// entryRow holds all columns from a journal query for scanning
type entryRow struct {
	ID         int64
	Action     string
	Payload    sql.NullString
	Version    int64
	Error      sql.NullString
	RecordedAt time.Time
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match entryColumns order exactly:
// id, action, payload, version, error, recorded_at
func (r *entryRow) scanArgs() []any {
	return []any{
		&r.ID,         // 1
		&r.Action,     // 2
		&r.Payload,    // 3
		&r.Version,    // 4
		&r.Error,      // 5
		&r.RecordedAt, // 6
	}
}

// toDomain converts the scanned row to a repository.Entry
func (r *entryRow) toDomain() repository.Entry {
	e := repository.Entry{
		ID:         r.ID,
		Action:     r.Action,
		Version:    uint64(r.Version),
		Error:      nullToString(r.Error),
		RecordedAt: r.RecordedAt,
	}
	if r.Payload.Valid {
		e.Payload = json.RawMessage(r.Payload.String)
	}
	return e
}

// entryColumns is the SELECT column list for journal queries
const entryColumns = `id, action, payload, version, error, recorded_at`

// entryInsertArgs prepares arguments for the journal INSERT
// Returns: action, payload, version, error, recorded_at
func entryInsertArgs(e *repository.Entry) []any {
	return []any{
		e.Action,
		rawToNull(e.Payload),
		int64(e.Version),
		stringToNull(e.Error),
		e.RecordedAt,
	}
}
