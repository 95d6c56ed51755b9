package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"flowstate/internal/repository"

	_ "modernc.org/sqlite"
)

var _ repository.Journal = (*Journal)(nil)

// Journal implements repository.Journal using SQLite
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// New opens (or creates) the journal database at dbPath
func New(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if isMemory(dbPath) {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}

	j := &Journal{db: db, now: time.Now}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return j, nil
}

func dsn(dbPath string) string {
	if isMemory(dbPath) {
		return dbPath
	}
	return "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

func isMemory(dbPath string) bool {
	return dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory")
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS journal (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		payload TEXT,
		version INTEGER NOT NULL,
		error TEXT,
		recorded_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_journal_action ON journal(action);
	`

	_, err := j.db.Exec(schema)
	return err
}

// Record appends entry to the journal
func (j *Journal) Record(ctx context.Context, entry *repository.Entry) error {
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = j.now().UTC()
	}

	res, err := j.db.ExecContext(ctx, `
		INSERT INTO journal (action, payload, version, error, recorded_at)
		VALUES (?, ?, ?, ?, ?)
	`, entryInsertArgs(entry)...)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read journal entry id: %w", err)
	}
	entry.ID = id
	return nil
}

// List returns the most recent entries, newest first
func (j *Journal) List(ctx context.Context, limit int) ([]repository.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer rows.Close()

	entries := make([]repository.Entry, 0)
	for rows.Next() {
		var row entryRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, row.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal: %w", err)
	}

	return entries, nil
}

// Count returns the number of journaled actions
func (j *Journal) Count(ctx context.Context) (int, error) {
	var n int
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count journal: %w", err)
	}
	return n, nil
}

// Close closes the database connection
func (j *Journal) Close() error {
	return j.db.Close()
}
