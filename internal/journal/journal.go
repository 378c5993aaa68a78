package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"docmerge/internal/writer"
)

// Journal is an append-only SQLite log of write results. It is bookkeeping
// for operators: the engine never reads it during a merge, so documents stay
// the only source of truth.
type Journal struct {
	db *sql.DB
}

type Entry struct {
	ID           int64
	FilePath     string
	Success      bool
	BytesWritten int
	Warnings     []string
	Errors       []string
	CreatedAt    time.Time
}

// Open creates or opens the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	j := &Journal{db: db}
	if err := j.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	return j, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) initSchema() error {
	_, err := j.db.Exec(`CREATE TABLE IF NOT EXISTS writes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file_path TEXT NOT NULL,
		success INTEGER NOT NULL,
		bytes_written INTEGER NOT NULL,
		warnings TEXT,
		errors TEXT,
		created_at TEXT NOT NULL
	);`)
	return err
}

// Record appends one write result.
func (j *Journal) Record(ctx context.Context, res writer.WriteResult) error {
	success := 0
	if res.Success {
		success = 1
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO writes (file_path, success, bytes_written, warnings, errors, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, res.FilePath, success, res.BytesWritten,
		strings.Join(res.Warnings, "\n"), strings.Join(res.Errors, "\n"),
		time.Now().UTC().Format(time.RFC3339))
	return err
}

// Recent returns the newest entries, most recent first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, file_path, success, bytes_written, warnings, errors, created_at
		FROM writes ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var success int
		var warnings, errorsText, createdAt string
		if err := rows.Scan(&e.ID, &e.FilePath, &success, &e.BytesWritten, &warnings, &errorsText, &createdAt); err != nil {
			return nil, err
		}
		e.Success = success == 1
		e.Warnings = splitLines(warnings)
		e.Errors = splitLines(errorsText)
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
