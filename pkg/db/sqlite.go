package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/japaniel/kanastudy/pkg/vocab"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// SQLite stores records in the vocabulary table of a SQLite database.
type SQLite struct {
	conn *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for a throwaway database.
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
		}
	}
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Single connection so ":memory:" databases are not split per connection.
	conn.SetMaxOpenConns(1)
	if err := InitDB(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	return &SQLite{conn: conn}, nil
}

// NewSQLite wraps an existing connection. The schema must already exist.
func NewSQLite(conn *sql.DB) *SQLite {
	return &SQLite{conn: conn}
}

// Load returns all records ordered by their saved position.
func (s *SQLite) Load() ([]vocab.Record, error) {
	return loadRecords(s.conn)
}

func loadRecords(db DBExecutor) ([]vocab.Record, error) {
	rows, err := db.Query(`SELECT word, word_type, definition, next_review, interval_rung, due, consecutive_correct
		FROM vocabulary ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query vocabulary: %w", err)
	}
	defer rows.Close()

	var out []vocab.Record
	for i := 0; rows.Next(); i++ {
		var r vocab.Record
		var wordType, definition sql.NullString
		var nextReview string
		if err := rows.Scan(&r.Word, &wordType, &definition, &nextReview, &r.IntervalRung, &r.Due, &r.ConsecutiveCorrect); err != nil {
			return nil, fmt.Errorf("scan vocabulary row %d: %w", i, err)
		}
		if wordType.Valid {
			r.WordType = &wordType.String
		}
		if definition.Valid {
			r.Definition = &definition.String
		}
		ts, err := time.Parse(time.RFC3339Nano, nextReview)
		if err != nil {
			return nil, &vocab.RecordError{Index: i, Word: r.Word, Field: "next_review", Reason: err.Error()}
		}
		r.NextReview = ts
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Save replaces every row with records inside one transaction.
func (s *SQLite) Save(records []vocab.Record) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // ignored if committed
	}()

	if _, err := tx.Exec(`DELETE FROM vocabulary`); err != nil {
		return fmt.Errorf("clear vocabulary: %w", err)
	}
	for i, r := range records {
		if err := insertRecord(tx, i, r); err != nil {
			return fmt.Errorf("save %q: %w", r.Word, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save (%d records): %w", len(records), err)
	}
	return nil
}

func insertRecord(db DBExecutor, position int, r vocab.Record) error {
	_, err := db.Exec(`INSERT INTO vocabulary
		(word, word_type, definition, next_review, interval_rung, due, consecutive_correct, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Word, nullableString(r.WordType), nullableString(r.Definition),
		r.NextReview.UTC().Format(time.RFC3339Nano), r.IntervalRung, r.Due, r.ConsecutiveCorrect, position)
	return err
}

// nullableString returns nil for an absent value so the column stores NULL.
func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// Close releases the database connection.
func (s *SQLite) Close() error {
	return s.conn.Close()
}
