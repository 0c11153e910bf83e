// Package db persists the vocabulary store as a whole: every command loads
// all records once and saves all records once.
package db

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	"github.com/japaniel/kanastudy/pkg/vocab"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var migrationsSQL string

// Backends accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Repository loads and saves the full record set.
type Repository interface {
	Load() ([]vocab.Record, error)
	Save(records []vocab.Record) error
	Close() error
}

// Open returns the repository for backend at path.
func Open(backend, path string) (Repository, error) {
	switch backend {
	case BackendJSON:
		return NewJSONFile(path), nil
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

// LoadStore loads every record from repo and builds the store. A repository
// with no records yields an empty store.
func LoadStore(repo Repository) (*vocab.Store, error) {
	records, err := repo.Load()
	if err != nil {
		return nil, err
	}
	return vocab.FromRecords(records)
}

// SaveStore writes the whole store back to repo.
func SaveStore(repo Repository, store *vocab.Store) error {
	return repo.Save(store.Records())
}

// InitDB runs migrations on the given DB connection using the embedded SQL.
func InitDB(db *sql.DB) error {
	stmts := strings.Split(migrationsSQL, ";")
	for _, s := range stmts {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
