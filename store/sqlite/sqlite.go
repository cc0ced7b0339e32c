/*
Package sqlite provides a SQLite-backed implementation of the hotel.Store
contract.

PURPOSE:
  An alternative to the flat-file backend for deployments that want a
  single database file instead of a directory of text tables. The contract
  is identical: whole-table load and save, stable row order, empty save is
  a no-op. Nothing in the engine knows which backend it is running on.

SCHEMA:
  One generic relation holds every table:

    records(table_name, pos, row_json)

  Rows are stored as JSON objects keyed by field name, ordered by pos.
  Save replaces a table's rows inside a single SQL transaction, so unlike
  the flat-file backend a half-written table is impossible even without
  the temp-file dance.

WAL MODE:
  Opened with WAL journaling for crash recovery. Concurrency still follows
  the single-writer model of the storage contract; the mutex is there for
  accidental concurrent use in tests.

USAGE:
  st, err := sqlite.New("./hotel.db")   // or ":memory:"
  defer st.Close()

SEE ALSO:
  - hotel/record.go: the Store contract
  - store/flatfile:  the production flat-file backend
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/stayhub/hotel-engine/hotel"
)

// Store implements hotel.Store on a SQLite database.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (or creates) the database at path. Use ":memory:" for tests.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS records (
		table_name TEXT NOT NULL,
		pos        INTEGER NOT NULL,
		row_json   TEXT NOT NULL,
		PRIMARY KEY (table_name, pos)
	);`)
	return err
}

// Load returns all rows of the table in insertion order.
func (s *Store) Load(ctx context.Context, schema hotel.Schema) ([]hotel.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT row_json FROM records WHERE table_name = ? ORDER BY pos`, schema.Name)
	if err != nil {
		return nil, fmt.Errorf("load table %s: %w", schema.Name, err)
	}
	defer rows.Close()

	var out []hotel.Record
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("load table %s: %w", schema.Name, err)
		}
		rec := make(hotel.Record)
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("load table %s: %w", schema.Name, err)
		}
		// Fields absent from the stored row default to "".
		for _, field := range schema.Fields {
			if _, ok := rec[field]; !ok {
				rec[field] = ""
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Save replaces the table's rows atomically. Saving zero rows is a no-op
// per the Store contract.
func (s *Store) Save(ctx context.Context, schema hotel.Schema, recs []hotel.Record) error {
	if len(recs) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save table %s: %w", schema.Name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM records WHERE table_name = ?`, schema.Name); err != nil {
		return fmt.Errorf("save table %s: %w", schema.Name, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (table_name, pos, row_json) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("save table %s: %w", schema.Name, err)
	}
	defer stmt.Close()

	for i, rec := range recs {
		clean := make(hotel.Record, len(schema.Fields))
		for _, field := range schema.Fields {
			clean[field] = rec[field]
		}
		raw, err := json.Marshal(clean)
		if err != nil {
			return fmt.Errorf("save table %s: %w", schema.Name, err)
		}
		if _, err := stmt.ExecContext(ctx, schema.Name, i, string(raw)); err != nil {
			return fmt.Errorf("save table %s: %w", schema.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save table %s: %w", schema.Name, err)
	}
	return nil
}

var _ hotel.Store = (*Store)(nil)
