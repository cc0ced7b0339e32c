/*
Package flatfile implements the hotel.Store contract on plain text files.

PURPOSE:
  The production storage backend. One file per table under a data
  directory, named <table>.txt. First line is the header (field names in
  schema order), every following line one record, comma-separated.

FORMAT RULES:
  - No quoting or escaping: field values must not contain the delimiter
    or a newline. Save rejects such values instead of corrupting the file.
  - A missing file is not an error: Load creates it empty and returns no
    rows.
  - Rows with missing trailing values decode those fields as "".
  - Blank lines are skipped.

DURABILITY:
  Save writes the whole table to a temp file in the same directory and
  renames it over the old one, so a crash mid-save cannot leave a
  half-written table. This protects single files only: a lifecycle
  operation that saves two tables can still crash between the two renames,
  leaving the pair inconsistent. That window is part of the storage
  contract, not a bug here; the engine orders its saves to keep the
  damage bounded.

SEE ALSO:
  - hotel/record.go: the Store contract, including the empty-save no-op
  - store/sqlite:    same contract on SQLite
*/
package flatfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stayhub/hotel-engine/hotel"
)

const delimiter = ","

// Store persists tables as flat text files under a data directory.
type Store struct {
	dir string
}

// New creates a flat-file store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(schema hotel.Schema) string {
	return filepath.Join(s.dir, schema.Name+".txt")
}

// Load reads all rows of the table in file order. A missing file yields an
// empty table and creates the backing file.
func (s *Store) Load(_ context.Context, schema hotel.Schema) ([]hotel.Record, error) {
	path := s.path(schema)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// Absence is not an error; materialize the empty table.
		if werr := os.WriteFile(path, nil, 0o644); werr != nil {
			return nil, fmt.Errorf("create table %s: %w", schema.Name, werr)
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", schema.Name, err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) < 2 {
		return nil, nil
	}

	// The file header wins over the schema: legacy files may carry extra
	// columns, and values must land under the names they were written with.
	header := strings.Split(strings.TrimRight(lines[0], "\r"), delimiter)

	var rows []hotel.Record
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := strings.Split(line, delimiter)
		rec := make(hotel.Record, len(header))
		for i, field := range header {
			if i < len(values) {
				rec[field] = values[i]
			} else {
				rec[field] = ""
			}
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// Save rewrites the table's full contents. Saving zero rows is a no-op per
// the Store contract: prior content is left untouched.
func (s *Store) Save(_ context.Context, schema hotel.Schema, rows []hotel.Record) error {
	if len(rows) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString(strings.Join(schema.Fields, delimiter))
	b.WriteByte('\n')

	for _, rec := range rows {
		values := make([]string, len(schema.Fields))
		for i, field := range schema.Fields {
			v := rec[field]
			if strings.Contains(v, delimiter) || strings.ContainsAny(v, "\r\n") {
				return fmt.Errorf("%w: field %s value %q contains the delimiter",
					hotel.ErrInvalidInput, field, v)
			}
			values[i] = v
		}
		b.WriteString(strings.Join(values, delimiter))
		b.WriteByte('\n')
	}

	// Temp file + rename so a crash never leaves a half-written table.
	tmp, err := os.CreateTemp(s.dir, schema.Name+".*.tmp")
	if err != nil {
		return fmt.Errorf("stage table %s: %w", schema.Name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("stage table %s: %w", schema.Name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("stage table %s: %w", schema.Name, err)
	}
	if err := os.Rename(tmpName, s.path(schema)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit table %s: %w", schema.Name, err)
	}
	return nil
}
