// Package store provides an in-memory hotel.Store for tests and development.
package store

import (
	"context"
	"sync"

	"github.com/stayhub/hotel-engine/hotel"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps whole tables in a map. It mirrors the flat-file semantics:
// loading an unknown table yields an empty slice (and creates the table),
// saving zero rows is a no-op, and every load returns deep copies so callers
// can't mutate stored state behind the store's back.
type Memory struct {
	mu     sync.RWMutex
	tables map[string][]hotel.Record
}

func NewMemory() *Memory {
	return &Memory{tables: make(map[string][]hotel.Record)}
}

func (m *Memory) Load(_ context.Context, schema hotel.Schema) ([]hotel.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.tables[schema.Name]
	if !ok {
		m.tables[schema.Name] = nil
		return nil, nil
	}
	out := make([]hotel.Record, len(rows))
	for i, rec := range rows {
		out[i] = rec.Clone()
	}
	return out, nil
}

func (m *Memory) Save(_ context.Context, schema hotel.Schema, rows []hotel.Record) error {
	if len(rows) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]hotel.Record, len(rows))
	for i, rec := range rows {
		// Keep only schema fields, like a file write would.
		clean := make(hotel.Record, len(schema.Fields))
		for _, field := range schema.Fields {
			clean[field] = rec[field]
		}
		stored[i] = clean
	}
	m.tables[schema.Name] = stored
	return nil
}

var _ hotel.Store = (*Memory)(nil)
