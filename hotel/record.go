/*
Package hotel provides the core types and storage contract for the hotel
booking and inventory engine.

PURPOSE:
  This package contains the domain model (Room, Booking, Payment, Guest),
  the generic flat-record storage contract, and the shared value types
  (Date, money helpers, Clock) everything else builds on.

KEY CONCEPTS IN THIS FILE (record.go):
  - Record: A single row, a mapping from field name to string value
  - Schema: A table name plus its field order (the file header)
  - Store:  Load/Save contract over whole tables

STORAGE MODEL:
  Tables are small and fully rewritten on every save. There are no partial
  writes, no indexes, no transactions. A lifecycle operation loads the
  tables it needs, mutates them in memory, and saves each touched table
  back in a fixed order (see engine package). The contract assumes
  single-writer, single-process access.

SAVE QUIRK (deliberate, callers must respect it):
  Saving an empty row set is a no-op: prior file content is left untouched.
  Callers that legitimately end up with zero rows must not call Save and
  expect truncation. This mirrors the behavior of the data files this
  system is compatible with.

IMPLEMENTATIONS:
  - store/flatfile: production flat text files (header line + comma rows)
  - store/sqlite:   same contract on a SQLite database
  - hotel/store:    in-memory, for tests

SEE ALSO:
  - types.go:  typed rows and their Record codecs
  - tables.go: typed load/save helpers per table
*/
package hotel

import "context"

// =============================================================================
// RECORD - Untyped row
// =============================================================================

// Record is a single table row. Values are always strings; typed access
// goes through the codecs in types.go.
type Record map[string]string

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// =============================================================================
// SCHEMA - Table identity and field order
// =============================================================================

// Schema names a table and fixes its field order. The field order is the
// file header; Save implementations must write fields in exactly this order.
type Schema struct {
	Name   string
	Fields []string
}

// Table schemas. Field order matches the legacy data files byte for byte.
var (
	TableRooms = Schema{
		Name:   "rooms",
		Fields: []string{"room_id", "type", "price", "status", "cleaning_status"},
	}
	TableBookings = Schema{
		Name: "bookings",
		Fields: []string{
			"booking_id", "guest_name", "guest_id", "room_id",
			"check_in", "check_out", "nights", "status", "total_price",
		},
	}
	TablePayments = Schema{
		Name:   "payments",
		Fields: []string{"payment_id", "booking_id", "amount", "date", "method"},
	}
	TableGuests = Schema{
		Name: "guests",
		Fields: []string{
			"guest_id", "username", "password", "full_name",
			"phone", "ic_passport", "email",
		},
	}
	// TableSequences backs ID generation. One row per prefix ("R", "B", ...),
	// holding the next number to hand out. Not part of the legacy file set;
	// created on first use.
	TableSequences = Schema{
		Name:   "sequences",
		Fields: []string{"prefix", "next"},
	}
)

// =============================================================================
// STORE - Whole-table persistence contract
// =============================================================================

// Store handles persistence of whole tables.
//
// Load returns all rows in stable file order. A missing table is not an
// error: it yields an empty slice and the backing table is created empty.
// Missing trailing values in a row default to "".
//
// Save fully replaces the table's contents. Saving zero rows is a no-op
// (see the package comment); prior content is left untouched.
type Store interface {
	Load(ctx context.Context, schema Schema) ([]Record, error)
	Save(ctx context.Context, schema Schema, rows []Record) error
}
