/*
Package engine implements the booking lifecycle engine and the operation
surface consumed by the role workflows (reception, management, accounting,
housekeeping, guest self-service).

PURPOSE:
  Every operation here follows the same bracket: load the tables it needs
  from the Store, validate all preconditions, mutate in memory, then commit
  the touched tables. There is no long-lived cache: state lives in the
  Store and nowhere else, so each call sees exactly what the files hold.

COMMIT ORDER:
  The Store cannot write two tables atomically, so a crash between saves
  can leave them inconsistent. commit() bounds the damage by always writing
  in a fixed order:

    sequences -> guests -> rooms -> bookings -> payments

  Room status is a projection of the booking ledger, so the projection is
  written before the authoritative booking row. A crash in the window
  leaves a room looking busier than it is (e.g. Reserved with no booking),
  which blocks double-assignment; the reverse order could hand the same
  room to two bookings. There is no automatic rollback or repair - this is
  an accepted property of the storage model, documented, not hidden.

ID ASSIGNMENT:
  New identifiers keep the legacy R<n>/B<n>/P<n>/G<n> shape but come from
  persisted per-prefix counters (sequences table) instead of the row count.
  A missing counter is seeded from the current row count + 1, which matches
  the numbering of existing data files; from then on it only moves forward,
  so deleting a row can never cause an ID to be reissued.

SEE ALSO:
  - rooms.go, bookings.go, payments.go, guests.go, housekeeping.go,
    reports.go: the operations
  - hotel/record.go: the storage contract, including the empty-save no-op
*/
package engine

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-engine/hotel"
)

// Engine orchestrates all table mutations. It holds no persistent state of
// its own; every operation re-loads the tables it needs.
type Engine struct {
	store hotel.Store
	clock hotel.Clock
	log   zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the system clock. Tests pin this to a fixed date.
func WithClock(c hotel.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger attaches a logger. Default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an engine on top of the given store.
func New(store hotel.Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		clock: hotel.SystemClock(),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// today returns the current calendar date per the engine's clock.
func (e *Engine) today() hotel.Date {
	return hotel.DateOf(e.clock.Now())
}

// =============================================================================
// COMMIT - Staged multi-table write
// =============================================================================

// commit stages the tables an operation touched. A nil slice means the
// table was not touched and must not be saved.
type commit struct {
	Sequences []hotel.Sequence
	Guests    []hotel.Guest
	Rooms     []hotel.Room
	Bookings  []hotel.Booking
	Payments  []hotel.Payment
}

// commit writes the staged tables in the fixed order documented in the
// package comment. The first failed save aborts the rest; tables already
// written stay written.
func (e *Engine) commit(ctx context.Context, c commit) error {
	if c.Sequences != nil {
		if err := hotel.SaveSequences(ctx, e.store, c.Sequences); err != nil {
			return err
		}
	}
	if c.Guests != nil {
		if err := hotel.SaveGuests(ctx, e.store, c.Guests); err != nil {
			return err
		}
	}
	if c.Rooms != nil {
		if err := hotel.SaveRooms(ctx, e.store, c.Rooms); err != nil {
			return err
		}
	}
	if c.Bookings != nil {
		if err := hotel.SaveBookings(ctx, e.store, c.Bookings); err != nil {
			return err
		}
	}
	if c.Payments != nil {
		if err := hotel.SavePayments(ctx, e.store, c.Payments); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// ID ASSIGNMENT
// =============================================================================

// nextID assigns the next identifier for prefix and returns the updated
// sequences table. rowCount seeds a missing counter so numbering continues
// where legacy data left off.
func nextID(seqs []hotel.Sequence, prefix string, rowCount int) (string, []hotel.Sequence) {
	for i := range seqs {
		if seqs[i].Prefix == prefix {
			id := hotel.FormatID(prefix, seqs[i].Next)
			seqs[i].Next++
			return id, seqs
		}
	}
	n := rowCount + 1
	seqs = append(seqs, hotel.Sequence{Prefix: prefix, Next: n + 1})
	return hotel.FormatID(prefix, n), seqs
}

// =============================================================================
// LOOKUP HELPERS
// =============================================================================

func roomIndex(rooms []hotel.Room, id string) int {
	for i := range rooms {
		if rooms[i].ID == id {
			return i
		}
	}
	return -1
}

func bookingIndex(bookings []hotel.Booking, id string) int {
	for i := range bookings {
		if bookings[i].ID == id {
			return i
		}
	}
	return -1
}

func guestIndex(guests []hotel.Guest, id string) int {
	for i := range guests {
		if guests[i].ID == id {
			return i
		}
	}
	return -1
}
