/*
bookings.go - The booking lifecycle state machine

STATES:
  Confirmed -> Checked-in -> Checked-out
  Confirmed -> Cancelled
  (Checked-out and Cancelled are terminal)

Every transition keeps the booking ledger and the room inventory mutually
consistent by staging both tables and committing them in the engine's
fixed order. The invariant preserved throughout: at most one booking with
status Confirmed or Checked-in references a given room, enforced by only
ever assigning rooms found Available and Clean.

Legacy data may carry the status "Active" as a synonym for Checked-in.
The check-out lookup accepts it; nothing here ever writes it.
*/
package engine

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/stayhub/hotel-engine/hotel"
)

// =============================================================================
// RESERVE / WALK-IN - New bookings
// =============================================================================

// Reserve creates an advance reservation: the booking starts Confirmed and
// the assigned room becomes Reserved.
func (e *Engine) Reserve(ctx context.Context, guestID, roomType string, nights int) (hotel.Booking, error) {
	return e.createBooking(ctx, guestID, roomType, nights, hotel.BookingConfirmed)
}

// WalkIn creates a booking for a guest standing at the desk: the booking
// starts Checked-in and the room becomes Occupied immediately.
func (e *Engine) WalkIn(ctx context.Context, guestID, roomType string, nights int) (hotel.Booking, error) {
	return e.createBooking(ctx, guestID, roomType, nights, hotel.BookingCheckedIn)
}

func (e *Engine) createBooking(ctx context.Context, guestID, roomType string, nights int, status hotel.BookingStatus) (hotel.Booking, error) {
	if nights <= 0 {
		return hotel.Booking{}, &hotel.FieldError{Field: "nights", Value: "", Reason: "must be a positive integer"}
	}
	rt, err := hotel.ParseRoomType(roomType)
	if err != nil {
		return hotel.Booking{}, err
	}

	guests, err := hotel.LoadGuests(ctx, e.store)
	if err != nil {
		return hotel.Booking{}, err
	}
	gi := guestIndex(guests, guestID)
	if gi < 0 {
		return hotel.Booking{}, hotel.ErrGuestNotFound
	}

	rooms, err := hotel.LoadRooms(ctx, e.store)
	if err != nil {
		return hotel.Booking{}, err
	}
	ri := findBookable(rooms, rt)
	if ri < 0 {
		return hotel.Booking{}, hotel.ErrNoAvailability
	}

	bookings, err := hotel.LoadBookings(ctx, e.store)
	if err != nil {
		return hotel.Booking{}, err
	}
	seqs, err := hotel.LoadSequences(ctx, e.store)
	if err != nil {
		return hotel.Booking{}, err
	}

	checkIn := e.today()
	id, seqs := nextID(seqs, "B", len(bookings))
	booking := hotel.Booking{
		ID:        id,
		GuestName: guests[gi].FullName,
		GuestID:   guestID,
		RoomID:    rooms[ri].ID,
		CheckIn:   checkIn,
		CheckOut:  checkIn.AddDays(nights),
		Nights:    nights,
		Status:    status,
		Total:     rooms[ri].Price.Mul(decimal.NewFromInt(int64(nights))),
	}

	if status == hotel.BookingCheckedIn {
		rooms[ri].Status = hotel.RoomOccupied
	} else {
		rooms[ri].Status = hotel.RoomReserved
	}
	bookings = append(bookings, booking)

	if err := e.commit(ctx, commit{Sequences: seqs, Rooms: rooms, Bookings: bookings}); err != nil {
		return hotel.Booking{}, err
	}
	e.log.Info().
		Str("booking_id", id).
		Str("room_id", booking.RoomID).
		Str("status", string(status)).
		Str("total", hotel.FormatAmount(booking.Total)).
		Msg("booking created")
	return booking, nil
}

// =============================================================================
// CHECK-IN - Confirmed -> Checked-in
// =============================================================================

// CheckIn transitions an existing reservation to Checked-in and marks the
// room Occupied.
func (e *Engine) CheckIn(ctx context.Context, bookingID string) (hotel.Booking, error) {
	bookings, err := hotel.LoadBookings(ctx, e.store)
	if err != nil {
		return hotel.Booking{}, err
	}
	bi := bookingIndex(bookings, bookingID)
	if bi < 0 {
		return hotel.Booking{}, hotel.ErrBookingNotFound
	}
	if bookings[bi].Status != hotel.BookingConfirmed {
		return hotel.Booking{}, &hotel.TransitionError{
			BookingID: bookingID,
			Status:    bookings[bi].Status,
			Operation: "check-in",
		}
	}

	rooms, err := hotel.LoadRooms(ctx, e.store)
	if err != nil {
		return hotel.Booking{}, err
	}

	bookings[bi].Status = hotel.BookingCheckedIn
	if ri := roomIndex(rooms, bookings[bi].RoomID); ri >= 0 {
		rooms[ri].Status = hotel.RoomOccupied
	} else {
		// Dangling weak reference in legacy data. The booking still moves.
		e.log.Warn().Str("booking_id", bookingID).Str("room_id", bookings[bi].RoomID).
			Msg("booked room missing from inventory")
	}

	if err := e.commit(ctx, commit{Rooms: rooms, Bookings: bookings}); err != nil {
		return hotel.Booking{}, err
	}
	e.log.Info().Str("booking_id", bookingID).Msg("guest checked in")
	return bookings[bi], nil
}

// =============================================================================
// CHECK-OUT - Checked-in -> Checked-out, with late fee
// =============================================================================

// CheckOutResult reports what check-out charged.
type CheckOutResult struct {
	Booking     hotel.Booking
	OverdueDays int
	LateFee     decimal.Decimal
}

// CheckOut closes the stay on the given room. The booking's total is
// recomputed with the late fee, its check_out date becomes the actual
// checkout date, and the room goes back to Available but Dirty.
//
// The late fee bills each overdue day at the room's CURRENT nightly price,
// not the price at booking time. Deliberate, if debatable; kept for
// compatibility with the books this system inherits.
func (e *Engine) CheckOut(ctx context.Context, roomID string) (CheckOutResult, error) {
	bookings, err := hotel.LoadBookings(ctx, e.store)
	if err != nil {
		return CheckOutResult{}, err
	}
	bi := -1
	for i := range bookings {
		if bookings[i].RoomID == roomID && bookings[i].Status.Occupying() {
			bi = i
			break
		}
	}
	if bi < 0 {
		return CheckOutResult{}, hotel.ErrNoActiveBooking
	}

	rooms, err := hotel.LoadRooms(ctx, e.store)
	if err != nil {
		return CheckOutResult{}, err
	}
	ri := roomIndex(rooms, roomID)

	today := e.today()
	res := CheckOutResult{OverdueDays: 0, LateFee: decimal.Zero}
	if today.After(bookings[bi].CheckOut) {
		res.OverdueDays = hotel.DaysBetween(bookings[bi].CheckOut, today)
		if ri >= 0 {
			res.LateFee = rooms[ri].Price.Mul(decimal.NewFromInt(int64(res.OverdueDays)))
		} else {
			// No room row means no current price to bill against.
			e.log.Warn().Str("room_id", roomID).Msg("room missing at check-out; late fee skipped")
		}
	}

	bookings[bi].Status = hotel.BookingCheckedOut
	bookings[bi].Total = bookings[bi].Total.Add(res.LateFee)
	bookings[bi].CheckOut = today
	if ri >= 0 {
		rooms[ri].Status = hotel.RoomAvailable
		rooms[ri].Cleaning = hotel.CleaningDirty
	}

	if err := e.commit(ctx, commit{Rooms: rooms, Bookings: bookings}); err != nil {
		return CheckOutResult{}, err
	}
	res.Booking = bookings[bi]
	e.log.Info().
		Str("booking_id", res.Booking.ID).
		Str("room_id", roomID).
		Int("overdue_days", res.OverdueDays).
		Str("late_fee", hotel.FormatAmount(res.LateFee)).
		Msg("guest checked out")
	return res, nil
}

// =============================================================================
// CANCEL - Confirmed -> Cancelled
// =============================================================================

// Cancel voids a reservation. Only Confirmed bookings can be cancelled; a
// checked-in guest must check out instead. The total is zeroed and the
// room freed to Available. Cleaning status is untouched - the guest never
// entered the room.
func (e *Engine) Cancel(ctx context.Context, bookingID string) (hotel.Booking, error) {
	return e.cancel(ctx, bookingID, "")
}

// CancelForGuest is the self-service variant: the booking must belong to
// the given guest, otherwise it reports not-found rather than leaking the
// existence of other guests' bookings.
func (e *Engine) CancelForGuest(ctx context.Context, guestID, bookingID string) (hotel.Booking, error) {
	return e.cancel(ctx, bookingID, guestID)
}

func (e *Engine) cancel(ctx context.Context, bookingID, requireGuestID string) (hotel.Booking, error) {
	bookings, err := hotel.LoadBookings(ctx, e.store)
	if err != nil {
		return hotel.Booking{}, err
	}
	bi := bookingIndex(bookings, bookingID)
	if bi < 0 || (requireGuestID != "" && bookings[bi].GuestID != requireGuestID) {
		return hotel.Booking{}, hotel.ErrBookingNotFound
	}
	if bookings[bi].Status != hotel.BookingConfirmed {
		return hotel.Booking{}, &hotel.TransitionError{
			BookingID: bookingID,
			Status:    bookings[bi].Status,
			Operation: "cancel",
		}
	}

	rooms, err := hotel.LoadRooms(ctx, e.store)
	if err != nil {
		return hotel.Booking{}, err
	}

	bookings[bi].Status = hotel.BookingCancelled
	bookings[bi].Total = decimal.Zero
	if ri := roomIndex(rooms, bookings[bi].RoomID); ri >= 0 {
		rooms[ri].Status = hotel.RoomAvailable
	}

	if err := e.commit(ctx, commit{Rooms: rooms, Bookings: bookings}); err != nil {
		return hotel.Booking{}, err
	}
	e.log.Info().Str("booking_id", bookingID).Msg("reservation cancelled")
	return bookings[bi], nil
}

// =============================================================================
// QUERIES
// =============================================================================

// ListForGuest returns a guest's booking history in table order.
func (e *Engine) ListForGuest(ctx context.Context, guestID string) ([]hotel.Booking, error) {
	bookings, err := hotel.LoadBookings(ctx, e.store)
	if err != nil {
		return nil, err
	}
	var out []hotel.Booking
	for _, b := range bookings {
		if b.GuestID == guestID {
			out = append(out, b)
		}
	}
	return out, nil
}

// GetBooking resolves a booking by id.
func (e *Engine) GetBooking(ctx context.Context, bookingID string) (hotel.Booking, error) {
	bookings, err := hotel.LoadBookings(ctx, e.store)
	if err != nil {
		return hotel.Booking{}, err
	}
	if i := bookingIndex(bookings, bookingID); i >= 0 {
		return bookings[i], nil
	}
	return hotel.Booking{}, hotel.ErrBookingNotFound
}
