package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/hotel-engine/engine"
	"github.com/stayhub/hotel-engine/hotel"
)

// =============================================================================
// RESERVE / WALK-IN
// =============================================================================

func TestReserve_AssignsRoomAndComputesTotal(t *testing.T) {
	// GIVEN: One Single at 100.00/night and a registered guest
	// WHEN: The guest reserves a Single for 2 nights on 2025-01-08
	// THEN: Booking is Confirmed, total 200.00, dates stamped, room Reserved

	f := newFixture(t, "2025-01-08")
	room := f.addRoom(t, "Single", "100.00")
	guest := f.addGuest(t, "alice")

	booking := f.reserve(t, guest.ID, "Single", 2)

	assert.Equal(t, "B1", booking.ID)
	assert.Equal(t, guest.ID, booking.GuestID)
	assert.Equal(t, guest.FullName, booking.GuestName)
	assert.Equal(t, room.ID, booking.RoomID)
	assert.Equal(t, hotel.BookingConfirmed, booking.Status)
	assert.Equal(t, "200.00", hotel.FormatAmount(booking.Total))
	assert.Equal(t, "2025-01-08", booking.CheckIn.String())
	assert.Equal(t, "2025-01-10", booking.CheckOut.String())
	assert.Equal(t, 2, booking.Nights)

	assert.Equal(t, hotel.RoomReserved, f.room(t, room.ID).Status)
}

func TestReserve_TypeMatchIsCaseInsensitive(t *testing.T) {
	f := newFixture(t, "2025-01-08")
	f.addRoom(t, "Deluxe", "250.00")
	guest := f.addGuest(t, "alice")

	booking, err := f.eng.Reserve(context.Background(), guest.ID, "deluxe", 1)

	require.NoError(t, err)
	assert.Equal(t, "250.00", hotel.FormatAmount(booking.Total))
}

func TestReserve_NoAvailability(t *testing.T) {
	// A room that is Reserved, Occupied, Dirty or in Maintenance is not
	// bookable. With every Single in one of those states, reserve fails.

	tests := []struct {
		name     string
		status   string
		cleaning string
	}{
		{"reserved room", "Reserved", "Clean"},
		{"occupied room", "Occupied", "Clean"},
		{"maintenance room", "Maintenance", "Clean"},
		{"dirty room", "Available", "Dirty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "2025-01-08")
			room := f.addRoom(t, "Single", "100.00")
			guest := f.addGuest(t, "alice")
			_, err := f.eng.UpdateRoom(context.Background(), room.ID, engine.RoomPatch{Status: tt.status, Cleaning: tt.cleaning})
			require.NoError(t, err)

			_, err = f.eng.Reserve(context.Background(), guest.ID, "Single", 1)

			assert.ErrorIs(t, err, hotel.ErrNoAvailability)
		})
	}
}

func TestReserve_WrongTypeDoesNotMatch(t *testing.T) {
	// GIVEN: Only a Double is available
	// WHEN: A Single is requested
	// THEN: No availability, even though a bookable room exists

	f := newFixture(t, "2025-01-08")
	f.addRoom(t, "Double", "150.00")
	guest := f.addGuest(t, "alice")

	_, err := f.eng.Reserve(context.Background(), guest.ID, "Single", 1)

	assert.ErrorIs(t, err, hotel.ErrNoAvailability)
}

func TestReserve_ValidationFailures(t *testing.T) {
	f := newFixture(t, "2025-01-08")
	f.addRoom(t, "Single", "100.00")
	guest := f.addGuest(t, "alice")
	ctx := context.Background()

	t.Run("zero nights", func(t *testing.T) {
		_, err := f.eng.Reserve(ctx, guest.ID, "Single", 0)
		assert.ErrorIs(t, err, hotel.ErrInvalidInput)
	})
	t.Run("negative nights", func(t *testing.T) {
		_, err := f.eng.Reserve(ctx, guest.ID, "Single", -3)
		assert.ErrorIs(t, err, hotel.ErrInvalidInput)
	})
	t.Run("unknown room type", func(t *testing.T) {
		_, err := f.eng.Reserve(ctx, guest.ID, "Penthouse", 1)
		assert.ErrorIs(t, err, hotel.ErrInvalidInput)
	})
	t.Run("unknown guest", func(t *testing.T) {
		_, err := f.eng.Reserve(ctx, "G999", "Single", 1)
		assert.ErrorIs(t, err, hotel.ErrGuestNotFound)
	})
}

func TestReserve_AtMostOneActiveBookingPerRoom(t *testing.T) {
	// GIVEN: A single room of each type, first booking holds the Single
	// WHEN: A second guest tries to book a Single
	// THEN: Refused; the one room is never double-assigned

	f := newFixture(t, "2025-01-08")
	room := f.addRoom(t, "Single", "100.00")
	alice := f.addGuest(t, "alice")
	bob := f.addGuest(t, "bob")
	ctx := context.Background()

	first := f.reserve(t, alice.ID, "Single", 2)
	require.Equal(t, room.ID, first.RoomID)

	_, err := f.eng.Reserve(ctx, bob.ID, "Single", 1)
	assert.ErrorIs(t, err, hotel.ErrNoAvailability)

	// Still refused after check-in.
	_, err = f.eng.CheckIn(ctx, first.ID)
	require.NoError(t, err)
	_, err = f.eng.Reserve(ctx, bob.ID, "Single", 1)
	assert.ErrorIs(t, err, hotel.ErrNoAvailability)

	// After check-out the room is free but Dirty, so still not bookable
	// until housekeeping passes.
	_, err = f.eng.CheckOut(ctx, room.ID)
	require.NoError(t, err)
	_, err = f.eng.Reserve(ctx, bob.ID, "Single", 1)
	assert.ErrorIs(t, err, hotel.ErrNoAvailability)

	_, err = f.eng.MarkRoomCleaned(ctx, room.ID)
	require.NoError(t, err)
	second, err := f.eng.Reserve(ctx, bob.ID, "Single", 1)
	require.NoError(t, err)
	assert.Equal(t, room.ID, second.RoomID)
}

func TestWalkIn_StartsCheckedIn(t *testing.T) {
	// A walk-in skips the Confirmed stage: booking Checked-in, room Occupied.

	f := newFixture(t, "2025-01-08")
	room := f.addRoom(t, "Double", "150.00")
	guest := f.addGuest(t, "alice")

	booking, err := f.eng.WalkIn(context.Background(), guest.ID, "Double", 3)

	require.NoError(t, err)
	assert.Equal(t, hotel.BookingCheckedIn, booking.Status)
	assert.Equal(t, "450.00", hotel.FormatAmount(booking.Total))
	assert.Equal(t, hotel.RoomOccupied, f.room(t, room.ID).Status)
}

// =============================================================================
// CHECK-IN
// =============================================================================

func TestCheckIn_ConfirmedBooking(t *testing.T) {
	f := newFixture(t, "2025-01-08")
	room := f.addRoom(t, "Single", "100.00")
	guest := f.addGuest(t, "alice")
	booking := f.reserve(t, guest.ID, "Single", 2)

	got, err := f.eng.CheckIn(context.Background(), booking.ID)

	require.NoError(t, err)
	assert.Equal(t, hotel.BookingCheckedIn, got.Status)
	assert.Equal(t, hotel.RoomOccupied, f.room(t, room.ID).Status)
}

func TestCheckIn_RejectsWrongState(t *testing.T) {
	// Only Confirmed bookings can check in. Anything else is a transition
	// error that names the offending status.

	f := newFixture(t, "2025-01-08")
	f.addRoom(t, "Single", "100.00")
	guest := f.addGuest(t, "alice")
	booking := f.reserve(t, guest.ID, "Single", 2)
	ctx := context.Background()

	_, err := f.eng.CheckIn(ctx, booking.ID)
	require.NoError(t, err)

	_, err = f.eng.CheckIn(ctx, booking.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, hotel.ErrInvalidTransition)

	var te *hotel.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, booking.ID, te.BookingID)
	assert.Equal(t, hotel.BookingCheckedIn, te.Status)
}

func TestCheckIn_UnknownBooking(t *testing.T) {
	f := newFixture(t, "2025-01-08")

	_, err := f.eng.CheckIn(context.Background(), "B999")

	assert.ErrorIs(t, err, hotel.ErrBookingNotFound)
}

// =============================================================================
// CHECK-OUT
// =============================================================================

func TestCheckOut_OnTime_NoFee(t *testing.T) {
	// GIVEN: A stay due out 2025-01-10
	// WHEN: The guest checks out exactly on 2025-01-10
	// THEN: No overdue days, no fee, total unchanged

	f := newFixture(t, "2025-01-08")
	room := f.addRoom(t, "Single", "100.00")
	guest := f.addGuest(t, "alice")
	booking := f.reserve(t, guest.ID, "Single", 2)
	ctx := context.Background()
	_, err := f.eng.CheckIn(ctx, booking.ID)
	require.NoError(t, err)

	f.setDate("2025-01-10")
	res, err := f.eng.CheckOut(ctx, room.ID)

	require.NoError(t, err)
	assert.Equal(t, 0, res.OverdueDays)
	assert.Equal(t, "0.00", hotel.FormatAmount(res.LateFee))
	assert.Equal(t, "200.00", hotel.FormatAmount(res.Booking.Total))
	assert.Equal(t, hotel.BookingCheckedOut, res.Booking.Status)
	assert.Equal(t, "2025-01-10", res.Booking.CheckOut.String())
}

func TestCheckOut_EarlyDeparture_NoFee(t *testing.T) {
	// Leaving before the expected date charges nothing extra; the booking's
	// check_out becomes the actual departure date.

	f := newFixture(t, "2025-01-08")
	room := f.addRoom(t, "Single", "100.00")
	guest := f.addGuest(t, "alice")
	booking := f.reserve(t, guest.ID, "Single", 5)
	ctx := context.Background()
	_, err := f.eng.CheckIn(ctx, booking.ID)
	require.NoError(t, err)

	f.setDate("2025-01-09")
	res, err := f.eng.CheckOut(ctx, room.ID)

	require.NoError(t, err)
	assert.Equal(t, 0, res.OverdueDays)
	assert.Equal(t, "500.00", hotel.FormatAmount(res.Booking.Total))
	assert.Equal(t, "2025-01-09", res.Booking.CheckOut.String())
}

func TestCheckOut_LateFee_CurrentPricePerOverdueDay(t *testing.T) {
	// GIVEN: Expected check-out 2025-01-10, room price 100.00
	// WHEN: The guest leaves on 2025-01-13
	// THEN: 3 overdue days at 100.00 each, fee 300.00 added to the total

	f := newFixture(t, "2025-01-08")
	room := f.addRoom(t, "Single", "100.00")
	guest := f.addGuest(t, "alice")
	booking := f.reserve(t, guest.ID, "Single", 2)
	ctx := context.Background()
	_, err := f.eng.CheckIn(ctx, booking.ID)
	require.NoError(t, err)
	require.Equal(t, "2025-01-10", booking.CheckOut.String())

	f.setDate("2025-01-13")
	res, err := f.eng.CheckOut(ctx, room.ID)

	require.NoError(t, err)
	assert.Equal(t, 3, res.OverdueDays)
	assert.Equal(t, "300.00", hotel.FormatAmount(res.LateFee))
	assert.Equal(t, "500.00", hotel.FormatAmount(res.Booking.Total))
	assert.Equal(t, "2025-01-13", res.Booking.CheckOut.String())
}

func TestCheckOut_LateFee_UsesCurrentPriceNotBookingPrice(t *testing.T) {
	// The fee bills the room's price at check-out time. A price change
	// mid-stay changes the fee, not the original total.

	f := newFixture(t, "2025-01-08")
	room := f.addRoom(t, "Single", "100.00")
	guest := f.addGuest(t, "alice")
	booking := f.reserve(t, guest.ID, "Single", 2)
	ctx := context.Background()
	_, err := f.eng.CheckIn(ctx, booking.ID)
	require.NoError(t, err)

	_, err = f.eng.UpdateRoom(ctx, room.ID, engine.RoomPatch{Price: "120.00"})
	require.NoError(t, err)

	f.setDate("2025-01-12")
	res, err := f.eng.CheckOut(ctx, room.ID)

	require.NoError(t, err)
	assert.Equal(t, 2, res.OverdueDays)
	assert.Equal(t, "240.00", hotel.FormatAmount(res.LateFee))
	assert.Equal(t, "440.00", hotel.FormatAmount(res.Booking.Total))
}

func TestCheckOut_FreesRoomDirty(t *testing.T) {
	f := newFixture(t, "2025-01-08")
	room := f.addRoom(t, "Single", "100.00")
	guest := f.addGuest(t, "alice")
	booking := f.reserve(t, guest.ID, "Single", 2)
	ctx := context.Background()
	_, err := f.eng.CheckIn(ctx, booking.ID)
	require.NoError(t, err)

	_, err = f.eng.CheckOut(ctx, room.ID)
	require.NoError(t, err)

	got := f.room(t, room.ID)
	assert.Equal(t, hotel.RoomAvailable, got.Status)
	assert.Equal(t, hotel.CleaningDirty, got.Cleaning)
}

func TestCheckOut_NoActiveBooking(t *testing.T) {
	// A Confirmed (not yet checked-in) booking does not count as occupying.

	f := newFixture(t, "2025-01-08")
	room := f.addRoom(t, "Single", "100.00")
	guest := f.addGuest(t, "alice")
	f.reserve(t, guest.ID, "Single", 2)

	_, err := f.eng.CheckOut(context.Background(), room.ID)

	assert.ErrorIs(t, err, hotel.ErrBookingNotFound)
}

func TestCheckOut_AcceptsLegacyActiveStatus(t *testing.T) {
	// GIVEN: A legacy data file where the stay is recorded as "Active"
	// WHEN: The room is checked out
	// THEN: The booking is found and leaves as Checked-out, never "Active"

	f := newFixture(t, "2025-01-13")
	ctx := context.Background()

	rooms := []hotel.Room{
		{ID: "R1", Type: hotel.RoomSingle, Price: dec(t, "100.00"), Status: hotel.RoomOccupied, Cleaning: hotel.CleaningClean},
	}
	require.NoError(t, hotel.SaveRooms(ctx, f.mem, rooms))
	bookings := []hotel.Booking{
		{
			ID: "B1", GuestName: "Alice", GuestID: "G1", RoomID: "R1",
			CheckIn: hotel.MustDate("2025-01-08"), CheckOut: hotel.MustDate("2025-01-10"),
			Nights: 2, Status: hotel.BookingActiveLegacy, Total: dec(t, "200.00"),
		},
	}
	require.NoError(t, hotel.SaveBookings(ctx, f.mem, bookings))

	res, err := f.eng.CheckOut(ctx, "R1")

	require.NoError(t, err)
	assert.Equal(t, hotel.BookingCheckedOut, res.Booking.Status)
	assert.Equal(t, 3, res.OverdueDays)
	assert.Equal(t, "500.00", hotel.FormatAmount(res.Booking.Total))

	stored, err := hotel.LoadBookings(ctx, f.mem)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, hotel.BookingCheckedOut, stored[0].Status)
}

// =============================================================================
// CANCEL
// =============================================================================

func TestCancel_ConfirmedBooking(t *testing.T) {
	// Cancelling zeroes the total and frees the room. The room was never
	// entered, so its cleaning status stays Clean.

	f := newFixture(t, "2025-01-08")
	room := f.addRoom(t, "Single", "100.00")
	guest := f.addGuest(t, "alice")
	booking := f.reserve(t, guest.ID, "Single", 2)

	got, err := f.eng.Cancel(context.Background(), booking.ID)

	require.NoError(t, err)
	assert.Equal(t, hotel.BookingCancelled, got.Status)
	assert.Equal(t, "0.00", hotel.FormatAmount(got.Total))

	r := f.room(t, room.ID)
	assert.Equal(t, hotel.RoomAvailable, r.Status)
	assert.Equal(t, hotel.CleaningClean, r.Cleaning)
}

func TestCancel_RejectsCheckedIn(t *testing.T) {
	f := newFixture(t, "2025-01-08")
	f.addRoom(t, "Single", "100.00")
	guest := f.addGuest(t, "alice")
	booking := f.reserve(t, guest.ID, "Single", 2)
	ctx := context.Background()
	_, err := f.eng.CheckIn(ctx, booking.ID)
	require.NoError(t, err)

	_, err = f.eng.Cancel(ctx, booking.ID)

	assert.ErrorIs(t, err, hotel.ErrInvalidTransition)
}

func TestCancel_RejectsDoubleCancel(t *testing.T) {
	f := newFixture(t, "2025-01-08")
	f.addRoom(t, "Single", "100.00")
	guest := f.addGuest(t, "alice")
	booking := f.reserve(t, guest.ID, "Single", 2)
	ctx := context.Background()

	_, err := f.eng.Cancel(ctx, booking.ID)
	require.NoError(t, err)

	_, err = f.eng.Cancel(ctx, booking.ID)
	assert.ErrorIs(t, err, hotel.ErrInvalidTransition)
}

func TestCancelForGuest_ScopedToOwnBookings(t *testing.T) {
	// Self-service cancel by the wrong guest reports not-found, the same as
	// a booking that does not exist.

	f := newFixture(t, "2025-01-08")
	f.addRoom(t, "Single", "100.00")
	alice := f.addGuest(t, "alice")
	bob := f.addGuest(t, "bob")
	booking := f.reserve(t, alice.ID, "Single", 2)
	ctx := context.Background()

	_, err := f.eng.CancelForGuest(ctx, bob.ID, booking.ID)
	assert.ErrorIs(t, err, hotel.ErrBookingNotFound)

	got, err := f.eng.CancelForGuest(ctx, alice.ID, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, hotel.BookingCancelled, got.Status)
}

// =============================================================================
// QUERIES
// =============================================================================

func TestListForGuest(t *testing.T) {
	f := newFixture(t, "2025-01-08")
	f.addRoom(t, "Single", "100.00")
	f.addRoom(t, "Double", "150.00")
	alice := f.addGuest(t, "alice")
	bob := f.addGuest(t, "bob")
	b1 := f.reserve(t, alice.ID, "Single", 2)
	f.reserve(t, bob.ID, "Double", 1)

	got, err := f.eng.ListForGuest(context.Background(), alice.ID)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, b1.ID, got[0].ID)
}

// =============================================================================
// END TO END - Full lifecycle with late departure
// =============================================================================

func TestLifecycle_ReserveCheckInLateCheckOut(t *testing.T) {
	// R1 Single at 100.00. Reserve 2 nights -> total 200.00, room Reserved.
	// Check in -> room Occupied. Check out 3 days past the expected date ->
	// total 500.00, room Available and Dirty.

	f := newFixture(t, "2025-01-08")
	ctx := context.Background()

	room := f.addRoom(t, "Single", "100.00")
	require.Equal(t, "R1", room.ID)
	guest := f.addGuest(t, "alice")

	booking := f.reserve(t, guest.ID, "Single", 2)
	assert.Equal(t, "200.00", hotel.FormatAmount(booking.Total))
	assert.Equal(t, hotel.RoomReserved, f.room(t, "R1").Status)

	_, err := f.eng.CheckIn(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, hotel.RoomOccupied, f.room(t, "R1").Status)

	f.setDate("2025-01-13")
	res, err := f.eng.CheckOut(ctx, "R1")
	require.NoError(t, err)
	assert.Equal(t, "500.00", hotel.FormatAmount(res.Booking.Total))

	r := f.room(t, "R1")
	assert.Equal(t, hotel.RoomAvailable, r.Status)
	assert.Equal(t, hotel.CleaningDirty, r.Cleaning)

	// The persisted booking row matches what check-out returned.
	stored, err := f.eng.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Booking, stored)
}
