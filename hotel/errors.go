/*
errors.go - Centralized error types for the hotel engine

PURPOSE:
  All error kinds in one place. Callers classify failures with errors.Is
  against the sentinels; structured errors carry identifiers for messages
  and unwrap to the matching sentinel.

ERROR KINDS (per the calling workflows):
  1. Not found    - room/booking/guest id unresolved
  2. Transition   - operation attempted from a state that forbids it
  3. Input        - non-numeric price/nights, malformed date, bad enum value
  4. Availability - no bookable room of the requested type

All of these are recoverable at the calling workflow: the operation reports
the failure and the caller retries or aborts. None are fatal to the process.
*/
package hotel

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrRoomNotFound is returned when a room id does not resolve.
	ErrRoomNotFound = errors.New("room not found")

	// ErrBookingNotFound is returned when a booking id does not resolve.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrGuestNotFound is returned when a guest id does not resolve.
	ErrGuestNotFound = errors.New("guest not found")

	// ErrNoActiveBooking is returned by check-out when no checked-in booking
	// exists for the given room.
	ErrNoActiveBooking = fmt.Errorf("%w: no active booking for room", ErrBookingNotFound)

	// ErrNoAvailability is returned when no room of the requested type is
	// both Available and Clean.
	ErrNoAvailability = errors.New("no room available")

	// ErrInvalidTransition is returned when a lifecycle operation is
	// attempted from a booking status that forbids it.
	ErrInvalidTransition = errors.New("invalid booking transition")

	// ErrInvalidInput is returned for malformed prices, nights, dates and
	// unrecognized enum values.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateGuest is returned when a registration collides on
	// username or IC/passport number.
	ErrDuplicateGuest = errors.New("guest already registered")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// TransitionError reports a lifecycle operation rejected by the booking's
// current status.
type TransitionError struct {
	BookingID string
	Status    BookingStatus
	Operation string // "check-in", "cancel"
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s booking %s: status is %q", e.Operation, e.BookingID, e.Status)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// FieldError reports a single malformed field value.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidInput }

// DecodeError reports a row that failed typed validation at load time.
// The whole load is rejected rather than deferring the failure to
// point-of-use.
type DecodeError struct {
	Table string
	Row   int // zero-based data row index
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("table %s row %d: %v", e.Table, e.Row, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates an unresolved identifier.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRoomNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrGuestNotFound)
}

// IsClientError returns true if the error is due to invalid caller input
// or state, as opposed to a storage failure.
func IsClientError(err error) bool {
	return IsNotFound(err) ||
		errors.Is(err, ErrNoAvailability) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrDuplicateGuest)
}
