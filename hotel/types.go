/*
types.go - Typed rows for the rooms, bookings, payments and guests tables

PURPOSE:
  The storage layer traffics in untyped Records (string -> string). This
  file defines the typed view of each table and the codecs between the two.
  Decoding validates every field: prices and totals must parse as decimals,
  dates as YYYY-MM-DD, enums as one of their known literals. A row that
  fails validation rejects the whole load (see DecodeError) instead of
  surfacing garbage at point-of-use.

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for all money, never float64
  2. Strings on the wire: records store exactly what the files store
  3. Enums as typed string constants, validated on decode

SEE ALSO:
  - record.go: Record/Schema/Store contract
  - tables.go: typed load/save helpers used by the engine
*/
package hotel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ENUMS
// =============================================================================

type RoomType string

const (
	RoomSingle RoomType = "Single"
	RoomDouble RoomType = "Double"
	RoomDeluxe RoomType = "Deluxe"
)

// ParseRoomType matches case-insensitively but always returns the canonical
// literal, so files never accumulate case variants.
func ParseRoomType(s string) (RoomType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return RoomSingle, nil
	case "double":
		return RoomDouble, nil
	case "deluxe":
		return RoomDeluxe, nil
	}
	return "", &FieldError{Field: "type", Value: s, Reason: "want Single, Double or Deluxe"}
}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomReserved    RoomStatus = "Reserved"
	RoomOccupied    RoomStatus = "Occupied"
	RoomMaintenance RoomStatus = "Maintenance"
)

func ParseRoomStatus(s string) (RoomStatus, error) {
	switch RoomStatus(s) {
	case RoomAvailable, RoomReserved, RoomOccupied, RoomMaintenance:
		return RoomStatus(s), nil
	}
	return "", &FieldError{Field: "status", Value: s, Reason: "want Available, Reserved, Occupied or Maintenance"}
}

type CleaningStatus string

const (
	CleaningClean CleaningStatus = "Clean"
	CleaningDirty CleaningStatus = "Dirty"
)

func ParseCleaningStatus(s string) (CleaningStatus, error) {
	switch CleaningStatus(s) {
	case CleaningClean, CleaningDirty:
		return CleaningStatus(s), nil
	}
	return "", &FieldError{Field: "cleaning_status", Value: s, Reason: "want Clean or Dirty"}
}

type BookingStatus string

const (
	BookingConfirmed  BookingStatus = "Confirmed"
	BookingCheckedIn  BookingStatus = "Checked-in"
	BookingCheckedOut BookingStatus = "Checked-out"
	BookingCancelled  BookingStatus = "Cancelled"

	// BookingActiveLegacy appears in old data files as a synonym for
	// Checked-in. It is accepted on decode and in the check-out lookup but
	// is never written by this engine.
	BookingActiveLegacy BookingStatus = "Active"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled, BookingActiveLegacy:
		return BookingStatus(s), nil
	}
	return "", &FieldError{Field: "status", Value: s, Reason: "unknown booking status"}
}

// Occupying reports whether the status counts as "guest holds the room":
// Checked-in, or the legacy Active synonym.
func (s BookingStatus) Occupying() bool {
	return s == BookingCheckedIn || s == BookingActiveLegacy
}

// Terminal reports whether the status admits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingCheckedOut || s == BookingCancelled
}

type PaymentMethod string

const (
	PayCash PaymentMethod = "Cash"
	PayCard PaymentMethod = "Card"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PayCash, PayCard:
		return PaymentMethod(s), nil
	}
	return "", &FieldError{Field: "method", Value: s, Reason: "want Cash or Card"}
}

// =============================================================================
// MONEY
// =============================================================================

// ParseAmount parses a decimal money string.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, &FieldError{Field: field, Value: s, Reason: "not a decimal number"}
	}
	return d, nil
}

// ParsePositiveAmount parses a decimal money string that must be > 0.
// Used for room prices and payment amounts.
func ParsePositiveAmount(field, s string) (decimal.Decimal, error) {
	d, err := ParseAmount(field, s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, &FieldError{Field: field, Value: s, Reason: "must be positive"}
	}
	return d, nil
}

// FormatAmount renders money with exactly two decimal digits.
func FormatAmount(d decimal.Decimal) string { return d.StringFixed(2) }

// =============================================================================
// ROOM
// =============================================================================

type Room struct {
	ID       string
	Type     RoomType
	Price    decimal.Decimal // per night
	Status   RoomStatus
	Cleaning CleaningStatus
}

// Bookable reports whether the room can be assigned to a new booking:
// Available and Clean, nothing else qualifies.
func (r Room) Bookable() bool {
	return r.Status == RoomAvailable && r.Cleaning == CleaningClean
}

func RoomFromRecord(rec Record) (Room, error) {
	var room Room
	var err error
	room.ID = rec["room_id"]
	if room.ID == "" {
		return Room{}, &FieldError{Field: "room_id", Value: "", Reason: "missing"}
	}
	if room.Type, err = ParseRoomType(rec["type"]); err != nil {
		return Room{}, err
	}
	if room.Price, err = ParsePositiveAmount("price", rec["price"]); err != nil {
		return Room{}, err
	}
	if room.Status, err = ParseRoomStatus(rec["status"]); err != nil {
		return Room{}, err
	}
	if room.Cleaning, err = ParseCleaningStatus(rec["cleaning_status"]); err != nil {
		return Room{}, err
	}
	return room, nil
}

func (r Room) Record() Record {
	return Record{
		"room_id":         r.ID,
		"type":            string(r.Type),
		"price":           FormatAmount(r.Price),
		"status":          string(r.Status),
		"cleaning_status": string(r.Cleaning),
	}
}

// =============================================================================
// BOOKING
// =============================================================================

type Booking struct {
	ID        string
	GuestName string // denormalized snapshot at creation time
	GuestID   string
	RoomID    string
	CheckIn   Date
	CheckOut  Date
	Nights    int
	Status    BookingStatus
	Total     decimal.Decimal
}

func BookingFromRecord(rec Record) (Booking, error) {
	var b Booking
	var err error
	b.ID = rec["booking_id"]
	if b.ID == "" {
		return Booking{}, &FieldError{Field: "booking_id", Value: "", Reason: "missing"}
	}
	b.GuestName = rec["guest_name"]
	b.GuestID = rec["guest_id"]
	b.RoomID = rec["room_id"]
	if b.CheckIn, err = ParseDate(rec["check_in"]); err != nil {
		return Booking{}, err
	}
	if b.CheckOut, err = ParseDate(rec["check_out"]); err != nil {
		return Booking{}, err
	}
	b.Nights, err = strconv.Atoi(rec["nights"])
	if err != nil || b.Nights <= 0 {
		return Booking{}, &FieldError{Field: "nights", Value: rec["nights"], Reason: "must be a positive integer"}
	}
	if b.Status, err = ParseBookingStatus(rec["status"]); err != nil {
		return Booking{}, err
	}
	if b.Total, err = ParseAmount("total_price", rec["total_price"]); err != nil {
		return Booking{}, err
	}
	return b, nil
}

func (b Booking) Record() Record {
	return Record{
		"booking_id":  b.ID,
		"guest_name":  b.GuestName,
		"guest_id":    b.GuestID,
		"room_id":     b.RoomID,
		"check_in":    b.CheckIn.String(),
		"check_out":   b.CheckOut.String(),
		"nights":      strconv.Itoa(b.Nights),
		"status":      string(b.Status),
		"total_price": FormatAmount(b.Total),
	}
}

// =============================================================================
// PAYMENT
// =============================================================================

type Payment struct {
	ID        string
	BookingID string
	Amount    decimal.Decimal
	Date      Date
	Method    PaymentMethod
}

func PaymentFromRecord(rec Record) (Payment, error) {
	var p Payment
	var err error
	p.ID = rec["payment_id"]
	if p.ID == "" {
		return Payment{}, &FieldError{Field: "payment_id", Value: "", Reason: "missing"}
	}
	p.BookingID = rec["booking_id"]
	if p.Amount, err = ParsePositiveAmount("amount", rec["amount"]); err != nil {
		return Payment{}, err
	}
	if p.Date, err = ParseDate(rec["date"]); err != nil {
		return Payment{}, err
	}
	if p.Method, err = ParsePaymentMethod(rec["method"]); err != nil {
		return Payment{}, err
	}
	return p, nil
}

func (p Payment) Record() Record {
	return Record{
		"payment_id": p.ID,
		"booking_id": p.BookingID,
		"amount":     FormatAmount(p.Amount),
		"date":       p.Date.String(),
		"method":     string(p.Method),
	}
}

// =============================================================================
// GUEST
// =============================================================================

// Guest is an identity record. Credential checks and login belong to the
// auth collaborator; the engine only reads ID and FullName to stamp onto
// bookings, and writes rows on registration.
type Guest struct {
	ID         string
	Username   string
	Password   string
	FullName   string
	Phone      string
	ICPassport string
	Email      string
}

func GuestFromRecord(rec Record) (Guest, error) {
	g := Guest{
		ID:         rec["guest_id"],
		Username:   rec["username"],
		Password:   rec["password"],
		FullName:   rec["full_name"],
		Phone:      rec["phone"],
		ICPassport: rec["ic_passport"],
		Email:      rec["email"],
	}
	if g.ID == "" {
		return Guest{}, &FieldError{Field: "guest_id", Value: "", Reason: "missing"}
	}
	return g, nil
}

func (g Guest) Record() Record {
	return Record{
		"guest_id":    g.ID,
		"username":    g.Username,
		"password":    g.Password,
		"full_name":   g.FullName,
		"phone":       g.Phone,
		"ic_passport": g.ICPassport,
		"email":       g.Email,
	}
}

// =============================================================================
// SEQUENCE - Persisted ID counters
// =============================================================================

// Sequence is one row of the sequences table: the next number to assign
// for an ID prefix. Counters only move forward, so deleting a row from the
// middle of a table can no longer cause an ID to be reissued.
type Sequence struct {
	Prefix string
	Next   int
}

func SequenceFromRecord(rec Record) (Sequence, error) {
	n, err := strconv.Atoi(rec["next"])
	if err != nil || n < 1 {
		return Sequence{}, &FieldError{Field: "next", Value: rec["next"], Reason: "must be a positive integer"}
	}
	if rec["prefix"] == "" {
		return Sequence{}, &FieldError{Field: "prefix", Value: "", Reason: "missing"}
	}
	return Sequence{Prefix: rec["prefix"], Next: n}, nil
}

func (s Sequence) Record() Record {
	return Record{"prefix": s.Prefix, "next": strconv.Itoa(s.Next)}
}

// FormatID renders a prefixed sequential identifier, e.g. ("R", 3) -> "R3".
func FormatID(prefix string, n int) string {
	return fmt.Sprintf("%s%d", prefix, n)
}
