/*
dto.go - Request/response shapes for the HTTP surface

All monetary amounts cross the wire as strings with exactly two decimal
digits; all dates as YYYY-MM-DD strings.
*/
package api

import (
	"github.com/stayhub/hotel-engine/engine"
	"github.com/stayhub/hotel-engine/hotel"
)

// =============================================================================
// REQUESTS
// =============================================================================

type AddRoomRequest struct {
	Type  string `json:"type"`
	Price string `json:"price"`
}

type UpdateRoomRequest struct {
	Type     string `json:"type,omitempty"`
	Price    string `json:"price,omitempty"`
	Status   string `json:"status,omitempty"`
	Cleaning string `json:"cleaning_status,omitempty"`
}

type ReserveRequest struct {
	GuestID string `json:"guest_id"`
	Type    string `json:"type"`
	Nights  int    `json:"nights"`
}

type RecordPaymentRequest struct {
	BookingID string `json:"booking_id"`
	Amount    string `json:"amount"`
	Method    string `json:"method"`
}

type RegisterGuestRequest struct {
	FullName   string `json:"full_name"`
	ICPassport string `json:"ic_passport"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Password   string `json:"password"`
}

type UpdateGuestRequest struct {
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

type CancelRequest struct {
	// GuestID scopes the cancel to that guest's own bookings when set
	// (self-service path). Staff cancels leave it empty.
	GuestID string `json:"guest_id,omitempty"`
}

// =============================================================================
// RESPONSES
// =============================================================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type RoomDTO struct {
	ID       string `json:"room_id"`
	Type     string `json:"type"`
	Price    string `json:"price"`
	Status   string `json:"status"`
	Cleaning string `json:"cleaning_status"`
}

func toRoomDTO(r hotel.Room) RoomDTO {
	return RoomDTO{
		ID:       r.ID,
		Type:     string(r.Type),
		Price:    hotel.FormatAmount(r.Price),
		Status:   string(r.Status),
		Cleaning: string(r.Cleaning),
	}
}

func toRoomDTOs(rooms []hotel.Room) []RoomDTO {
	out := make([]RoomDTO, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomDTO(r))
	}
	return out
}

type BookingDTO struct {
	ID        string `json:"booking_id"`
	GuestID   string `json:"guest_id"`
	GuestName string `json:"guest_name"`
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Nights    int    `json:"nights"`
	Status    string `json:"status"`
	Total     string `json:"total_price"`
}

func toBookingDTO(b hotel.Booking) BookingDTO {
	return BookingDTO{
		ID:        b.ID,
		GuestID:   b.GuestID,
		GuestName: b.GuestName,
		RoomID:    b.RoomID,
		CheckIn:   b.CheckIn.String(),
		CheckOut:  b.CheckOut.String(),
		Nights:    b.Nights,
		Status:    string(b.Status),
		Total:     hotel.FormatAmount(b.Total),
	}
}

func toBookingDTOs(bookings []hotel.Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingDTO(b))
	}
	return out
}

type CheckOutDTO struct {
	Booking     BookingDTO `json:"booking"`
	OverdueDays int        `json:"overdue_days"`
	LateFee     string     `json:"late_fee"`
}

func toCheckOutDTO(res engine.CheckOutResult) CheckOutDTO {
	return CheckOutDTO{
		Booking:     toBookingDTO(res.Booking),
		OverdueDays: res.OverdueDays,
		LateFee:     hotel.FormatAmount(res.LateFee),
	}
}

type PaymentDTO struct {
	ID        string `json:"payment_id"`
	BookingID string `json:"booking_id"`
	Amount    string `json:"amount"`
	Date      string `json:"date"`
	Method    string `json:"method"`
}

func toPaymentDTO(p hotel.Payment) PaymentDTO {
	return PaymentDTO{
		ID:        p.ID,
		BookingID: p.BookingID,
		Amount:    hotel.FormatAmount(p.Amount),
		Date:      p.Date.String(),
		Method:    string(p.Method),
	}
}

func toPaymentDTOs(payments []hotel.Payment) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentDTO(p))
	}
	return out
}

// GuestDTO never includes the password field.
type GuestDTO struct {
	ID         string `json:"guest_id"`
	Username   string `json:"username"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	ICPassport string `json:"ic_passport"`
	Email      string `json:"email"`
}

func toGuestDTO(g hotel.Guest) GuestDTO {
	return GuestDTO{
		ID:         g.ID,
		Username:   g.Username,
		FullName:   g.FullName,
		Phone:      g.Phone,
		ICPassport: g.ICPassport,
		Email:      g.Email,
	}
}

type IncomeReportDTO struct {
	From     string       `json:"from"`
	To       string       `json:"to"`
	Payments []PaymentDTO `json:"payments"`
	Total    string       `json:"total"`
}

type OutstandingItemDTO struct {
	Booking BookingDTO `json:"booking"`
	Owed    string     `json:"owed"`
}

type OutstandingReportDTO struct {
	Items []OutstandingItemDTO `json:"items"`
	Total string               `json:"total"`
}

type MonthlySummaryDTO struct {
	Month    string            `json:"month"`
	Total    string            `json:"total"`
	Count    int               `json:"count"`
	ByMethod map[string]string `json:"by_method"`
	Payments []PaymentDTO      `json:"payments"`
}

type SystemSummaryDTO struct {
	TotalRooms    int    `json:"total_rooms"`
	OccupiedRooms int    `json:"occupied_rooms"`
	TotalBookings int    `json:"total_bookings"`
	TotalIncome   string `json:"total_income"`
	OccupancyRate string `json:"occupancy_rate"`
}

type DailyReportDTO struct {
	Date            string       `json:"date"`
	CheckInsToday   []BookingDTO `json:"check_ins_today"`
	PaymentsToday   int          `json:"payments_today"`
	RevenueToday    string       `json:"revenue_today"`
	ActiveBookings  int          `json:"active_bookings"`
	PendingBookings int          `json:"pending_bookings"`
}

type RoomTypeOfferDTO struct {
	Type  string `json:"type"`
	Price string `json:"price"`
}
