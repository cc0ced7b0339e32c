/*
handlers.go - HTTP handlers over the booking engine

PURPOSE:
  Thin JSON wrapper around the engine's operation surface. Handlers parse
  the request, call one engine operation, and serialize the result. All
  validation and state-machine rules live in the engine.

ERROR HANDLING:
  Engine errors map to HTTP status by kind:
  - 404: room/booking/guest not found
  - 409: no availability, invalid transition, duplicate guest
  - 400: invalid input (price, nights, dates, enums)
  - 500: storage failures

SEE ALSO:
  - dto.go:    request/response shapes
  - server.go: router and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stayhub/hotel-engine/engine"
	"github.com/stayhub/hotel-engine/hotel"
)

// Handler holds the handlers' single dependency, the engine.
type Handler struct {
	Engine *engine.Engine
}

func NewHandler(e *engine.Engine) *Handler {
	return &Handler{Engine: e}
}

// =============================================================================
// ROOMS
// =============================================================================

// ListRooms returns the full inventory.
// GET /api/rooms
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Engine.ListRooms(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomDTOs(rooms))
}

// AddRoom creates a room.
// POST /api/rooms
func (h *Handler) AddRoom(w http.ResponseWriter, r *http.Request) {
	var req AddRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	room, err := h.Engine.AddRoom(r.Context(), req.Type, req.Price)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRoomDTO(room))
}

// UpdateRoom applies a partial update.
// PATCH /api/rooms/{id}
func (h *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	room, err := h.Engine.UpdateRoom(r.Context(), chi.URLParam(r, "id"), engine.RoomPatch{
		Type:     req.Type,
		Price:    req.Price,
		Status:   req.Status,
		Cleaning: req.Cleaning,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomDTO(room))
}

// DeleteRoom removes a room.
// DELETE /api/rooms/{id}
func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.DeleteRoom(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FindAvailable returns the first bookable room of a type.
// GET /api/rooms/available?type=Single
func (h *Handler) FindAvailable(w http.ResponseWriter, r *http.Request) {
	room, err := h.Engine.FindAvailable(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomDTO(room))
}

// AvailableRoomTypes returns the guest-facing availability display.
// GET /api/rooms/offers
func (h *Handler) AvailableRoomTypes(w http.ResponseWriter, r *http.Request) {
	offers, err := h.Engine.AvailableRoomTypes(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]RoomTypeOfferDTO, 0, len(offers))
	for _, o := range offers {
		out = append(out, RoomTypeOfferDTO{Type: string(o.Type), Price: o.Price})
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// BOOKINGS
// =============================================================================

// Reserve creates an advance reservation.
// POST /api/bookings
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	booking, err := h.Engine.Reserve(r.Context(), req.GuestID, req.Type, req.Nights)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingDTO(booking))
}

// WalkIn creates a walk-in booking, checked in immediately.
// POST /api/bookings/walkin
func (h *Handler) WalkIn(w http.ResponseWriter, r *http.Request) {
	var req ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	booking, err := h.Engine.WalkIn(r.Context(), req.GuestID, req.Type, req.Nights)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingDTO(booking))
}

// GetBooking resolves one booking.
// GET /api/bookings/{id}
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.Engine.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTO(booking))
}

// CheckIn transitions a reservation to Checked-in.
// POST /api/bookings/{id}/checkin
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	booking, err := h.Engine.CheckIn(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTO(booking))
}

// CheckOut closes the stay on a room.
// POST /api/rooms/{id}/checkout
func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	res, err := h.Engine.CheckOut(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCheckOutDTO(res))
}

// Cancel voids a reservation. With guest_id in the body, the cancel is
// scoped to that guest's own bookings.
// POST /api/bookings/{id}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	if r.Body != nil {
		// Body is optional for staff cancels.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	id := chi.URLParam(r, "id")

	var booking hotel.Booking
	var err error
	if req.GuestID != "" {
		booking, err = h.Engine.CancelForGuest(r.Context(), req.GuestID, id)
	} else {
		booking, err = h.Engine.Cancel(r.Context(), id)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTO(booking))
}

// =============================================================================
// GUESTS
// =============================================================================

// RegisterGuest creates a guest row.
// POST /api/guests
func (h *Handler) RegisterGuest(w http.ResponseWriter, r *http.Request) {
	var req RegisterGuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	guest, err := h.Engine.RegisterGuest(r.Context(), engine.RegisterGuestParams{
		FullName:   req.FullName,
		ICPassport: req.ICPassport,
		Phone:      req.Phone,
		Email:      req.Email,
		Username:   req.Username,
		Password:   req.Password,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGuestDTO(guest))
}

// GetGuest resolves one guest.
// GET /api/guests/{id}
func (h *Handler) GetGuest(w http.ResponseWriter, r *http.Request) {
	guest, err := h.Engine.GetGuest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGuestDTO(guest))
}

// UpdateGuest applies a partial update.
// PATCH /api/guests/{id}
func (h *Handler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	var req UpdateGuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	guest, err := h.Engine.UpdateGuest(r.Context(), chi.URLParam(r, "id"), engine.GuestPatch{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGuestDTO(guest))
}

// ListGuestBookings returns a guest's booking history.
// GET /api/guests/{id}/bookings
func (h *Handler) ListGuestBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Engine.ListForGuest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTOs(bookings))
}

// =============================================================================
// HOUSEKEEPING
// =============================================================================

// CleaningSchedule lists rooms awaiting cleaning.
// GET /api/housekeeping/schedule
func (h *Handler) CleaningSchedule(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Engine.CleaningSchedule(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomDTOs(rooms))
}

// MarkRoomCleaned flips a Dirty room to Clean.
// POST /api/rooms/{id}/clean
func (h *Handler) MarkRoomCleaned(w http.ResponseWriter, r *http.Request) {
	room, err := h.Engine.MarkRoomCleaned(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomDTO(room))
}

// ResolveMaintenance returns a room to service.
// POST /api/rooms/{id}/maintenance/resolve
func (h *Handler) ResolveMaintenance(w http.ResponseWriter, r *http.Request) {
	room, err := h.Engine.ResolveMaintenance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomDTO(room))
}

// =============================================================================
// PAYMENTS & REPORTS
// =============================================================================

// RecordPayment appends a payment.
// POST /api/payments
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	payment, err := h.Engine.RecordPayment(r.Context(), req.BookingID, req.Amount, req.Method)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentDTO(payment))
}

// IncomeReport sums payments in a date range.
// GET /api/reports/income?from=2025-01-01&to=2025-01-31
func (h *Handler) IncomeReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Engine.IncomeBetween(r.Context(), r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, IncomeReportDTO{
		From:     rep.From.String(),
		To:       rep.To.String(),
		Payments: toPaymentDTOs(rep.Payments),
		Total:    hotel.FormatAmount(rep.Total),
	})
}

// OutstandingReport lists bookings that still require payment.
// GET /api/reports/outstanding
func (h *Handler) OutstandingReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Engine.Outstanding(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	dto := OutstandingReportDTO{
		Items: make([]OutstandingItemDTO, 0, len(rep.Items)),
		Total: hotel.FormatAmount(rep.Total),
	}
	for _, item := range rep.Items {
		dto.Items = append(dto.Items, OutstandingItemDTO{
			Booking: toBookingDTO(item.Booking),
			Owed:    hotel.FormatAmount(item.Owed),
		})
	}
	writeJSON(w, http.StatusOK, dto)
}

// MonthlySummary is the accountant's monthly ledger.
// GET /api/reports/monthly/{month}
func (h *Handler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Engine.MonthlySummary(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	byMethod := make(map[string]string, len(sum.ByMethod))
	for method, amount := range sum.ByMethod {
		byMethod[string(method)] = hotel.FormatAmount(amount)
	}
	writeJSON(w, http.StatusOK, MonthlySummaryDTO{
		Month:    sum.Month,
		Total:    hotel.FormatAmount(sum.Total),
		Count:    sum.Count,
		ByMethod: byMethod,
		Payments: toPaymentDTOs(sum.Payments),
	})
}

// SystemSummary is the manager's overview.
// GET /api/reports/summary
func (h *Handler) SystemSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Engine.SystemSummary(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SystemSummaryDTO{
		TotalRooms:    sum.TotalRooms,
		OccupiedRooms: sum.OccupiedRooms,
		TotalBookings: sum.TotalBookings,
		TotalIncome:   hotel.FormatAmount(sum.TotalIncome),
		OccupancyRate: sum.OccupancyRate.StringFixed(2),
	})
}

// DailyReport is the manager's end-of-day view.
// GET /api/reports/daily
func (h *Handler) DailyReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.Engine.DailyReport(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DailyReportDTO{
		Date:            rep.Date.String(),
		CheckInsToday:   toBookingDTOs(rep.CheckInsToday),
		PaymentsToday:   rep.PaymentsToday,
		RevenueToday:    hotel.FormatAmount(rep.RevenueToday),
		ActiveBookings:  rep.ActiveBookings,
		PendingBookings: rep.PendingBookings,
	})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine errors to HTTP status by kind.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case hotel.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case errors.Is(err, hotel.ErrNoAvailability),
		errors.Is(err, hotel.ErrInvalidTransition),
		errors.Is(err, hotel.ErrDuplicateGuest):
		writeError(w, http.StatusConflict, "Conflict", err)
	case errors.Is(err, hotel.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid input", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
