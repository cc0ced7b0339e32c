/*
reports.go - Management summaries

Read-only folds over the rooms, bookings and payments tables. These
consume the same load contract as everything else and write nothing.
*/
package engine

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/stayhub/hotel-engine/hotel"
)

// SystemSummary is the manager's one-screen overview.
type SystemSummary struct {
	TotalRooms    int
	OccupiedRooms int
	TotalBookings int
	TotalIncome   decimal.Decimal
	// OccupancyRate is occupied/total in percent, 0 when there are no rooms.
	OccupancyRate decimal.Decimal
}

// SystemSummary folds the whole system state into headline numbers.
func (e *Engine) SystemSummary(ctx context.Context) (SystemSummary, error) {
	rooms, err := hotel.LoadRooms(ctx, e.store)
	if err != nil {
		return SystemSummary{}, err
	}
	bookings, err := hotel.LoadBookings(ctx, e.store)
	if err != nil {
		return SystemSummary{}, err
	}
	payments, err := hotel.LoadPayments(ctx, e.store)
	if err != nil {
		return SystemSummary{}, err
	}

	sum := SystemSummary{
		TotalRooms:    len(rooms),
		TotalBookings: len(bookings),
		TotalIncome:   decimal.Zero,
		OccupancyRate: decimal.Zero,
	}
	for _, r := range rooms {
		if r.Status == hotel.RoomOccupied {
			sum.OccupiedRooms++
		}
	}
	for _, p := range payments {
		sum.TotalIncome = sum.TotalIncome.Add(p.Amount)
	}
	if sum.TotalRooms > 0 {
		sum.OccupancyRate = decimal.NewFromInt(int64(sum.OccupiedRooms)).
			Div(decimal.NewFromInt(int64(sum.TotalRooms))).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}
	return sum, nil
}

// DailyReport is the manager's end-of-day view.
type DailyReport struct {
	Date            hotel.Date
	CheckInsToday   []hotel.Booking // bookings whose check_in is today
	PaymentsToday   int
	RevenueToday    decimal.Decimal
	ActiveBookings  int // Checked-in
	PendingBookings int // Confirmed
}

// DailyReport folds today's activity per the engine's clock.
func (e *Engine) DailyReport(ctx context.Context) (DailyReport, error) {
	bookings, err := hotel.LoadBookings(ctx, e.store)
	if err != nil {
		return DailyReport{}, err
	}
	payments, err := hotel.LoadPayments(ctx, e.store)
	if err != nil {
		return DailyReport{}, err
	}

	today := e.today()
	rep := DailyReport{Date: today, RevenueToday: decimal.Zero}
	for _, b := range bookings {
		if b.CheckIn.Equal(today) {
			rep.CheckInsToday = append(rep.CheckInsToday, b)
		}
		switch {
		case b.Status.Occupying():
			rep.ActiveBookings++
		case b.Status == hotel.BookingConfirmed:
			rep.PendingBookings++
		}
	}
	for _, p := range payments {
		if p.Date.Equal(today) {
			rep.PaymentsToday++
			rep.RevenueToday = rep.RevenueToday.Add(p.Amount)
		}
	}
	return rep, nil
}
