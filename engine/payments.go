/*
payments.go - Payment recording and the accounting reads

Payments are append-only: recorded once, never mutated or deleted, and
tracked independently of the stay lifecycle. Recording a payment does not
move the booking's status; the outstanding report is the only place the
two ledgers are cross-referenced.
*/
package engine

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/stayhub/hotel-engine/hotel"
)

// =============================================================================
// RECORD PAYMENT
// =============================================================================

// RecordPayment appends a payment against an existing booking. The payment
// date is the current date per the engine's clock.
func (e *Engine) RecordPayment(ctx context.Context, bookingID, amount, method string) (hotel.Payment, error) {
	amt, err := hotel.ParsePositiveAmount("amount", amount)
	if err != nil {
		return hotel.Payment{}, err
	}
	m, err := hotel.ParsePaymentMethod(method)
	if err != nil {
		return hotel.Payment{}, err
	}

	// The booking_id is a weak reference; a mistyped id is rejected here,
	// at entry time, because nothing downstream would ever catch it.
	bookings, err := hotel.LoadBookings(ctx, e.store)
	if err != nil {
		return hotel.Payment{}, err
	}
	if bookingIndex(bookings, bookingID) < 0 {
		return hotel.Payment{}, hotel.ErrBookingNotFound
	}

	payments, err := hotel.LoadPayments(ctx, e.store)
	if err != nil {
		return hotel.Payment{}, err
	}
	seqs, err := hotel.LoadSequences(ctx, e.store)
	if err != nil {
		return hotel.Payment{}, err
	}

	id, seqs := nextID(seqs, "P", len(payments))
	payment := hotel.Payment{
		ID:        id,
		BookingID: bookingID,
		Amount:    amt,
		Date:      e.today(),
		Method:    m,
	}
	payments = append(payments, payment)

	if err := e.commit(ctx, commit{Sequences: seqs, Payments: payments}); err != nil {
		return hotel.Payment{}, err
	}
	e.log.Info().
		Str("payment_id", id).
		Str("booking_id", bookingID).
		Str("amount", hotel.FormatAmount(amt)).
		Msg("payment recorded")
	return payment, nil
}

// =============================================================================
// INCOME REPORTS
// =============================================================================

// IncomeReport lists payments in a date range and their sum.
type IncomeReport struct {
	From     hotel.Date
	To       hotel.Date
	Payments []hotel.Payment
	Total    decimal.Decimal
}

// IncomeBetween sums all payments with from <= date <= to (inclusive).
func (e *Engine) IncomeBetween(ctx context.Context, from, to string) (IncomeReport, error) {
	start, err := hotel.ParseDate(from)
	if err != nil {
		return IncomeReport{}, err
	}
	end, err := hotel.ParseDate(to)
	if err != nil {
		return IncomeReport{}, err
	}

	payments, err := hotel.LoadPayments(ctx, e.store)
	if err != nil {
		return IncomeReport{}, err
	}

	rep := IncomeReport{From: start, To: end, Total: decimal.Zero}
	for _, p := range payments {
		if !p.Date.Before(start) && !p.Date.After(end) {
			rep.Payments = append(rep.Payments, p)
			rep.Total = rep.Total.Add(p.Amount)
		}
	}
	return rep, nil
}

// MonthlyTotal sums payments whose date falls in the given YYYY-MM month.
func (e *Engine) MonthlyTotal(ctx context.Context, month string) (decimal.Decimal, error) {
	sum, err := e.MonthlySummary(ctx, month)
	if err != nil {
		return decimal.Zero, err
	}
	return sum.Total, nil
}

// MonthlySummary is the accountant's monthly ledger: total revenue, the
// per-method breakdown, and the transactions behind them.
type MonthlySummary struct {
	Month    string
	Total    decimal.Decimal
	Count    int
	ByMethod map[hotel.PaymentMethod]decimal.Decimal
	Payments []hotel.Payment
}

// MonthlySummary folds the payment ledger for one YYYY-MM month.
func (e *Engine) MonthlySummary(ctx context.Context, month string) (MonthlySummary, error) {
	m, err := hotel.ParseMonth(month)
	if err != nil {
		return MonthlySummary{}, err
	}

	payments, err := hotel.LoadPayments(ctx, e.store)
	if err != nil {
		return MonthlySummary{}, err
	}

	sum := MonthlySummary{
		Month:    m,
		Total:    decimal.Zero,
		ByMethod: make(map[hotel.PaymentMethod]decimal.Decimal),
	}
	for _, p := range payments {
		if p.Date.YearMonth() != m {
			continue
		}
		sum.Total = sum.Total.Add(p.Amount)
		sum.Count++
		sum.ByMethod[p.Method] = sum.ByMethod[p.Method].Add(p.Amount)
		sum.Payments = append(sum.Payments, p)
	}
	return sum, nil
}

// =============================================================================
// OUTSTANDING REPORT
// =============================================================================

// OutstandingItem is a booking that requires payment.
type OutstandingItem struct {
	Booking hotel.Booking
	Owed    decimal.Decimal
}

// OutstandingReport cross-references bookings against payments. A booking
// counts as outstanding when no payment row references its id. Cancelled
// bookings owe nothing and Confirmed bookings have not stayed yet, so both
// are excluded regardless of payments.
type OutstandingReport struct {
	Items []OutstandingItem
	Total decimal.Decimal
}

// Outstanding builds the outstanding payments report.
func (e *Engine) Outstanding(ctx context.Context) (OutstandingReport, error) {
	bookings, err := hotel.LoadBookings(ctx, e.store)
	if err != nil {
		return OutstandingReport{}, err
	}
	payments, err := hotel.LoadPayments(ctx, e.store)
	if err != nil {
		return OutstandingReport{}, err
	}

	paid := make(map[string]bool, len(payments))
	for _, p := range payments {
		paid[p.BookingID] = true
	}

	rep := OutstandingReport{Total: decimal.Zero}
	for _, b := range bookings {
		if b.Status == hotel.BookingCancelled || b.Status == hotel.BookingConfirmed {
			continue
		}
		if paid[b.ID] {
			continue
		}
		rep.Items = append(rep.Items, OutstandingItem{Booking: b, Owed: b.Total})
		rep.Total = rep.Total.Add(b.Total)
	}
	return rep, nil
}

// OutstandingTotal returns just the sum of the outstanding report.
func (e *Engine) OutstandingTotal(ctx context.Context) (decimal.Decimal, error) {
	rep, err := e.Outstanding(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return rep.Total, nil
}
