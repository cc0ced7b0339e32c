package hotel

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar date, day granularity, UTC
// =============================================================================

// DateLayout is the wire format for all dates in the data files and the API.
const DateLayout = "2006-01-02"

// Date is a calendar date normalized to UTC midnight. All stay and payment
// dates use day granularity; there are no times of day anywhere in the model.
type Date struct {
	t time.Time
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid date %q (want YYYY-MM-DD)", ErrInvalidInput, s)
	}
	return Date{t: t.UTC()}, nil
}

// MustDate parses a YYYY-MM-DD string and panics on failure. Test helper.
func MustDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf truncates a time.Time to its calendar date in UTC.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return Date{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string { return d.t.Format(DateLayout) }
func (d Date) IsZero() bool   { return d.t.IsZero() }

// Comparison
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysBetween returns the whole-day difference to - from.
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// YearMonth returns the YYYY-MM prefix, used by monthly reports.
func (d Date) YearMonth() string { return d.t.Format("2006-01") }

// =============================================================================
// MONTH - YYYY-MM validation for monthly reports
// =============================================================================

// ParseMonth validates a YYYY-MM string and returns it normalized.
func ParseMonth(s string) (string, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return "", fmt.Errorf("%w: invalid month %q (want YYYY-MM)", ErrInvalidInput, s)
	}
	return t.Format("2006-01"), nil
}
