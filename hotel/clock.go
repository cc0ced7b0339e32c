package hotel

import "time"

// Clock abstracts "now" so the engine's date arithmetic (late fees, payment
// dates, daily reports) is testable with a fixed time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock {
	return ClockFunc(time.Now)
}

// FixedClock returns a Clock pinned to the given date. Test helper.
func FixedClock(d Date) Clock {
	t, _ := time.Parse(DateLayout, d.String())
	return ClockFunc(func() time.Time { return t })
}
