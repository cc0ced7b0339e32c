package hotel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/hotel-engine/hotel"
)

func TestParseDate(t *testing.T) {
	d, err := hotel.ParseDate("2025-01-08")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-08", d.String())

	for _, bad := range []string{"", "08/01/2025", "2025-1-8", "2025-13-01"} {
		_, err := hotel.ParseDate(bad)
		assert.ErrorIs(t, err, hotel.ErrInvalidInput, bad)
	}
}

func TestDateOf_TruncatesToUTCMidnight(t *testing.T) {
	// Late evening in a western timezone is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	d := hotel.DateOf(time.Date(2025, 1, 8, 22, 30, 0, 0, loc))

	assert.Equal(t, "2025-01-09", d.String())
}

func TestDaysBetween(t *testing.T) {
	from := hotel.MustDate("2025-01-10")

	assert.Equal(t, 3, hotel.DaysBetween(from, hotel.MustDate("2025-01-13")))
	assert.Equal(t, 0, hotel.DaysBetween(from, from))
	assert.Equal(t, -2, hotel.DaysBetween(from, hotel.MustDate("2025-01-08")))
	// Across a month boundary.
	assert.Equal(t, 22, hotel.DaysBetween(from, hotel.MustDate("2025-02-01")))
}

func TestDateComparisons(t *testing.T) {
	a := hotel.MustDate("2025-01-08")
	b := hotel.MustDate("2025-01-10")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(hotel.MustDate("2025-01-08")))
	assert.False(t, a.Equal(b))
}

func TestAddDays(t *testing.T) {
	d := hotel.MustDate("2025-01-30")

	assert.Equal(t, "2025-02-01", d.AddDays(2).String())
	assert.Equal(t, "2025-01-28", d.AddDays(-2).String())
}

func TestYearMonth(t *testing.T) {
	assert.Equal(t, "2025-01", hotel.MustDate("2025-01-08").YearMonth())
}

func TestParseMonth(t *testing.T) {
	m, err := hotel.ParseMonth("2025-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-01", m)

	for _, bad := range []string{"January", "2025-13", "2025-1", ""} {
		_, err := hotel.ParseMonth(bad)
		assert.ErrorIs(t, err, hotel.ErrInvalidInput, bad)
	}
}
