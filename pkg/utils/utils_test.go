package utils

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDay(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	ts := time.Date(2024, 3, 10, 23, 59, 1, 5, jakarta)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, jakarta), StartOfDay(ts))
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 999999999, jakarta), EndOfDay(ts))
}

func TestCalendarDaysBetween(t *testing.T) {
	base := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		to       time.Time
		expected int
	}{
		{name: "same day", to: base.Add(time.Hour), expected: 0},
		{name: "next morning", to: time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC), expected: 1},
		{name: "three days later", to: base.AddDate(0, 0, 3), expected: 3},
		{name: "day before", to: base.AddDate(0, 0, -1), expected: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalendarDaysBetween(base, tt.to))
		})
	}
}

func TestIsDateOverdue(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsDateOverdue(now.Add(-time.Minute), now))
	assert.False(t, IsDateOverdue(now.Add(time.Minute), now))
	assert.False(t, IsDateOverdue(now, now))
}

func TestParseDate(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)

	d, err := ParseDate("2024-02-29", loc)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", DateString(d))
	assert.Equal(t, loc, d.Location())

	_, err = ParseDate("29/02/2024", loc)
	assert.Error(t, err)
}

func TestIsWholeRupiah(t *testing.T) {
	assert.True(t, IsWholeRupiah(decimal.NewFromInt(5000)))
	assert.True(t, IsWholeRupiah(decimal.RequireFromString("1500.00")))
	assert.False(t, IsWholeRupiah(decimal.RequireFromString("1500.50")))
}
