package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.March, 14, 15, 30, 0, 0, time.UTC)

func TestParseDateRangeDefaults(t *testing.T) {
	from, to, err := ParseDateRange("", "", now, 7)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, EndOfDay(now), to)
}

func TestParseDateRangeExplicit(t *testing.T) {
	from, to, err := ParseDateRange("2026-03-01", "2026-03-02", now, 30)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", from.Format(DateLayout))
	assert.Equal(t, 23, to.Hour())
	assert.Equal(t, "2026-03-02", to.Format(DateLayout))
}

func TestParseDateRangeRejects(t *testing.T) {
	for _, c := range [][2]string{
		{"03/01/2026", ""},
		{"", "tomorrow"},
		{"2026-03-05", "2026-03-01"},
	} {
		_, _, err := ParseDateRange(c[0], c[1], now, 7)
		assert.ErrorIs(t, err, ErrInvalidDate, "%v", c)
	}
}

func TestPeriodKey(t *testing.T) {
	assert.Equal(t, "2026-03-14 15:00", PeriodKey(now, "hour"))
	assert.Equal(t, "2026-03-14", PeriodKey(now, "day"))
	assert.Equal(t, "2026-03-14", PeriodKey(now, ""))
	assert.Equal(t, "2026-W11", PeriodKey(now, "week"))
	assert.Equal(t, "2026-03", PeriodKey(now, "month"))
	assert.Equal(t, "2026", PeriodKey(now, "year"))
}

func TestCalculateGrowth(t *testing.T) {
	assert.Equal(t, 0.0, CalculateGrowth(0, 0))
	assert.Equal(t, 100.0, CalculateGrowth(5, 0))
	assert.Equal(t, 50.0, CalculateGrowth(150, 100))
	assert.Equal(t, -25.0, CalculateGrowth(75, 100))
}
