package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettlementDay(t *testing.T) {
	tests := []struct {
		name      string
		timestamp time.Time
		expected  time.Time
	}{
		{
			name:      "before cutoff stays on same day",
			timestamp: time.Date(2026, 3, 15, 2, 59, 59, 999999000, time.UTC),
			expected:  time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "exactly at cutoff rolls to next day",
			timestamp: time.Date(2026, 3, 15, 3, 0, 0, 0, time.UTC),
			expected:  time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "after cutoff rolls to next day",
			timestamp: time.Date(2026, 3, 15, 23, 30, 0, 0, time.UTC),
			expected:  time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "midnight stays on same day",
			timestamp: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			expected:  time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "month boundary rolls into next month",
			timestamp: time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC),
			expected:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "year boundary rolls into next year",
			timestamp: time.Date(2025, 12, 31, 4, 0, 0, 0, time.UTC),
			expected:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SettlementDay(tt.timestamp))
		})
	}
}

func TestCutoffTime(t *testing.T) {
	date := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 7, 4, 3, 0, 0, 0, time.UTC), CutoffTime(date))

	// Time-of-day on the input is ignored.
	late := time.Date(2026, 7, 4, 22, 15, 0, 0, time.UTC)
	assert.Equal(t, CutoffTime(date), CutoffTime(late))
}

func TestDay(t *testing.T) {
	ts := time.Date(2026, 2, 28, 17, 45, 12, 345, time.UTC)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), Day(ts))
}

func TestMonthArithmetic(t *testing.T) {
	mid := time.Date(2026, 5, 17, 9, 0, 0, 0, time.UTC)

	start := StartOfMonth(mid)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), start)

	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), AddMonth(start))
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), SubtractMonth(start))

	// December/January crossings land in the adjacent year.
	dec := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), AddMonth(dec))
	jan := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, dec, SubtractMonth(jan))
}
