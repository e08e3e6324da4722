package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/booklending/core"
)

func Test_RentDays(t *testing.T) {
	start := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		now      time.Time
		expected int64
	}{
		{name: "same instant", now: start, expected: 1},
		{name: "just under a day", now: start.Add(24*time.Hour - time.Nanosecond), expected: 1},
		{name: "exactly a day", now: start.Add(24 * time.Hour), expected: 2},
		{name: "36 hours", now: start.Add(36 * time.Hour), expected: 2},
		{name: "ten days", now: start.Add(240 * time.Hour), expected: 11},
		{name: "clock went backwards", now: start.Add(-5 * time.Hour), expected: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, core.RentDays(start, tc.now))
		})
	}
}

func Test_RentalFee_UsesRate(t *testing.T) {
	assert.Equal(t, int64(10), core.RentalFee(1, core.DefaultRatePerDay))
	assert.Equal(t, int64(20), core.RentalFee(2, core.DefaultRatePerDay))
	assert.Equal(t, int64(75), core.RentalFee(3, 25))
}

func Test_ToOccurredAt_KeepsNanoseconds(t *testing.T) {
	local := time.Date(2025, 1, 10, 10, 0, 0, 999, time.FixedZone("CET", 3600))

	occurredAt := core.ToOccurredAt(local)

	assert.Equal(t, time.UTC, occurredAt.Location())
	assert.Equal(t, 999, occurredAt.Nanosecond())
	assert.True(t, occurredAt.Equal(local))
}
