package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotForHour(t *testing.T) {
	testCases := []struct {
		name     string
		hour     int
		expected Slot
	}{
		{name: "Midnight", hour: 0, expected: SlotMorning},
		{name: "Late morning", hour: 11, expected: SlotMorning},
		{name: "Noon boundary", hour: 12, expected: SlotAfternoon},
		{name: "Afternoon", hour: 17, expected: SlotAfternoon},
		{name: "Evening boundary", hour: 18, expected: SlotNight},
		{name: "Late night", hour: 23, expected: SlotNight},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SlotForHour(tc.hour))
		})
	}
}

func TestClockMinutes(t *testing.T) {
	testCases := []struct {
		name      string
		clock     string
		expected  float64
		expectErr bool
	}{
		{name: "HH:MM:SS", clock: "09:00:00", expected: 540},
		{name: "HH:MM", clock: "09:30", expected: 570},
		{name: "With seconds", clock: "09:00:30", expected: 540.5},
		{name: "Midnight", clock: "00:00:00", expected: 0},
		{name: "Garbage", clock: "morning", expectErr: true},
		{name: "Empty", clock: "", expectErr: true},
		{name: "Non-numeric minute", clock: "09:xx:00", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			minutes, err := ClockMinutes(tc.clock)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, minutes)
			}
		})
	}
}

func TestCeilMinutes(t *testing.T) {
	base := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		elapsed  time.Duration
		expected int
	}{
		{name: "Sub-minute rounds up", elapsed: 10 * time.Second, expected: 1},
		{name: "Exact minute", elapsed: time.Minute, expected: 1},
		{name: "Ninety seconds", elapsed: 90 * time.Second, expected: 2},
		{name: "Zero", elapsed: 0, expected: 0},
		{name: "Negative clamps to zero", elapsed: -time.Minute, expected: 0},
		{name: "Two hours", elapsed: 2 * time.Hour, expected: 120},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CeilMinutes(base, base.Add(tc.elapsed)))
		})
	}
}

func TestMinuteOfDay(t *testing.T) {
	assert.Equal(t, 551, MinuteOfDay(time.Date(2025, 3, 10, 9, 11, 59, 0, time.UTC)))
	assert.Equal(t, 0, MinuteOfDay(time.Date(2025, 3, 10, 0, 0, 30, 0, time.UTC)))
}

func TestWeekday(t *testing.T) {
	// 2025-03-10 is a Monday.
	assert.Equal(t, "monday", Weekday(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "sunday", Weekday(time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)))
}
