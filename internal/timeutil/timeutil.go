package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Slot is the coarse part-of-day bucket used by the study statistics tables.
type Slot string

const (
	SlotMorning   Slot = "morning"
	SlotAfternoon Slot = "afternoon"
	SlotNight     Slot = "night"
)

// SlotForHour buckets an hour of day: [0,12) morning, [12,18) afternoon,
// [18,24) night.
func SlotForHour(hour int) Slot {
	switch {
	case hour >= 12 && hour < 18:
		return SlotAfternoon
	case hour >= 18:
		return SlotNight
	default:
		return SlotMorning
	}
}

// SlotForTime buckets a wall-clock time by its hour.
func SlotForTime(t time.Time) Slot {
	return SlotForHour(t.Hour())
}

// MinuteOfDay converts a wall-clock time to whole minutes since midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ClockMinutes parses a zero-padded "HH:MM" or "HH:MM:SS" clock string into
// fractional minutes since midnight.
func ClockMinutes(clock string) (float64, error) {
	parts := strings.Split(clock, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock string: %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", clock, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", clock, err)
	}
	minutes := float64(h)*60 + float64(m)
	if len(parts) == 3 {
		s, err := strconv.Atoi(parts[2])
		if err != nil {
			return 0, fmt.Errorf("invalid second in %q: %w", clock, err)
		}
		minutes += float64(s) / 60
	}
	return minutes, nil
}

// CeilMinutes returns the elapsed whole minutes between from and to, rounded
// up. Sub-minute intervals count as one minute; non-positive intervals as
// zero.
func CeilMinutes(from, to time.Time) int {
	d := to.Sub(from)
	if d <= 0 {
		return 0
	}
	mins := int(d / time.Minute)
	if d%time.Minute > 0 {
		mins++
	}
	return mins
}

// DateString formats t as the YYYY-MM-DD key used by the daily tables.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}

// Weekday returns the lowercase English weekday name used by class schedules.
func Weekday(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}
