// Package ticks converts human time units to Jellyfin's native tick unit.
// A tick is 100 nanoseconds; all scheduled-task triggers are expressed in
// ticks.
package ticks

import (
	"fmt"
	"strconv"
	"strings"
)

// PerSecond is the number of 100-nanosecond ticks in one second
const PerSecond int64 = 10_000_000

// FromSeconds converts whole seconds to ticks
func FromSeconds(seconds int64) (int64, error) {
	if seconds < 0 {
		return 0, fmt.Errorf("seconds must be non-negative, got %d", seconds)
	}
	return seconds * PerSecond, nil
}

// Interval converts an interval in minutes to ticks
func Interval(minutes int) (int64, error) {
	if minutes <= 0 {
		return 0, fmt.Errorf("interval must be positive, got %d minutes", minutes)
	}
	return int64(minutes) * 60 * PerSecond, nil
}

// Daily converts a wall-clock time of day to ticks since midnight
func Daily(hour, minute int) (int64, error) {
	if hour < 0 || hour > 23 {
		return 0, fmt.Errorf("hour must be in [0,23], got %d", hour)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("minute must be in [0,59], got %d", minute)
	}
	return int64(hour*3600+minute*60) * PerSecond, nil
}

// ParseTimeOfDay parses a "HH:MM" wall-clock time
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	if hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("hour %d out of range [0,23]", hour)
	}
	if minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("minute %d out of range [0,59]", minute)
	}
	return hour, minute, nil
}
