package timecard

import (
	"fmt"
	"time"

	"timecard-report/internal/models"
)

var clockLayouts = []string{"15:04:05", "15:04"}

// ParseClock reads a wall-clock time (HH:MM, HH:MM:SS or HH:MM:SS.fff)
// anchored to a fixed reference date, so only time-of-day differences
// are meaningful.
func ParseClock(clock string) (time.Time, error) {
	for _, layout := range clockLayouts {
		// fractional seconds after the seconds field are accepted by time.Parse
		if t, err := time.Parse(layout, clock); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid clock value %q", clock)
}

// NotDeterminedResult is the sentinel for days whose hours are unknown
func NotDeterminedResult() models.DailyResult {
	return models.DailyResult{Formatted: NotDetermined}
}

// CalculateDailyHours reduces one date's time-ordered punches to worked
// time. Punches are paired by position, (0,1), (2,3), ..., and the
// type tag of each punch is ignored. Days with zero or an odd number of
// punches, a malformed time, or a pair whose exit precedes its entry are
// reported as ND.
//
// Pair durations are summed in milliseconds and floored to whole minutes
// once per day, so sub-minute remainders from different pairs add up.
func CalculateDailyHours(events []models.PunchEvent) models.DailyResult {
	if len(events) == 0 || len(events)%2 != 0 {
		return NotDeterminedResult()
	}

	var totalMs int64
	for i := 0; i < len(events); i += 2 {
		entry, err := ParseClock(events[i].Time)
		if err != nil {
			return NotDeterminedResult()
		}
		exit, err := ParseClock(events[i+1].Time)
		if err != nil {
			return NotDeterminedResult()
		}
		delta := exit.Sub(entry).Milliseconds()
		if delta < 0 {
			return NotDeterminedResult()
		}
		totalMs += delta
	}

	totalMinutes := int(totalMs / int64(time.Minute/time.Millisecond))
	hours := totalMinutes / 60
	minutes := totalMinutes % 60
	return models.DailyResult{
		Hours:     hours,
		Minutes:   minutes,
		Formatted: FormatHM(hours, minutes),
	}
}
