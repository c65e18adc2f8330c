// Package timecard turns raw punch events into per-day worked hours and a
// period report. Everything here is a pure function of its input.
package timecard

import (
	"sort"

	"timecard-report/internal/models"
)

// GroupByDate buckets events by their Date field and sorts each bucket by
// Time ascending. The comparison is lexicographic, which is valid for the
// fixed-width HH:MM:SS.mmm format. Ties keep their input order and no
// event is dropped or deduplicated.
func GroupByDate(events []models.PunchEvent) map[string][]models.PunchEvent {
	buckets := make(map[string][]models.PunchEvent)
	for _, event := range events {
		buckets[event.Date] = append(buckets[event.Date], event)
	}
	for date, bucket := range buckets {
		sortByTime(bucket)
		buckets[date] = bucket
	}
	return buckets
}

func sortByTime(events []models.PunchEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
}

// sortedCopy returns a time-ordered copy without touching the caller's slice
func sortedCopy(events []models.PunchEvent) []models.PunchEvent {
	out := make([]models.PunchEvent, len(events))
	copy(out, events)
	sortByTime(out)
	return out
}
