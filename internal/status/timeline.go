package status

import (
	"math"
	"sort"
	"time"
)

// TimelineEntry is one derived interval of a job's status history. It is
// computed on read and never persisted, so it always reflects the current
// log even when entries were added out of band.
type TimelineEntry struct {
	Status       Status     `json:"status"`
	Label        string     `json:"label"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	DurationDays float64    `json:"duration_days"`
	IsCurrent    bool       `json:"is_current"`
}

// Reconstruct derives the full status timeline for a job from its ordered
// status-change events. With N changes it produces N+1 chronologically
// contiguous entries, the last of which is the open-ended current interval.
//
// Each change's "from" state names the interval that ends at that change,
// so revisited statuses naturally produce separate intervals. Duplicate
// timestamps keep document order (oldest first), which is deterministic
// but makes no attempt at semantic disambiguation.
func Reconstruct(current Status, createdAt time.Time, changes []Change, now time.Time) []TimelineEntry {
	ordered := make([]Change, len(changes))
	copy(ordered, changes)
	for i := range ordered {
		// A missing or unparseable timestamp is treated as "now" so
		// reconstruction always produces an answer.
		if ordered[i].At.IsZero() {
			ordered[i].At = now
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].At.Before(ordered[j].At)
	})

	entries := make([]TimelineEntry, 0, len(ordered)+1)
	cursor := createdAt

	for _, c := range ordered {
		end := c.At
		entries = append(entries, TimelineEntry{
			Status:       c.From,
			Label:        c.From.Label(),
			StartTime:    cursor,
			EndTime:      &end,
			DurationDays: durationDays(cursor, end, now),
		})
		cursor = c.At
	}

	entries = append(entries, TimelineEntry{
		Status:       current,
		Label:        current.Label(),
		StartTime:    cursor,
		EndTime:      nil,
		DurationDays: durationDays(cursor, time.Time{}, now),
		IsCurrent:    true,
	})

	return entries
}

// durationDays computes elapsed fractional days between start and end (or
// now for open intervals), clamped to zero against future-dated entries and
// rounded to two decimal places.
func durationDays(start, end, now time.Time) float64 {
	if end.IsZero() {
		end = now
	}
	days := end.Sub(start).Hours() / 24
	if days < 0 {
		days = 0
	}
	return Round2(days)
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
