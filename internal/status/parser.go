package status

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// changeNotePrefix is the trigger substring that marks a note as a
// candidate status-change note.
const changeNotePrefix = `Status changed from "`

// changeNotePattern extracts the quoted old and new labels. The groups are
// non-greedy and stop at the first closing quote, so labels containing
// escaped quotes are not supported.
var changeNotePattern = regexp.MustCompile(`Status changed from "(.*?)" to "(.*?)"`)

// Change is one parsed status transition.
type Change struct {
	From Status
	To   Status
	// At is when the transition happened. The zero value means the
	// source timestamp was missing or unparseable and is treated as
	// "now" during reconstruction.
	At time.Time
}

// ParseChangeNote reports whether note encodes a status change and, if so,
// returns the resolved from/to statuses. Notes that contain the trigger
// substring but fail the quote pattern are treated as ordinary notes, not
// errors.
func ParseChangeNote(note string) (Change, bool) {
	if !strings.Contains(note, changeNotePrefix) {
		return Change{}, false
	}
	m := changeNotePattern.FindStringSubmatch(note)
	if m == nil {
		return Change{}, false
	}
	return Change{
		From: FromLabel(m[1]),
		To:   FromLabel(m[2]),
	}, true
}

// FormatChangeNote renders the canonical status-change note. The duration
// suffix is informational only and is never re-parsed.
func FormatChangeNote(from, to Status, inPrevious time.Duration) string {
	note := fmt.Sprintf(`Status changed from "%s" to "%s"`, from.Label(), to.Label())
	if inPrevious > 0 {
		note += fmt.Sprintf(" (%s in previous status)", humanDuration(inPrevious))
	}
	return note
}

// humanDuration renders a duration the way a person on the shop floor
// would say it: "3 days 4 hours", "2 hours 10 minutes", "under a minute".
func humanDuration(d time.Duration) string {
	if d < time.Minute {
		return "under a minute"
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	parts := make([]string, 0, 2)
	if days > 0 {
		parts = append(parts, plural(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, plural(hours, "hour"))
	}
	if days == 0 && minutes > 0 {
		parts = append(parts, plural(minutes, "minute"))
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
