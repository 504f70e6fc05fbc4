// Package status defines the repair-job status vocabulary, the canonical
// status-change note format, and the timeline reconstruction that derives
// how long a job spent in each status.
package status

import "strings"

// Status is the operational state of a repair job
type Status string

// Job status values
const (
	// WaitingAssessment is the initial state of every new job
	WaitingAssessment Status = "waiting_assessment"
	// InProgress indicates a technician is actively working the job
	InProgress Status = "in_progress"
	// OnHold indicates work is paused (waiting on parts, approval, etc.)
	OnHold Status = "on_hold"
	// ReadyForPickup indicates the repair is done and the customer was notified
	ReadyForPickup Status = "ready_for_pickup"
	// Completed indicates the job is closed out
	Completed Status = "completed"
	// Cancelled is terminal and only set directly, never via a transition
	Cancelled Status = "cancelled"
)

// labels maps status codes to their display labels, in vocabulary order.
// Matching in FromLabel depends on this order being stable.
var labels = []struct {
	code  Status
	label string
}{
	{WaitingAssessment, "Waiting Assessment"},
	{InProgress, "In Progress"},
	{OnHold, "On Hold"},
	{ReadyForPickup, "Ready For Pickup"},
	{Completed, "Completed"},
	{Cancelled, "Cancelled"},
}

// All returns every status reachable through normal operation
func All() []Status {
	return []Status{WaitingAssessment, InProgress, OnHold, ReadyForPickup, Completed, Cancelled}
}

// Valid reports whether s is a known status code
func Valid(s Status) bool {
	for _, l := range labels {
		if l.code == s {
			return true
		}
	}
	return false
}

// Label returns the display label for a status code. Unknown codes are
// rendered by replacing underscores, so slug-fallback statuses from legacy
// notes still display reasonably.
func (s Status) Label() string {
	for _, l := range labels {
		if l.code == s {
			return l.label
		}
	}
	return strings.ReplaceAll(string(s), "_", " ")
}

// FromLabel resolves a free-text status label to a status code.
// Matching is a case-insensitive substring test against the fixed
// vocabulary; labels that match nothing fall back to a normalized slug
// (lowercase, spaces to underscores) so future labels round-trip instead
// of being dropped.
func FromLabel(label string) Status {
	needle := strings.ToLower(strings.TrimSpace(label))
	for _, l := range labels {
		if strings.Contains(needle, strings.ToLower(l.label)) {
			return l.code
		}
	}
	return Status(strings.ReplaceAll(needle, " ", "_"))
}
