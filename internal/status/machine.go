package status

// transitions is the operational flow a job moves through. It drives
// kanban column ordering and the "next status" hints in the UI; updates
// themselves accept any operator-chosen valid status.
var transitions = map[Status][]Status{
	WaitingAssessment: {InProgress},
	InProgress:        {OnHold, ReadyForPickup, Completed},
	OnHold:            {InProgress, Completed},
	ReadyForPickup:    {InProgress, Completed},
	Completed:         {},
	Cancelled:         {},
}

// NextStates returns the statuses a job normally moves to from s
func NextStates(s Status) []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// AutoAdvance applies the assignment rule: taking ownership of an
// unassigned job starts work. It returns the status the job should be
// forced to and whether the rule fired.
//
// The rule never overrides an explicit status choice in the same update
// and never regresses a job that is already at or past in_progress.
func AutoAdvance(current Status, gainedAssignee, statusExplicit bool) (Status, bool) {
	if !gainedAssignee || statusExplicit {
		return current, false
	}
	switch current {
	case InProgress, ReadyForPickup, Completed:
		return current, false
	}
	return InProgress, true
}
