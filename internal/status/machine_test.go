package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutoAdvance(t *testing.T) {
	tests := []struct {
		name           string
		current        Status
		gainedAssignee bool
		statusExplicit bool
		want           Status
		wantFired      bool
	}{
		{"assigning waiting job starts work", WaitingAssessment, true, false, InProgress, true},
		{"assigning on-hold job resumes work", OnHold, true, false, InProgress, true},
		{"explicit status wins over auto-advance", WaitingAssessment, true, true, WaitingAssessment, false},
		{"no assignment change, no rule", WaitingAssessment, false, false, WaitingAssessment, false},
		{"already in progress unchanged", InProgress, true, false, InProgress, false},
		{"ready for pickup never regresses", ReadyForPickup, true, false, ReadyForPickup, false},
		{"completed never regresses", Completed, true, false, Completed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fired := AutoAdvance(tt.current, tt.gainedAssignee, tt.statusExplicit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantFired, fired)
		})
	}
}

func TestNextStates(t *testing.T) {
	assert.Equal(t, []Status{InProgress}, NextStates(WaitingAssessment))
	assert.ElementsMatch(t, []Status{OnHold, ReadyForPickup, Completed}, NextStates(InProgress))
	assert.Empty(t, NextStates(Completed))
	assert.Empty(t, NextStates(Cancelled))
}

func TestValid(t *testing.T) {
	for _, s := range All() {
		assert.True(t, Valid(s))
	}
	assert.False(t, Valid(Status("awaiting_parts")))
	assert.False(t, Valid(Status("")))
}
