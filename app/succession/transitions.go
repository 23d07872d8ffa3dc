// Package succession implements the leadership succession cycle engine: the
// cycle status state machine, timeline step synchronization, and the
// nomination/application/evaluation/selection sub-workflows. It talks to
// persistence only through the Store interface.
package succession

import (
	"strings"

	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"
)

// CycleStatus and StepStatus are aliases so the engine reads naturally; the
// canonical declarations live with the rest of the models.
type CycleStatus = models.CycleStatus
type StepStatus = models.StepStatus

// StatusOrder lists every cycle status in progression order.
var StatusOrder = []CycleStatus{
	models.CycleDraft,
	models.CycleActive,
	models.CycleNominationsOpen,
	models.CycleNominationsClosed,
	models.CycleApplicationsOpen,
	models.CycleApplicationsClosed,
	models.CycleEvaluations,
	models.CycleEvaluationsClosed,
	models.CycleInterviews,
	models.CycleInterviewsClosed,
	models.CycleSelection,
	models.CycleApprovalPending,
	models.CycleCompleted,
	models.CycleArchived,
}

// allowedTransitions is the allow-list of status moves. The cycle advances
// strictly forward; the single backward edge is approval_pending -> selection
// (rework loop), and completed/archived both come off approval_pending's
// forward path. archived is terminal.
var allowedTransitions = map[CycleStatus]map[CycleStatus]struct{}{
	models.CycleDraft:              {models.CycleActive: {}},
	models.CycleActive:             {models.CycleNominationsOpen: {}},
	models.CycleNominationsOpen:    {models.CycleNominationsClosed: {}},
	models.CycleNominationsClosed:  {models.CycleApplicationsOpen: {}},
	models.CycleApplicationsOpen:   {models.CycleApplicationsClosed: {}},
	models.CycleApplicationsClosed: {models.CycleEvaluations: {}},
	models.CycleEvaluations:        {models.CycleEvaluationsClosed: {}},
	models.CycleEvaluationsClosed:  {models.CycleInterviews: {}},
	models.CycleInterviews:         {models.CycleInterviewsClosed: {}},
	models.CycleInterviewsClosed:   {models.CycleSelection: {}},
	models.CycleSelection:          {models.CycleApprovalPending: {}},
	models.CycleApprovalPending: {
		models.CycleCompleted: {},
		models.CycleSelection: {}, // rework loop
	},
	models.CycleCompleted: {models.CycleArchived: {}},
	models.CycleArchived:  {},
}

// CanTransition reports whether a cycle may move from current to next.
func CanTransition(current, next CycleStatus) bool {
	targets, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	_, ok = targets[next]
	return ok
}

// ValidStatus reports whether s is a known cycle status.
func ValidStatus(s CycleStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsClosedStatus reports whether a status closes its timeline step: every
// "_closed" variant plus the two terminal-ish states.
func IsClosedStatus(s CycleStatus) bool {
	if s == models.CycleCompleted || s == models.CycleArchived {
		return true
	}
	return strings.HasSuffix(string(s), "_closed")
}
