package succession

import (
	"testing"

	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCycleStartsAsDraftVersionOne(t *testing.T) {
	e, _ := newTestEngine()

	cycle, err := e.CreateCycle(admin, cycleInput(2025))
	require.NoError(t, err)
	assert.Equal(t, 2025, cycle.Year)
	assert.Equal(t, models.CycleDraft, cycle.Status)
	assert.Equal(t, 1, cycle.Version)
	assert.Equal(t, admin.MemberID, cycle.CreatedBy)
	assert.Equal(t, dateAt("2025-09-01"), cycle.StartDate)
}

func TestCreateCycleRequiresAdmin(t *testing.T) {
	e, _ := newTestEngine()

	_, err := e.CreateCycle(member, cycleInput(2025))
	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
}

func TestCreateCycleRejectsDuplicateYear(t *testing.T) {
	e, _ := newTestEngine()
	mustCreateCycle(t, e, 2025)

	_, err := e.CreateCycle(admin, cycleInput(2025))
	var preErr *PreconditionError
	require.ErrorAs(t, err, &preErr)
	assert.Contains(t, preErr.Message, "2025")
}

func TestCreateCycleValidation(t *testing.T) {
	e, _ := newTestEngine()

	_, err := e.CreateCycle(admin, Input{"name": ""})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "year")
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "start_date")
	assert.Contains(t, verr.Fields, "end_date")
}

func TestCreateCycleRejectsEndBeforeStart(t *testing.T) {
	e, _ := newTestEngine()

	in := cycleInput(2025)
	in["start_date"] = "2025-11-30"
	in["end_date"] = "2025-09-01"
	_, err := e.CreateCycle(admin, in)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "end_date")
}

func TestUpdateCyclePartialPatch(t *testing.T) {
	e, _ := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)

	updated, err := e.UpdateCycle(admin, cycle.ID, Input{"description": "Annual leadership handover"})
	require.NoError(t, err)
	assert.Equal(t, "Annual leadership handover", updated.Description)
	assert.Equal(t, cycle.Name, updated.Name, "unspecified fields stay put")
	assert.Equal(t, cycle.Version+1, updated.Version)
}

func TestUpdateCycleStatusChangeChecksTransitionTable(t *testing.T) {
	e, _ := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)

	_, err := e.UpdateCycle(admin, cycle.ID, Input{"status": "selection"})
	var invalidErr *InvalidTransitionError
	require.ErrorAs(t, err, &invalidErr)

	updated, err := e.UpdateCycle(admin, cycle.ID, Input{"status": "active"})
	require.NoError(t, err)
	assert.Equal(t, models.CycleActive, updated.Status)
}

func TestUpdateCycleStaleVersionConflicts(t *testing.T) {
	e, store := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)

	// Another writer sneaks a version bump in between our read and write.
	store.mu.Lock()
	c := store.cycles[cycle.ID]
	c.Version++
	store.cycles[cycle.ID] = c
	store.mu.Unlock()

	_, matched, err := store.UpdateCycle(cycle.ID, cycle.Version, CyclePatch{})
	require.NoError(t, err)
	assert.False(t, matched, "stale version must not match")

	// Through the engine the same race surfaces as a ConflictError, because
	// the engine read version 1 before the concurrent bump.
	_, err = e.AdvanceStatus(admin, cycle.ID, models.CycleActive)
	require.NoError(t, err) // reads fresh version, succeeds

	// Force the engine to act on a stale snapshot: read, bump underneath,
	// then write.
	fresh, err := e.GetCycle(cycle.ID)
	require.NoError(t, err)
	store.mu.Lock()
	c = store.cycles[cycle.ID]
	c.Version++
	store.cycles[cycle.ID] = c
	store.mu.Unlock()
	_, err = e.writeCycle(fresh, CyclePatch{})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, cycle.ID, conflict.ID)
}

func TestWriteCycleDistinguishesGoneFromConflict(t *testing.T) {
	e, store := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)

	fresh, err := e.GetCycle(cycle.ID)
	require.NoError(t, err)
	store.mu.Lock()
	delete(store.cycles, cycle.ID)
	store.mu.Unlock()

	_, err = e.writeCycle(fresh, CyclePatch{})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestVersionOnlyEverIncreases(t *testing.T) {
	e, _ := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)

	last := cycle.Version
	for _, in := range []Input{
		{"description": "first edit"},
		{"description": "second edit"},
		{"status": "active"},
		{"name": "Succession 2025"},
	} {
		updated, err := e.UpdateCycle(admin, cycle.ID, in)
		require.NoError(t, err)
		assert.Greater(t, updated.Version, last)
		last = updated.Version
	}
}

func TestDeleteCycleDraftOnly(t *testing.T) {
	e, store := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)
	forceStatus(t, store, cycle.ID, models.CycleActive)

	err := e.DeleteCycle(admin, cycle.ID)
	var preErr *PreconditionError
	require.ErrorAs(t, err, &preErr)
	assert.Contains(t, preErr.Message, "draft")
}

func TestDeleteCycleBlockedByPositions(t *testing.T) {
	e, _ := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)
	mustCreatePosition(t, e, cycle.ID)

	err := e.DeleteCycle(admin, cycle.ID)
	var preErr *PreconditionError
	require.ErrorAs(t, err, &preErr)
	assert.Contains(t, preErr.Message, "positions")
}

func TestDeleteCycleHappyPath(t *testing.T) {
	e, _ := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)

	require.NoError(t, e.DeleteCycle(admin, cycle.ID))
	_, err := e.GetCycle(cycle.ID)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestDeletePositionBlockedByCandidacies(t *testing.T) {
	e, store := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)
	position := mustCreatePosition(t, e, cycle.ID)
	mustCreateNomination(t, e, store, cycle.ID, position.ID, models.CycleNominationsOpen)

	err := e.DeletePosition(admin, position.ID)
	var preErr *PreconditionError
	require.ErrorAs(t, err, &preErr)
	assert.Contains(t, preErr.Message, "nominations")
}

func TestDeletePositionHappyPath(t *testing.T) {
	e, _ := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)
	position := mustCreatePosition(t, e, cycle.ID)

	require.NoError(t, e.DeletePosition(admin, position.ID))
	positions, err := e.ListPositions(cycle.ID)
	require.NoError(t, err)
	assert.Empty(t, positions)
}

func TestPositionManagementRequiresAdmin(t *testing.T) {
	e, _ := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)
	position := mustCreatePosition(t, e, cycle.ID)

	var authErr *AuthorizationError
	_, err := e.CreatePosition(member, cycle.ID, Input{"title": "Chair", "hierarchy_level": 1})
	require.ErrorAs(t, err, &authErr)
	_, err = e.UpdatePosition(member, position.ID, Input{"title": "Chair", "hierarchy_level": 1})
	require.ErrorAs(t, err, &authErr)
	err = e.DeletePosition(member, position.ID)
	require.ErrorAs(t, err, &authErr)
}

// TestAnnualCycleWalkthrough drives one cycle front to back the way the 2025
// season would actually run: seed the timeline, open nominations, collect and
// review a candidacy, score it, vote on it, approach the nominee, and complete.
func TestAnnualCycleWalkthrough(t *testing.T) {
	e, _ := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)
	position := mustCreatePosition(t, e, cycle.ID)

	seeded, err := e.SeedSteps(cycle.ID, dateAt("2025-09-01"))
	require.NoError(t, err)
	assert.Equal(t, stepCount, seeded)

	_, err = e.AdvanceStatus(admin, cycle.ID, models.CycleActive)
	require.NoError(t, err)
	_, err = e.AdvanceStatus(admin, cycle.ID, models.CycleNominationsOpen)
	require.NoError(t, err)

	nomination, err := e.CreateNomination(member, cycle.ID, Input{
		"position_id":       position.ID,
		"nominee_member_id": nominee.MemberID,
		"statement":         "Led three flagship projects",
	})
	require.NoError(t, err)
	_, err = e.SubmitNomination(member, nomination.ID)
	require.NoError(t, err)
	reviewed, err := e.ReviewNomination(reviewer, nomination.ID, true, "strong candidate")
	require.NoError(t, err)
	assert.Equal(t, models.CandidacyApproved, reviewed.Status)

	for _, next := range []CycleStatus{
		models.CycleNominationsClosed,
		models.CycleApplicationsOpen,
		models.CycleApplicationsClosed,
		models.CycleEvaluations,
	} {
		_, err = e.AdvanceStatus(admin, cycle.ID, next)
		require.NoError(t, err)
	}

	_, err = e.AssignEvaluator(admin, cycle.ID, member.MemberID)
	require.NoError(t, err)
	evaluator, err := e.SubmitScores(member, cycle.ID, Input{
		"nomination_id": nomination.ID,
		"scores": []interface{}{
			map[string]interface{}{"criterion": "leadership", "score": 9},
			map[string]interface{}{"criterion": "availability", "score": 7},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, evaluator.ScoresSubmitted)

	for _, next := range []CycleStatus{
		models.CycleEvaluationsClosed,
		models.CycleInterviews,
		models.CycleInterviewsClosed,
		models.CycleSelection,
	} {
		_, err = e.AdvanceStatus(admin, cycle.ID, next)
		require.NoError(t, err)
	}

	meeting, err := e.ScheduleMeeting(admin, cycle.ID, Input{
		"title":        "Final shortlist",
		"scheduled_at": "2025-11-10",
	})
	require.NoError(t, err)
	_, err = e.SetMeetingStatus(admin, meeting.ID, models.MeetingInProgress, "")
	require.NoError(t, err)
	_, err = e.SubmitVote(admin, Input{
		"meeting_id":        meeting.ID,
		"nominee_member_id": nominee.MemberID,
		"choice":            "yes",
	})
	require.NoError(t, err)

	approach, err := e.RecordApproach(admin, cycle.ID, Input{"nomination_id": nomination.ID})
	require.NoError(t, err)
	_, err = e.RecordApproachResponse(nominee, approach.ID, models.ApproachAccepted, "honored to accept")
	require.NoError(t, err)

	_, err = e.AdvanceStatus(admin, cycle.ID, models.CycleApprovalPending)
	require.NoError(t, err)
	final, err := e.AdvanceStatus(admin, cycle.ID, models.CycleCompleted)
	require.NoError(t, err)
	assert.True(t, final.Published)

	// After completion every timeline step is closed out.
	steps, err := e.ListSteps(cycle.ID)
	require.NoError(t, err)
	require.Len(t, steps, stepCount)
	for _, step := range steps {
		assert.Equal(t, models.StepCompleted, step.Status, "step %d", step.StepNumber)
	}
}
