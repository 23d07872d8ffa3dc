package succession

import (
	"testing"

	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nominationInput(positionID string) Input {
	return Input{
		"position_id":       positionID,
		"nominee_member_id": nominee.MemberID,
		"statement":         "Ran the flagship vertical for two years",
	}
}

func TestCreateNominationOnlyWhileNominationsOpen(t *testing.T) {
	e, store := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)
	position := mustCreatePosition(t, e, cycle.ID)

	for _, status := range []CycleStatus{
		models.CycleDraft,
		models.CycleActive,
		models.CycleNominationsClosed,
		models.CycleEvaluations,
		models.CycleCompleted,
	} {
		forceStatus(t, store, cycle.ID, status)
		_, err := e.CreateNomination(member, cycle.ID, nominationInput(position.ID))
		var preErr *PreconditionError
		require.ErrorAs(t, err, &preErr, "status %s must block nominations", status)
	}

	forceStatus(t, store, cycle.ID, models.CycleNominationsOpen)
	nomination, err := e.CreateNomination(member, cycle.ID, nominationInput(position.ID))
	require.NoError(t, err)
	assert.Equal(t, models.CandidacyDraft, nomination.Status)
	assert.Equal(t, member.MemberID, nomination.NominatedBy)
}

func TestCreateNominationRejectsSelfNomination(t *testing.T) {
	e, store := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)
	position := mustCreatePosition(t, e, cycle.ID)
	forceStatus(t, store, cycle.ID, models.CycleNominationsOpen)

	in := nominationInput(position.ID)
	in["nominee_member_id"] = member.MemberID
	_, err := e.CreateNomination(member, cycle.ID, in)
	var preErr *PreconditionError
	require.ErrorAs(t, err, &preErr)
	assert.Contains(t, preErr.Message, "application")
}

func TestUpdateNominationRejectsSelfNomination(t *testing.T) {
	e, store := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)
	position := mustCreatePosition(t, e, cycle.ID)
	nomination := mustCreateNomination(t, e, store, cycle.ID, position.ID, models.CycleNominationsOpen)

	in := nominationInput(position.ID)
	in["nominee_member_id"] = member.MemberID
	_, err := e.UpdateNomination(member, nomination.ID, in)
	var preErr *PreconditionError
	require.ErrorAs(t, err, &preErr)
	assert.Contains(t, preErr.Message, "application")

	stored, err := store.GetNomination(nomination.ID)
	require.NoError(t, err)
	assert.Equal(t, nominee.MemberID, stored.NomineeMemberID)
}

func TestCreateNominationRejectsInactivePosition(t *testing.T) {
	e, store := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)
	position := mustCreatePosition(t, e, cycle.ID)
	_, err := e.UpdatePosition(admin, position.ID, Input{
		"title":           position.Title,
		"hierarchy_level": 1,
		"is_active":       false,
	})
	require.NoError(t, err)
	forceStatus(t, store, cycle.ID, models.CycleNominationsOpen)

	_, err = e.CreateNomination(member, cycle.ID, nominationInput(position.ID))
	var preErr *PreconditionError
	require.ErrorAs(t, err, &preErr)
}

func TestCreateNominationRejectsForeignPosition(t *testing.T) {
	e, store := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)
	other := mustCreateCycle(t, e, 2026)
	foreign := mustCreatePosition(t, e, other.ID)
	forceStatus(t, store, cycle.ID, models.CycleNominationsOpen)

	_, err := e.CreateNomination(member, cycle.ID, nominationInput(foreign.ID))
	var preErr *PreconditionError
	require.ErrorAs(t, err, &preErr)
	assert.Contains(t, preErr.Message, "does not belong")
}

func TestNominationOwnershipEnforced(t *testing.T) {
	e, store := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)
	position := mustCreatePosition(t, e, cycle.ID)
	nomination := mustCreateNomination(t, e, store, cycle.ID, position.ID, models.CycleNominationsOpen)

	stranger := Actor{MemberID: "99999999-9999-9999-9999-999999999999"}
	var authErr *AuthorizationError
	_, err := e.UpdateNomination(stranger, nomination.ID, nominationInput(position.ID))
	require.ErrorAs(t, err, &authErr)
	_, err = e.SubmitNomination(stranger, nomination.ID)
	require.ErrorAs(t, err, &authErr)
	_, err = e.WithdrawNomination(stranger, nomination.ID)
	require.ErrorAs(t, err, &authErr)
}

func TestNominationSubmitAndReviewFlow(t *testing.T) {
	e, store := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)
	position := mustCreatePosition(t, e, cycle.ID)
	nomination := mustCreateNomination(t, e, store, cycle.ID, position.ID, models.CycleNominationsOpen)

	// Review before submission is premature.
	_, err := e.ReviewNomination(reviewer, nomination.ID, true, "")
	var preErr *PreconditionError
	require.ErrorAs(t, err, &preErr)

	submitted, err := e.SubmitNomination(member, nomination.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CandidacySubmitted, submitted.Status)

	// Submitted nominations are frozen for the nominator.
	_, err = e.UpdateNomination(member, nomination.ID, nominationInput(position.ID))
	require.ErrorAs(t, err, &preErr)
	_, err = e.SubmitNomination(member, nomination.ID)
	require.ErrorAs(t, err, &preErr)

	reviewed, err := e.ReviewNomination(reviewer, nomination.ID, false, "insufficient tenure")
	require.NoError(t, err)
	assert.Equal(t, models.CandidacyRejected, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, reviewer.MemberID, *reviewed.ReviewedBy)
	assert.NotNil(t, reviewed.ReviewedAt)
	assert.Equal(t, "insufficient tenure", reviewed.ReviewNotes)

	// A decided nomination cannot be withdrawn.
	_, err = e.WithdrawNomination(member, nomination.ID)
	require.ErrorAs(t, err, &preErr)
}

func TestWithdrawNominationFromDraftAndSubmitted(t *testing.T) {
	e, store := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)
	position := mustCreatePosition(t, e, cycle.ID)

	draft := mustCreateNomination(t, e, store, cycle.ID, position.ID, models.CycleNominationsOpen)
	withdrawn, err := e.WithdrawNomination(member, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CandidacyWithdrawn, withdrawn.Status)

	second := mustCreateNomination(t, e, store, cycle.ID, position.ID, models.CycleNominationsOpen)
	_, err = e.SubmitNomination(member, second.ID)
	require.NoError(t, err)
	withdrawn, err = e.WithdrawNomination(member, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CandidacyWithdrawn, withdrawn.Status)
}

func TestReviewNominationRequiresAdmin(t *testing.T) {
	e, store := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)
	position := mustCreatePosition(t, e, cycle.ID)
	nomination := mustCreateNomination(t, e, store, cycle.ID, position.ID, models.CycleNominationsOpen)
	_, err := e.SubmitNomination(member, nomination.ID)
	require.NoError(t, err)

	_, err = e.ReviewNomination(member, nomination.ID, true, "")
	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
}

func TestCreateApplicationOnlyWhileApplicationsOpen(t *testing.T) {
	e, store := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)
	position := mustCreatePosition(t, e, cycle.ID)

	forceStatus(t, store, cycle.ID, models.CycleNominationsOpen)
	_, err := e.CreateApplication(member, cycle.ID, Input{"position_id": position.ID})
	var preErr *PreconditionError
	require.ErrorAs(t, err, &preErr)

	forceStatus(t, store, cycle.ID, models.CycleApplicationsOpen)
	application, err := e.CreateApplication(member, cycle.ID, Input{
		"position_id": position.ID,
		"statement":   "Ready to serve",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CandidacyDraft, application.Status)
	assert.Equal(t, member.MemberID, application.ApplicantMemberID)
}

func TestApplicationSubmitWithdrawReview(t *testing.T) {
	e, store := newTestEngine()
	cycle := mustCreateCycle(t, e, 2025)
	position := mustCreatePosition(t, e, cycle.ID)
	forceStatus(t, store, cycle.ID, models.CycleApplicationsOpen)

	application, err := e.CreateApplication(member, cycle.ID, Input{"position_id": position.ID})
	require.NoError(t, err)

	var authErr *AuthorizationError
	_, err = e.SubmitApplication(nominee, application.ID)
	require.ErrorAs(t, err, &authErr)

	submitted, err := e.SubmitApplication(member, application.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CandidacySubmitted, submitted.Status)

	reviewed, err := e.ReviewApplication(reviewer, application.ID, true, "solid application")
	require.NoError(t, err)
	assert.Equal(t, models.CandidacyApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, reviewer.MemberID, *reviewed.ReviewedBy)

	var preErr *PreconditionError
	_, err = e.WithdrawApplication(member, application.ID)
	require.ErrorAs(t, err, &preErr)
}
