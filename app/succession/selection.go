package succession

import (
	"errors"
	"fmt"
	"time"

	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"
)

// RecordApproach records an outreach to the nominee of an approved
// nomination. Approaches belong to the selection phase.
func (e *Engine) RecordApproach(actor Actor, cycleID string, in Input) (*models.SuccessionApproach, error) {
	if !actor.IsAdmin {
		return nil, &AuthorizationError{Message: "only admins may record candidate approaches"}
	}
	cmd, verr := ParseApproach(in)
	if verr != nil {
		return nil, verr
	}
	if _, err := e.cycleInStatus(cycleID, models.CycleSelection, "candidate approaches"); err != nil {
		return nil, err
	}

	nomination, err := e.store.GetNomination(cmd.NominationID)
	if err != nil {
		return nil, fmt.Errorf("loading nomination: %w", err)
	}
	if nomination == nil {
		return nil, &NotFoundError{Entity: "nomination", ID: cmd.NominationID}
	}
	if nomination.CycleID != cycleID {
		return nil, precondition("nomination does not belong to this cycle")
	}
	if nomination.Status != models.CandidacyApproved {
		return nil, precondition("only approved nominees can be approached (this nomination is %s)", nomination.Status)
	}

	approach := &models.SuccessionApproach{
		CycleID:         cycleID,
		NominationID:    cmd.NominationID,
		NomineeMemberID: nomination.NomineeMemberID,
		ApproachedBy:    actor.MemberID,
		Notes:           cmd.Notes,
		ResponseStatus:  models.ApproachPending,
	}
	if err := e.store.CreateApproach(approach); err != nil {
		return nil, fmt.Errorf("recording approach: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + cycleID)
	return approach, nil
}

// RecordApproachResponse captures the nominee's answer to a pending approach.
func (e *Engine) RecordApproachResponse(actor Actor, approachID string, response models.ApproachResponse, notes string) (*models.SuccessionApproach, error) {
	switch response {
	case models.ApproachAccepted, models.ApproachDeclined, models.ApproachConditional:
	default:
		return nil, invalid("response_status", "must be accepted, declined, or conditional")
	}
	approach, err := e.store.GetApproach(approachID)
	if err != nil {
		return nil, fmt.Errorf("loading approach: %w", err)
	}
	if approach == nil {
		return nil, &NotFoundError{Entity: "approach", ID: approachID}
	}
	if !actor.IsAdmin && actor.MemberID != approach.NomineeMemberID {
		return nil, &AuthorizationError{Message: "only the approached nominee or an admin may record the response"}
	}
	if approach.ResponseStatus != models.ApproachPending {
		return nil, precondition("this approach was already answered (%s)", approach.ResponseStatus)
	}

	now := time.Now()
	approach.ResponseStatus = response
	approach.ResponseNotes = notes
	approach.RespondedAt = &now
	if err := e.store.UpdateApproach(approach); err != nil {
		return nil, fmt.Errorf("updating approach: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + approach.CycleID)
	return approach, nil
}

// ScheduleMeeting creates a steering-committee meeting for a cycle.
func (e *Engine) ScheduleMeeting(actor Actor, cycleID string, in Input) (*models.SuccessionMeeting, error) {
	if !actor.IsAdmin {
		return nil, &AuthorizationError{Message: "only admins may schedule committee meetings"}
	}
	cmd, verr := ParseMeeting(in)
	if verr != nil {
		return nil, verr
	}
	cycle, err := e.store.GetCycle(cycleID)
	if err != nil {
		return nil, fmt.Errorf("loading cycle: %w", err)
	}
	if cycle == nil {
		return nil, &NotFoundError{Entity: "succession cycle", ID: cycleID}
	}

	meeting := &models.SuccessionMeeting{
		CycleID:     cycleID,
		Title:       cmd.Title,
		Agenda:      cmd.Agenda,
		ScheduledAt: cmd.ScheduledAt,
		Status:      models.MeetingScheduled,
		CreatedBy:   actor.MemberID,
	}
	if err := e.store.CreateMeeting(meeting); err != nil {
		return nil, fmt.Errorf("scheduling meeting: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + cycleID)
	return meeting, nil
}

// meetingTransitions mirrors the cycle table in miniature: meetings move
// forward or get cancelled, never back.
var meetingTransitions = map[models.MeetingStatus][]models.MeetingStatus{
	models.MeetingScheduled:  {models.MeetingInProgress, models.MeetingCancelled},
	models.MeetingInProgress: {models.MeetingCompleted, models.MeetingCancelled},
	models.MeetingCompleted:  {},
	models.MeetingCancelled:  {},
}

// SetMeetingStatus moves a meeting through its small lifecycle. Completing a
// meeting records the minutes.
func (e *Engine) SetMeetingStatus(actor Actor, meetingID string, status models.MeetingStatus, minutes string) (*models.SuccessionMeeting, error) {
	if !actor.IsAdmin {
		return nil, &AuthorizationError{Message: "only admins may manage committee meetings"}
	}
	meeting, err := e.store.GetMeeting(meetingID)
	if err != nil {
		return nil, fmt.Errorf("loading meeting: %w", err)
	}
	if meeting == nil {
		return nil, &NotFoundError{Entity: "meeting", ID: meetingID}
	}

	allowed := false
	for _, next := range meetingTransitions[meeting.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, precondition("meeting cannot move from %s to %s", meeting.Status, status)
	}

	meeting.Status = status
	if status == models.MeetingCompleted && minutes != "" {
		meeting.Minutes = minutes
	}
	if err := e.store.UpdateMeeting(meeting); err != nil {
		return nil, fmt.Errorf("updating meeting: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + meeting.CycleID)
	return meeting, nil
}

// SubmitVote records the actor's vote on a nominee in a meeting. One vote per
// (meeting, nominee, voter); the store's uniqueness signal becomes a friendly
// duplicate-vote error.
func (e *Engine) SubmitVote(actor Actor, in Input) (*models.SuccessionVote, error) {
	cmd, verr := ParseVote(in)
	if verr != nil {
		return nil, verr
	}

	meeting, err := e.store.GetMeeting(cmd.MeetingID)
	if err != nil {
		return nil, fmt.Errorf("loading meeting: %w", err)
	}
	if meeting == nil {
		return nil, &NotFoundError{Entity: "meeting", ID: cmd.MeetingID}
	}
	if meeting.Status != models.MeetingInProgress {
		return nil, precondition("votes can only be cast while the meeting is in progress (it is %s)", meeting.Status)
	}

	vote := &models.SuccessionVote{
		MeetingID:       cmd.MeetingID,
		NomineeMemberID: cmd.NomineeMemberID,
		VoterMemberID:   actor.MemberID,
		Choice:          cmd.Choice,
		Comment:         cmd.Comment,
	}
	if err := e.store.CreateVote(vote); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, precondition("you have already voted on this nominee in this meeting")
		}
		return nil, fmt.Errorf("recording vote: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + meeting.CycleID)
	return vote, nil
}
