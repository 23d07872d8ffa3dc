package succession

import (
	"fmt"
	"time"

	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"
)

// Nomination and application lifecycles share the same shape: validate,
// check ownership, check parent state, write. The parent gates differ only in
// which cycle phase must be open.

func (e *Engine) positionForCandidacy(cycleID, positionID string) (*models.SuccessionPosition, error) {
	position, err := e.store.GetPosition(positionID)
	if err != nil {
		return nil, fmt.Errorf("loading position: %w", err)
	}
	if position == nil {
		return nil, &NotFoundError{Entity: "succession position", ID: positionID}
	}
	if position.CycleID != cycleID {
		return nil, precondition("position does not belong to this cycle")
	}
	if !position.IsActive {
		return nil, precondition("position %q is not open for candidacies", position.Title)
	}
	return position, nil
}

func (e *Engine) cycleInStatus(cycleID string, want CycleStatus, phase string) (*models.SuccessionCycle, error) {
	cycle, err := e.store.GetCycle(cycleID)
	if err != nil {
		return nil, fmt.Errorf("loading cycle: %w", err)
	}
	if cycle == nil {
		return nil, &NotFoundError{Entity: "succession cycle", ID: cycleID}
	}
	if cycle.Status != want {
		return nil, precondition("%s are not open for this cycle (current phase: %s)", phase, cycle.Status)
	}
	return cycle, nil
}

// CreateNomination records a draft nomination for another member. Only
// allowed while nominations are open.
func (e *Engine) CreateNomination(actor Actor, cycleID string, in Input) (*models.SuccessionNomination, error) {
	cmd, verr := ParseCandidacy(in, true)
	if verr != nil {
		return nil, verr
	}
	if cmd.NomineeMemberID == actor.MemberID {
		return nil, precondition("you cannot nominate yourself; submit an application instead")
	}
	if _, err := e.cycleInStatus(cycleID, models.CycleNominationsOpen, "nominations"); err != nil {
		return nil, err
	}
	if _, err := e.positionForCandidacy(cycleID, cmd.PositionID); err != nil {
		return nil, err
	}

	nomination := &models.SuccessionNomination{
		CycleID:            cycleID,
		PositionID:         cmd.PositionID,
		NomineeMemberID:    cmd.NomineeMemberID,
		NominatedBy:        actor.MemberID,
		Statement:          cmd.Statement,
		SupportingEvidence: cmd.SupportingEvidence,
		Status:             models.CandidacyDraft,
	}
	if err := e.store.CreateNomination(nomination); err != nil {
		return nil, fmt.Errorf("creating nomination: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + cycleID)
	return nomination, nil
}

// UpdateNomination edits a nomination. Only the nominator may edit, and only
// while the nomination is still a draft.
func (e *Engine) UpdateNomination(actor Actor, nominationID string, in Input) (*models.SuccessionNomination, error) {
	nomination, err := e.store.GetNomination(nominationID)
	if err != nil {
		return nil, fmt.Errorf("loading nomination: %w", err)
	}
	if nomination == nil {
		return nil, &NotFoundError{Entity: "nomination", ID: nominationID}
	}
	if nomination.NominatedBy != actor.MemberID {
		return nil, &AuthorizationError{Message: "only the nominator may edit this nomination"}
	}
	if nomination.Status != models.CandidacyDraft {
		return nil, precondition("only draft nominations can be edited (this one is %s)", nomination.Status)
	}
	cmd, verr := ParseCandidacy(in, true)
	if verr != nil {
		return nil, verr
	}
	if cmd.NomineeMemberID == actor.MemberID {
		return nil, precondition("you cannot nominate yourself; submit an application instead")
	}

	nomination.NomineeMemberID = cmd.NomineeMemberID
	nomination.Statement = cmd.Statement
	nomination.SupportingEvidence = cmd.SupportingEvidence
	if err := e.store.UpdateNomination(nomination); err != nil {
		return nil, fmt.Errorf("updating nomination: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + nomination.CycleID)
	return nomination, nil
}

// SubmitNomination moves the nominator's draft to submitted.
func (e *Engine) SubmitNomination(actor Actor, nominationID string) (*models.SuccessionNomination, error) {
	nomination, err := e.store.GetNomination(nominationID)
	if err != nil {
		return nil, fmt.Errorf("loading nomination: %w", err)
	}
	if nomination == nil {
		return nil, &NotFoundError{Entity: "nomination", ID: nominationID}
	}
	if nomination.NominatedBy != actor.MemberID {
		return nil, &AuthorizationError{Message: "only the nominator may submit this nomination"}
	}
	if nomination.Status != models.CandidacyDraft {
		return nil, precondition("nomination has already been %s", nomination.Status)
	}

	nomination.Status = models.CandidacySubmitted
	if err := e.store.UpdateNomination(nomination); err != nil {
		return nil, fmt.Errorf("submitting nomination: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + nomination.CycleID)
	return nomination, nil
}

// WithdrawNomination lets the nominator withdraw a draft or submitted
// nomination. Reviewed nominations stay on record.
func (e *Engine) WithdrawNomination(actor Actor, nominationID string) (*models.SuccessionNomination, error) {
	nomination, err := e.store.GetNomination(nominationID)
	if err != nil {
		return nil, fmt.Errorf("loading nomination: %w", err)
	}
	if nomination == nil {
		return nil, &NotFoundError{Entity: "nomination", ID: nominationID}
	}
	if nomination.NominatedBy != actor.MemberID {
		return nil, &AuthorizationError{Message: "only the nominator may withdraw this nomination"}
	}
	if nomination.Status != models.CandidacyDraft && nomination.Status != models.CandidacySubmitted {
		return nil, precondition("a %s nomination cannot be withdrawn", nomination.Status)
	}

	nomination.Status = models.CandidacyWithdrawn
	if err := e.store.UpdateNomination(nomination); err != nil {
		return nil, fmt.Errorf("withdrawing nomination: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + nomination.CycleID)
	return nomination, nil
}

// ReviewNomination approves or rejects a submitted nomination and stamps the
// reviewer.
func (e *Engine) ReviewNomination(actor Actor, nominationID string, approve bool, notes string) (*models.SuccessionNomination, error) {
	if !actor.IsAdmin {
		return nil, &AuthorizationError{Message: "only admins may review nominations"}
	}
	nomination, err := e.store.GetNomination(nominationID)
	if err != nil {
		return nil, fmt.Errorf("loading nomination: %w", err)
	}
	if nomination == nil {
		return nil, &NotFoundError{Entity: "nomination", ID: nominationID}
	}
	if nomination.Status != models.CandidacySubmitted {
		return nil, precondition("only submitted nominations can be reviewed (this one is %s)", nomination.Status)
	}

	now := time.Now()
	if approve {
		nomination.Status = models.CandidacyApproved
	} else {
		nomination.Status = models.CandidacyRejected
	}
	nomination.ReviewedBy = &actor.MemberID
	nomination.ReviewedAt = &now
	nomination.ReviewNotes = notes
	if err := e.store.UpdateNomination(nomination); err != nil {
		return nil, fmt.Errorf("reviewing nomination: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + nomination.CycleID)
	return nomination, nil
}

// ListNominations returns all nominations in a cycle.
func (e *Engine) ListNominations(cycleID string) ([]models.SuccessionNomination, error) {
	return e.store.ListNominations(cycleID)
}

// CreateApplication records a member's draft self-application. Only allowed
// while applications are open.
func (e *Engine) CreateApplication(actor Actor, cycleID string, in Input) (*models.SuccessionApplication, error) {
	cmd, verr := ParseCandidacy(in, false)
	if verr != nil {
		return nil, verr
	}
	if _, err := e.cycleInStatus(cycleID, models.CycleApplicationsOpen, "applications"); err != nil {
		return nil, err
	}
	if _, err := e.positionForCandidacy(cycleID, cmd.PositionID); err != nil {
		return nil, err
	}

	application := &models.SuccessionApplication{
		CycleID:            cycleID,
		PositionID:         cmd.PositionID,
		ApplicantMemberID:  actor.MemberID,
		Statement:          cmd.Statement,
		SupportingEvidence: cmd.SupportingEvidence,
		Status:             models.CandidacyDraft,
	}
	if err := e.store.CreateApplication(application); err != nil {
		return nil, fmt.Errorf("creating application: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + cycleID)
	return application, nil
}

// UpdateApplication edits the applicant's own draft.
func (e *Engine) UpdateApplication(actor Actor, applicationID string, in Input) (*models.SuccessionApplication, error) {
	application, err := e.store.GetApplication(applicationID)
	if err != nil {
		return nil, fmt.Errorf("loading application: %w", err)
	}
	if application == nil {
		return nil, &NotFoundError{Entity: "application", ID: applicationID}
	}
	if application.ApplicantMemberID != actor.MemberID {
		return nil, &AuthorizationError{Message: "only the applicant may edit this application"}
	}
	if application.Status != models.CandidacyDraft {
		return nil, precondition("only draft applications can be edited (this one is %s)", application.Status)
	}
	cmd, verr := ParseCandidacy(in, false)
	if verr != nil {
		return nil, verr
	}

	application.Statement = cmd.Statement
	application.SupportingEvidence = cmd.SupportingEvidence
	if err := e.store.UpdateApplication(application); err != nil {
		return nil, fmt.Errorf("updating application: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + application.CycleID)
	return application, nil
}

// SubmitApplication moves the applicant's draft to submitted.
func (e *Engine) SubmitApplication(actor Actor, applicationID string) (*models.SuccessionApplication, error) {
	application, err := e.store.GetApplication(applicationID)
	if err != nil {
		return nil, fmt.Errorf("loading application: %w", err)
	}
	if application == nil {
		return nil, &NotFoundError{Entity: "application", ID: applicationID}
	}
	if application.ApplicantMemberID != actor.MemberID {
		return nil, &AuthorizationError{Message: "only the applicant may submit this application"}
	}
	if application.Status != models.CandidacyDraft {
		return nil, precondition("application has already been %s", application.Status)
	}

	application.Status = models.CandidacySubmitted
	if err := e.store.UpdateApplication(application); err != nil {
		return nil, fmt.Errorf("submitting application: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + application.CycleID)
	return application, nil
}

// WithdrawApplication lets the applicant withdraw before review.
func (e *Engine) WithdrawApplication(actor Actor, applicationID string) (*models.SuccessionApplication, error) {
	application, err := e.store.GetApplication(applicationID)
	if err != nil {
		return nil, fmt.Errorf("loading application: %w", err)
	}
	if application == nil {
		return nil, &NotFoundError{Entity: "application", ID: applicationID}
	}
	if application.ApplicantMemberID != actor.MemberID {
		return nil, &AuthorizationError{Message: "only the applicant may withdraw this application"}
	}
	if application.Status != models.CandidacyDraft && application.Status != models.CandidacySubmitted {
		return nil, precondition("a %s application cannot be withdrawn", application.Status)
	}

	application.Status = models.CandidacyWithdrawn
	if err := e.store.UpdateApplication(application); err != nil {
		return nil, fmt.Errorf("withdrawing application: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + application.CycleID)
	return application, nil
}

// ReviewApplication approves or rejects a submitted application and stamps
// the reviewer.
func (e *Engine) ReviewApplication(actor Actor, applicationID string, approve bool, notes string) (*models.SuccessionApplication, error) {
	if !actor.IsAdmin {
		return nil, &AuthorizationError{Message: "only admins may review applications"}
	}
	application, err := e.store.GetApplication(applicationID)
	if err != nil {
		return nil, fmt.Errorf("loading application: %w", err)
	}
	if application == nil {
		return nil, &NotFoundError{Entity: "application", ID: applicationID}
	}
	if application.Status != models.CandidacySubmitted {
		return nil, precondition("only submitted applications can be reviewed (this one is %s)", application.Status)
	}

	now := time.Now()
	if approve {
		application.Status = models.CandidacyApproved
	} else {
		application.Status = models.CandidacyRejected
	}
	application.ReviewedBy = &actor.MemberID
	application.ReviewedAt = &now
	application.ReviewNotes = notes
	if err := e.store.UpdateApplication(application); err != nil {
		return nil, fmt.Errorf("reviewing application: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + application.CycleID)
	return application, nil
}

// ListApplications returns all applications in a cycle.
func (e *Engine) ListApplications(cycleID string) ([]models.SuccessionApplication, error) {
	return e.store.ListApplications(cycleID)
}
