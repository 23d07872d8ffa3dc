package succession

import (
	"fmt"
	"log"
	"time"

	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"
)

const stepCount = 7

// statusStepMap maps a cycle status to the timeline step it corresponds to.
// Statuses with no entry (draft, active) have no timeline meaning yet. An
// open status and its _closed twin map to the same step; the closed variant
// marks that step completed instead of active.
var statusStepMap = map[CycleStatus]int{
	models.CycleNominationsOpen:    1,
	models.CycleNominationsClosed:  1,
	models.CycleApplicationsOpen:   2,
	models.CycleApplicationsClosed: 2,
	models.CycleEvaluations:        3,
	models.CycleEvaluationsClosed:  3,
	models.CycleInterviews:         4,
	models.CycleInterviewsClosed:   4,
	models.CycleSelection:          5,
	models.CycleApprovalPending:    6,
	models.CycleCompleted:          stepCount,
	models.CycleArchived:           stepCount,
}

type stepTemplate struct {
	name         string
	description  string
	durationDays int
	action       string
}

var stepTemplates = [stepCount]stepTemplate{
	{"Nominations Open", "Members nominate candidates for leadership positions", 7, "open_nominations"},
	{"Self Applications", "Members submit their own applications", 7, "open_applications"},
	{"Evaluation & Scoring", "Evaluators score submitted nominations", 7, "start_evaluations"},
	{"Regional Chair Review", "Regional chair reviews evaluation outcomes", 7, "chair_review"},
	{"Steering Committee Meeting", "Committee meets to shortlist and vote", 7, "committee_meeting"},
	{"Candidate Approach", "Selected candidates are approached for acceptance", 7, "candidate_approach"},
	{"Final Selection & Announcement", "Final selection is approved and announced", 7, "announce_selection"},
}

// SyncSteps recomputes every timeline step's status from the cycle's current
// status and persists only the deltas. It is a pure derived-state
// recomputation: idempotent and safe to call redundantly, which is what makes
// the post-commit invocation from the lifecycle controller tolerable without
// a shared transaction.
func (e *Engine) SyncSteps(cycleID string, status CycleStatus) error {
	currentStep, mapped := statusStepMap[status]
	if !mapped {
		return nil // draft/active: nothing to sync yet
	}

	steps, err := e.store.ListSteps(cycleID)
	if err != nil {
		return fmt.Errorf("loading timeline steps: %w", err)
	}
	if len(steps) == 0 {
		return nil // not seeded yet
	}

	closed := IsClosedStatus(status)
	changed := 0
	for _, step := range steps {
		target := targetStepStatus(step.StepNumber, currentStep, closed)
		if step.Status == target {
			continue
		}
		if err := e.store.UpdateStepStatus(step.ID, target); err != nil {
			return fmt.Errorf("updating step %d: %w", step.StepNumber, err)
		}
		changed++
	}
	if changed > 0 {
		e.cache.Invalidate("succession:timeline:" + cycleID)
	}
	return nil
}

func targetStepStatus(stepNumber, currentStep int, closed bool) StepStatus {
	switch {
	case stepNumber < currentStep:
		return models.StepCompleted
	case stepNumber == currentStep:
		if closed {
			return models.StepCompleted
		}
		return models.StepActive
	default:
		return models.StepPending
	}
}

// SeedSteps creates the standard 7-step timeline for a cycle, walking
// startDate forward by each step's duration. A cycle that already has steps
// is rejected rather than re-seeded: admins may have edited dates, and a
// silent upsert would clobber them.
func (e *Engine) SeedSteps(cycleID string, startDate time.Time) (int, error) {
	cycle, err := e.store.GetCycle(cycleID)
	if err != nil {
		return 0, fmt.Errorf("loading cycle: %w", err)
	}
	if cycle == nil {
		return 0, &NotFoundError{Entity: "succession cycle", ID: cycleID}
	}

	existing, err := e.store.ListSteps(cycleID)
	if err != nil {
		return 0, fmt.Errorf("loading timeline steps: %w", err)
	}
	if len(existing) > 0 {
		return 0, precondition("cycle already has %d timeline steps; delete them before re-seeding", len(existing))
	}

	cursor := startDate
	for i, tpl := range stepTemplates {
		end := cursor.AddDate(0, 0, tpl.durationDays)
		step := &models.SuccessionTimelineStep{
			CycleID:           cycleID,
			StepNumber:        i + 1,
			Name:              tpl.name,
			Description:       tpl.description,
			StartDate:         cursor,
			EndDate:           end,
			Status:            models.StepPending,
			AutoTriggerAction: tpl.action,
		}
		if err := e.store.CreateStep(step); err != nil {
			return i, fmt.Errorf("creating step %d: %w", i+1, err)
		}
		cursor = end
	}

	log.Printf("Seeded %d timeline steps for cycle %s", stepCount, cycleID)
	e.cache.Invalidate("succession:timeline:"+cycleID, "succession:cycle:"+cycleID)
	return stepCount, nil
}

// ListSteps returns a cycle's timeline in step order.
func (e *Engine) ListSteps(cycleID string) ([]models.SuccessionTimelineStep, error) {
	return e.store.ListSteps(cycleID)
}

// CreateStep lets an admin add a timeline step manually.
func (e *Engine) CreateStep(actor Actor, cycleID string, in Input) (*models.SuccessionTimelineStep, error) {
	if !actor.IsAdmin {
		return nil, &AuthorizationError{Message: "only admins may manage the timeline"}
	}
	cmd, verr := ParseStep(in)
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

	step := &models.SuccessionTimelineStep{
		CycleID:           cycleID,
		StepNumber:        cmd.StepNumber,
		Name:              cmd.Name,
		Description:       cmd.Description,
		Status:            cmd.Status,
		AutoTriggerAction: cmd.AutoTriggerAction,
	}
	if cmd.StartDate != nil {
		step.StartDate = *cmd.StartDate
	}
	if cmd.EndDate != nil {
		step.EndDate = *cmd.EndDate
	}
	if err := e.store.CreateStep(step); err != nil {
		return nil, fmt.Errorf("creating timeline step: %w", err)
	}
	e.cache.Invalidate("succession:timeline:" + cycleID)
	return step, nil
}

// UpdateStep lets an admin edit a timeline step manually.
func (e *Engine) UpdateStep(actor Actor, stepID string, in Input) (*models.SuccessionTimelineStep, error) {
	if !actor.IsAdmin {
		return nil, &AuthorizationError{Message: "only admins may manage the timeline"}
	}
	step, err := e.store.GetStep(stepID)
	if err != nil {
		return nil, fmt.Errorf("loading timeline step: %w", err)
	}
	if step == nil {
		return nil, &NotFoundError{Entity: "timeline step", ID: stepID}
	}
	cmd, verr := ParseStep(in)
	if verr != nil {
		return nil, verr
	}

	step.StepNumber = cmd.StepNumber
	step.Name = cmd.Name
	step.Description = cmd.Description
	step.Status = cmd.Status
	step.AutoTriggerAction = cmd.AutoTriggerAction
	if cmd.StartDate != nil {
		step.StartDate = *cmd.StartDate
	}
	if cmd.EndDate != nil {
		step.EndDate = *cmd.EndDate
	}
	if err := e.store.UpdateStep(step); err != nil {
		return nil, fmt.Errorf("updating timeline step: %w", err)
	}
	e.cache.Invalidate("succession:timeline:" + step.CycleID)
	return step, nil
}

// DeleteStep lets an admin remove a timeline step.
func (e *Engine) DeleteStep(actor Actor, stepID string) error {
	if !actor.IsAdmin {
		return &AuthorizationError{Message: "only admins may manage the timeline"}
	}
	step, err := e.store.GetStep(stepID)
	if err != nil {
		return fmt.Errorf("loading timeline step: %w", err)
	}
	if step == nil {
		return &NotFoundError{Entity: "timeline step", ID: stepID}
	}
	if err := e.store.DeleteStep(stepID); err != nil {
		return fmt.Errorf("deleting timeline step: %w", err)
	}
	e.cache.Invalidate("succession:timeline:" + step.CycleID)
	return nil
}
