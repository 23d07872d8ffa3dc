package succession

import (
	"errors"
	"fmt"

	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"
)

// AssignEvaluator registers a member as an evaluator for a cycle.
func (e *Engine) AssignEvaluator(actor Actor, cycleID, memberID string) (*models.SuccessionEvaluator, error) {
	if !actor.IsAdmin {
		return nil, &AuthorizationError{Message: "only admins may assign evaluators"}
	}
	if memberID == "" {
		return nil, invalid("member_id", "is required")
	}
	cycle, err := e.store.GetCycle(cycleID)
	if err != nil {
		return nil, fmt.Errorf("loading cycle: %w", err)
	}
	if cycle == nil {
		return nil, &NotFoundError{Entity: "succession cycle", ID: cycleID}
	}
	existing, err := e.store.GetEvaluatorByMember(cycleID, memberID)
	if err != nil {
		return nil, fmt.Errorf("checking evaluator: %w", err)
	}
	if existing != nil {
		return nil, precondition("this member is already an evaluator for the cycle")
	}

	evaluator := &models.SuccessionEvaluator{
		CycleID:    cycleID,
		MemberID:   memberID,
		AssignedBy: actor.MemberID,
	}
	if err := e.store.CreateEvaluator(evaluator); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, precondition("this member is already an evaluator for the cycle")
		}
		return nil, fmt.Errorf("assigning evaluator: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + cycleID)
	return evaluator, nil
}

// ListEvaluators returns a cycle's evaluators with their progress counters.
func (e *Engine) ListEvaluators(cycleID string) ([]models.SuccessionEvaluator, error) {
	return e.store.ListEvaluators(cycleID)
}

// SubmitScores accepts one evaluator's score batch for a nomination. The
// submitter must be a registered evaluator for the cycle, the cycle must be
// in its evaluation phase, and each (nomination, evaluator, criterion) pair
// may be scored once; duplicates come back as friendly errors. The membership
// check is not atomic with the insert — revoking an evaluator mid-submission
// can let a batch through, which is acceptable at this workflow's volume.
func (e *Engine) SubmitScores(actor Actor, cycleID string, in Input) (*models.SuccessionEvaluator, error) {
	cmd, verr := ParseScoreBatch(in)
	if verr != nil {
		return nil, verr
	}

	if _, err := e.cycleInStatus(cycleID, models.CycleEvaluations, "evaluations"); err != nil {
		return nil, err
	}
	evaluator, err := e.store.GetEvaluatorByMember(cycleID, actor.MemberID)
	if err != nil {
		return nil, fmt.Errorf("checking evaluator: %w", err)
	}
	if evaluator == nil {
		return nil, &AuthorizationError{Message: "you are not a registered evaluator for this cycle"}
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
		return nil, precondition("only approved nominations can be scored (this one is %s)", nomination.Status)
	}

	for _, entry := range cmd.Scores {
		score := &models.SuccessionEvaluationScore{
			NominationID: cmd.NominationID,
			EvaluatorID:  evaluator.ID,
			Criterion:    entry.Criterion,
			Score:        entry.Score,
			Comments:     entry.Comments,
		}
		if err := e.store.CreateScore(score); err != nil {
			if errors.Is(err, ErrDuplicate) {
				return nil, precondition("you have already scored %q for this nomination", entry.Criterion)
			}
			return nil, fmt.Errorf("saving score: %w", err)
		}
	}

	if err := e.store.IncrementEvaluatorProgress(evaluator.ID); err != nil {
		return nil, fmt.Errorf("recording evaluator progress: %w", err)
	}
	evaluator.ScoresSubmitted++
	e.cache.Invalidate("succession:cycle:" + cycleID)
	return evaluator, nil
}
