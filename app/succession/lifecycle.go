package succession

import (
	"fmt"
	"log"
	"time"

	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"
)

// CreateCycle creates the year's cycle in draft at version 1. Creation is not
// a transition, so the transition table is not consulted.
func (e *Engine) CreateCycle(actor Actor, in Input) (*models.SuccessionCycle, error) {
	if !actor.IsAdmin {
		return nil, &AuthorizationError{Message: "only admins may create succession cycles"}
	}
	cmd, verr := ParseCreateCycle(in)
	if verr != nil {
		return nil, verr
	}

	existing, err := e.store.GetCycleByYear(cmd.Year)
	if err != nil {
		return nil, fmt.Errorf("checking existing cycle: %w", err)
	}
	if existing != nil {
		return nil, precondition("a succession cycle for %d already exists", cmd.Year)
	}

	cycle := &models.SuccessionCycle{
		Year:               cmd.Year,
		Name:               cmd.Name,
		Description:        cmd.Description,
		StartDate:          cmd.StartDate,
		EndDate:            cmd.EndDate,
		Status:             models.CycleDraft,
		Version:            1,
		PhaseConfigs:       cmd.PhaseConfigs,
		SelectionCommittee: cmd.SelectionCommittee,
		CreatedBy:          actor.MemberID,
	}
	if err := e.store.CreateCycle(cycle); err != nil {
		return nil, fmt.Errorf("creating cycle: %w", err)
	}
	e.cache.Invalidate("succession:cycles")
	return cycle, nil
}

// GetCycle loads a single cycle.
func (e *Engine) GetCycle(id string) (*models.SuccessionCycle, error) {
	cycle, err := e.store.GetCycle(id)
	if err != nil {
		return nil, fmt.Errorf("loading cycle: %w", err)
	}
	if cycle == nil {
		return nil, &NotFoundError{Entity: "succession cycle", ID: id}
	}
	return cycle, nil
}

// ListCycles returns all cycles.
func (e *Engine) ListCycles() ([]models.SuccessionCycle, error) {
	return e.store.ListCycles()
}

// UpdateCycle applies a partial update with a version-conditioned write. On a
// version mismatch the caller gets a ConflictError and must refetch and retry
// themselves; the engine never retries. A status change rides through the
// transition table and, after the write commits, triggers timeline sync.
func (e *Engine) UpdateCycle(actor Actor, id string, in Input) (*models.SuccessionCycle, error) {
	if !actor.IsAdmin {
		return nil, &AuthorizationError{Message: "only admins may update succession cycles"}
	}
	cmd, verr := ParseUpdateCycle(in)
	if verr != nil {
		return nil, verr
	}

	current, err := e.store.GetCycle(id)
	if err != nil {
		return nil, fmt.Errorf("loading cycle: %w", err)
	}
	if current == nil {
		return nil, &NotFoundError{Entity: "succession cycle", ID: id}
	}

	patch := CyclePatch{
		Name:               cmd.Name,
		Description:        cmd.Description,
		StartDate:          cmd.StartDate,
		EndDate:            cmd.EndDate,
		PhaseConfigs:       cmd.PhaseConfigs,
		SelectionCommittee: cmd.SelectionCommittee,
	}
	if cmd.Status != nil && *cmd.Status != current.Status {
		if !CanTransition(current.Status, *cmd.Status) {
			return nil, &InvalidTransitionError{From: current.Status, To: *cmd.Status}
		}
		patch.Status = cmd.Status
		applyCompletionStamp(&patch, *cmd.Status)
	}

	return e.writeCycle(current, patch)
}

// AdvanceStatus moves a cycle to newStatus if the transition table allows it.
func (e *Engine) AdvanceStatus(actor Actor, id string, newStatus CycleStatus) (*models.SuccessionCycle, error) {
	if !actor.IsAdmin {
		return nil, &AuthorizationError{Message: "only admins may advance succession cycles"}
	}
	if !ValidStatus(newStatus) {
		return nil, invalid("status", "is not a recognized cycle status")
	}

	current, err := e.store.GetCycle(id)
	if err != nil {
		return nil, fmt.Errorf("loading cycle: %w", err)
	}
	if current == nil {
		return nil, &NotFoundError{Entity: "succession cycle", ID: id}
	}
	if !CanTransition(current.Status, newStatus) {
		return nil, &InvalidTransitionError{From: current.Status, To: newStatus}
	}

	patch := CyclePatch{Status: &newStatus}
	applyCompletionStamp(&patch, newStatus)
	return e.writeCycle(current, patch)
}

// applyCompletionStamp marks a cycle published when it transitions to
// completed. This is the one documented side effect of a transition.
func applyCompletionStamp(patch *CyclePatch, status CycleStatus) {
	if status != models.CycleCompleted {
		return
	}
	published := true
	now := time.Now()
	patch.Published = &published
	patch.PublishedAt = &now
}

// writeCycle performs the version-conditioned write and the post-commit
// timeline sync. Sync failures are logged, never rolled back: the two writes
// are intentionally not transactional, and SyncSteps is idempotent so a later
// manual resync converges.
func (e *Engine) writeCycle(current *models.SuccessionCycle, patch CyclePatch) (*models.SuccessionCycle, error) {
	updated, matched, err := e.store.UpdateCycle(current.ID, current.Version, patch)
	if err != nil {
		return nil, fmt.Errorf("updating cycle: %w", err)
	}
	if !matched {
		still, err := e.store.GetCycle(current.ID)
		if err == nil && still == nil {
			return nil, &NotFoundError{Entity: "succession cycle", ID: current.ID}
		}
		return nil, &ConflictError{Entity: "succession cycle", ID: current.ID}
	}

	e.cache.Invalidate("succession:cycles", "succession:cycle:"+current.ID)

	if patch.Status != nil {
		if err := e.SyncSteps(current.ID, *patch.Status); err != nil {
			log.Printf("Timeline sync failed for cycle %s after status change to %s: %v", current.ID, *patch.Status, err)
		}
	}
	return updated, nil
}

// DeleteCycle removes a cycle. Only draft cycles with no positions may be
// deleted; the error says which rule was broken.
func (e *Engine) DeleteCycle(actor Actor, id string) error {
	if !actor.IsAdmin {
		return &AuthorizationError{Message: "only admins may delete succession cycles"}
	}
	cycle, err := e.store.GetCycle(id)
	if err != nil {
		return fmt.Errorf("loading cycle: %w", err)
	}
	if cycle == nil {
		return &NotFoundError{Entity: "succession cycle", ID: id}
	}
	if cycle.Status != models.CycleDraft {
		return precondition("only draft cycles can be deleted; this cycle is %s", cycle.Status)
	}
	count, err := e.store.CountPositions(id)
	if err != nil {
		return fmt.Errorf("counting positions: %w", err)
	}
	if count > 0 {
		return precondition("cycle has %d positions; remove them first", count)
	}
	if err := e.store.DeleteCycle(id); err != nil {
		return fmt.Errorf("deleting cycle: %w", err)
	}
	e.cache.Invalidate("succession:cycles", "succession:cycle:"+id)
	return nil
}

// CreatePosition adds a leadership position to a cycle.
func (e *Engine) CreatePosition(actor Actor, cycleID string, in Input) (*models.SuccessionPosition, error) {
	if !actor.IsAdmin {
		return nil, &AuthorizationError{Message: "only admins may manage positions"}
	}
	cmd, verr := ParsePosition(in)
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

	position := &models.SuccessionPosition{
		CycleID:             cycleID,
		Title:               cmd.Title,
		Description:         cmd.Description,
		HierarchyLevel:      cmd.HierarchyLevel,
		NumberOfOpenings:    cmd.NumberOfOpenings,
		EligibilityCriteria: cmd.EligibilityCriteria,
		IsActive:            cmd.IsActive,
	}
	if err := e.store.CreatePosition(position); err != nil {
		return nil, fmt.Errorf("creating position: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + cycleID)
	return position, nil
}

// ListPositions returns a cycle's positions.
func (e *Engine) ListPositions(cycleID string) ([]models.SuccessionPosition, error) {
	return e.store.ListPositions(cycleID)
}

// UpdatePosition edits a position. Position state is independent of cycle
// status, so no transition rules apply here.
func (e *Engine) UpdatePosition(actor Actor, positionID string, in Input) (*models.SuccessionPosition, error) {
	if !actor.IsAdmin {
		return nil, &AuthorizationError{Message: "only admins may manage positions"}
	}
	position, err := e.store.GetPosition(positionID)
	if err != nil {
		return nil, fmt.Errorf("loading position: %w", err)
	}
	if position == nil {
		return nil, &NotFoundError{Entity: "succession position", ID: positionID}
	}
	cmd, verr := ParsePosition(in)
	if verr != nil {
		return nil, verr
	}

	position.Title = cmd.Title
	position.Description = cmd.Description
	position.HierarchyLevel = cmd.HierarchyLevel
	position.NumberOfOpenings = cmd.NumberOfOpenings
	position.EligibilityCriteria = cmd.EligibilityCriteria
	position.IsActive = cmd.IsActive
	if err := e.store.UpdatePosition(position); err != nil {
		return nil, fmt.Errorf("updating position: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + position.CycleID)
	return position, nil
}

// DeletePosition removes a position that has no candidacies attached.
func (e *Engine) DeletePosition(actor Actor, positionID string) error {
	if !actor.IsAdmin {
		return &AuthorizationError{Message: "only admins may manage positions"}
	}
	position, err := e.store.GetPosition(positionID)
	if err != nil {
		return fmt.Errorf("loading position: %w", err)
	}
	if position == nil {
		return &NotFoundError{Entity: "succession position", ID: positionID}
	}
	nominations, err := e.store.CountNominationsForPosition(positionID)
	if err != nil {
		return fmt.Errorf("counting nominations: %w", err)
	}
	if nominations > 0 {
		return precondition("position has %d nominations; it cannot be deleted", nominations)
	}
	applications, err := e.store.CountApplicationsForPosition(positionID)
	if err != nil {
		return fmt.Errorf("counting applications: %w", err)
	}
	if applications > 0 {
		return precondition("position has %d applications; it cannot be deleted", applications)
	}
	if err := e.store.DeletePosition(positionID); err != nil {
		return fmt.Errorf("deleting position: %w", err)
	}
	e.cache.Invalidate("succession:cycle:" + position.CycleID)
	return nil
}
