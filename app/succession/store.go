package succession

import (
	"time"

	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"
)

// CyclePatch carries the fields an update may change. Nil means "leave as is".
// The store applies the patch with a write conditioned on the cycle's version
// matching expectedVersion, bumping the version by one on success.
type CyclePatch struct {
	Name               *string
	Description        *string
	StartDate          *time.Time
	EndDate            *time.Time
	Status             *CycleStatus
	PhaseConfigs       map[string]interface{}
	SelectionCommittee []string
	Published          *bool
	PublishedAt        *time.Time
}

// Store is the persistence collaborator. Implementations return (nil, nil)
// from Get* when the record does not exist, and wrap ErrDuplicate for
// uniqueness violations so the engine can produce friendly errors.
type Store interface {
	// Cycles. UpdateCycle's matched result is false when the conditioned
	// write touched zero rows (version mismatch or row gone).
	CreateCycle(c *models.SuccessionCycle) error
	GetCycle(id string) (*models.SuccessionCycle, error)
	GetCycleByYear(year int) (*models.SuccessionCycle, error)
	ListCycles() ([]models.SuccessionCycle, error)
	UpdateCycle(id string, expectedVersion int, patch CyclePatch) (cycle *models.SuccessionCycle, matched bool, err error)
	DeleteCycle(id string) error
	CountPositions(cycleID string) (int, error)

	// Positions.
	CreatePosition(p *models.SuccessionPosition) error
	GetPosition(id string) (*models.SuccessionPosition, error)
	ListPositions(cycleID string) ([]models.SuccessionPosition, error)
	UpdatePosition(p *models.SuccessionPosition) error
	DeletePosition(id string) error
	CountNominationsForPosition(positionID string) (int, error)
	CountApplicationsForPosition(positionID string) (int, error)

	// Timeline steps, always listed in step-number order.
	CreateStep(s *models.SuccessionTimelineStep) error
	GetStep(id string) (*models.SuccessionTimelineStep, error)
	ListSteps(cycleID string) ([]models.SuccessionTimelineStep, error)
	UpdateStep(s *models.SuccessionTimelineStep) error
	UpdateStepStatus(id string, status StepStatus) error
	DeleteStep(id string) error

	// Nominations and applications.
	CreateNomination(n *models.SuccessionNomination) error
	GetNomination(id string) (*models.SuccessionNomination, error)
	ListNominations(cycleID string) ([]models.SuccessionNomination, error)
	UpdateNomination(n *models.SuccessionNomination) error
	CreateApplication(a *models.SuccessionApplication) error
	GetApplication(id string) (*models.SuccessionApplication, error)
	ListApplications(cycleID string) ([]models.SuccessionApplication, error)
	UpdateApplication(a *models.SuccessionApplication) error

	// Evaluators and scores.
	CreateEvaluator(e *models.SuccessionEvaluator) error
	GetEvaluatorByMember(cycleID, memberID string) (*models.SuccessionEvaluator, error)
	ListEvaluators(cycleID string) ([]models.SuccessionEvaluator, error)
	CreateScore(s *models.SuccessionEvaluationScore) error
	IncrementEvaluatorProgress(evaluatorID string) error

	// Approaches, meetings, votes.
	CreateApproach(a *models.SuccessionApproach) error
	GetApproach(id string) (*models.SuccessionApproach, error)
	UpdateApproach(a *models.SuccessionApproach) error
	CreateMeeting(m *models.SuccessionMeeting) error
	GetMeeting(id string) (*models.SuccessionMeeting, error)
	UpdateMeeting(m *models.SuccessionMeeting) error
	CreateVote(v *models.SuccessionVote) error
}

// Invalidator is the cache collaborator: after every successful mutation the
// engine names the logical views that went stale.
type Invalidator interface {
	Invalidate(views ...string)
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(...string) {}

// Actor identifies who is performing an operation. The engine never reads
// ambient request state; callers resolve the actor and pass it in.
type Actor struct {
	MemberID string
	IsAdmin  bool
}

// Engine is the succession cycle engine. All operations go through it.
type Engine struct {
	store Store
	cache Invalidator
}

// NewEngine wires the engine to its collaborators. cache may be nil.
func NewEngine(store Store, cache Invalidator) *Engine {
	if cache == nil {
		cache = noopInvalidator{}
	}
	return &Engine{store: store, cache: cache}
}
