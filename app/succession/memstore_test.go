package succession

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"
	"github.com/google/uuid"
)

// memStore is an in-memory Store used by the engine tests. It mirrors the
// Postgres adapter's contract: (nil, nil) for missing rows, ErrDuplicate for
// uniqueness violations, version-conditioned cycle writes.
type memStore struct {
	mu           sync.Mutex
	cycles       map[string]models.SuccessionCycle
	positions    map[string]models.SuccessionPosition
	steps        map[string]models.SuccessionTimelineStep
	nominations  map[string]models.SuccessionNomination
	applications map[string]models.SuccessionApplication
	evaluators   map[string]models.SuccessionEvaluator
	scores       map[string]models.SuccessionEvaluationScore
	approaches   map[string]models.SuccessionApproach
	meetings     map[string]models.SuccessionMeeting
	votes        map[string]models.SuccessionVote

	stepWrites int // counts UpdateStepStatus calls, for idempotence tests
}

func newMemStore() *memStore {
	return &memStore{
		cycles:       map[string]models.SuccessionCycle{},
		positions:    map[string]models.SuccessionPosition{},
		steps:        map[string]models.SuccessionTimelineStep{},
		nominations:  map[string]models.SuccessionNomination{},
		applications: map[string]models.SuccessionApplication{},
		evaluators:   map[string]models.SuccessionEvaluator{},
		scores:       map[string]models.SuccessionEvaluationScore{},
		approaches:   map[string]models.SuccessionApproach{},
		meetings:     map[string]models.SuccessionMeeting{},
		votes:        map[string]models.SuccessionVote{},
	}
}

func (m *memStore) CreateCycle(c *models.SuccessionCycle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.cycles {
		if existing.Year == c.Year {
			return fmt.Errorf("%w: succession_cycles_year_key", ErrDuplicate)
		}
	}
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.cycles[c.ID] = *c
	return nil
}

func (m *memStore) GetCycle(id string) (*models.SuccessionCycle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cycles[id]
	if !ok {
		return nil, nil
	}
	out := c
	return &out, nil
}

func (m *memStore) GetCycleByYear(year int) (*models.SuccessionCycle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.cycles {
		if c.Year == year {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListCycles() ([]models.SuccessionCycle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SuccessionCycle
	for _, c := range m.cycles {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out, nil
}

func (m *memStore) UpdateCycle(id string, expectedVersion int, patch CyclePatch) (*models.SuccessionCycle, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cycles[id]
	if !ok || c.Version != expectedVersion {
		return nil, false, nil
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.StartDate != nil {
		c.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		c.EndDate = *patch.EndDate
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.PhaseConfigs != nil {
		c.PhaseConfigs = patch.PhaseConfigs
	}
	if patch.SelectionCommittee != nil {
		c.SelectionCommittee = patch.SelectionCommittee
	}
	if patch.Published != nil {
		c.Published = *patch.Published
	}
	if patch.PublishedAt != nil {
		c.PublishedAt = patch.PublishedAt
	}
	c.Version++
	c.UpdatedAt = time.Now()
	m.cycles[id] = c
	out := c
	return &out, true, nil
}

func (m *memStore) DeleteCycle(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cycles, id)
	return nil
}

func (m *memStore) CountPositions(cycleID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, p := range m.positions {
		if p.CycleID == cycleID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) CreatePosition(p *models.SuccessionPosition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	m.positions[p.ID] = *p
	return nil
}

func (m *memStore) GetPosition(id string) (*models.SuccessionPosition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.positions[id]
	if !ok {
		return nil, nil
	}
	out := p
	return &out, nil
}

func (m *memStore) ListPositions(cycleID string) ([]models.SuccessionPosition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SuccessionPosition
	for _, p := range m.positions {
		if p.CycleID == cycleID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HierarchyLevel < out[j].HierarchyLevel })
	return out, nil
}

func (m *memStore) UpdatePosition(p *models.SuccessionPosition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[p.ID] = *p
	return nil
}

func (m *memStore) DeletePosition(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.positions, id)
	return nil
}

func (m *memStore) CountNominationsForPosition(positionID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, n := range m.nominations {
		if n.PositionID == positionID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) CountApplicationsForPosition(positionID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, a := range m.applications {
		if a.PositionID == positionID {
			count++
		}
	}
	return count, nil
}

func (m *memStore) CreateStep(s *models.SuccessionTimelineStep) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	m.steps[s.ID] = *s
	return nil
}

func (m *memStore) GetStep(id string) (*models.SuccessionTimelineStep, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.steps[id]
	if !ok {
		return nil, nil
	}
	out := s
	return &out, nil
}

func (m *memStore) ListSteps(cycleID string) ([]models.SuccessionTimelineStep, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SuccessionTimelineStep
	for _, s := range m.steps {
		if s.CycleID == cycleID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StepNumber < out[j].StepNumber })
	return out, nil
}

func (m *memStore) UpdateStep(s *models.SuccessionTimelineStep) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps[s.ID] = *s
	return nil
}

func (m *memStore) UpdateStepStatus(id string, status StepStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.steps[id]
	if !ok {
		return fmt.Errorf("step %s not found", id)
	}
	s.Status = status
	s.UpdatedAt = time.Now()
	m.steps[id] = s
	m.stepWrites++
	return nil
}

func (m *memStore) DeleteStep(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.steps, id)
	return nil
}

func (m *memStore) CreateNomination(n *models.SuccessionNomination) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now()
	n.UpdatedAt = n.CreatedAt
	m.nominations[n.ID] = *n
	return nil
}

func (m *memStore) GetNomination(id string) (*models.SuccessionNomination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.nominations[id]
	if !ok {
		return nil, nil
	}
	out := n
	return &out, nil
}

func (m *memStore) ListNominations(cycleID string) ([]models.SuccessionNomination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SuccessionNomination
	for _, n := range m.nominations {
		if n.CycleID == cycleID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *memStore) UpdateNomination(n *models.SuccessionNomination) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nominations[n.ID] = *n
	return nil
}

func (m *memStore) CreateApplication(a *models.SuccessionApplication) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.applications[a.ID] = *a
	return nil
}

func (m *memStore) GetApplication(id string) (*models.SuccessionApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.applications[id]
	if !ok {
		return nil, nil
	}
	out := a
	return &out, nil
}

func (m *memStore) ListApplications(cycleID string) ([]models.SuccessionApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SuccessionApplication
	for _, a := range m.applications {
		if a.CycleID == cycleID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) UpdateApplication(a *models.SuccessionApplication) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applications[a.ID] = *a
	return nil
}

func (m *memStore) CreateEvaluator(e *models.SuccessionEvaluator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.evaluators {
		if existing.CycleID == e.CycleID && existing.MemberID == e.MemberID {
			return fmt.Errorf("%w: succession_evaluators_member_key", ErrDuplicate)
		}
	}
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	m.evaluators[e.ID] = *e
	return nil
}

func (m *memStore) GetEvaluatorByMember(cycleID, memberID string) (*models.SuccessionEvaluator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.evaluators {
		if e.CycleID == cycleID && e.MemberID == memberID {
			out := e
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListEvaluators(cycleID string) ([]models.SuccessionEvaluator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SuccessionEvaluator
	for _, e := range m.evaluators {
		if e.CycleID == cycleID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) CreateScore(s *models.SuccessionEvaluationScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.scores {
		if existing.NominationID == s.NominationID && existing.EvaluatorID == s.EvaluatorID && existing.Criterion == s.Criterion {
			return fmt.Errorf("%w: succession_scores_criterion_key", ErrDuplicate)
		}
	}
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now()
	m.scores[s.ID] = *s
	return nil
}

func (m *memStore) IncrementEvaluatorProgress(evaluatorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.evaluators[evaluatorID]
	if !ok {
		return fmt.Errorf("evaluator %s not found", evaluatorID)
	}
	e.ScoresSubmitted++
	m.evaluators[evaluatorID] = e
	return nil
}

func (m *memStore) CreateApproach(a *models.SuccessionApproach) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	m.approaches[a.ID] = *a
	return nil
}

func (m *memStore) GetApproach(id string) (*models.SuccessionApproach, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.approaches[id]
	if !ok {
		return nil, nil
	}
	out := a
	return &out, nil
}

func (m *memStore) UpdateApproach(a *models.SuccessionApproach) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.approaches[a.ID] = *a
	return nil
}

func (m *memStore) CreateMeeting(mt *models.SuccessionMeeting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mt.ID = uuid.NewString()
	mt.CreatedAt = time.Now()
	mt.UpdatedAt = mt.CreatedAt
	m.meetings[mt.ID] = *mt
	return nil
}

func (m *memStore) GetMeeting(id string) (*models.SuccessionMeeting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mt, ok := m.meetings[id]
	if !ok {
		return nil, nil
	}
	out := mt
	return &out, nil
}

func (m *memStore) UpdateMeeting(mt *models.SuccessionMeeting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meetings[mt.ID] = *mt
	return nil
}

func (m *memStore) CreateVote(v *models.SuccessionVote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.votes {
		if existing.MeetingID == v.MeetingID && existing.NomineeMemberID == v.NomineeMemberID && existing.VoterMemberID == v.VoterMemberID {
			return fmt.Errorf("%w: succession_votes_voter_key", ErrDuplicate)
		}
	}
	v.ID = uuid.NewString()
	v.CreatedAt = time.Now()
	m.votes[v.ID] = *v
	return nil
}
