package succession

import (
	"testing"
	"time"

	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"
	"github.com/stretchr/testify/require"
)

var (
	admin    = Actor{MemberID: "11111111-1111-1111-1111-111111111111", IsAdmin: true}
	member   = Actor{MemberID: "22222222-2222-2222-2222-222222222222"}
	nominee  = Actor{MemberID: "33333333-3333-3333-3333-333333333333"}
	reviewer = Actor{MemberID: "44444444-4444-4444-4444-444444444444", IsAdmin: true}
)

func newTestEngine() (*Engine, *memStore) {
	store := newMemStore()
	return NewEngine(store, nil), store
}

func cycleInput(year int) Input {
	return Input{
		"year":       year,
		"name":       "Leadership Succession",
		"start_date": "2025-09-01",
		"end_date":   "2025-11-30",
	}
}

func mustCreateCycle(t *testing.T, e *Engine, year int) *models.SuccessionCycle {
	t.Helper()
	cycle, err := e.CreateCycle(admin, cycleInput(year))
	require.NoError(t, err)
	require.NotNil(t, cycle)
	return cycle
}

// forceStatus drops a cycle directly into a status, bypassing the transition
// table, so tests can start mid-workflow.
func forceStatus(t *testing.T, store *memStore, cycleID string, status CycleStatus) {
	t.Helper()
	store.mu.Lock()
	defer store.mu.Unlock()
	c, ok := store.cycles[cycleID]
	require.True(t, ok, "cycle %s not in store", cycleID)
	c.Status = status
	store.cycles[cycleID] = c
}

func mustCreatePosition(t *testing.T, e *Engine, cycleID string) *models.SuccessionPosition {
	t.Helper()
	position, err := e.CreatePosition(admin, cycleID, Input{
		"title":           "Chapter Chair",
		"hierarchy_level": 1,
	})
	require.NoError(t, err)
	return position
}

// mustCreateNomination opens nominations, records a draft nomination by
// member for nominee, then restores the cycle to restoreStatus.
func mustCreateNomination(t *testing.T, e *Engine, store *memStore, cycleID, positionID string, restoreStatus CycleStatus) *models.SuccessionNomination {
	t.Helper()
	forceStatus(t, store, cycleID, models.CycleNominationsOpen)
	nomination, err := e.CreateNomination(member, cycleID, Input{
		"position_id":       positionID,
		"nominee_member_id": nominee.MemberID,
		"statement":         "Strong regional record",
	})
	require.NoError(t, err)
	forceStatus(t, store, cycleID, restoreStatus)
	return nomination
}

// mustApproveNomination walks a nomination through submit and approval.
func mustApproveNomination(t *testing.T, e *Engine, store *memStore, n *models.SuccessionNomination) *models.SuccessionNomination {
	t.Helper()
	store.mu.Lock()
	rec := store.nominations[n.ID]
	rec.Status = models.CandidacyApproved
	store.nominations[n.ID] = rec
	store.mu.Unlock()
	out := rec
	return &out
}

func dateAt(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
