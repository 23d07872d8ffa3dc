package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"
	"github.com/JKKN-Institutions/yi-connect-sub003/app/succession"
	"github.com/lib/pq"
)

// SuccessionStore is the Postgres implementation of succession.Store.
type SuccessionStore struct {
	DB *sql.DB
}

func NewSuccessionStore(db *sql.DB) *SuccessionStore {
	return &SuccessionStore{DB: db}
}

const uniqueViolation = "23505"

// wrapDuplicate converts Postgres unique-index violations into the engine's
// duplicate signal so they can surface as friendly errors.
func wrapDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", succession.ErrDuplicate, pqErr.Constraint)
	}
	return err
}

func marshalJSON(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case map[string]interface{}:
		if val == nil {
			return nil, nil
		}
	case []string:
		if val == nil {
			return nil, nil
		}
	case nil:
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func unmarshalMap(data []byte, dest *map[string]interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}

func unmarshalStrings(data []byte, dest *[]string) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}

const cycleColumns = `id, year, name, description, start_date, end_date, status, version,
	phase_configs, selection_committee, published, published_at, created_by, created_at, updated_at`

func scanCycle(row interface{ Scan(...interface{}) error }) (*models.SuccessionCycle, error) {
	c := &models.SuccessionCycle{}
	var description sql.NullString
	var createdBy sql.NullString
	var phaseConfigs, committee []byte
	err := row.Scan(
		&c.ID, &c.Year, &c.Name, &description, &c.StartDate, &c.EndDate, &c.Status, &c.Version,
		&phaseConfigs, &committee, &c.Published, &c.PublishedAt, &createdBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Description = description.String
	c.CreatedBy = createdBy.String
	if err := unmarshalMap(phaseConfigs, &c.PhaseConfigs); err != nil {
		return nil, err
	}
	if err := unmarshalStrings(committee, &c.SelectionCommittee); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCycle inserts a new cycle and fills in the generated id and timestamps.
func (s *SuccessionStore) CreateCycle(c *models.SuccessionCycle) error {
	configs, err := marshalJSON(c.PhaseConfigs)
	if err != nil {
		return err
	}
	committee, err := marshalJSON(c.SelectionCommittee)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO succession_cycles
			(year, name, description, start_date, end_date, status, version,
			 phase_configs, selection_committee, published, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err = s.DB.QueryRow(query,
		c.Year, c.Name, c.Description, c.StartDate, c.EndDate, c.Status, c.Version,
		configs, committee, nullIfEmpty(c.CreatedBy),
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return wrapDuplicate(err)
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// GetCycle returns the cycle or (nil, nil) when it does not exist.
func (s *SuccessionStore) GetCycle(id string) (*models.SuccessionCycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM succession_cycles WHERE id = $1`
	cycle, err := scanCycle(s.DB.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return cycle, err
}

// GetCycleByYear returns the cycle for a year or (nil, nil).
func (s *SuccessionStore) GetCycleByYear(year int) (*models.SuccessionCycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM succession_cycles WHERE year = $1`
	cycle, err := scanCycle(s.DB.QueryRow(query, year))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return cycle, err
}

// ListCycles returns all cycles, newest year first.
func (s *SuccessionStore) ListCycles() ([]models.SuccessionCycle, error) {
	query := `SELECT ` + cycleColumns + ` FROM succession_cycles ORDER BY year DESC`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []models.SuccessionCycle
	for rows.Next() {
		cycle, err := scanCycle(rows)
		if err != nil {
			return nil, err
		}
		cycles = append(cycles, *cycle)
	}
	return cycles, rows.Err()
}

// UpdateCycle applies the patch with a write conditioned on the stored version
// matching expectedVersion, bumping the version by one. matched is false when
// the conditioned write found no row (stale version or the cycle is gone).
func (s *SuccessionStore) UpdateCycle(id string, expectedVersion int, patch succession.CyclePatch) (*models.SuccessionCycle, bool, error) {
	configs, err := marshalJSON(patch.PhaseConfigs)
	if err != nil {
		return nil, false, err
	}
	committee, err := marshalJSON(patch.SelectionCommittee)
	if err != nil {
		return nil, false, err
	}
	var status interface{}
	if patch.Status != nil {
		status = string(*patch.Status)
	}
	query := `
		UPDATE succession_cycles SET
			name = COALESCE($1, name),
			description = COALESCE($2, description),
			start_date = COALESCE($3, start_date),
			end_date = COALESCE($4, end_date),
			status = COALESCE($5, status),
			phase_configs = COALESCE($6, phase_configs),
			selection_committee = COALESCE($7, selection_committee),
			published = COALESCE($8, published),
			published_at = COALESCE($9, published_at),
			version = version + 1,
			updated_at = NOW()
		WHERE id = $10 AND version = $11
		RETURNING ` + cycleColumns
	cycle, err := scanCycle(s.DB.QueryRow(query,
		patch.Name, patch.Description, patch.StartDate, patch.EndDate, status,
		configs, committee, patch.Published, patch.PublishedAt,
		id, expectedVersion,
	))
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cycle, true, nil
}

// DeleteCycle removes a cycle row. Guard checks live in the engine.
func (s *SuccessionStore) DeleteCycle(id string) error {
	_, err := s.DB.Exec(`DELETE FROM succession_cycles WHERE id = $1`, id)
	return err
}

// CountPositions returns the number of positions attached to a cycle.
func (s *SuccessionStore) CountPositions(cycleID string) (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM succession_positions WHERE cycle_id = $1`, cycleID).Scan(&count)
	return count, err
}
