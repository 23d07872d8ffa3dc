package database

import (
	"database/sql"

	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"
)

// Positions

func (s *SuccessionStore) CreatePosition(p *models.SuccessionPosition) error {
	criteria, err := marshalJSON(p.EligibilityCriteria)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO succession_positions
			(cycle_id, title, description, hierarchy_level, number_of_openings, eligibility_criteria, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return s.DB.QueryRow(query,
		p.CycleID, p.Title, p.Description, p.HierarchyLevel, p.NumberOfOpenings, criteria, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (s *SuccessionStore) GetPosition(id string) (*models.SuccessionPosition, error) {
	p := &models.SuccessionPosition{}
	var description sql.NullString
	var criteria []byte
	query := `
		SELECT id, cycle_id, title, description, hierarchy_level, number_of_openings, eligibility_criteria, is_active, created_at, updated_at
		FROM succession_positions WHERE id = $1
	`
	err := s.DB.QueryRow(query, id).Scan(
		&p.ID, &p.CycleID, &p.Title, &description, &p.HierarchyLevel, &p.NumberOfOpenings, &criteria, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	if err := unmarshalMap(criteria, &p.EligibilityCriteria); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SuccessionStore) ListPositions(cycleID string) ([]models.SuccessionPosition, error) {
	query := `
		SELECT id, cycle_id, title, description, hierarchy_level, number_of_openings, eligibility_criteria, is_active, created_at, updated_at
		FROM succession_positions WHERE cycle_id = $1 ORDER BY hierarchy_level ASC, title ASC
	`
	rows, err := s.DB.Query(query, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []models.SuccessionPosition
	for rows.Next() {
		var p models.SuccessionPosition
		var description sql.NullString
		var criteria []byte
		if err := rows.Scan(
			&p.ID, &p.CycleID, &p.Title, &description, &p.HierarchyLevel, &p.NumberOfOpenings, &criteria, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.Description = description.String
		if err := unmarshalMap(criteria, &p.EligibilityCriteria); err != nil {
			return nil, err
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

func (s *SuccessionStore) UpdatePosition(p *models.SuccessionPosition) error {
	criteria, err := marshalJSON(p.EligibilityCriteria)
	if err != nil {
		return err
	}
	query := `
		UPDATE succession_positions
		SET title = $1, description = $2, hierarchy_level = $3, number_of_openings = $4,
			eligibility_criteria = $5, is_active = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err = s.DB.Exec(query, p.Title, p.Description, p.HierarchyLevel, p.NumberOfOpenings, criteria, p.IsActive, p.ID)
	return err
}

func (s *SuccessionStore) DeletePosition(id string) error {
	_, err := s.DB.Exec(`DELETE FROM succession_positions WHERE id = $1`, id)
	return err
}

func (s *SuccessionStore) CountNominationsForPosition(positionID string) (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM succession_nominations WHERE position_id = $1`, positionID).Scan(&count)
	return count, err
}

func (s *SuccessionStore) CountApplicationsForPosition(positionID string) (int, error) {
	var count int
	err := s.DB.QueryRow(`SELECT COUNT(*) FROM succession_applications WHERE position_id = $1`, positionID).Scan(&count)
	return count, err
}

// Timeline steps

func (s *SuccessionStore) CreateStep(step *models.SuccessionTimelineStep) error {
	query := `
		INSERT INTO succession_timeline_steps
			(cycle_id, step_number, name, description, start_date, end_date, status, auto_trigger_action, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return s.DB.QueryRow(query,
		step.CycleID, step.StepNumber, step.Name, step.Description, step.StartDate, step.EndDate, step.Status, step.AutoTriggerAction,
	).Scan(&step.ID, &step.CreatedAt, &step.UpdatedAt)
}

func (s *SuccessionStore) GetStep(id string) (*models.SuccessionTimelineStep, error) {
	step := &models.SuccessionTimelineStep{}
	var description, action sql.NullString
	query := `
		SELECT id, cycle_id, step_number, name, description, start_date, end_date, status, auto_trigger_action, created_at, updated_at
		FROM succession_timeline_steps WHERE id = $1
	`
	err := s.DB.QueryRow(query, id).Scan(
		&step.ID, &step.CycleID, &step.StepNumber, &step.Name, &description, &step.StartDate, &step.EndDate, &step.Status, &action, &step.CreatedAt, &step.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	step.Description = description.String
	step.AutoTriggerAction = action.String
	return step, nil
}

func (s *SuccessionStore) ListSteps(cycleID string) ([]models.SuccessionTimelineStep, error) {
	query := `
		SELECT id, cycle_id, step_number, name, description, start_date, end_date, status, auto_trigger_action, created_at, updated_at
		FROM succession_timeline_steps WHERE cycle_id = $1 ORDER BY step_number ASC
	`
	rows, err := s.DB.Query(query, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []models.SuccessionTimelineStep
	for rows.Next() {
		var step models.SuccessionTimelineStep
		var description, action sql.NullString
		if err := rows.Scan(
			&step.ID, &step.CycleID, &step.StepNumber, &step.Name, &description, &step.StartDate, &step.EndDate, &step.Status, &action, &step.CreatedAt, &step.UpdatedAt,
		); err != nil {
			return nil, err
		}
		step.Description = description.String
		step.AutoTriggerAction = action.String
		steps = append(steps, step)
	}
	return steps, rows.Err()
}

func (s *SuccessionStore) UpdateStep(step *models.SuccessionTimelineStep) error {
	query := `
		UPDATE succession_timeline_steps
		SET step_number = $1, name = $2, description = $3, start_date = $4, end_date = $5,
			status = $6, auto_trigger_action = $7, updated_at = NOW()
		WHERE id = $8
	`
	_, err := s.DB.Exec(query,
		step.StepNumber, step.Name, step.Description, step.StartDate, step.EndDate, step.Status, step.AutoTriggerAction, step.ID,
	)
	return err
}

func (s *SuccessionStore) UpdateStepStatus(id string, status models.StepStatus) error {
	_, err := s.DB.Exec(`UPDATE succession_timeline_steps SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	return err
}

func (s *SuccessionStore) DeleteStep(id string) error {
	_, err := s.DB.Exec(`DELETE FROM succession_timeline_steps WHERE id = $1`, id)
	return err
}

// Nominations

const nominationColumns = `id, cycle_id, position_id, nominee_member_id, nominated_by, statement,
	supporting_evidence, status, reviewed_by, reviewed_at, review_notes, created_at, updated_at`

func scanNomination(row interface{ Scan(...interface{}) error }) (*models.SuccessionNomination, error) {
	n := &models.SuccessionNomination{}
	var statement, reviewNotes sql.NullString
	var evidence []byte
	err := row.Scan(
		&n.ID, &n.CycleID, &n.PositionID, &n.NomineeMemberID, &n.NominatedBy, &statement,
		&evidence, &n.Status, &n.ReviewedBy, &n.ReviewedAt, &reviewNotes, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	n.Statement = statement.String
	n.ReviewNotes = reviewNotes.String
	if err := unmarshalMap(evidence, &n.SupportingEvidence); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *SuccessionStore) CreateNomination(n *models.SuccessionNomination) error {
	evidence, err := marshalJSON(n.SupportingEvidence)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO succession_nominations
			(cycle_id, position_id, nominee_member_id, nominated_by, statement, supporting_evidence, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return s.DB.QueryRow(query,
		n.CycleID, n.PositionID, n.NomineeMemberID, n.NominatedBy, n.Statement, evidence, n.Status,
	).Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
}

func (s *SuccessionStore) GetNomination(id string) (*models.SuccessionNomination, error) {
	query := `SELECT ` + nominationColumns + ` FROM succession_nominations WHERE id = $1`
	n, err := scanNomination(s.DB.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return n, err
}

func (s *SuccessionStore) ListNominations(cycleID string) ([]models.SuccessionNomination, error) {
	query := `SELECT ` + nominationColumns + ` FROM succession_nominations WHERE cycle_id = $1 ORDER BY created_at ASC`
	rows, err := s.DB.Query(query, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nominations []models.SuccessionNomination
	for rows.Next() {
		n, err := scanNomination(rows)
		if err != nil {
			return nil, err
		}
		nominations = append(nominations, *n)
	}
	return nominations, rows.Err()
}

func (s *SuccessionStore) UpdateNomination(n *models.SuccessionNomination) error {
	evidence, err := marshalJSON(n.SupportingEvidence)
	if err != nil {
		return err
	}
	query := `
		UPDATE succession_nominations
		SET nominee_member_id = $1, statement = $2, supporting_evidence = $3, status = $4,
			reviewed_by = $5, reviewed_at = $6, review_notes = $7, updated_at = NOW()
		WHERE id = $8
	`
	_, err = s.DB.Exec(query,
		n.NomineeMemberID, n.Statement, evidence, n.Status, n.ReviewedBy, n.ReviewedAt, n.ReviewNotes, n.ID,
	)
	return err
}

// Applications

const applicationColumns = `id, cycle_id, position_id, applicant_member_id, statement,
	supporting_evidence, status, reviewed_by, reviewed_at, review_notes, created_at, updated_at`

func scanApplication(row interface{ Scan(...interface{}) error }) (*models.SuccessionApplication, error) {
	a := &models.SuccessionApplication{}
	var statement, reviewNotes sql.NullString
	var evidence []byte
	err := row.Scan(
		&a.ID, &a.CycleID, &a.PositionID, &a.ApplicantMemberID, &statement,
		&evidence, &a.Status, &a.ReviewedBy, &a.ReviewedAt, &reviewNotes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Statement = statement.String
	a.ReviewNotes = reviewNotes.String
	if err := unmarshalMap(evidence, &a.SupportingEvidence); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *SuccessionStore) CreateApplication(a *models.SuccessionApplication) error {
	evidence, err := marshalJSON(a.SupportingEvidence)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO succession_applications
			(cycle_id, position_id, applicant_member_id, statement, supporting_evidence, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return s.DB.QueryRow(query,
		a.CycleID, a.PositionID, a.ApplicantMemberID, a.Statement, evidence, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (s *SuccessionStore) GetApplication(id string) (*models.SuccessionApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM succession_applications WHERE id = $1`
	a, err := scanApplication(s.DB.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func (s *SuccessionStore) ListApplications(cycleID string) ([]models.SuccessionApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM succession_applications WHERE cycle_id = $1 ORDER BY created_at ASC`
	rows, err := s.DB.Query(query, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []models.SuccessionApplication
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, *a)
	}
	return applications, rows.Err()
}

func (s *SuccessionStore) UpdateApplication(a *models.SuccessionApplication) error {
	evidence, err := marshalJSON(a.SupportingEvidence)
	if err != nil {
		return err
	}
	query := `
		UPDATE succession_applications
		SET statement = $1, supporting_evidence = $2, status = $3,
			reviewed_by = $4, reviewed_at = $5, review_notes = $6, updated_at = NOW()
		WHERE id = $7
	`
	_, err = s.DB.Exec(query,
		a.Statement, evidence, a.Status, a.ReviewedBy, a.ReviewedAt, a.ReviewNotes, a.ID,
	)
	return err
}

// Evaluators and scores

func (s *SuccessionStore) CreateEvaluator(e *models.SuccessionEvaluator) error {
	query := `
		INSERT INTO succession_evaluators (cycle_id, member_id, assigned_by, scores_submitted, created_at, updated_at)
		VALUES ($1, $2, $3, 0, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := s.DB.QueryRow(query, e.CycleID, e.MemberID, nullIfEmpty(e.AssignedBy)).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return wrapDuplicate(err)
}

func (s *SuccessionStore) GetEvaluatorByMember(cycleID, memberID string) (*models.SuccessionEvaluator, error) {
	e := &models.SuccessionEvaluator{}
	var assignedBy sql.NullString
	query := `
		SELECT id, cycle_id, member_id, assigned_by, scores_submitted, created_at, updated_at
		FROM succession_evaluators WHERE cycle_id = $1 AND member_id = $2
	`
	err := s.DB.QueryRow(query, cycleID, memberID).Scan(
		&e.ID, &e.CycleID, &e.MemberID, &assignedBy, &e.ScoresSubmitted, &e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.AssignedBy = assignedBy.String
	return e, nil
}

func (s *SuccessionStore) ListEvaluators(cycleID string) ([]models.SuccessionEvaluator, error) {
	query := `
		SELECT id, cycle_id, member_id, assigned_by, scores_submitted, created_at, updated_at
		FROM succession_evaluators WHERE cycle_id = $1 ORDER BY created_at ASC
	`
	rows, err := s.DB.Query(query, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evaluators []models.SuccessionEvaluator
	for rows.Next() {
		var e models.SuccessionEvaluator
		var assignedBy sql.NullString
		if err := rows.Scan(&e.ID, &e.CycleID, &e.MemberID, &assignedBy, &e.ScoresSubmitted, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.AssignedBy = assignedBy.String
		evaluators = append(evaluators, e)
	}
	return evaluators, rows.Err()
}

func (s *SuccessionStore) CreateScore(score *models.SuccessionEvaluationScore) error {
	query := `
		INSERT INTO succession_evaluation_scores (nomination_id, evaluator_id, criterion, score, comments, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`
	err := s.DB.QueryRow(query,
		score.NominationID, score.EvaluatorID, score.Criterion, score.Score, score.Comments,
	).Scan(&score.ID, &score.CreatedAt)
	return wrapDuplicate(err)
}

func (s *SuccessionStore) IncrementEvaluatorProgress(evaluatorID string) error {
	_, err := s.DB.Exec(`UPDATE succession_evaluators SET scores_submitted = scores_submitted + 1, updated_at = NOW() WHERE id = $1`, evaluatorID)
	return err
}

// Approaches, meetings, votes

func (s *SuccessionStore) CreateApproach(a *models.SuccessionApproach) error {
	query := `
		INSERT INTO succession_approaches
			(cycle_id, nomination_id, nominee_member_id, approached_by, notes, response_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return s.DB.QueryRow(query,
		a.CycleID, a.NominationID, a.NomineeMemberID, a.ApproachedBy, a.Notes, a.ResponseStatus,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (s *SuccessionStore) GetApproach(id string) (*models.SuccessionApproach, error) {
	a := &models.SuccessionApproach{}
	var notes, responseNotes sql.NullString
	query := `
		SELECT id, cycle_id, nomination_id, nominee_member_id, approached_by, notes, response_status, response_notes, responded_at, created_at, updated_at
		FROM succession_approaches WHERE id = $1
	`
	err := s.DB.QueryRow(query, id).Scan(
		&a.ID, &a.CycleID, &a.NominationID, &a.NomineeMemberID, &a.ApproachedBy, &notes, &a.ResponseStatus, &responseNotes, &a.RespondedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.Notes = notes.String
	a.ResponseNotes = responseNotes.String
	return a, nil
}

func (s *SuccessionStore) UpdateApproach(a *models.SuccessionApproach) error {
	query := `
		UPDATE succession_approaches
		SET notes = $1, response_status = $2, response_notes = $3, responded_at = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := s.DB.Exec(query, a.Notes, a.ResponseStatus, a.ResponseNotes, a.RespondedAt, a.ID)
	return err
}

func (s *SuccessionStore) CreateMeeting(m *models.SuccessionMeeting) error {
	query := `
		INSERT INTO succession_meetings (cycle_id, title, agenda, scheduled_at, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return s.DB.QueryRow(query,
		m.CycleID, m.Title, m.Agenda, m.ScheduledAt, m.Status, nullIfEmpty(m.CreatedBy),
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
}

func (s *SuccessionStore) GetMeeting(id string) (*models.SuccessionMeeting, error) {
	m := &models.SuccessionMeeting{}
	var agenda, minutes sql.NullString
	var createdBy sql.NullString
	query := `
		SELECT id, cycle_id, title, agenda, minutes, scheduled_at, status, created_by, created_at, updated_at
		FROM succession_meetings WHERE id = $1
	`
	err := s.DB.QueryRow(query, id).Scan(
		&m.ID, &m.CycleID, &m.Title, &agenda, &minutes, &m.ScheduledAt, &m.Status, &createdBy, &m.CreatedAt, &m.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.Agenda = agenda.String
	m.Minutes = minutes.String
	m.CreatedBy = createdBy.String
	return m, nil
}

func (s *SuccessionStore) UpdateMeeting(m *models.SuccessionMeeting) error {
	query := `
		UPDATE succession_meetings
		SET title = $1, agenda = $2, minutes = $3, scheduled_at = $4, status = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := s.DB.Exec(query, m.Title, m.Agenda, m.Minutes, m.ScheduledAt, m.Status, m.ID)
	return err
}

func (s *SuccessionStore) CreateVote(v *models.SuccessionVote) error {
	query := `
		INSERT INTO succession_votes (meeting_id, nominee_member_id, voter_member_id, choice, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`
	err := s.DB.QueryRow(query,
		v.MeetingID, v.NomineeMemberID, v.VoterMemberID, v.Choice, v.Comment,
	).Scan(&v.ID, &v.CreatedAt)
	return wrapDuplicate(err)
}
