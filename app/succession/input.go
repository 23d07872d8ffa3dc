package succession

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/JKKN-Institutions/yi-connect-sub003/app/models"
)

// Input is the loosely-typed key/value shape every mutating operation accepts
// (submitted form fields or a parsed JSON body). The Parse* functions below
// are the decode-and-validate boundary: they coerce types (string->int,
// JSON-string->structured, empty string->nil) and produce typed commands so
// the domain logic never touches raw fields.
type Input map[string]interface{}

const dateLayout = "2006-01-02"

func (in Input) str(key string) (string, bool) {
	v, ok := in[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprintf("%v", v), true
	}
	return strings.TrimSpace(s), true
}

// integer coerces string, float64 (JSON numbers), and int values.
func (in Input) integer(key string) (int, bool, error) {
	v, ok := in[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return n, true, nil
	case int64:
		return int(n), true, nil
	case float64:
		if n != float64(int(n)) {
			return 0, true, fmt.Errorf("must be a number")
		}
		return int(n), true, nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false, nil
		}
		parsed, err := strconv.Atoi(s)
		if err != nil {
			return 0, true, fmt.Errorf("must be a number")
		}
		return parsed, true, nil
	default:
		return 0, true, fmt.Errorf("must be a number")
	}
}

// date parses a YYYY-MM-DD value. Empty strings map to absent (nil for
// optional date fields).
func (in Input) date(key string) (*time.Time, bool, error) {
	s, ok := in.str(key)
	if !ok || s == "" {
		return nil, false, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, true, fmt.Errorf("must be a date (YYYY-MM-DD)")
		}
	}
	return &t, true, nil
}

// structured decodes a field that may arrive as a JSON-encoded string or as an
// already-parsed object.
func (in Input) structured(key string) (map[string]interface{}, bool, error) {
	v, ok := in[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	switch val := v.(type) {
	case map[string]interface{}:
		return val, true, nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil, false, nil
		}
		var out map[string]interface{}
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil, true, fmt.Errorf("must be valid JSON")
		}
		return out, true, nil
	default:
		return nil, true, fmt.Errorf("must be an object")
	}
}

func (in Input) stringList(key string) ([]string, bool, error) {
	v, ok := in[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	switch val := v.(type) {
	case []string:
		return val, true, nil
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, true, fmt.Errorf("must be a list of ids")
			}
			out = append(out, s)
		}
		return out, true, nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return nil, false, nil
		}
		var out []string
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil, true, fmt.Errorf("must be a JSON list of ids")
		}
		return out, true, nil
	default:
		return nil, true, fmt.Errorf("must be a list of ids")
	}
}

// CreateCycleCommand is the typed form of a validated cycle-creation request.
type CreateCycleCommand struct {
	Year               int
	Name               string
	Description        string
	StartDate          time.Time
	EndDate            time.Time
	PhaseConfigs       map[string]interface{}
	SelectionCommittee []string
}

// ParseCreateCycle validates and coerces raw input for cycle creation.
func ParseCreateCycle(in Input) (*CreateCycleCommand, *ValidationError) {
	errs := map[string]string{}
	cmd := &CreateCycleCommand{}

	year, present, err := in.integer("year")
	switch {
	case err != nil:
		errs["year"] = err.Error()
	case !present:
		errs["year"] = "is required"
	case year < 2000 || year > 2100:
		errs["year"] = "must be a valid year"
	default:
		cmd.Year = year
	}

	if name, ok := in.str("name"); !ok || name == "" {
		errs["name"] = "is required"
	} else {
		cmd.Name = name
	}
	if desc, ok := in.str("description"); ok {
		cmd.Description = desc
	}

	if start, present, err := in.date("start_date"); err != nil {
		errs["start_date"] = err.Error()
	} else if !present {
		errs["start_date"] = "is required"
	} else {
		cmd.StartDate = *start
	}
	if end, present, err := in.date("end_date"); err != nil {
		errs["end_date"] = err.Error()
	} else if !present {
		errs["end_date"] = "is required"
	} else {
		cmd.EndDate = *end
	}
	if !cmd.StartDate.IsZero() && !cmd.EndDate.IsZero() && cmd.EndDate.Before(cmd.StartDate) {
		errs["end_date"] = "must not be before start_date"
	}

	if cfg, _, err := in.structured("phase_configs"); err != nil {
		errs["phase_configs"] = err.Error()
	} else {
		cmd.PhaseConfigs = cfg
	}
	if committee, _, err := in.stringList("selection_committee"); err != nil {
		errs["selection_committee"] = err.Error()
	} else {
		cmd.SelectionCommittee = committee
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return cmd, nil
}

// UpdateCycleCommand is a partial update; nil fields are untouched. Status
// changes ride through here as well and are validated against the transition
// table by the lifecycle controller, not the parser.
type UpdateCycleCommand struct {
	Name               *string
	Description        *string
	StartDate          *time.Time
	EndDate            *time.Time
	Status             *CycleStatus
	PhaseConfigs       map[string]interface{}
	SelectionCommittee []string
}

// ParseUpdateCycle validates and coerces raw input for a partial cycle update.
func ParseUpdateCycle(in Input) (*UpdateCycleCommand, *ValidationError) {
	errs := map[string]string{}
	cmd := &UpdateCycleCommand{}

	if name, ok := in.str("name"); ok {
		if name == "" {
			errs["name"] = "cannot be blank"
		} else {
			cmd.Name = &name
		}
	}
	if desc, ok := in.str("description"); ok {
		cmd.Description = &desc
	}
	if start, present, err := in.date("start_date"); err != nil {
		errs["start_date"] = err.Error()
	} else if present {
		cmd.StartDate = start
	}
	if end, present, err := in.date("end_date"); err != nil {
		errs["end_date"] = err.Error()
	} else if present {
		cmd.EndDate = end
	}
	if raw, ok := in.str("status"); ok && raw != "" {
		status := CycleStatus(raw)
		if !ValidStatus(status) {
			errs["status"] = "is not a recognized cycle status"
		} else {
			cmd.Status = &status
		}
	}
	if cfg, present, err := in.structured("phase_configs"); err != nil {
		errs["phase_configs"] = err.Error()
	} else if present {
		cmd.PhaseConfigs = cfg
	}
	if committee, present, err := in.stringList("selection_committee"); err != nil {
		errs["selection_committee"] = err.Error()
	} else if present {
		cmd.SelectionCommittee = committee
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return cmd, nil
}

// PositionCommand is the typed form of a position create/update request.
type PositionCommand struct {
	Title               string
	Description         string
	HierarchyLevel      int
	NumberOfOpenings    int
	EligibilityCriteria map[string]interface{}
	IsActive            bool
}

// ParsePosition validates and coerces raw input for a position.
func ParsePosition(in Input) (*PositionCommand, *ValidationError) {
	errs := map[string]string{}
	cmd := &PositionCommand{NumberOfOpenings: 1, IsActive: true}

	if title, ok := in.str("title"); !ok || title == "" {
		errs["title"] = "is required"
	} else {
		cmd.Title = title
	}
	if desc, ok := in.str("description"); ok {
		cmd.Description = desc
	}

	level, present, err := in.integer("hierarchy_level")
	switch {
	case err != nil:
		errs["hierarchy_level"] = err.Error()
	case !present:
		errs["hierarchy_level"] = "is required"
	case level < 1:
		errs["hierarchy_level"] = "must be at least 1"
	default:
		cmd.HierarchyLevel = level
	}

	if openings, present, err := in.integer("number_of_openings"); err != nil {
		errs["number_of_openings"] = err.Error()
	} else if present {
		if openings < 1 {
			errs["number_of_openings"] = "must be at least 1"
		} else {
			cmd.NumberOfOpenings = openings
		}
	}

	if criteria, _, err := in.structured("eligibility_criteria"); err != nil {
		errs["eligibility_criteria"] = err.Error()
	} else {
		cmd.EligibilityCriteria = criteria
	}
	if v, ok := in["is_active"]; ok {
		if b, isBool := v.(bool); isBool {
			cmd.IsActive = b
		} else if s, isStr := v.(string); isStr {
			cmd.IsActive = s == "true" || s == "1"
		}
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return cmd, nil
}

// StepCommand is the typed form of a manual timeline-step create/update.
type StepCommand struct {
	StepNumber        int
	Name              string
	Description       string
	StartDate         *time.Time
	EndDate           *time.Time
	Status            StepStatus
	AutoTriggerAction string
}

// ParseStep validates and coerces raw input for a timeline step.
func ParseStep(in Input) (*StepCommand, *ValidationError) {
	errs := map[string]string{}
	cmd := &StepCommand{Status: models.StepPending}

	num, present, err := in.integer("step_number")
	switch {
	case err != nil:
		errs["step_number"] = err.Error()
	case !present:
		errs["step_number"] = "is required"
	case num < 1 || num > stepCount:
		errs["step_number"] = fmt.Sprintf("must be between 1 and %d", stepCount)
	default:
		cmd.StepNumber = num
	}

	if name, ok := in.str("name"); !ok || name == "" {
		errs["name"] = "is required"
	} else {
		cmd.Name = name
	}
	if desc, ok := in.str("description"); ok {
		cmd.Description = desc
	}
	if start, p, err := in.date("start_date"); err != nil {
		errs["start_date"] = err.Error()
	} else if p {
		cmd.StartDate = start
	}
	if end, p, err := in.date("end_date"); err != nil {
		errs["end_date"] = err.Error()
	} else if p {
		cmd.EndDate = end
	}
	if raw, ok := in.str("status"); ok && raw != "" {
		switch StepStatus(raw) {
		case models.StepPending, models.StepActive, models.StepCompleted, models.StepOverdue:
			cmd.Status = StepStatus(raw)
		default:
			errs["status"] = "is not a recognized step status"
		}
	}
	if action, ok := in.str("auto_trigger_action"); ok {
		cmd.AutoTriggerAction = action
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return cmd, nil
}

// CandidacyCommand is the typed form of a nomination or application submission.
type CandidacyCommand struct {
	PositionID         string
	NomineeMemberID    string // nominations only
	Statement          string
	SupportingEvidence map[string]interface{}
}

// ParseCandidacy validates input for nominations (needNominee true) and
// applications (needNominee false).
func ParseCandidacy(in Input, needNominee bool) (*CandidacyCommand, *ValidationError) {
	errs := map[string]string{}
	cmd := &CandidacyCommand{}

	if id, ok := in.str("position_id"); !ok || id == "" {
		errs["position_id"] = "is required"
	} else {
		cmd.PositionID = id
	}
	if needNominee {
		if id, ok := in.str("nominee_member_id"); !ok || id == "" {
			errs["nominee_member_id"] = "is required"
		} else {
			cmd.NomineeMemberID = id
		}
	}
	if stmt, ok := in.str("statement"); ok {
		cmd.Statement = stmt
	}
	if evidence, _, err := in.structured("supporting_evidence"); err != nil {
		errs["supporting_evidence"] = err.Error()
	} else {
		cmd.SupportingEvidence = evidence
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return cmd, nil
}

// ScoreEntry is one criterion score inside a batch.
type ScoreEntry struct {
	Criterion string
	Score     int
	Comments  string
}

// ScoreBatchCommand is the typed form of an evaluator's score submission for
// one nomination.
type ScoreBatchCommand struct {
	NominationID string
	Scores       []ScoreEntry
}

// ParseScoreBatch validates a score submission. The scores field may arrive as
// a JSON-encoded string or a parsed array of {criterion, score, comments}.
func ParseScoreBatch(in Input) (*ScoreBatchCommand, *ValidationError) {
	errs := map[string]string{}
	cmd := &ScoreBatchCommand{}

	if id, ok := in.str("nomination_id"); !ok || id == "" {
		errs["nomination_id"] = "is required"
	} else {
		cmd.NominationID = id
	}

	raw, ok := in["scores"]
	if !ok || raw == nil {
		errs["scores"] = "is required"
	} else {
		var items []interface{}
		switch v := raw.(type) {
		case []interface{}:
			items = v
		case string:
			if err := json.Unmarshal([]byte(v), &items); err != nil {
				errs["scores"] = "must be a JSON list of scores"
			}
		default:
			errs["scores"] = "must be a list of scores"
		}
		for i, item := range items {
			entry, isMap := item.(map[string]interface{})
			if !isMap {
				errs["scores"] = "each score must be an object"
				break
			}
			sub := Input(entry)
			criterion, _ := sub.str("criterion")
			if criterion == "" {
				errs["scores"] = fmt.Sprintf("score %d is missing a criterion", i+1)
				break
			}
			score, present, err := sub.integer("score")
			if err != nil || !present {
				errs["scores"] = fmt.Sprintf("score %d has an invalid score value", i+1)
				break
			}
			if score < 0 || score > 10 {
				errs["scores"] = fmt.Sprintf("score %d must be between 0 and 10", i+1)
				break
			}
			comments, _ := sub.str("comments")
			cmd.Scores = append(cmd.Scores, ScoreEntry{Criterion: criterion, Score: score, Comments: comments})
		}
		if len(cmd.Scores) == 0 && errs["scores"] == "" {
			errs["scores"] = "must contain at least one score"
		}
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return cmd, nil
}

// VoteCommand is the typed form of a committee vote.
type VoteCommand struct {
	MeetingID       string
	NomineeMemberID string
	Choice          models.VoteChoice
	Comment         string
}

// ParseVote validates a vote submission.
func ParseVote(in Input) (*VoteCommand, *ValidationError) {
	errs := map[string]string{}
	cmd := &VoteCommand{}

	if id, ok := in.str("meeting_id"); !ok || id == "" {
		errs["meeting_id"] = "is required"
	} else {
		cmd.MeetingID = id
	}
	if id, ok := in.str("nominee_member_id"); !ok || id == "" {
		errs["nominee_member_id"] = "is required"
	} else {
		cmd.NomineeMemberID = id
	}
	raw, _ := in.str("choice")
	switch models.VoteChoice(raw) {
	case models.VoteYes, models.VoteNo, models.VoteAbstain:
		cmd.Choice = models.VoteChoice(raw)
	default:
		errs["choice"] = "must be yes, no, or abstain"
	}
	if comment, ok := in.str("comment"); ok {
		cmd.Comment = comment
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return cmd, nil
}

// ApproachCommand is the typed form of recording an approach.
type ApproachCommand struct {
	NominationID string
	Notes        string
}

// ParseApproach validates an approach record.
func ParseApproach(in Input) (*ApproachCommand, *ValidationError) {
	errs := map[string]string{}
	cmd := &ApproachCommand{}
	if id, ok := in.str("nomination_id"); !ok || id == "" {
		errs["nomination_id"] = "is required"
	} else {
		cmd.NominationID = id
	}
	if notes, ok := in.str("notes"); ok {
		cmd.Notes = notes
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return cmd, nil
}

// MeetingCommand is the typed form of scheduling a meeting.
type MeetingCommand struct {
	Title       string
	Agenda      string
	ScheduledAt time.Time
}

// ParseMeeting validates a meeting-scheduling request.
func ParseMeeting(in Input) (*MeetingCommand, *ValidationError) {
	errs := map[string]string{}
	cmd := &MeetingCommand{}
	if title, ok := in.str("title"); !ok || title == "" {
		errs["title"] = "is required"
	} else {
		cmd.Title = title
	}
	if agenda, ok := in.str("agenda"); ok {
		cmd.Agenda = agenda
	}
	if at, present, err := in.date("scheduled_at"); err != nil {
		errs["scheduled_at"] = err.Error()
	} else if !present {
		errs["scheduled_at"] = "is required"
	} else {
		cmd.ScheduledAt = *at
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}
	return cmd, nil
}
