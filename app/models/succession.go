package models

import "time"

// SuccessionCycle is the root aggregate for one annual run of the leadership
// succession process. Version is the optimistic-concurrency guard: every
// successful update increments it, and writes are conditioned on the version
// read at the start of the operation.
type SuccessionCycle struct {
	ID                 string                 `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Year               int                    `json:"year" gorm:"uniqueIndex;not null" validate:"required"`
	Name               string                 `json:"name" gorm:"not null" validate:"required"`
	Description        string                 `json:"description"`
	StartDate          time.Time              `json:"start_date" gorm:"not null"`
	EndDate            time.Time              `json:"end_date" gorm:"not null"`
	Status             CycleStatus            `json:"status" gorm:"not null;default:draft"`
	Version            int                    `json:"version" gorm:"not null;default:1"`
	PhaseConfigs       map[string]interface{} `json:"phase_configs,omitempty" gorm:"type:jsonb"`
	SelectionCommittee []string               `json:"selection_committee,omitempty" gorm:"type:jsonb"`
	Published          bool                   `json:"published" gorm:"default:false"`
	PublishedAt        *time.Time             `json:"published_at,omitempty"`
	CreatedBy          string                 `json:"created_by" gorm:"type:uuid"`
	CreatedAt          time.Time              `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time              `json:"updated_at" gorm:"autoUpdateTime"`
}

// SuccessionPosition is a leadership role being filled within a cycle.
type SuccessionPosition struct {
	ID                  string                 `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CycleID             string                 `json:"cycle_id" gorm:"not null;index;type:uuid"`
	Title               string                 `json:"title" gorm:"not null" validate:"required"`
	Description         string                 `json:"description"`
	HierarchyLevel      int                    `json:"hierarchy_level" gorm:"not null"`
	NumberOfOpenings    int                    `json:"number_of_openings" gorm:"not null;default:1"`
	EligibilityCriteria map[string]interface{} `json:"eligibility_criteria,omitempty" gorm:"type:jsonb"`
	IsActive            bool                   `json:"is_active" gorm:"default:true"`
	CreatedAt           time.Time              `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt           time.Time              `json:"updated_at" gorm:"autoUpdateTime"`
}

// SuccessionTimelineStep is one of the 7 ordered phases of a cycle. Statuses
// are derived from the parent cycle's status by the timeline synchronizer but
// steps remain editable by admins.
type SuccessionTimelineStep struct {
	ID                string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CycleID           string     `json:"cycle_id" gorm:"not null;index;type:uuid"`
	StepNumber        int        `json:"step_number" gorm:"not null"`
	Name              string     `json:"name" gorm:"not null"`
	Description       string     `json:"description"`
	StartDate         time.Time  `json:"start_date"`
	EndDate           time.Time  `json:"end_date"`
	Status            StepStatus `json:"status" gorm:"not null;default:pending"`
	AutoTriggerAction string     `json:"auto_trigger_action,omitempty"`
	CreatedAt         time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// SuccessionNomination is a member-submitted candidacy for someone else.
type SuccessionNomination struct {
	ID                 string                 `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CycleID            string                 `json:"cycle_id" gorm:"not null;index;type:uuid"`
	PositionID         string                 `json:"position_id" gorm:"not null;index;type:uuid"`
	NomineeMemberID    string                 `json:"nominee_member_id" gorm:"not null;type:uuid"`
	NominatedBy        string                 `json:"nominated_by" gorm:"not null;type:uuid"`
	Statement          string                 `json:"statement"`
	SupportingEvidence map[string]interface{} `json:"supporting_evidence,omitempty" gorm:"type:jsonb"`
	Status             CandidacyStatus        `json:"status" gorm:"not null;default:draft"`
	ReviewedBy         *string                `json:"reviewed_by,omitempty" gorm:"type:uuid"`
	ReviewedAt         *time.Time             `json:"reviewed_at,omitempty"`
	ReviewNotes        string                 `json:"review_notes,omitempty"`
	CreatedAt          time.Time              `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time              `json:"updated_at" gorm:"autoUpdateTime"`
}

// SuccessionApplication is a member's self-submitted candidacy.
type SuccessionApplication struct {
	ID                 string                 `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CycleID            string                 `json:"cycle_id" gorm:"not null;index;type:uuid"`
	PositionID         string                 `json:"position_id" gorm:"not null;index;type:uuid"`
	ApplicantMemberID  string                 `json:"applicant_member_id" gorm:"not null;type:uuid"`
	Statement          string                 `json:"statement"`
	SupportingEvidence map[string]interface{} `json:"supporting_evidence,omitempty" gorm:"type:jsonb"`
	Status             CandidacyStatus        `json:"status" gorm:"not null;default:draft"`
	ReviewedBy         *string                `json:"reviewed_by,omitempty" gorm:"type:uuid"`
	ReviewedAt         *time.Time             `json:"reviewed_at,omitempty"`
	ReviewNotes        string                 `json:"review_notes,omitempty"`
	CreatedAt          time.Time              `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time              `json:"updated_at" gorm:"autoUpdateTime"`
}

// SuccessionEvaluator is an evaluator assigned to a cycle. ScoresSubmitted is
// a progress counter bumped on every accepted score batch.
type SuccessionEvaluator struct {
	ID              string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CycleID         string    `json:"cycle_id" gorm:"not null;index;type:uuid"`
	MemberID        string    `json:"member_id" gorm:"not null;type:uuid"`
	AssignedBy      string    `json:"assigned_by" gorm:"type:uuid"`
	ScoresSubmitted int       `json:"scores_submitted" gorm:"default:0"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// SuccessionEvaluationScore is one evaluator's score for one criterion of one
// nomination. Unique per (nomination, evaluator, criterion).
type SuccessionEvaluationScore struct {
	ID           string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	NominationID string    `json:"nomination_id" gorm:"not null;index;type:uuid"`
	EvaluatorID  string    `json:"evaluator_id" gorm:"not null;index;type:uuid"`
	Criterion    string    `json:"criterion" gorm:"not null"`
	Score        int       `json:"score" gorm:"not null"`
	Comments     string    `json:"comments"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// SuccessionApproach records an outreach contact to a selected nominee and
// tracks their acceptance response.
type SuccessionApproach struct {
	ID              string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CycleID         string           `json:"cycle_id" gorm:"not null;index;type:uuid"`
	NominationID    string           `json:"nomination_id" gorm:"not null;index;type:uuid"`
	NomineeMemberID string           `json:"nominee_member_id" gorm:"not null;type:uuid"`
	ApproachedBy    string           `json:"approached_by" gorm:"not null;type:uuid"`
	Notes           string           `json:"notes"`
	ResponseStatus  ApproachResponse `json:"response_status" gorm:"not null;default:pending"`
	ResponseNotes   string           `json:"response_notes,omitempty"`
	RespondedAt     *time.Time       `json:"responded_at,omitempty"`
	CreatedAt       time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// SuccessionMeeting is a steering-committee meeting in the selection phase.
type SuccessionMeeting struct {
	ID          string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CycleID     string        `json:"cycle_id" gorm:"not null;index;type:uuid"`
	Title       string        `json:"title" gorm:"not null"`
	Agenda      string        `json:"agenda"`
	Minutes     string        `json:"minutes,omitempty"`
	ScheduledAt time.Time     `json:"scheduled_at" gorm:"not null"`
	Status      MeetingStatus `json:"status" gorm:"not null;default:scheduled"`
	CreatedBy   string        `json:"created_by" gorm:"type:uuid"`
	CreatedAt   time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// SuccessionVote is one committee member's vote on a nominee in a meeting.
// Unique per (meeting, nominee, voter).
type SuccessionVote struct {
	ID              string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	MeetingID       string     `json:"meeting_id" gorm:"not null;index;type:uuid"`
	NomineeMemberID string     `json:"nominee_member_id" gorm:"not null;type:uuid"`
	VoterMemberID   string     `json:"voter_member_id" gorm:"not null;type:uuid"`
	Choice          VoteChoice `json:"choice" gorm:"not null"`
	Comment         string     `json:"comment,omitempty"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
}
