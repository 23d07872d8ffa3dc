package models

// CycleStatus defines the lifecycle states of a succession cycle. The order
// here is the order the cycle moves through; see the succession package for
// the allowed-transition table.
type CycleStatus string

const (
	CycleDraft              CycleStatus = "draft"
	CycleActive             CycleStatus = "active"
	CycleNominationsOpen    CycleStatus = "nominations_open"
	CycleNominationsClosed  CycleStatus = "nominations_closed"
	CycleApplicationsOpen   CycleStatus = "applications_open"
	CycleApplicationsClosed CycleStatus = "applications_closed"
	CycleEvaluations        CycleStatus = "evaluations"
	CycleEvaluationsClosed  CycleStatus = "evaluations_closed"
	CycleInterviews         CycleStatus = "interviews"
	CycleInterviewsClosed   CycleStatus = "interviews_closed"
	CycleSelection          CycleStatus = "selection"
	CycleApprovalPending    CycleStatus = "approval_pending"
	CycleCompleted          CycleStatus = "completed"
	CycleArchived           CycleStatus = "archived"
)

// StepStatus defines the derived status of a timeline step.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepActive    StepStatus = "active"
	StepCompleted StepStatus = "completed"
	StepOverdue   StepStatus = "overdue"
)

// CandidacyStatus is shared by nominations and applications.
type CandidacyStatus string

const (
	CandidacyDraft     CandidacyStatus = "draft"
	CandidacySubmitted CandidacyStatus = "submitted"
	CandidacyApproved  CandidacyStatus = "approved"
	CandidacyRejected  CandidacyStatus = "rejected"
	CandidacyWithdrawn CandidacyStatus = "withdrawn"
)

// ApproachResponse defines a nominee's response to an approach.
type ApproachResponse string

const (
	ApproachPending     ApproachResponse = "pending"
	ApproachAccepted    ApproachResponse = "accepted"
	ApproachDeclined    ApproachResponse = "declined"
	ApproachConditional ApproachResponse = "conditional"
)

// MeetingStatus defines the status of a steering-committee meeting.
type MeetingStatus string

const (
	MeetingScheduled  MeetingStatus = "scheduled"
	MeetingInProgress MeetingStatus = "in_progress"
	MeetingCompleted  MeetingStatus = "completed"
	MeetingCancelled  MeetingStatus = "cancelled"
)

// VoteChoice defines the options for a committee vote.
type VoteChoice string

const (
	VoteYes     VoteChoice = "yes"
	VoteNo      VoteChoice = "no"
	VoteAbstain VoteChoice = "abstain"
)
