package approval

// Stage is one link in an approval chain.
type Stage string

const (
	StageDept     Stage = "dept"
	StageVP       Stage = "vp"
	StageGM       Stage = "gm"
	StageAssigned Stage = "assigned" // single-approver chain (overtime)
)

// Kind selects which escalation rules apply to a workflow.
type Kind string

const (
	KindLeave    Kind = "leave"
	KindOvertime Kind = "overtime"
)

// Decision is the outcome an approver records for a stage.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)
