package approval

// Status is the closed set of workflow states. All branching goes through
// the state machine; callers never compare raw strings.
type Status string

const (
	StatusPending      Status = "pending"
	StatusDeptApproved Status = "dept_approved"
	StatusVPApproved   Status = "vp_approved"
	StatusApproved     Status = "approved"
	StatusRejected     Status = "rejected"
	StatusCancelled    Status = "cancelled"
)

// IsTerminal reports whether no further transition is permitted.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// CanCancel reports whether the requester may still withdraw the request.
func (s Status) CanCancel() bool {
	switch s {
	case StatusPending, StatusDeptApproved, StatusVPApproved:
		return true
	}
	return false
}

// afterApproval maps an approved non-final stage to the intermediate
// status it produces.
func afterApproval(stage Stage) Status {
	switch stage {
	case StageDept:
		return StatusDeptApproved
	case StageVP:
		return StatusVPApproved
	default:
		return StatusApproved
	}
}
