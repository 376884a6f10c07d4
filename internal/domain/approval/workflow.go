package approval

import (
	"time"

	"github.com/attendhub/attend-backend-go/internal/domain/user"
)

// Step records one approver's decision. Steps are append-only; once
// written they are only superseded by the workflow status advancing.
type Step struct {
	ID         string
	Stage      Stage
	ApproverID string
	Decision   Decision
	Comment    string
	DecidedAt  time.Time
}

// Workflow is the approval-relevant slice of a request aggregate. The
// state machine operates on workflow snapshots as a pure function; a
// failed transition leaves the input untouched.
type Workflow struct {
	Kind          Kind
	RequesterID   string
	RequesterRole user.Role
	// Days is fixed at creation and carried into every later decision.
	Days      float64
	Status    Status
	Assignees map[Stage]string
	Steps     []Step
}

// RequiredStages returns the chain this workflow must pass through.
func (w Workflow) RequiredStages() []Stage {
	return RequiredStages(w.RequesterRole, w.Kind, w.Days)
}

// ExpectedStage returns the next stage awaiting a decision, or false when
// the workflow is terminal.
func (w Workflow) ExpectedStage() (Stage, bool) {
	if w.Status.IsTerminal() {
		return "", false
	}
	required := w.RequiredStages()
	approvals := 0
	for _, s := range w.Steps {
		if s.Decision == DecisionApproved {
			approvals++
		}
	}
	if approvals >= len(required) {
		return "", false
	}
	return required[approvals], true
}

// Decide applies one approver's decision and returns the resulting
// workflow. On any failure the returned workflow equals the input and no
// step is appended.
func Decide(w Workflow, stage Stage, decision Decision, actorID, comment string, at time.Time) (Workflow, error) {
	if w.Status.IsTerminal() {
		return w, ErrAlreadyTerminal
	}

	expected, ok := w.ExpectedStage()
	if !ok || stage != expected {
		return w, ErrOutOfOrder
	}

	assignee, ok := w.Assignees[stage]
	if !ok || assignee == "" || assignee != actorID {
		return w, ErrStageMismatch
	}

	next := w.clone()
	next.Steps = append(next.Steps, Step{
		Stage:      stage,
		ApproverID: actorID,
		Decision:   decision,
		Comment:    comment,
		DecidedAt:  at,
	})

	if decision == DecisionRejected {
		next.Status = StatusRejected
		return next, nil
	}

	required := w.RequiredStages()
	if stage == required[len(required)-1] {
		next.Status = StatusApproved
	} else {
		next.Status = afterApproval(stage)
	}
	return next, nil
}

// Cancel withdraws the request. Only the requester may cancel, and only
// while the workflow has not reached a terminal state.
func Cancel(w Workflow, actorID string, at time.Time) (Workflow, error) {
	if !w.Status.CanCancel() {
		return w, ErrAlreadyTerminal
	}
	if actorID != w.RequesterID {
		return w, ErrStageMismatch
	}

	next := w.clone()
	next.Status = StatusCancelled
	return next, nil
}

// StageForRole maps an approver's role to the stage they decide, given
// the workflow kind. Roles outside the chain get no stage.
func (w Workflow) StageForRole(role user.Role) (Stage, bool) {
	if w.Kind == KindOvertime {
		switch role {
		case user.RoleDepartmentHead, user.RoleVicePresident, user.RoleGeneralManager:
			return StageAssigned, true
		}
		return "", false
	}
	switch role {
	case user.RoleDepartmentHead:
		return StageDept, true
	case user.RoleVicePresident:
		return StageVP, true
	case user.RoleGeneralManager:
		return StageGM, true
	}
	return "", false
}

func (w Workflow) clone() Workflow {
	next := w
	next.Steps = make([]Step, len(w.Steps), len(w.Steps)+1)
	copy(next.Steps, w.Steps)
	next.Assignees = make(map[Stage]string, len(w.Assignees))
	for k, v := range w.Assignees {
		next.Assignees[k] = v
	}
	return next
}
