package approval

import (
	"testing"
	"time"

	"github.com/attendhub/attend-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decidedAt = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func leaveWorkflow(role user.Role, days float64) Workflow {
	return Workflow{
		Kind:          KindLeave,
		RequesterID:   "requester-1",
		RequesterRole: role,
		Days:          days,
		Status:        StatusPending,
		Assignees: map[Stage]string{
			StageDept: "head-1",
			StageVP:   "vp-1",
			StageGM:   "gm-1",
		},
	}
}

func TestDecide_FullChain(t *testing.T) {
	t.Parallel()

	// Four-day leave walks dept, vp and gm in order.
	w := leaveWorkflow(user.RoleDepartmentHead, 4.0)

	w, err := Decide(w, StageDept, DecisionApproved, "head-1", "ok", decidedAt)
	require.NoError(t, err)
	assert.Equal(t, StatusDeptApproved, w.Status)

	w, err = Decide(w, StageVP, DecisionApproved, "vp-1", "", decidedAt)
	require.NoError(t, err)
	assert.Equal(t, StatusVPApproved, w.Status)

	w, err = Decide(w, StageGM, DecisionApproved, "gm-1", "", decidedAt)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, w.Status)
	assert.Len(t, w.Steps, 3)
}

func TestDecide_ShortChainApprovesImmediately(t *testing.T) {
	t.Parallel()

	w := leaveWorkflow(user.RoleEmployee, 1.0)
	w, err := Decide(w, StageDept, DecisionApproved, "head-1", "", decidedAt)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, w.Status)
}

func TestDecide_VicePresidentSelfApproval(t *testing.T) {
	t.Parallel()

	// A vice president's own one-day leave needs only their own sign-off.
	w := leaveWorkflow(user.RoleVicePresident, 1.0)
	w.RequesterID = "vp-1"

	w, err := Decide(w, StageVP, DecisionApproved, "vp-1", "", decidedAt)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, w.Status)
}

func TestDecide_RejectTerminatesChain(t *testing.T) {
	t.Parallel()

	w := leaveWorkflow(user.RoleEmployee, 4.0)
	w, err := Decide(w, StageDept, DecisionApproved, "head-1", "", decidedAt)
	require.NoError(t, err)

	w, err = Decide(w, StageVP, DecisionRejected, "vp-1", "no cover", decidedAt)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, w.Status)

	// Rejection never cascades; the chain is simply over.
	_, err = Decide(w, StageGM, DecisionApproved, "gm-1", "", decidedAt)
	assert.ErrorIs(t, err, ErrAlreadyTerminal)
}

func TestDecide_OutOfOrderStage(t *testing.T) {
	t.Parallel()

	w := leaveWorkflow(user.RoleEmployee, 4.0)
	_, err := Decide(w, StageVP, DecisionApproved, "vp-1", "", decidedAt)
	assert.ErrorIs(t, err, ErrOutOfOrder)
}

func TestDecide_WrongActorForStage(t *testing.T) {
	t.Parallel()

	w := leaveWorkflow(user.RoleEmployee, 4.0)
	_, err := Decide(w, StageDept, DecisionApproved, "vp-1", "", decidedAt)
	assert.ErrorIs(t, err, ErrStageMismatch)
}

func TestDecide_ReplayFailsWithoutDuplicateStep(t *testing.T) {
	t.Parallel()

	w := leaveWorkflow(user.RoleEmployee, 2.0)
	first, err := Decide(w, StageDept, DecisionApproved, "head-1", "", decidedAt)
	require.NoError(t, err)
	require.Len(t, first.Steps, 1)

	// Replaying the same decision against the advanced workflow is stale.
	replayed, err := Decide(first, StageDept, DecisionApproved, "head-1", "", decidedAt)
	assert.ErrorIs(t, err, ErrOutOfOrder)
	assert.Len(t, replayed.Steps, 1)
}

func TestDecide_FailureLeavesInputUnchanged(t *testing.T) {
	t.Parallel()

	w := leaveWorkflow(user.RoleEmployee, 4.0)
	got, err := Decide(w, StageGM, DecisionApproved, "gm-1", "", decidedAt)
	require.Error(t, err)
	assert.Equal(t, w, got)
}

func TestDecide_DaysNeverMutated(t *testing.T) {
	t.Parallel()

	w := leaveWorkflow(user.RoleEmployee, 3.5)
	for _, step := range []struct {
		stage Stage
		actor string
	}{
		{StageDept, "head-1"},
		{StageVP, "vp-1"},
		{StageGM, "gm-1"},
	} {
		var err error
		w, err = Decide(w, step.stage, DecisionApproved, step.actor, "", decidedAt)
		require.NoError(t, err)
		assert.Equal(t, 3.5, w.Days)
	}
	assert.Equal(t, StatusApproved, w.Status)
}

func TestDecide_Overtime(t *testing.T) {
	t.Parallel()

	w := Workflow{
		Kind:          KindOvertime,
		RequesterID:   "requester-1",
		RequesterRole: user.RoleEmployee,
		Days:          1.0,
		Status:        StatusPending,
		Assignees:     map[Stage]string{StageAssigned: "head-1"},
	}

	approved, err := Decide(w, StageAssigned, DecisionApproved, "head-1", "", decidedAt)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)

	rejected, err := Decide(w, StageAssigned, DecisionRejected, "head-1", "", decidedAt)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, rejected.Status)
}

func TestCancel(t *testing.T) {
	t.Parallel()

	t.Run("requester cancels pending", func(t *testing.T) {
		w := leaveWorkflow(user.RoleEmployee, 2.0)
		got, err := Cancel(w, "requester-1", decidedAt)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)

		_, err = Decide(got, StageDept, DecisionApproved, "head-1", "", decidedAt)
		assert.ErrorIs(t, err, ErrAlreadyTerminal)
	})

	t.Run("mid-chain cancel allowed", func(t *testing.T) {
		w := leaveWorkflow(user.RoleEmployee, 4.0)
		w, err := Decide(w, StageDept, DecisionApproved, "head-1", "", decidedAt)
		require.NoError(t, err)

		got, err := Cancel(w, "requester-1", decidedAt)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, got.Status)
	})

	t.Run("only the requester may cancel", func(t *testing.T) {
		w := leaveWorkflow(user.RoleEmployee, 2.0)
		_, err := Cancel(w, "head-1", decidedAt)
		assert.ErrorIs(t, err, ErrStageMismatch)
	})

	t.Run("approved request cannot be cancelled", func(t *testing.T) {
		w := leaveWorkflow(user.RoleEmployee, 1.0)
		w, err := Decide(w, StageDept, DecisionApproved, "head-1", "", decidedAt)
		require.NoError(t, err)

		_, err = Cancel(w, "requester-1", decidedAt)
		assert.ErrorIs(t, err, ErrAlreadyTerminal)
	})
}

func TestExpectedStage(t *testing.T) {
	t.Parallel()

	w := leaveWorkflow(user.RoleEmployee, 4.0)

	stage, ok := w.ExpectedStage()
	require.True(t, ok)
	assert.Equal(t, StageDept, stage)

	w, err := Decide(w, StageDept, DecisionApproved, "head-1", "", decidedAt)
	require.NoError(t, err)

	stage, ok = w.ExpectedStage()
	require.True(t, ok)
	assert.Equal(t, StageVP, stage)

	cancelled, err := Cancel(w, "requester-1", decidedAt)
	require.NoError(t, err)
	_, ok = cancelled.ExpectedStage()
	assert.False(t, ok)
}
