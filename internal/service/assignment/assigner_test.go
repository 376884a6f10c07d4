package assignment

import (
	"context"
	"testing"

	"github.com/attendhub/attend-backend-go/internal/domain/approval"
	"github.com/attendhub/attend-backend-go/internal/domain/department"
	"github.com/attendhub/attend-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserRepo struct {
	users  map[string]user.User
	byRole map[user.Role][]user.User
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (s *stubUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (s *stubUserRepo) FirstActiveByRole(ctx context.Context, role user.Role) (user.User, error) {
	for _, u := range s.byRole[role] {
		if u.IsActive {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (s *stubUserRepo) ListActiveByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range s.byRole[role] {
		if u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

type stubDepartmentRepo struct {
	departments map[string]department.Department
	oversights  map[string][]department.Oversight
}

func (s *stubDepartmentRepo) GetByID(ctx context.Context, id string) (department.Department, error) {
	d, ok := s.departments[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return d, nil
}

func (s *stubDepartmentRepo) OverseersByDepartment(ctx context.Context, departmentID string) ([]department.Oversight, error) {
	return s.oversights[departmentID], nil
}

func ptr(s string) *string { return &s }

func newAssigner() *Assigner {
	headID := "head-1"
	users := &stubUserRepo{
		users: map[string]user.User{
			"head-1": {ID: "head-1", Role: user.RoleDepartmentHead, IsActive: true},
			"vp-1":   {ID: "vp-1", Role: user.RoleVicePresident, IsActive: true},
			"vp-2":   {ID: "vp-2", Role: user.RoleVicePresident, IsActive: true},
			"gm-1":   {ID: "gm-1", Role: user.RoleGeneralManager, IsActive: true},
			"gone-1": {ID: "gone-1", Role: user.RoleVicePresident, IsActive: false},
		},
		byRole: map[user.Role][]user.User{
			user.RoleVicePresident:  {{ID: "vp-2", Role: user.RoleVicePresident, IsActive: true}},
			user.RoleGeneralManager: {{ID: "gm-1", Role: user.RoleGeneralManager, IsActive: true}},
		},
	}
	departments := &stubDepartmentRepo{
		departments: map[string]department.Department{
			"dep-1": {ID: "dep-1", Name: "Engineering", HeadID: &headID},
			"dep-2": {ID: "dep-2", Name: "Facilities"},
		},
		oversights: map[string][]department.Oversight{
			"dep-1": {{VicePresidentID: "vp-1", DepartmentID: "dep-1", IsDefault: true}},
		},
	}
	return NewAssigner(users, departments)
}

func employee(depID string) user.User {
	u := user.User{ID: "emp-1", Role: user.RoleEmployee, IsActive: true}
	if depID != "" {
		u.DepartmentID = &depID
	}
	return u
}

func TestAssignLeaveFullChain(t *testing.T) {
	a := newAssigner()

	assignees, err := a.AssignLeave(context.Background(), employee("dep-1"),
		[]approval.Stage{approval.StageDept, approval.StageVP, approval.StageGM}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "head-1", assignees[approval.StageDept])
	assert.Equal(t, "vp-1", assignees[approval.StageVP], "oversight beats first-by-role")
	assert.Equal(t, "gm-1", assignees[approval.StageGM])
}

func TestAssignLeaveOverrideBeatsOversight(t *testing.T) {
	a := newAssigner()

	assignees, err := a.AssignLeave(context.Background(), employee("dep-1"),
		[]approval.Stage{approval.StageVP}, ptr("vp-2"), nil)
	require.NoError(t, err)
	assert.Equal(t, "vp-2", assignees[approval.StageVP])
}

func TestAssignLeaveInvalidOverride(t *testing.T) {
	a := newAssigner()
	ctx := context.Background()

	// Unknown user.
	_, err := a.AssignLeave(ctx, employee("dep-1"),
		[]approval.Stage{approval.StageVP}, ptr("missing"), nil)
	assert.ErrorIs(t, err, ErrInvalidOverride)

	// Wrong role for the stage.
	_, err = a.AssignLeave(ctx, employee("dep-1"),
		[]approval.Stage{approval.StageVP}, ptr("gm-1"), nil)
	assert.ErrorIs(t, err, ErrInvalidOverride)

	// Inactive user.
	_, err = a.AssignLeave(ctx, employee("dep-1"),
		[]approval.Stage{approval.StageVP}, ptr("gone-1"), nil)
	assert.ErrorIs(t, err, ErrInvalidOverride)
}

func TestAssignLeaveVPSelfApproval(t *testing.T) {
	a := newAssigner()
	vp := user.User{ID: "vp-1", Role: user.RoleVicePresident, IsActive: true}

	assignees, err := a.AssignLeave(context.Background(), vp,
		[]approval.Stage{approval.StageVP, approval.StageGM}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "vp-1", assignees[approval.StageVP])
	assert.Equal(t, "gm-1", assignees[approval.StageGM])
}

func TestAssignLeaveFallsBackToFirstActiveVP(t *testing.T) {
	a := newAssigner()

	// dep-2 has no oversight link, so the stage falls back by role.
	assignees, err := a.AssignLeave(context.Background(), employee("dep-2"),
		[]approval.Stage{approval.StageVP}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "vp-2", assignees[approval.StageVP])
}

func TestAssignLeaveNoDepartmentHead(t *testing.T) {
	a := newAssigner()

	_, err := a.AssignLeave(context.Background(), employee("dep-2"),
		[]approval.Stage{approval.StageDept}, nil, nil)
	assert.ErrorIs(t, err, ErrNoApprover)

	_, err = a.AssignLeave(context.Background(), employee(""),
		[]approval.Stage{approval.StageDept}, nil, nil)
	assert.ErrorIs(t, err, ErrNoApprover)
}

func TestAssignOvertimePriority(t *testing.T) {
	a := newAssigner()
	ctx := context.Background()

	// Override wins over everything and accepts any approver role.
	id, err := a.AssignOvertime(ctx, employee("dep-1"), ptr("gm-1"))
	require.NoError(t, err)
	assert.Equal(t, "gm-1", id)

	// Without an override the overseeing VP is picked.
	id, err = a.AssignOvertime(ctx, employee("dep-1"), nil)
	require.NoError(t, err)
	assert.Equal(t, "vp-1", id)

	// No oversight and no head: first active VP by role.
	id, err = a.AssignOvertime(ctx, employee("dep-2"), nil)
	require.NoError(t, err)
	assert.Equal(t, "vp-2", id)

	_, err = a.AssignOvertime(ctx, employee("dep-1"), ptr("missing"))
	assert.ErrorIs(t, err, ErrInvalidOverride)
}
