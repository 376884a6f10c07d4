package leave

import (
	"context"
	"testing"

	"github.com/attendhub/attend-backend-go/internal/domain/approval"
	"github.com/attendhub/attend-backend-go/internal/domain/department"
	"github.com/attendhub/attend-backend-go/internal/domain/duration"
	"github.com/attendhub/attend-backend-go/internal/domain/leave"
	"github.com/attendhub/attend-backend-go/internal/domain/user"
	"github.com/attendhub/attend-backend-go/internal/service/assignment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLeaveTypeRepo struct {
	types map[string]leave.LeaveType
}

func (f *fakeLeaveTypeRepo) ListActive(ctx context.Context) ([]leave.LeaveType, error) {
	out := make([]leave.LeaveType, 0, len(f.types))
	for _, t := range f.types {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeLeaveTypeRepo) GetActiveByID(ctx context.Context, id string) (leave.LeaveType, error) {
	t, ok := f.types[id]
	if !ok || !t.IsActive {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return t, nil
}

type fakeApplicationRepo struct {
	apps   map[string]leave.Application
	nextID int
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: map[string]leave.Application{}, nextID: 1}
}

func (f *fakeApplicationRepo) Create(ctx context.Context, app leave.Application) (leave.Application, error) {
	app.ID = "app-" + string(rune('0'+f.nextID))
	f.nextID++
	f.apps[app.ID] = app
	return app, nil
}

func (f *fakeApplicationRepo) GetByID(ctx context.Context, id string) (leave.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return leave.Application{}, leave.ErrApplicationNotFound
	}
	return app, nil
}

func (f *fakeApplicationRepo) ListByRequester(ctx context.Context, requesterID string) ([]leave.Application, error) {
	var out []leave.Application
	for _, app := range f.apps {
		if app.Workflow.RequesterID == requesterID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) ListPendingForApprover(ctx context.Context, approverID string, stage approval.Stage) ([]leave.Application, error) {
	var out []leave.Application
	for _, app := range f.apps {
		if app.Workflow.Status.IsTerminal() {
			continue
		}
		expected, ok := app.Workflow.ExpectedStage()
		if ok && expected == stage && app.Workflow.Assignees[stage] == approverID {
			out = append(out, app)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) ApplyDecision(ctx context.Context, id string, from, to approval.Status, nextStage *approval.Stage, step approval.Step) error {
	app, ok := f.apps[id]
	if !ok {
		return leave.ErrApplicationNotFound
	}
	if app.Workflow.Status != from {
		return approval.ErrOutOfOrder
	}
	app.Workflow.Status = to
	app.Workflow.Steps = append(app.Workflow.Steps, step)
	f.apps[id] = app
	return nil
}

func (f *fakeApplicationRepo) UpdateStatus(ctx context.Context, id string, from, to approval.Status) error {
	app, ok := f.apps[id]
	if !ok {
		return leave.ErrApplicationNotFound
	}
	if app.Workflow.Status != from {
		return approval.ErrOutOfOrder
	}
	app.Workflow.Status = to
	f.apps[id] = app
	return nil
}

func (f *fakeApplicationRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := f.apps[id]; !ok {
		return false, nil
	}
	delete(f.apps, id)
	return true, nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) FirstActiveByRole(ctx context.Context, role user.Role) (user.User, error) {
	for _, u := range f.users {
		if u.Role == role && u.IsActive {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListActiveByRole(ctx context.Context, role user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.Role == role && u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeDepartmentRepo struct {
	departments map[string]department.Department
	oversights  map[string][]department.Oversight
}

func (f *fakeDepartmentRepo) GetByID(ctx context.Context, id string) (department.Department, error) {
	d, ok := f.departments[id]
	if !ok {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	return d, nil
}

func (f *fakeDepartmentRepo) OverseersByDepartment(ctx context.Context, departmentID string) ([]department.Oversight, error) {
	return f.oversights[departmentID], nil
}

func strPtr(s string) *string { return &s }

func newTestService() (*Service, *fakeApplicationRepo) {
	headID := "head-1"
	users := &fakeUserRepo{users: map[string]user.User{
		"emp-1":  {ID: "emp-1", Username: "alice", Role: user.RoleEmployee, DepartmentID: strPtr("dep-1"), IsActive: true},
		"head-1": {ID: "head-1", Username: "bob", Role: user.RoleDepartmentHead, DepartmentID: strPtr("dep-1"), IsActive: true},
		"vp-1":   {ID: "vp-1", Username: "carol", Role: user.RoleVicePresident, IsActive: true},
		"gm-1":   {ID: "gm-1", Username: "dave", Role: user.RoleGeneralManager, IsActive: true},
	}}
	departments := &fakeDepartmentRepo{
		departments: map[string]department.Department{
			"dep-1": {ID: "dep-1", Name: "Engineering", HeadID: &headID},
		},
		oversights: map[string][]department.Oversight{
			"dep-1": {{VicePresidentID: "vp-1", DepartmentID: "dep-1", IsDefault: true}},
		},
	}
	leaveTypes := &fakeLeaveTypeRepo{types: map[string]leave.LeaveType{
		"lt-1": {ID: "lt-1", Name: "Annual Leave", Code: strPtr("annual"), IsActive: true},
	}}
	apps := newFakeApplicationRepo()
	assigner := assignment.NewAssigner(users, departments)
	return NewService(leaveTypes, apps, assigner), apps
}

func requester() user.User {
	return user.User{ID: "emp-1", Username: "alice", Role: user.RoleEmployee, DepartmentID: strPtr("dep-1"), IsActive: true}
}

func TestCreateHalfDayRequiresSingleStage(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), requester(), leave.CreateApplicationRequest{
		LeaveTypeID: "lt-1",
		StartDate:   "2026-03-02",
		StartNode:   string(duration.NodeMorningStart),
		EndDate:     "2026-03-02",
		EndNode:     string(duration.NodeNoon),
		Reason:      "errand",
	})
	require.NoError(t, err)

	assert.Equal(t, 0.5, created.Workflow.Days)
	assert.Equal(t, approval.StatusPending, created.Workflow.Status)
	assert.Equal(t, []approval.Stage{approval.StageDept}, created.Workflow.RequiredStages())
	assert.Equal(t, "head-1", created.Workflow.Assignees[approval.StageDept])
}

func TestCreateLongSpanEscalatesToGM(t *testing.T) {
	svc, _ := newTestService()

	created, err := svc.Create(context.Background(), requester(), leave.CreateApplicationRequest{
		LeaveTypeID: "lt-1",
		StartDate:   "2026-03-02",
		StartNode:   string(duration.NodeMorningStart),
		EndDate:     "2026-03-06",
		EndNode:     string(duration.NodeDayEnd),
		Reason:      "vacation",
	})
	require.NoError(t, err)

	assert.Equal(t, 5.0, created.Workflow.Days)
	assert.Equal(t,
		[]approval.Stage{approval.StageDept, approval.StageVP, approval.StageGM},
		created.Workflow.RequiredStages())
	assert.Equal(t, "vp-1", created.Workflow.Assignees[approval.StageVP])
	assert.Equal(t, "gm-1", created.Workflow.Assignees[approval.StageGM])
}

func TestCreateRejectsInvalidInputs(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, requester(), leave.CreateApplicationRequest{
		LeaveTypeID: "unknown",
		StartDate:   "2026-03-02",
		StartNode:   string(duration.NodeMorningStart),
		EndDate:     "2026-03-02",
		EndNode:     string(duration.NodeNoon),
	})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)

	_, err = svc.Create(ctx, requester(), leave.CreateApplicationRequest{
		LeaveTypeID: "lt-1",
		StartDate:   "2026-03-02",
		StartNode:   string(duration.NodeNoon),
		EndDate:     "2026-03-02",
		EndNode:     string(duration.NodeMorningStart),
	})
	assert.ErrorIs(t, err, duration.ErrInvalidRange)

	_, err = svc.Create(ctx, requester(), leave.CreateApplicationRequest{
		LeaveTypeID: "lt-1",
		StartDate:   "2026-03-02",
		StartNode:   string(duration.NodeNoon),
		EndDate:     "2026-03-02",
		EndNode:     string(duration.NodeNoon),
	})
	assert.ErrorIs(t, err, leave.ErrZeroDuration)
}

func TestDecideAdvancesThroughChain(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, requester(), leave.CreateApplicationRequest{
		LeaveTypeID: "lt-1",
		StartDate:   "2026-03-02",
		StartNode:   string(duration.NodeMorningStart),
		EndDate:     "2026-03-03",
		EndNode:     string(duration.NodeDayEnd),
		Reason:      "trip",
	})
	require.NoError(t, err)
	require.Equal(t, 2.0, created.Workflow.Days)

	head := user.User{ID: "head-1", Role: user.RoleDepartmentHead, IsActive: true}
	vp := user.User{ID: "vp-1", Role: user.RoleVicePresident, IsActive: true}

	afterDept, err := svc.Decide(ctx, created.ID, head, true, "ok")
	require.NoError(t, err)
	assert.Equal(t, approval.StatusDeptApproved, afterDept.Workflow.Status)

	afterVP, err := svc.Decide(ctx, created.ID, vp, true, "fine")
	require.NoError(t, err)
	assert.Equal(t, approval.StatusApproved, afterVP.Workflow.Status)
	assert.Len(t, afterVP.Workflow.Steps, 2)
}

func TestDecideOutOfOrderAndWrongActor(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, requester(), leave.CreateApplicationRequest{
		LeaveTypeID: "lt-1",
		StartDate:   "2026-03-02",
		StartNode:   string(duration.NodeMorningStart),
		EndDate:     "2026-03-03",
		EndNode:     string(duration.NodeDayEnd),
	})
	require.NoError(t, err)

	vp := user.User{ID: "vp-1", Role: user.RoleVicePresident, IsActive: true}
	_, err = svc.Decide(ctx, created.ID, vp, true, "")
	assert.ErrorIs(t, err, approval.ErrOutOfOrder)

	otherHead := user.User{ID: "head-9", Role: user.RoleDepartmentHead, IsActive: true}
	_, err = svc.Decide(ctx, created.ID, otherHead, true, "")
	assert.ErrorIs(t, err, approval.ErrStageMismatch)

	plainEmployee := user.User{ID: "emp-2", Role: user.RoleEmployee, IsActive: true}
	_, err = svc.Decide(ctx, created.ID, plainEmployee, true, "")
	assert.ErrorIs(t, err, approval.ErrStageMismatch)
}

func TestDecideRejectTerminates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, requester(), leave.CreateApplicationRequest{
		LeaveTypeID: "lt-1",
		StartDate:   "2026-03-02",
		StartNode:   string(duration.NodeMorningStart),
		EndDate:     "2026-03-03",
		EndNode:     string(duration.NodeDayEnd),
	})
	require.NoError(t, err)

	head := user.User{ID: "head-1", Role: user.RoleDepartmentHead, IsActive: true}
	rejected, err := svc.Decide(ctx, created.ID, head, false, "short staffed")
	require.NoError(t, err)
	assert.Equal(t, approval.StatusRejected, rejected.Workflow.Status)

	vp := user.User{ID: "vp-1", Role: user.RoleVicePresident, IsActive: true}
	_, err = svc.Decide(ctx, created.ID, vp, true, "")
	assert.ErrorIs(t, err, approval.ErrAlreadyTerminal)
}

func TestCancelAndDelete(t *testing.T) {
	svc, apps := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, requester(), leave.CreateApplicationRequest{
		LeaveTypeID: "lt-1",
		StartDate:   "2026-03-02",
		StartNode:   string(duration.NodeMorningStart),
		EndDate:     "2026-03-02",
		EndNode:     string(duration.NodeDayEnd),
	})
	require.NoError(t, err)

	// Delete before cancel is refused.
	err = svc.Delete(ctx, created.ID, requester())
	assert.ErrorIs(t, err, leave.ErrNotCancelled)

	// Only the requester may cancel.
	stranger := user.User{ID: "emp-2", Role: user.RoleEmployee, IsActive: true}
	_, err = svc.Cancel(ctx, created.ID, stranger)
	assert.ErrorIs(t, err, approval.ErrStageMismatch)

	cancelled, err := svc.Cancel(ctx, created.ID, requester())
	require.NoError(t, err)
	assert.Equal(t, approval.StatusCancelled, cancelled.Workflow.Status)

	require.NoError(t, svc.Delete(ctx, created.ID, requester()))
	_, ok := apps.apps[created.ID]
	assert.False(t, ok)

	// Deleting a missing application is a no-op.
	require.NoError(t, svc.Delete(ctx, created.ID, requester()))
}

func TestListPendingForApprover(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, requester(), leave.CreateApplicationRequest{
		LeaveTypeID: "lt-1",
		StartDate:   "2026-03-02",
		StartNode:   string(duration.NodeMorningStart),
		EndDate:     "2026-03-03",
		EndNode:     string(duration.NodeDayEnd),
	})
	require.NoError(t, err)

	head := user.User{ID: "head-1", Role: user.RoleDepartmentHead, IsActive: true}
	pending, err := svc.ListPendingFor(ctx, head)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, created.ID, pending[0].ID)

	// Not the VP's turn yet.
	vp := user.User{ID: "vp-1", Role: user.RoleVicePresident, IsActive: true}
	pending, err = svc.ListPendingFor(ctx, vp)
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = svc.Decide(ctx, created.ID, head, true, "")
	require.NoError(t, err)

	pending, err = svc.ListPendingFor(ctx, vp)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = svc.ListPendingFor(ctx, requester())
	assert.ErrorIs(t, err, user.ErrApproverRoleNeeded)
}
