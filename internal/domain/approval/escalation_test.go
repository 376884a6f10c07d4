package approval

import (
	"testing"

	"github.com/attendhub/attend-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func TestRequiredStages_Leave(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		role user.Role
		days float64
		want []Stage
	}{
		{"employee short", user.RoleEmployee, 0.5, []Stage{StageDept}},
		{"employee one day", user.RoleEmployee, 1.0, []Stage{StageDept}},
		{"employee needs vp", user.RoleEmployee, 1.5, []Stage{StageDept, StageVP}},
		{"employee at gm boundary", user.RoleEmployee, 3.0, []Stage{StageDept, StageVP}},
		{"employee past gm boundary", user.RoleEmployee, 3.5, []Stage{StageDept, StageVP, StageGM}},
		{"department head long", user.RoleDepartmentHead, 4.0, []Stage{StageDept, StageVP, StageGM}},
		{"vp short skips dept", user.RoleVicePresident, 1.0, []Stage{StageVP}},
		{"vp at boundary", user.RoleVicePresident, 3.0, []Stage{StageVP}},
		{"vp long", user.RoleVicePresident, 5.0, []Stage{StageVP, StageGM}},
		{"gm self approval", user.RoleGeneralManager, 10.0, []Stage{StageGM}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequiredStages(tt.role, KindLeave, tt.days))
		})
	}
}

func TestRequiredStages_OvertimeIsSingleStage(t *testing.T) {
	t.Parallel()

	for _, role := range []user.Role{
		user.RoleEmployee, user.RoleDepartmentHead,
		user.RoleVicePresident, user.RoleGeneralManager,
	} {
		assert.Equal(t, []Stage{StageAssigned}, RequiredStages(role, KindOvertime, 2.0))
	}
}
