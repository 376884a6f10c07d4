package approval

import "github.com/attendhub/attend-backend-go/internal/domain/user"

// gmEscalationDays is the duration above which a chain that reaches the
// vice president also needs general-manager sign-off. Evaluated strictly:
// exactly 3.0 days does not escalate.
const gmEscalationDays = 3.0

// deptOnlyDays is the duration at or under which department approval
// completes an employee's leave request on its own.
const deptOnlyDays = 1.0

// RequiredStages returns the ordered approval chain for a request. The
// days argument must be the aggregate's immutable computed duration; the
// chain is never re-derived from an approver's point of view.
func RequiredStages(requester user.Role, kind Kind, days float64) []Stage {
	if kind == KindOvertime {
		return []Stage{StageAssigned}
	}

	switch requester {
	case user.RoleGeneralManager:
		// The general manager signs off on their own leave.
		return []Stage{StageGM}
	case user.RoleVicePresident:
		// A vice president has no department head above them.
		if days > gmEscalationDays {
			return []Stage{StageVP, StageGM}
		}
		return []Stage{StageVP}
	default:
		stages := []Stage{StageDept}
		if days > deptOnlyDays {
			stages = append(stages, StageVP)
		}
		if days > gmEscalationDays {
			stages = append(stages, StageGM)
		}
		return stages
	}
}
