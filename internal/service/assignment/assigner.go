package assignment

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendhub/attend-backend-go/internal/domain/approval"
	"github.com/attendhub/attend-backend-go/internal/domain/department"
	"github.com/attendhub/attend-backend-go/internal/domain/user"
)

var (
	ErrNoApprover      = errors.New("no eligible approver available")
	ErrInvalidOverride = errors.New("assigned approver does not exist or lacks the role")
)

// Assigner resolves an approver for every required stage at creation
// time. Priority per stage: manual override, then department oversight,
// then the first active holder of the stage's role.
type Assigner struct {
	user.UserRepository
	department.DepartmentRepository
}

func NewAssigner(userRepository user.UserRepository, departmentRepository department.DepartmentRepository) *Assigner {
	return &Assigner{
		UserRepository:       userRepository,
		DepartmentRepository: departmentRepository,
	}
}

// AssignLeave resolves the assignee map for a leave chain.
func (a *Assigner) AssignLeave(ctx context.Context, requester user.User, stages []approval.Stage, vpOverride, gmOverride *string) (map[approval.Stage]string, error) {
	assignees := make(map[approval.Stage]string, len(stages))

	for _, stage := range stages {
		switch stage {
		case approval.StageDept:
			headID, err := a.departmentHead(ctx, requester)
			if err != nil {
				return nil, err
			}
			assignees[stage] = headID
		case approval.StageVP:
			vpID, err := a.vicePresident(ctx, requester, vpOverride)
			if err != nil {
				return nil, err
			}
			assignees[stage] = vpID
		case approval.StageGM:
			gmID, err := a.generalManager(ctx, requester, gmOverride)
			if err != nil {
				return nil, err
			}
			assignees[stage] = gmID
		}
	}

	return assignees, nil
}

// AssignOvertime resolves the single overtime approver: manual override,
// then the overseeing vice president, then the requester's department
// head, then the first active vice president or general manager.
func (a *Assigner) AssignOvertime(ctx context.Context, requester user.User, override *string) (string, error) {
	if override != nil {
		approver, err := a.validatedOverride(ctx, *override,
			user.RoleDepartmentHead, user.RoleVicePresident, user.RoleGeneralManager)
		if err != nil {
			return "", err
		}
		return approver.ID, nil
	}

	if vpID, ok, err := a.overseeingVP(ctx, requester); err != nil {
		return "", err
	} else if ok {
		return vpID, nil
	}

	if headID, err := a.departmentHead(ctx, requester); err == nil {
		return headID, nil
	}

	for _, role := range []user.Role{user.RoleVicePresident, user.RoleGeneralManager} {
		first, err := a.UserRepository.FirstActiveByRole(ctx, role)
		if err == nil {
			return first.ID, nil
		}
		if !errors.Is(err, user.ErrUserNotFound) {
			return "", err
		}
	}

	return "", ErrNoApprover
}

func (a *Assigner) departmentHead(ctx context.Context, requester user.User) (string, error) {
	if requester.DepartmentID == nil {
		return "", ErrNoApprover
	}
	dept, err := a.DepartmentRepository.GetByID(ctx, *requester.DepartmentID)
	if err != nil {
		return "", fmt.Errorf("failed to get requester department: %w", err)
	}
	if dept.HeadID == nil {
		return "", ErrNoApprover
	}
	return *dept.HeadID, nil
}

func (a *Assigner) vicePresident(ctx context.Context, requester user.User, override *string) (string, error) {
	if override != nil {
		vp, err := a.validatedOverride(ctx, *override, user.RoleVicePresident)
		if err != nil {
			return "", err
		}
		return vp.ID, nil
	}

	// A vice president's own request defaults to self-approval.
	if requester.Role == user.RoleVicePresident {
		return requester.ID, nil
	}

	if vpID, ok, err := a.overseeingVP(ctx, requester); err != nil {
		return "", err
	} else if ok {
		return vpID, nil
	}

	first, err := a.UserRepository.FirstActiveByRole(ctx, user.RoleVicePresident)
	if errors.Is(err, user.ErrUserNotFound) {
		return "", ErrNoApprover
	}
	if err != nil {
		return "", err
	}
	return first.ID, nil
}

func (a *Assigner) generalManager(ctx context.Context, requester user.User, override *string) (string, error) {
	if override != nil {
		gm, err := a.validatedOverride(ctx, *override, user.RoleGeneralManager)
		if err != nil {
			return "", err
		}
		return gm.ID, nil
	}

	if requester.Role == user.RoleGeneralManager {
		return requester.ID, nil
	}

	first, err := a.UserRepository.FirstActiveByRole(ctx, user.RoleGeneralManager)
	if errors.Is(err, user.ErrUserNotFound) {
		return "", ErrNoApprover
	}
	if err != nil {
		return "", err
	}
	return first.ID, nil
}

// overseeingVP looks up the vice president responsible for the
// requester's department, preferring the default oversight link.
func (a *Assigner) overseeingVP(ctx context.Context, requester user.User) (string, bool, error) {
	if requester.DepartmentID == nil {
		return "", false, nil
	}
	links, err := a.DepartmentRepository.OverseersByDepartment(ctx, *requester.DepartmentID)
	if err != nil {
		return "", false, fmt.Errorf("failed to list department overseers: %w", err)
	}
	for _, link := range links {
		vp, err := a.UserRepository.GetByID(ctx, link.VicePresidentID)
		if err != nil {
			continue
		}
		if vp.Role == user.RoleVicePresident && vp.IsActive {
			return vp.ID, true, nil
		}
	}
	return "", false, nil
}

func (a *Assigner) validatedOverride(ctx context.Context, id string, roles ...user.Role) (user.User, error) {
	candidate, err := a.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.User{}, ErrInvalidOverride
	}
	if !candidate.IsActive {
		return user.User{}, ErrInvalidOverride
	}
	for _, role := range roles {
		if candidate.Role == role {
			return candidate, nil
		}
	}
	return user.User{}, ErrInvalidOverride
}
