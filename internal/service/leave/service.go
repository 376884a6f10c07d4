package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendhub/attend-backend-go/internal/domain/approval"
	"github.com/attendhub/attend-backend-go/internal/domain/duration"
	"github.com/attendhub/attend-backend-go/internal/domain/leave"
	"github.com/attendhub/attend-backend-go/internal/domain/user"
	"github.com/attendhub/attend-backend-go/internal/service/assignment"
)

// Service drives the leave request lifecycle: duration computation and
// escalation at creation, then the approval state machine for every
// later mutation.
type Service struct {
	leave.LeaveTypeRepository
	leave.ApplicationRepository
	assigner *assignment.Assigner
}

func NewService(leaveTypeRepository leave.LeaveTypeRepository, applicationRepository leave.ApplicationRepository, assigner *assignment.Assigner) *Service {
	return &Service{
		LeaveTypeRepository:   leaveTypeRepository,
		ApplicationRepository: applicationRepository,
		assigner:              assigner,
	}
}

func (s *Service) ListTypes(ctx context.Context) ([]leave.LeaveType, error) {
	return s.LeaveTypeRepository.ListActive(ctx)
}

func (s *Service) Create(ctx context.Context, requester user.User, req leave.CreateApplicationRequest) (leave.Application, error) {
	if _, err := s.LeaveTypeRepository.GetActiveByID(ctx, req.LeaveTypeID); err != nil {
		return leave.Application{}, leave.ErrLeaveTypeNotFound
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return leave.Application{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return leave.Application{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	durationReq := duration.Request{
		StartDate: startDate,
		StartNode: duration.Node(req.StartNode),
		EndDate:   endDate,
		EndNode:   duration.Node(req.EndNode),
	}
	days, err := duration.Compute(durationReq, duration.LeavePolicy())
	if err != nil {
		return leave.Application{}, err
	}
	if days == 0 {
		return leave.Application{}, leave.ErrZeroDuration
	}

	stages := approval.RequiredStages(requester.Role, approval.KindLeave, days)
	assignees, err := s.assigner.AssignLeave(ctx, requester, stages, req.AssignedVPID, req.AssignedGMID)
	if err != nil {
		return leave.Application{}, err
	}

	app := leave.Application{
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   startDate,
		StartNode:   duration.Node(req.StartNode),
		EndDate:     endDate,
		EndNode:     duration.Node(req.EndNode),
		Reason:      req.Reason,
		Workflow: approval.Workflow{
			Kind:          approval.KindLeave,
			RequesterID:   requester.ID,
			RequesterRole: requester.Role,
			Days:          days,
			Status:        approval.StatusPending,
			Assignees:     assignees,
		},
	}

	created, err := s.ApplicationRepository.Create(ctx, app)
	if err != nil {
		return leave.Application{}, fmt.Errorf("failed to create leave application: %w", err)
	}

	slog.Info("leave application created",
		"id", created.ID,
		"requester", requester.ID,
		"days", days,
		"stages", len(stages),
	)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string, actor user.User) (leave.Application, error) {
	app, err := s.ApplicationRepository.GetByID(ctx, id)
	if err != nil {
		return leave.Application{}, err
	}
	if !canView(app, actor) {
		return leave.Application{}, approval.ErrStageMismatch
	}
	return app, nil
}

func (s *Service) ListMine(ctx context.Context, requesterID string) ([]leave.Application, error) {
	return s.ApplicationRepository.ListByRequester(ctx, requesterID)
}

// ListPendingFor returns the applications currently waiting on the
// approver's stage.
func (s *Service) ListPendingFor(ctx context.Context, approver user.User) ([]leave.Application, error) {
	stage, ok := stageForApproverRole(approver.Role)
	if !ok {
		return nil, user.ErrApproverRoleNeeded
	}
	return s.ApplicationRepository.ListPendingForApprover(ctx, approver.ID, stage)
}

// Decide runs one approval or rejection through the state machine and
// persists the transition with a compare-and-swap on the prior status.
func (s *Service) Decide(ctx context.Context, id string, actor user.User, approved bool, comment string) (leave.Application, error) {
	app, err := s.ApplicationRepository.GetByID(ctx, id)
	if err != nil {
		return leave.Application{}, err
	}

	stage, ok := app.Workflow.StageForRole(actor.Role)
	if !ok {
		return leave.Application{}, approval.ErrStageMismatch
	}

	decision := approval.DecisionApproved
	if !approved {
		decision = approval.DecisionRejected
	}

	updated, err := approval.Decide(app.Workflow, stage, decision, actor.ID, comment, time.Now())
	if err != nil {
		return leave.Application{}, err
	}

	var nextStage *approval.Stage
	if next, ok := updated.ExpectedStage(); ok {
		nextStage = &next
	}
	step := updated.Steps[len(updated.Steps)-1]
	if err := s.ApplicationRepository.ApplyDecision(ctx, id, app.Workflow.Status, updated.Status, nextStage, step); err != nil {
		return leave.Application{}, err
	}

	slog.Info("leave application decided",
		"id", id,
		"stage", stage,
		"decision", decision,
		"status", updated.Status,
	)
	app.Workflow = updated
	return app, nil
}

func (s *Service) Cancel(ctx context.Context, id string, actor user.User) (leave.Application, error) {
	app, err := s.ApplicationRepository.GetByID(ctx, id)
	if err != nil {
		return leave.Application{}, err
	}

	updated, err := approval.Cancel(app.Workflow, actor.ID, time.Now())
	if err != nil {
		return leave.Application{}, err
	}

	if err := s.ApplicationRepository.UpdateStatus(ctx, id, app.Workflow.Status, updated.Status); err != nil {
		return leave.Application{}, err
	}

	app.Workflow = updated
	return app, nil
}

// Delete removes a cancelled application. Deleting an already-deleted id
// succeeds; deleting a non-cancelled application never does.
func (s *Service) Delete(ctx context.Context, id string, actor user.User) error {
	app, err := s.ApplicationRepository.GetByID(ctx, id)
	if errors.Is(err, leave.ErrApplicationNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if actor.ID != app.Workflow.RequesterID && actor.Role != user.RoleAdmin {
		return approval.ErrStageMismatch
	}
	if app.Workflow.Status != approval.StatusCancelled {
		return leave.ErrNotCancelled
	}

	if _, err := s.ApplicationRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete leave application: %w", err)
	}
	return nil
}

func canView(app leave.Application, actor user.User) bool {
	if actor.ID == app.Workflow.RequesterID || actor.Role == user.RoleAdmin {
		return true
	}
	for _, assignee := range app.Workflow.Assignees {
		if assignee == actor.ID {
			return true
		}
	}
	return false
}

func stageForApproverRole(role user.Role) (approval.Stage, bool) {
	switch role {
	case user.RoleDepartmentHead:
		return approval.StageDept, true
	case user.RoleVicePresident:
		return approval.StageVP, true
	case user.RoleGeneralManager:
		return approval.StageGM, true
	}
	return "", false
}
