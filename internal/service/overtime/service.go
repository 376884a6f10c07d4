package overtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/attendhub/attend-backend-go/internal/domain/approval"
	"github.com/attendhub/attend-backend-go/internal/domain/duration"
	"github.com/attendhub/attend-backend-go/internal/domain/overtime"
	"github.com/attendhub/attend-backend-go/internal/domain/user"
	"github.com/attendhub/attend-backend-go/internal/service/assignment"
)

// Service drives the overtime request lifecycle. Overtime runs a
// single-stage chain against one assigned approver, and unlike leave
// stays editable while pending.
type Service struct {
	overtime.ApplicationRepository
	assigner *assignment.Assigner
}

func NewService(applicationRepository overtime.ApplicationRepository, assigner *assignment.Assigner) *Service {
	return &Service{
		ApplicationRepository: applicationRepository,
		assigner:              assigner,
	}
}

func (s *Service) Create(ctx context.Context, requester user.User, req overtime.CreateApplicationRequest) (overtime.Application, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return overtime.Application{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return overtime.Application{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	days, err := duration.Compute(duration.Request{
		StartDate: startDate,
		StartNode: duration.Node(req.StartNode),
		EndDate:   endDate,
		EndNode:   duration.Node(req.EndNode),
	}, duration.OvertimePolicy())
	if err != nil {
		return overtime.Application{}, err
	}
	if days == 0 {
		return overtime.Application{}, overtime.ErrZeroDuration
	}

	approverID, err := s.assigner.AssignOvertime(ctx, requester, req.AssignedApproverID)
	if err != nil {
		return overtime.Application{}, err
	}

	app := overtime.Application{
		Category:  overtime.Category(req.Category),
		StartDate: startDate,
		StartNode: duration.Node(req.StartNode),
		EndDate:   endDate,
		EndNode:   duration.Node(req.EndNode),
		Reason:    req.Reason,
		Workflow: approval.Workflow{
			Kind:          approval.KindOvertime,
			RequesterID:   requester.ID,
			RequesterRole: requester.Role,
			Days:          days,
			Status:        approval.StatusPending,
			Assignees:     map[approval.Stage]string{approval.StageAssigned: approverID},
		},
	}

	created, err := s.ApplicationRepository.Create(ctx, app)
	if err != nil {
		return overtime.Application{}, fmt.Errorf("failed to create overtime application: %w", err)
	}

	slog.Info("overtime application created",
		"id", created.ID,
		"requester", requester.ID,
		"days", days,
		"approver", approverID,
	)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string, actor user.User) (overtime.Application, error) {
	app, err := s.ApplicationRepository.GetByID(ctx, id)
	if err != nil {
		return overtime.Application{}, err
	}
	if !canView(app, actor) {
		return overtime.Application{}, approval.ErrStageMismatch
	}
	return app, nil
}

func (s *Service) ListMine(ctx context.Context, requesterID string) ([]overtime.Application, error) {
	return s.ApplicationRepository.ListByRequester(ctx, requesterID)
}

func (s *Service) ListPendingFor(ctx context.Context, approver user.User) ([]overtime.Application, error) {
	if !approver.CanApprove() {
		return nil, user.ErrApproverRoleNeeded
	}
	return s.ApplicationRepository.ListPendingForApprover(ctx, approver.ID)
}

// Update edits a still-pending application owned by the actor and
// recomputes days when the span changes.
func (s *Service) Update(ctx context.Context, id string, actor user.User, req overtime.UpdateApplicationRequest) (overtime.Application, error) {
	app, err := s.ApplicationRepository.GetByID(ctx, id)
	if err != nil {
		return overtime.Application{}, err
	}
	if actor.ID != app.Workflow.RequesterID {
		return overtime.Application{}, approval.ErrStageMismatch
	}
	if app.Workflow.Status != approval.StatusPending {
		return overtime.Application{}, overtime.ErrNotPending
	}

	if req.Category != nil {
		app.Category = overtime.Category(*req.Category)
	}
	if req.Reason != nil {
		app.Reason = *req.Reason
	}
	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return overtime.Application{}, fmt.Errorf("failed to parse start date: %w", err)
		}
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return overtime.Application{}, fmt.Errorf("failed to parse end date: %w", err)
		}
		app.StartDate = startDate
		app.StartNode = duration.Node(*req.StartNode)
		app.EndDate = endDate
		app.EndNode = duration.Node(*req.EndNode)

		days, err := duration.Compute(duration.Request{
			StartDate: startDate,
			StartNode: app.StartNode,
			EndDate:   endDate,
			EndNode:   app.EndNode,
		}, duration.OvertimePolicy())
		if err != nil {
			return overtime.Application{}, err
		}
		if days == 0 {
			return overtime.Application{}, overtime.ErrZeroDuration
		}
		app.Workflow.Days = days
	}

	if err := s.ApplicationRepository.Update(ctx, app); err != nil {
		return overtime.Application{}, err
	}
	return app, nil
}

// Decide runs the single-stage approval and persists the transition
// with a compare-and-swap on the prior status.
func (s *Service) Decide(ctx context.Context, id string, actor user.User, approved bool, comment string) (overtime.Application, error) {
	app, err := s.ApplicationRepository.GetByID(ctx, id)
	if err != nil {
		return overtime.Application{}, err
	}

	stage, ok := app.Workflow.StageForRole(actor.Role)
	if !ok {
		return overtime.Application{}, approval.ErrStageMismatch
	}

	decision := approval.DecisionApproved
	if !approved {
		decision = approval.DecisionRejected
	}

	updated, err := approval.Decide(app.Workflow, stage, decision, actor.ID, comment, time.Now())
	if err != nil {
		return overtime.Application{}, err
	}

	step := updated.Steps[len(updated.Steps)-1]
	if err := s.ApplicationRepository.ApplyDecision(ctx, id, app.Workflow.Status, updated.Status, step); err != nil {
		return overtime.Application{}, err
	}

	slog.Info("overtime application decided",
		"id", id,
		"decision", decision,
		"status", updated.Status,
	)
	app.Workflow = updated
	return app, nil
}

func (s *Service) Cancel(ctx context.Context, id string, actor user.User) (overtime.Application, error) {
	app, err := s.ApplicationRepository.GetByID(ctx, id)
	if err != nil {
		return overtime.Application{}, err
	}

	updated, err := approval.Cancel(app.Workflow, actor.ID, time.Now())
	if err != nil {
		return overtime.Application{}, err
	}

	if err := s.ApplicationRepository.UpdateStatus(ctx, id, app.Workflow.Status, updated.Status); err != nil {
		return overtime.Application{}, err
	}

	app.Workflow = updated
	return app, nil
}

// Delete removes a cancelled application; missing ids are a no-op.
func (s *Service) Delete(ctx context.Context, id string, actor user.User) error {
	app, err := s.ApplicationRepository.GetByID(ctx, id)
	if errors.Is(err, overtime.ErrApplicationNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if actor.ID != app.Workflow.RequesterID && actor.Role != user.RoleAdmin {
		return approval.ErrStageMismatch
	}
	if app.Workflow.Status != approval.StatusCancelled {
		return overtime.ErrNotCancelled
	}

	if _, err := s.ApplicationRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete overtime application: %w", err)
	}
	return nil
}

func canView(app overtime.Application, actor user.User) bool {
	if actor.ID == app.Workflow.RequesterID || actor.Role == user.RoleAdmin {
		return true
	}
	return app.Workflow.Assignees[approval.StageAssigned] == actor.ID
}
