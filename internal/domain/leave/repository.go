package leave

import (
	"context"

	"github.com/attendhub/attend-backend-go/internal/domain/approval"
)

type LeaveTypeRepository interface {
	ListActive(ctx context.Context) ([]LeaveType, error)
	GetActiveByID(ctx context.Context, id string) (LeaveType, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, app Application) (Application, error)
	GetByID(ctx context.Context, id string) (Application, error)
	ListByRequester(ctx context.Context, requesterID string) ([]Application, error)
	// ListPendingForApprover returns applications whose current stage is
	// assigned to the approver.
	ListPendingForApprover(ctx context.Context, approverID string, stage approval.Stage) ([]Application, error)
	// ApplyDecision persists one transition with a compare-and-swap on the
	// current status; a stale snapshot surfaces as approval.ErrOutOfOrder.
	ApplyDecision(ctx context.Context, id string, from, to approval.Status, nextStage *approval.Stage, step approval.Step) error
	// UpdateStatus moves between statuses without recording a step
	// (cancellation), guarded by the same compare-and-swap.
	UpdateStatus(ctx context.Context, id string, from, to approval.Status) error
	// Delete removes a cancelled application. Returns false when nothing
	// was deleted.
	Delete(ctx context.Context, id string) (bool, error)
}
