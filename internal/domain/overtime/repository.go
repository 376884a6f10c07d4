package overtime

import (
	"context"

	"github.com/attendhub/attend-backend-go/internal/domain/approval"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app Application) (Application, error)
	GetByID(ctx context.Context, id string) (Application, error)
	ListByRequester(ctx context.Context, requesterID string) ([]Application, error)
	ListPendingForApprover(ctx context.Context, approverID string) ([]Application, error)
	// Update rewrites the mutable creation fields of a still-pending
	// application, guarded by a compare-and-swap on the pending status.
	Update(ctx context.Context, app Application) error
	ApplyDecision(ctx context.Context, id string, from, to approval.Status, step approval.Step) error
	UpdateStatus(ctx context.Context, id string, from, to approval.Status) error
	Delete(ctx context.Context, id string) (bool, error)
}
