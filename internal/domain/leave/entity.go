package leave

import (
	"time"

	"github.com/attendhub/attend-backend-go/internal/domain/approval"
	"github.com/attendhub/attend-backend-go/internal/domain/duration"
)

// LeaveType entity
type LeaveType struct {
	ID       string
	Name     string
	Code     *string
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Application is one leave request aggregate. The duration facts and the
// computed day count are fixed at creation; only the embedded workflow
// changes afterwards, one stage at a time.
type Application struct {
	ID          string
	LeaveTypeID string

	StartDate time.Time
	StartNode duration.Node
	EndDate   time.Time
	EndNode   duration.Node

	Reason   string
	Workflow approval.Workflow

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships (for responses)
	LeaveTypeName *string
	RequesterName *string
}
