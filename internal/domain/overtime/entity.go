package overtime

import (
	"time"

	"github.com/attendhub/attend-backend-go/internal/domain/approval"
	"github.com/attendhub/attend-backend-go/internal/domain/duration"
)

// Category distinguishes who initiated the overtime.
type Category string

const (
	CategorySelfInitiated    Category = "self_initiated"
	CategoryEmployerDirected Category = "employer_directed"
)

func (c Category) Valid() bool {
	return c == CategorySelfInitiated || c == CategoryEmployerDirected
}

// Application is one overtime request aggregate. Unlike leave it runs a
// single-stage chain against one assigned approver.
type Application struct {
	ID       string
	Category Category

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
	RequesterName *string
	ApproverName  *string
}
