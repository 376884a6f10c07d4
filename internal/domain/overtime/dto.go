package overtime

import (
	"time"

	"github.com/attendhub/attend-backend-go/internal/domain/approval"
	"github.com/attendhub/attend-backend-go/internal/domain/duration"
	"github.com/attendhub/attend-backend-go/internal/pkg/validator"
)

var overtimeNodes = []string{
	string(duration.NodeMorningStart),
	string(duration.NodeNoon),
	string(duration.NodeAfternoonStart),
	string(duration.NodeDayEnd),
	string(duration.NodeEveningEnd),
	string(duration.NodeNightEnd),
}

type CreateApplicationRequest struct {
	Category           string  `json:"category"`
	StartDate          string  `json:"start_date"`
	StartNode          string  `json:"start_node"`
	EndDate            string  `json:"end_date"`
	EndNode            string  `json:"end_node"`
	Reason             string  `json:"reason"`
	AssignedApproverID *string `json:"assigned_approver_id,omitempty"`
}

func (r *CreateApplicationRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Category(r.Category).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be self_initiated or employer_directed",
		})
	}

	errs = append(errs, validateSpan(r.StartDate, r.StartNode, r.EndDate, r.EndNode)...)

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateApplicationRequest edits a still-pending application; days are
// recomputed from the new span.
type UpdateApplicationRequest struct {
	Category  *string `json:"category,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	StartNode *string `json:"start_node,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	EndNode   *string `json:"end_node,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

func (r *UpdateApplicationRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Category != nil && !Category(*r.Category).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be self_initiated or employer_directed",
		})
	}

	// The span fields travel together; a partial span cannot be recomputed.
	spanFields := []*string{r.StartDate, r.StartNode, r.EndDate, r.EndNode}
	present := 0
	for _, f := range spanFields {
		if f != nil {
			present++
		}
	}
	if present > 0 && present < len(spanFields) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date, start_node, end_date and end_node must be supplied together",
		})
	}
	if present == len(spanFields) {
		errs = append(errs, validateSpan(*r.StartDate, *r.StartNode, *r.EndDate, *r.EndNode)...)
	}

	if r.Reason != nil {
		if validator.IsEmpty(*r.Reason) {
			errs = append(errs, validator.ValidationError{
				Field:   "reason",
				Message: "reason must not be empty",
			})
		}
		if len(*r.Reason) > 500 {
			errs = append(errs, validator.ValidationError{
				Field:   "reason",
				Message: "reason must not exceed 500 characters",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func validateSpan(startDate, startNode, endDate, endNode string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(startDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be formatted as YYYY-MM-DD",
		})
	}
	if _, ok := validator.IsValidDate(endDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be formatted as YYYY-MM-DD",
		})
	}
	if !validator.IsInSlice(startNode, overtimeNodes) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_node",
			Message: "start_node must be one of the overtime time nodes",
		})
	}
	if !validator.IsInSlice(endNode, overtimeNodes) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_node",
			Message: "end_node must be one of the overtime time nodes",
		})
	}
	return errs
}

type DecisionRequest struct {
	Approved bool    `json:"approved"`
	Comment  *string `json:"comment,omitempty"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Comment != nil && len(*r.Comment) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "comment",
			Message: "comment must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApplicationResponse struct {
	ID            string                  `json:"id"`
	Category      Category                `json:"category"`
	RequesterID   string                  `json:"requester_id"`
	RequesterName *string                 `json:"requester_name,omitempty"`
	ApproverID    string                  `json:"approver_id"`
	ApproverName  *string                 `json:"approver_name,omitempty"`
	StartDate     string                  `json:"start_date"`
	StartNode     duration.Node           `json:"start_node"`
	EndDate       string                  `json:"end_date"`
	EndNode       duration.Node           `json:"end_node"`
	Reason        string                  `json:"reason"`
	Days          float64                 `json:"days"`
	Status        approval.Status         `json:"status"`
	Steps         []approval.StepResponse `json:"steps"`
	SubmittedAt   time.Time               `json:"submitted_at"`
}

func ToApplicationResponse(app Application) ApplicationResponse {
	return ApplicationResponse{
		ID:            app.ID,
		Category:      app.Category,
		RequesterID:   app.Workflow.RequesterID,
		RequesterName: app.RequesterName,
		ApproverID:    app.Workflow.Assignees[approval.StageAssigned],
		ApproverName:  app.ApproverName,
		StartDate:     app.StartDate.Format("2006-01-02"),
		StartNode:     app.StartNode,
		EndDate:       app.EndDate.Format("2006-01-02"),
		EndNode:       app.EndNode,
		Reason:        app.Reason,
		Days:          app.Workflow.Days,
		Status:        app.Workflow.Status,
		Steps:         approval.StepResponses(app.Workflow.Steps),
		SubmittedAt:   app.SubmittedAt,
	}
}

func ToApplicationResponses(apps []Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, ToApplicationResponse(app))
	}
	return out
}
