package leave

import (
	"time"

	"github.com/attendhub/attend-backend-go/internal/domain/approval"
	"github.com/attendhub/attend-backend-go/internal/domain/duration"
	"github.com/attendhub/attend-backend-go/internal/pkg/validator"
)

var leaveNodes = []string{
	string(duration.NodeMorningStart),
	string(duration.NodeNoon),
	string(duration.NodeAfternoonStart),
	string(duration.NodeDayEnd),
}

type CreateApplicationRequest struct {
	LeaveTypeID  string  `json:"leave_type_id"`
	StartDate    string  `json:"start_date"`
	StartNode    string  `json:"start_node"`
	EndDate      string  `json:"end_date"`
	EndNode      string  `json:"end_node"`
	Reason       string  `json:"reason"`
	AssignedVPID *string `json:"assigned_vp_id,omitempty"`
	AssignedGMID *string `json:"assigned_gm_id,omitempty"`
}

func (r *CreateApplicationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be formatted as YYYY-MM-DD",
		})
	}
	if _, ok := validator.IsValidDate(r.EndDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be formatted as YYYY-MM-DD",
		})
	}

	if !validator.IsInSlice(r.StartNode, leaveNodes) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_node",
			Message: "start_node must be one of the leave time nodes",
		})
	}
	if !validator.IsInSlice(r.EndNode, leaveNodes) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_node",
			Message: "end_node must be one of the leave time nodes",
		})
	}

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

type LeaveTypeResponse struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Code *string `json:"code,omitempty"`
}

func ToLeaveTypeResponses(types []LeaveType) []LeaveTypeResponse {
	out := make([]LeaveTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, LeaveTypeResponse{ID: t.ID, Name: t.Name, Code: t.Code})
	}
	return out
}

type ApplicationResponse struct {
	ID            string                    `json:"id"`
	LeaveTypeID   string                    `json:"leave_type_id"`
	LeaveTypeName *string                   `json:"leave_type_name,omitempty"`
	RequesterID   string                    `json:"requester_id"`
	RequesterName *string                   `json:"requester_name,omitempty"`
	StartDate     string                    `json:"start_date"`
	StartNode     duration.Node             `json:"start_node"`
	EndDate       string                    `json:"end_date"`
	EndNode       duration.Node             `json:"end_node"`
	Reason        string                    `json:"reason"`
	Days          float64                   `json:"days"`
	Status        approval.Status           `json:"status"`
	CurrentStage  *approval.Stage           `json:"current_stage,omitempty"`
	Assignees     map[approval.Stage]string `json:"assignees"`
	Steps         []approval.StepResponse   `json:"steps"`
	SubmittedAt   time.Time                 `json:"submitted_at"`
}

func ToApplicationResponse(app Application) ApplicationResponse {
	res := ApplicationResponse{
		ID:            app.ID,
		LeaveTypeID:   app.LeaveTypeID,
		LeaveTypeName: app.LeaveTypeName,
		RequesterID:   app.Workflow.RequesterID,
		RequesterName: app.RequesterName,
		StartDate:     app.StartDate.Format("2006-01-02"),
		StartNode:     app.StartNode,
		EndDate:       app.EndDate.Format("2006-01-02"),
		EndNode:       app.EndNode,
		Reason:        app.Reason,
		Days:          app.Workflow.Days,
		Status:        app.Workflow.Status,
		Assignees:     app.Workflow.Assignees,
		Steps:         approval.StepResponses(app.Workflow.Steps),
		SubmittedAt:   app.SubmittedAt,
	}
	if stage, ok := app.Workflow.ExpectedStage(); ok {
		res.CurrentStage = &stage
	}
	return res
}

func ToApplicationResponses(apps []Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, ToApplicationResponse(app))
	}
	return out
}
