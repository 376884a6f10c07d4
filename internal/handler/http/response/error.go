package response

import (
	"errors"
	"net/http"

	"github.com/attendhub/attend-backend-go/internal/domain/approval"
	"github.com/attendhub/attend-backend-go/internal/domain/auth"
	"github.com/attendhub/attend-backend-go/internal/domain/department"
	"github.com/attendhub/attend-backend-go/internal/domain/duration"
	"github.com/attendhub/attend-backend-go/internal/domain/leave"
	"github.com/attendhub/attend-backend-go/internal/domain/overtime"
	"github.com/attendhub/attend-backend-go/internal/domain/user"
	"github.com/attendhub/attend-backend-go/internal/pkg/validator"
	"github.com/attendhub/attend-backend-go/internal/service/assignment"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrUserInactive):
		Forbidden(w, "User account is inactive")

	// User and department errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrApproverRoleNeeded):
		Forbidden(w, "Approver role required")
	case errors.Is(err, user.ErrApproverForbidden):
		Forbidden(w, "Not allowed to approve this request")
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")

	// Duration and assignment errors
	case errors.Is(err, duration.ErrInvalidRange):
		BadRequest(w, "End must not precede start", nil)
	case errors.Is(err, assignment.ErrNoApprover):
		BadRequest(w, "No eligible approver available", nil)
	case errors.Is(err, assignment.ErrInvalidOverride):
		BadRequest(w, "Assigned approver does not exist or lacks the role", nil)

	// Approval state machine errors
	case errors.Is(err, approval.ErrStageMismatch):
		Forbidden(w, "Not this approver's turn")
	case errors.Is(err, approval.ErrAlreadyTerminal):
		Conflict(w, "Request already fully processed")
	case errors.Is(err, approval.ErrOutOfOrder):
		Conflict(w, "Request changed concurrently, reload and retry")

	// Leave domain errors
	case errors.Is(err, leave.ErrApplicationNotFound):
		NotFound(w, "Leave application not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrZeroDuration):
		BadRequest(w, "Requested span resolves to zero days", nil)
	case errors.Is(err, leave.ErrNotCancelled):
		Conflict(w, "Only cancelled applications may be deleted")

	// Overtime domain errors
	case errors.Is(err, overtime.ErrApplicationNotFound):
		NotFound(w, "Overtime application not found")
	case errors.Is(err, overtime.ErrZeroDuration):
		BadRequest(w, "Requested span resolves to zero days", nil)
	case errors.Is(err, overtime.ErrNotPending):
		Conflict(w, "Only pending applications may be edited")
	case errors.Is(err, overtime.ErrNotCancelled):
		Conflict(w, "Only cancelled applications may be deleted")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
