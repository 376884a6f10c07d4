package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user is not active")
	ErrApproverForbidden  = errors.New("user may not approve requests")
	ErrApproverRoleNeeded = errors.New("approver role access required")
)
