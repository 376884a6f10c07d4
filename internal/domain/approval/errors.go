package approval

import "errors"

var (
	// ErrStageMismatch: the actor is not authorized for the stage (or, for
	// cancellation, is not the requester).
	ErrStageMismatch = errors.New("actor not authorized for stage")
	// ErrAlreadyTerminal: a decision was submitted against a closed request.
	ErrAlreadyTerminal = errors.New("request already in a terminal state")
	// ErrOutOfOrder: the stage is not the workflow's next expected stage.
	// Also the signal by which a losing concurrent approver is discarded.
	ErrOutOfOrder = errors.New("stage is not the next expected stage")
)
