package leave

import "errors"

var (
	ErrApplicationNotFound = errors.New("leave application not found")
	ErrLeaveTypeNotFound   = errors.New("leave type not found")
	ErrZeroDuration        = errors.New("leave duration resolves to zero days")
	ErrNotCancelled        = errors.New("only cancelled applications may be deleted")
)
