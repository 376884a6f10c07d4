package overtime

import "errors"

var (
	ErrApplicationNotFound = errors.New("overtime application not found")
	ErrZeroDuration        = errors.New("overtime duration resolves to zero days")
	ErrNotPending          = errors.New("only pending applications may be edited")
	ErrNotCancelled        = errors.New("only cancelled applications may be deleted")
)
