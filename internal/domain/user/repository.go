package user

import "context"

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	// FirstActiveByRole returns the active user with the lowest id for the
	// role, the fallback rule when no approver assignment matches.
	FirstActiveByRole(ctx context.Context, role Role) (User, error)
	ListActiveByRole(ctx context.Context, role Role) ([]User, error)
}
