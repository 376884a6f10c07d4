package postgresql

import (
	"context"
	"errors"

	"github.com/attendhub/attend-backend-go/internal/domain/leave"
	"github.com/attendhub/attend-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

// ListActive implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) ListActive(ctx context.Context) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, is_active, created_at, updated_at
		FROM leave_types
		WHERE is_active = TRUE
		ORDER BY name
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		var t leave.LeaveType
		if err := rows.Scan(&t.ID, &t.Name, &t.Code, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// GetActiveByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetActiveByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, is_active, created_at, updated_at
		FROM leave_types
		WHERE id = $1 AND is_active = TRUE
	`
	var t leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Code, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	if err != nil {
		return leave.LeaveType{}, err
	}
	return t, nil
}
