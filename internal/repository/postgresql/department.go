package postgresql

import (
	"context"
	"errors"

	"github.com/attendhub/attend-backend-go/internal/domain/department"
	"github.com/attendhub/attend-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

// GetByID implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, head_id, created_at, updated_at
		FROM departments
		WHERE id = $1
	`
	var d department.Department
	err := q.QueryRow(ctx, query, id).Scan(
		&d.ID,
		&d.Name,
		&d.HeadID,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return department.Department{}, department.ErrDepartmentNotFound
	}
	if err != nil {
		return department.Department{}, err
	}
	return d, nil
}

// OverseersByDepartment implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) OverseersByDepartment(ctx context.Context, departmentID string) ([]department.Oversight, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, vice_president_id, department_id, is_default, created_at
		FROM department_oversights
		WHERE department_id = $1
		ORDER BY is_default DESC, created_at
	`
	rows, err := q.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []department.Oversight
	for rows.Next() {
		var link department.Oversight
		if err := rows.Scan(
			&link.ID,
			&link.VicePresidentID,
			&link.DepartmentID,
			&link.IsDefault,
			&link.CreatedAt,
		); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}
