package department

import "context"

type DepartmentRepository interface {
	GetByID(ctx context.Context, id string) (Department, error)
	// OverseersByDepartment returns the oversight links for a department,
	// default link first.
	OverseersByDepartment(ctx context.Context, departmentID string) ([]Oversight, error)
}
