package department

import "time"

type Department struct {
	ID     string
	Name   string
	HeadID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Oversight links a vice president to a department they are responsible
// for. At most one link per department is flagged as the default.
type Oversight struct {
	ID              string
	VicePresidentID string
	DepartmentID    string
	IsDefault       bool

	CreatedAt time.Time
}
