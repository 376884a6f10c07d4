package user

import "time"

type Role string

const (
	RoleEmployee       Role = "employee"        // Regular employee
	RoleDepartmentHead Role = "department_head" // Approves leave for their department
	RoleVicePresident  Role = "vice_president"  // Oversees one or more departments
	RoleGeneralManager Role = "general_manager" // Final sign-off on long leave
	RoleAdmin          Role = "admin"           // System administration only
)

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleDepartmentHead, RoleVicePresident, RoleGeneralManager, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string
	Username     string
	PasswordHash string
	RealName     string
	Role         Role
	DepartmentID *string
	IsActive     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanApprove reports whether the role participates in any approval chain.
func (u *User) CanApprove() bool {
	switch u.Role {
	case RoleDepartmentHead, RoleVicePresident, RoleGeneralManager:
		return true
	}
	return false
}
