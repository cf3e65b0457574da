package domain

import (
	"fmt"
	"net/url"
	"time"
)

// EmployeeRole is the directory role of an employee.
type EmployeeRole string

const (
	RoleManager   EmployeeRole = "Manager"
	RoleDeveloper EmployeeRole = "Developer"
	RoleDesigner  EmployeeRole = "Designer"
	RoleIntern    EmployeeRole = "Intern"
)

// Department is the organisational unit an employee belongs to.
type Department string

const (
	DeptEngineering Department = "Engineering"
	DeptDesign      Department = "Design"
	DeptMarketing   Department = "Marketing"
	DeptHR          Department = "HR"
)

// Employee is a directory record for a person who can be assigned tasks.
// Its lifecycle is independent of User: an Employee can exist without a
// linked account, and a User can temporarily lack a linked Employee.
type Employee struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Email      string       `json:"email"`
	Role       EmployeeRole `json:"role"`
	Department Department   `json:"department"`
	Phone      string       `json:"phone,omitempty"`
	AvatarURL  string       `json:"avatar_url,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// DefaultAvatarURL returns the generated avatar for employees created
// without an explicit avatar_url.
func DefaultAvatarURL(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", url.QueryEscape(name))
}

// ValidEmployeeRole reports whether role is one of the directory roles.
func ValidEmployeeRole(role EmployeeRole) bool {
	switch role {
	case RoleManager, RoleDeveloper, RoleDesigner, RoleIntern:
		return true
	}
	return false
}

// ValidDepartment reports whether dept is a known department.
func ValidDepartment(dept Department) bool {
	switch dept {
	case DeptEngineering, DeptDesign, DeptMarketing, DeptHR:
		return true
	}
	return false
}
