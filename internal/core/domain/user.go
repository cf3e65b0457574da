package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User models an authentication principal. A User may be linked to the
// Employee directory record that represents the same person; the link is
// allowed to be absent and is backfilled lazily on the first task-scoped
// request.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	EmployeeID   string    `json:"employee_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidUserRole reports whether role is an accepted account role.
func ValidUserRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
