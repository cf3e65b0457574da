package handler

import (
	"time"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
	"github.com/teamtrack/teamtrack-api/internal/core/ports"
)

type registerRequest struct {
	Name       string `json:"name"        validate:"required"`
	Email      string `json:"email"       validate:"required,email"`
	Password   string `json:"password"    validate:"required,min=6"`
	Role       string `json:"role"        validate:"omitempty,oneof=admin user"`
	EmployeeID string `json:"employee_id" validate:"omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name  string `json:"name"  validate:"omitempty"`
	Email string `json:"email" validate:"omitempty,email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=6"`
}

// userResponse is the account view. The password hash never leaves the
// domain type (json:"-"), but the response shape is still owned here so
// the wire contract is decoupled from internal changes.
type userResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	EmployeeID string    `json:"employee_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

// meResponse is the current-user view with the linked employee populated.
type meResponse struct {
	userResponse
	Employee *ports.EmployeeSummary `json:"employee,omitempty"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		EmployeeID: u.EmployeeID,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
