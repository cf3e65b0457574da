package handler

import (
	"time"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
	"github.com/teamtrack/teamtrack-api/internal/core/ports"
)

type createEmployeeRequest struct {
	Name       string `json:"name"       validate:"required"`
	Email      string `json:"email"      validate:"required,email"`
	Role       string `json:"role"       validate:"required,oneof=Manager Developer Designer Intern"`
	Department string `json:"department" validate:"required,oneof=Engineering Design Marketing HR"`
	Phone      string `json:"phone"      validate:"omitempty"`
	AvatarURL  string `json:"avatar_url" validate:"omitempty,url"`
}

type updateEmployeeRequest struct {
	Name       *string `json:"name"       validate:"omitempty,min=1"`
	Email      *string `json:"email"      validate:"omitempty,email"`
	Role       *string `json:"role"       validate:"omitempty,oneof=Manager Developer Designer Intern"`
	Department *string `json:"department" validate:"omitempty,oneof=Engineering Design Marketing HR"`
	Phone      *string `json:"phone"      validate:"omitempty"`
	AvatarURL  *string `json:"avatar_url" validate:"omitempty,url"`
}

// employeeResponse is the directory read model, carrying the employee's
// assigned tasks and their count.
type employeeResponse struct {
	ID         string                      `json:"id"`
	Name       string                      `json:"name"`
	Email      string                      `json:"email"`
	Role       string                      `json:"role"`
	Department string                      `json:"department"`
	Phone      string                      `json:"phone,omitempty"`
	AvatarURL  string                      `json:"avatar_url,omitempty"`
	CreatedAt  time.Time                   `json:"created_at"`
	UpdatedAt  time.Time                   `json:"updated_at"`
	Tasks      []ports.AssignedTaskSummary `json:"tasks,omitempty"`
	TaskCount  *int                        `json:"taskCount,omitempty"`
}

func toEmployeeResponse(e *domain.Employee) employeeResponse {
	return employeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Role:       string(e.Role),
		Department: string(e.Department),
		Phone:      e.Phone,
		AvatarURL:  e.AvatarURL,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func toEmployeeWithTasksResponse(w *ports.EmployeeWithTasks) employeeResponse {
	resp := toEmployeeResponse(w.Employee)
	resp.Tasks = w.Tasks
	count := w.TaskCount
	resp.TaskCount = &count
	return resp
}
