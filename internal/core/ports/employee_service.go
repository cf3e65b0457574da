package ports

import (
	"context"
	"time"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
)

// CreateEmployeeInput carries the payload for creating a directory record.
type CreateEmployeeInput struct {
	Name       string
	Email      string
	Role       domain.EmployeeRole
	Department domain.Department
	Phone      string
	AvatarURL  string // generated from name when empty
}

// UpdateEmployeeInput carries a partial update; nil fields are left unchanged.
type UpdateEmployeeInput struct {
	Name       *string
	Email      *string
	Role       *domain.EmployeeRole
	Department *domain.Department
	Phone      *string
	AvatarURL  *string
}

// AssignedTaskSummary is the lightweight task view embedded in employee
// responses.
type AssignedTaskSummary struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Status    domain.TaskStatus   `json:"status"`
	Priority  domain.TaskPriority `json:"priority"`
	Deadline  *time.Time          `json:"deadline,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

// EmployeeWithTasks is the directory read model: the employee plus its
// assigned tasks and their count.
type EmployeeWithTasks struct {
	Employee  *domain.Employee
	Tasks     []AssignedTaskSummary
	TaskCount int
}

// EmployeeService defines use-case operations for the employee directory.
type EmployeeService interface {
	List(ctx context.Context, filter ListEmployeesFilter) ([]*EmployeeWithTasks, error)
	Get(ctx context.Context, id string) (*EmployeeWithTasks, error)
	Create(ctx context.Context, in CreateEmployeeInput) (*domain.Employee, error)
	Update(ctx context.Context, id string, in UpdateEmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}
