package ports

import (
	"context"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
)

// ListTasksFilter carries the resolved query filters for listing tasks.
// The service layer is responsible for scoping: for non-admin callers
// AssignedTo is always the caller's own employee id by the time the filter
// reaches the repository.
type ListTasksFilter struct {
	Status     string
	Priority   string
	AssignedTo string // employee id; empty = no assignee filter
	Unassigned bool   // matches assigned_to == null; mutually exclusive with AssignedTo
	Search     string // partial, case-insensitive match on title or description
}

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// List returns tasks matching filter, newest first.
	List(ctx context.Context, filter ListTasksFilter) ([]*domain.Task, error)
	// FindByAssignee returns the tasks assigned to an employee, newest first.
	FindByAssignee(ctx context.Context, employeeID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
}
