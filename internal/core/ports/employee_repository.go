package ports

import (
	"context"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
)

// ListEmployeesFilter carries the optional directory filters.
type ListEmployeesFilter struct {
	Department string
	Role       string
	Search     string // partial, case-insensitive match on name or email
}

// EmployeeRepository defines persistence operations for directory records.
// The collection carries a unique index on email (lowercased).
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context, filter ListEmployeesFilter) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	// Delete removes the employee and nulls out assigned_to on all of its
	// tasks. Both writes run in a single transaction where the deployment
	// supports one; otherwise they run sequentially (documented race).
	Delete(ctx context.Context, id string) error
}
