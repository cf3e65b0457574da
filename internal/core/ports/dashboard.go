package ports

import (
	"context"
	"time"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
)

// Overview holds the global headline counts.
type Overview struct {
	TotalEmployees int64 `json:"totalEmployees"`
	TotalTasks     int64 `json:"totalTasks"`
	CompletedTasks int64 `json:"completedTasks"`
	PendingTasks   int64 `json:"pendingTasks"`
}

// StatusCount is one bucket of the tasks-by-status grouping.
type StatusCount struct {
	Status domain.TaskStatus `json:"status"`
	Count  int64             `json:"count"`
}

// PriorityCount is one bucket of the tasks-by-priority grouping.
type PriorityCount struct {
	Priority domain.TaskPriority `json:"priority"`
	Count    int64               `json:"count"`
}

// DashboardStats is the full stats aggregation. It is global: every
// authenticated caller sees the same numbers regardless of role, even
// though task listing is scoped. That asymmetry is deliberate.
type DashboardStats struct {
	Overview        Overview        `json:"overview"`
	TasksByStatus   []StatusCount   `json:"tasksByStatus"`
	TasksByPriority []PriorityCount `json:"tasksByPriority"`
	RecentTasks     []*TaskDetail   `json:"recentTasks"`
}

// EmployeeWorkload is one row of the per-employee task count report.
// Employees with zero assigned tasks are included.
type EmployeeWorkload struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	Role       domain.EmployeeRole `json:"role"`
	Department domain.Department   `json:"department"`
	AvatarURL  string              `json:"avatar_url,omitempty"`
	TaskCount  int64               `json:"taskCount"`
}

// DashboardRepository exposes the aggregation queries backing the dashboard.
type DashboardRepository interface {
	Overview(ctx context.Context) (*Overview, error)
	TasksByStatus(ctx context.Context) ([]StatusCount, error)
	TasksByPriority(ctx context.Context) ([]PriorityCount, error)
	// RecentTasks returns the newest tasks with assignee details populated.
	RecentTasks(ctx context.Context, limit int) ([]*TaskDetail, error)
	// Workload returns per-employee assigned-task counts, highest first,
	// including employees with no tasks.
	Workload(ctx context.Context) ([]EmployeeWorkload, error)
}

// StatsCache is a read-through cache for dashboard payloads. Failures are
// advisory: callers fall back to the repository.
type StatsCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// DashboardService serves the aggregated dashboard views.
type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
	EmployeeWorkload(ctx context.Context) ([]EmployeeWorkload, error)
}
