package ports

import (
	"context"
	"time"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
)

// AssignedToUnassigned is the sentinel accepted on the assigned_to filter
// meaning "tasks with no assignee".
const AssignedToUnassigned = "unassigned"

// Caller identifies the authenticated principal on task operations.
type Caller struct {
	UserID string
	Role   string
}

// ListTasksInput carries the requested filters together with the caller
// identity used for scoping.
type ListTasksInput struct {
	Caller     Caller
	Status     string
	Priority   string
	AssignedTo string // admin only: employee id or AssignedToUnassigned
	Search     string
}

// CreateTaskInput carries the payload for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus   // defaults to "To Do" when empty
	Priority    domain.TaskPriority // defaults to "Medium" when empty
	AssignedTo  string              // employee id; empty = unassigned
	Deadline    *time.Time
}

// UpdateTaskInput carries a partial task update; nil fields are left
// unchanged. AssignedTo and Deadline distinguish "absent" (nil) from
// "explicitly cleared" (pointer to zero value).
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Status        *domain.TaskStatus
	Priority      *domain.TaskPriority
	AssignedTo    *string // pointer to "" clears the assignment
	Deadline      *time.Time
	ClearDeadline bool
}

// TaskDetail is the read-model projection returned by task operations:
// the task with its assignee expanded, when any.
type TaskDetail struct {
	Task     *domain.Task
	Assignee *EmployeeSummary // nil when unassigned
}

// TaskService defines use-case operations for tasks. Listing and status
// updates enforce the role-based scoping policy; full edits and deletes are
// gated to admins by the router before these methods run.
type TaskService interface {
	List(ctx context.Context, in ListTasksInput) ([]*TaskDetail, error)
	Get(ctx context.Context, id string) (*TaskDetail, error)
	Create(ctx context.Context, in CreateTaskInput) (*TaskDetail, error)
	Update(ctx context.Context, id string, in UpdateTaskInput) (*TaskDetail, error)
	// UpdateStatus applies the ownership check: non-admin callers may only
	// touch tasks assigned to their own employee record.
	UpdateStatus(ctx context.Context, caller Caller, id string, status domain.TaskStatus) (*TaskDetail, error)
	Delete(ctx context.Context, id string) error
}
