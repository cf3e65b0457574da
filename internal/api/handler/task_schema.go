package handler

import (
	"time"

	"github.com/teamtrack/teamtrack-api/internal/core/ports"
)

type createTaskRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description" validate:"omitempty"`
	Status      string  `json:"status"      validate:"omitempty,oneof='To Do' 'In Progress' 'Completed'"`
	Priority    string  `json:"priority"    validate:"omitempty,oneof=Low Medium High"`
	AssignedTo  string  `json:"assigned_to" validate:"omitempty"`
	Deadline    *string `json:"deadline"    validate:"omitempty"`
}

// updateTaskRequest is a partial update: absent fields are left unchanged,
// while explicit nulls/empties clear the assignment or deadline.
type updateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty"`
	Status      *string `json:"status"      validate:"omitempty,oneof='To Do' 'In Progress' 'Completed'"`
	Priority    *string `json:"priority"    validate:"omitempty,oneof=Low Medium High"`
	AssignedTo  *string `json:"assigned_to" validate:"omitempty"`
	Deadline    *string `json:"deadline"    validate:"omitempty"`
}

type updateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof='To Do' 'In Progress' 'Completed'"`
}

// taskResponse is the task read model: assigned_to is the populated
// assignee object (or null), never a bare id.
type taskResponse struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	Status      string                 `json:"status"`
	Priority    string                 `json:"priority"`
	AssignedTo  *ports.EmployeeSummary `json:"assigned_to"`
	Deadline    *time.Time             `json:"deadline,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
