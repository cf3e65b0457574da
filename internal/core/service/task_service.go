package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/teamtrack/teamtrack-api/internal/api/metrics"
	"github.com/teamtrack/teamtrack-api/internal/core/domain"
	"github.com/teamtrack/teamtrack-api/internal/core/ports"
)

// TaskService implements task use cases, including the access-scoping
// policy: admins query with their filters verbatim, regular users are
// always pinned to their own employee's tasks.
type TaskService struct {
	tasks     ports.TaskRepository
	employees ports.EmployeeRepository
	identity  ports.IdentityService
	log       zerolog.Logger
}

func NewTaskService(
	tasks ports.TaskRepository,
	employees ports.EmployeeRepository,
	identity ports.IdentityService,
	log zerolog.Logger,
) *TaskService {
	return &TaskService{tasks: tasks, employees: employees, identity: identity, log: log}
}

// List returns tasks visible to the caller, newest first, with assignees
// populated.
func (s *TaskService) List(ctx context.Context, in ports.ListTasksInput) ([]*ports.TaskDetail, error) {
	filter, err := s.scopeFilter(ctx, in)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, tasks)
}

// scopeFilter translates the requested filters into a repository filter
// according to the caller's role. For non-admin callers the assignee filter
// is forcibly replaced with their own employee id, whatever the request
// said; status, priority and search still apply.
func (s *TaskService) scopeFilter(ctx context.Context, in ports.ListTasksInput) (ports.ListTasksFilter, error) {
	filter := ports.ListTasksFilter{
		Status:   in.Status,
		Priority: in.Priority,
		Search:   in.Search,
	}

	if in.Caller.Role != domain.RoleAdmin {
		emp, err := s.identity.EnsureEmployeeLink(ctx, in.Caller.UserID)
		if err != nil {
			return ports.ListTasksFilter{}, err
		}
		filter.AssignedTo = emp.ID
		return filter, nil
	}

	switch in.AssignedTo {
	case "":
	case ports.AssignedToUnassigned:
		filter.Unassigned = true
	default:
		filter.AssignedTo = in.AssignedTo
	}
	return filter, nil
}

func (s *TaskService) Get(ctx context.Context, id string) (*ports.TaskDetail, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, task)
}

func (s *TaskService) Create(ctx context.Context, in ports.CreateTaskInput) (*ports.TaskDetail, error) {
	status := in.Status
	if status == "" {
		status = domain.StatusToDo
	}
	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	if in.AssignedTo != "" {
		if err := s.assigneeExists(ctx, in.AssignedTo); err != nil {
			return nil, err
		}
	}

	task, err := s.tasks.Create(ctx, &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		AssignedTo:  in.AssignedTo,
		Deadline:    in.Deadline,
	})
	if err != nil {
		return nil, err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(priority)).Inc()
	s.log.Info().Str("task_id", task.ID).Str("assigned_to", task.AssignedTo).Msg("task created")

	return s.detail(ctx, task)
}

func (s *TaskService) Update(ctx context.Context, id string, in ports.UpdateTaskInput) (*ports.TaskDetail, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.AssignedTo != nil && *in.AssignedTo != "" {
		if err := s.assigneeExists(ctx, *in.AssignedTo); err != nil {
			return nil, err
		}
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.AssignedTo != nil {
		task.AssignedTo = *in.AssignedTo
	}
	if in.Deadline != nil {
		task.Deadline = in.Deadline
	}
	if in.ClearDeadline {
		task.Deadline = nil
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return s.detail(ctx, task)
}

// UpdateStatus sets the status label on a task. Admins may touch any task;
// regular users only tasks assigned to their own employee record. There is
// no transition graph: any valid status value is accepted.
func (s *TaskService) UpdateStatus(ctx context.Context, caller ports.Caller, id string, status domain.TaskStatus) (*ports.TaskDetail, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if caller.Role != domain.RoleAdmin {
		emp, err := s.identity.EnsureEmployeeLink(ctx, caller.UserID)
		if err != nil {
			return nil, err
		}
		if task.AssignedTo == "" || task.AssignedTo != emp.ID {
			return nil, fmt.Errorf("task %s is not assigned to employee %s: %w", id, emp.ID, domain.ErrForbidden)
		}
	}

	task.Status = status
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	metrics.TaskStatusUpdatesTotal.WithLabelValues(string(status)).Inc()
	return s.detail(ctx, task)
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}

// assigneeExists validates the employee reference at write time. A missing
// employee is the caller's fault, not a lookup failure.
func (s *TaskService) assigneeExists(ctx context.Context, employeeID string) error {
	_, err := s.employees.FindByID(ctx, employeeID)
	if errors.Is(err, domain.ErrEmployeeNotFound) || errors.Is(err, domain.ErrInvalidID) {
		return domain.ErrInvalidAssignee
	}
	return err
}

// detail expands a task into its read model, resolving the assignee when
// present. A dangling assignee (deleted out from under a concurrent write)
// renders as unassigned rather than failing the read.
func (s *TaskService) detail(ctx context.Context, task *domain.Task) (*ports.TaskDetail, error) {
	d := &ports.TaskDetail{Task: task}
	if task.AssignedTo == "" {
		return d, nil
	}

	emp, err := s.employees.FindByID(ctx, task.AssignedTo)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return d, nil
		}
		return nil, err
	}
	d.Assignee = &ports.EmployeeSummary{
		ID:         emp.ID,
		Name:       emp.Name,
		Email:      emp.Email,
		Role:       emp.Role,
		Department: emp.Department,
		AvatarURL:  emp.AvatarURL,
	}
	return d, nil
}

func (s *TaskService) populate(ctx context.Context, tasks []*domain.Task) ([]*ports.TaskDetail, error) {
	details := make([]*ports.TaskDetail, 0, len(tasks))
	for _, t := range tasks {
		d, err := s.detail(ctx, t)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}
