package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
	"github.com/teamtrack/teamtrack-api/internal/core/ports"
)

// EmployeeService implements directory use cases. Mutations are admin-only;
// the router enforces that before these methods run.
type EmployeeService struct {
	employees ports.EmployeeRepository
	tasks     ports.TaskRepository
	log       zerolog.Logger
}

func NewEmployeeService(employees ports.EmployeeRepository, tasks ports.TaskRepository, log zerolog.Logger) *EmployeeService {
	return &EmployeeService{employees: employees, tasks: tasks, log: log}
}

// List returns the directory newest first, each entry carrying its assigned
// tasks and their count.
func (s *EmployeeService) List(ctx context.Context, filter ports.ListEmployeesFilter) ([]*ports.EmployeeWithTasks, error) {
	employees, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]*ports.EmployeeWithTasks, 0, len(employees))
	for _, emp := range employees {
		withTasks, err := s.withTasks(ctx, emp)
		if err != nil {
			return nil, err
		}
		out = append(out, withTasks)
	}
	return out, nil
}

func (s *EmployeeService) Get(ctx context.Context, id string) (*ports.EmployeeWithTasks, error) {
	emp, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withTasks(ctx, emp)
}

func (s *EmployeeService) Create(ctx context.Context, in ports.CreateEmployeeInput) (*domain.Employee, error) {
	avatar := in.AvatarURL
	if avatar == "" {
		avatar = domain.DefaultAvatarURL(in.Name)
	}

	emp, err := s.employees.Create(ctx, &domain.Employee{
		Name:       in.Name,
		Email:      normalizeEmail(in.Email),
		Role:       in.Role,
		Department: in.Department,
		Phone:      in.Phone,
		AvatarURL:  avatar,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("employee_id", emp.ID).Str("department", string(emp.Department)).Msg("employee created")
	return emp, nil
}

func (s *EmployeeService) Update(ctx context.Context, id string, in ports.UpdateEmployeeInput) (*domain.Employee, error) {
	emp, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		emp.Name = *in.Name
	}
	if in.Email != nil {
		emp.Email = normalizeEmail(*in.Email)
	}
	if in.Role != nil {
		emp.Role = *in.Role
	}
	if in.Department != nil {
		emp.Department = *in.Department
	}
	if in.Phone != nil {
		emp.Phone = *in.Phone
	}
	if in.AvatarURL != nil {
		emp.AvatarURL = *in.AvatarURL
	}
	emp.UpdatedAt = time.Now().UTC()

	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

// Delete removes an employee. The repository cascade-nulls assigned_to on
// the employee's tasks as part of the same operation, so no task is left
// referencing a deleted record.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if _, err := s.employees.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.employees.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("employee_id", id).Msg("employee deleted, tasks unassigned")
	return nil
}

func (s *EmployeeService) withTasks(ctx context.Context, emp *domain.Employee) (*ports.EmployeeWithTasks, error) {
	tasks, err := s.tasks.FindByAssignee(ctx, emp.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.AssignedTaskSummary, 0, len(tasks))
	for _, t := range tasks {
		summaries = append(summaries, ports.AssignedTaskSummary{
			ID:        t.ID,
			Title:     t.Title,
			Status:    t.Status,
			Priority:  t.Priority,
			Deadline:  t.Deadline,
			CreatedAt: t.CreatedAt,
		})
	}
	return &ports.EmployeeWithTasks{Employee: emp, Tasks: summaries, TaskCount: len(summaries)}, nil
}
