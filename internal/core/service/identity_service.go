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

// IdentityService resolves a User to the Employee record that represents
// them for task-scoping purposes. When the account has no employee link it
// repairs it in place: find an Employee by the user's email, or create one
// with directory defaults, then persist the link on the user.
type IdentityService struct {
	users     ports.UserRepository
	employees ports.EmployeeRepository
	log       zerolog.Logger
}

func NewIdentityService(users ports.UserRepository, employees ports.EmployeeRepository, log zerolog.Logger) *IdentityService {
	return &IdentityService{users: users, employees: employees, log: log}
}

// EnsureEmployeeLink returns the employee linked to the user, creating and
// linking one if absent. Idempotent: after the first successful call the
// same employee id is returned every time.
//
// A dangling employee link is a data-integrity fault and surfaces as
// ErrEmployeeNotFound rather than being silently repaired.
func (s *IdentityService) EnsureEmployeeLink(ctx context.Context, userID string) (*domain.Employee, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.EmployeeID != "" {
		emp, err := s.employees.FindByID(ctx, user.EmployeeID)
		if err != nil {
			return nil, fmt.Errorf("resolve employee link for user %s: %w", user.ID, err)
		}
		return emp, nil
	}

	emp, err := s.findOrCreateByEmail(ctx, user)
	if err != nil {
		return nil, err
	}

	user.EmployeeID = emp.ID
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("persist employee link for user %s: %w", user.ID, err)
	}

	metrics.EmployeeLinksRepairedTotal.Inc()
	s.log.Info().
		Str("user_id", user.ID).
		Str("employee_id", emp.ID).
		Msg("employee link repaired")

	return emp, nil
}

func (s *IdentityService) findOrCreateByEmail(ctx context.Context, user *domain.User) (*domain.Employee, error) {
	emp, err := s.employees.FindByEmail(ctx, user.Email)
	if err == nil {
		return emp, nil
	}
	if !errors.Is(err, domain.ErrEmployeeNotFound) {
		return nil, err
	}

	name := user.Name
	if name == "" {
		name = "User"
	}
	created, err := s.employees.Create(ctx, &domain.Employee{
		Name:       name,
		Email:      user.Email,
		Role:       domain.RoleDeveloper,
		Department: domain.DeptEngineering,
		AvatarURL:  domain.DefaultAvatarURL(name),
	})
	if err == nil {
		return created, nil
	}

	// Two concurrent first-time calls can race to create the same employee;
	// the loser hits the unique email index. Recover by re-reading instead
	// of failing the request.
	if errors.Is(err, domain.ErrEmployeeExists) {
		s.log.Debug().Str("email", user.Email).Msg("lost employee creation race, refetching")
		return s.employees.FindByEmail(ctx, user.Email)
	}
	return nil, err
}
